package forms

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Issue is a single validation failure with the field it belongs to. An
// empty Field marks a form-level problem.
type Issue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Validate evaluates the definition's declarative rules against submitted
// values. The definition should be materialised first so conditional fields
// excluded by flags are not enforced. A nil or empty return means the
// submission passed.
func Validate(def Definition, values map[string]any) []Issue {
	var issues []Issue

	for _, field := range def.Fields {
		value, present := values[field.Name]

		if isEmptyValue(value) {
			present = false
		}
		if !present {
			if field.Required {
				issues = append(issues, Issue{Field: field.Name, Message: "is required"})
			}
			continue
		}

		issues = append(issues, validateType(field, value)...)
		for _, rule := range field.Validations {
			issues = append(issues, validateRule(field, rule, value, values)...)
		}
		issues = append(issues, validateEnum(field, value)...)
	}

	for name := range values {
		if _, ok := def.FieldByName(name); !ok {
			issues = append(issues, Issue{Field: name, Message: "is not a known field"})
		}
	}

	return issues
}

func validateType(field Field, value any) []Issue {
	switch field.Type {
	case FieldTypeBoolean:
		if _, ok := toBool(value); !ok {
			return []Issue{{Field: field.Name, Message: "must be a boolean"}}
		}
	case FieldTypeInteger:
		number, ok := toFloat(value)
		if !ok || number != float64(int64(number)) {
			return []Issue{{Field: field.Name, Message: "must be an integer"}}
		}
	case FieldTypeNumber:
		if _, ok := toFloat(value); !ok {
			return []Issue{{Field: field.Name, Message: "must be a number"}}
		}
	}
	return nil
}

func validateRule(field Field, rule ValidationRule, value any, values map[string]any) []Issue {
	switch rule.Kind {
	case ValidationRuleMinLength:
		limit, ok := ruleInt(rule, "value")
		if ok && len([]rune(toString(value))) < limit {
			return []Issue{{Field: field.Name, Message: fmt.Sprintf("must be at least %d characters", limit)}}
		}
	case ValidationRuleMaxLength:
		limit, ok := ruleInt(rule, "value")
		if ok && len([]rune(toString(value))) > limit {
			return []Issue{{Field: field.Name, Message: fmt.Sprintf("must be at most %d characters", limit)}}
		}
	case ValidationRuleMin:
		limit, ok := ruleFloat(rule, "value")
		if number, numOK := toFloat(value); ok && numOK && number < limit {
			return []Issue{{Field: field.Name, Message: fmt.Sprintf("must be at least %g", limit)}}
		}
	case ValidationRuleMax:
		limit, ok := ruleFloat(rule, "value")
		if number, numOK := toFloat(value); ok && numOK && number > limit {
			return []Issue{{Field: field.Name, Message: fmt.Sprintf("must be at most %g", limit)}}
		}
	case ValidationRulePattern:
		expr := rule.Params["pattern"]
		if expr == "" {
			return nil
		}
		pattern, err := regexp.Compile(expr)
		if err != nil {
			return []Issue{{Field: field.Name, Message: "has an invalid pattern rule"}}
		}
		if !pattern.MatchString(toString(value)) {
			return []Issue{{Field: field.Name, Message: "has an invalid format"}}
		}
	case ValidationRuleMatch:
		peer := rule.Params["field"]
		if peer == "" {
			return nil
		}
		if toString(value) != toString(values[peer]) {
			return []Issue{{Field: field.Name, Message: fmt.Sprintf("must match %s", peer)}}
		}
	}
	return nil
}

func ruleInt(rule ValidationRule, key string) (int, bool) {
	number, err := strconv.Atoi(strings.TrimSpace(rule.Params[key]))
	if err != nil {
		return 0, false
	}
	return number, true
}

func ruleFloat(rule ValidationRule, key string) (float64, bool) {
	number, err := strconv.ParseFloat(strings.TrimSpace(rule.Params[key]), 64)
	if err != nil {
		return 0, false
	}
	return number, true
}

func validateEnum(field Field, value any) []Issue {
	if len(field.Enum) == 0 {
		return nil
	}
	needle := toString(value)
	for _, allowed := range field.Enum {
		if toString(allowed) == needle {
			return nil
		}
	}
	return []Issue{{Field: field.Name, Message: "is not an allowed value"}}
}

func isEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	default:
		return false
	}
}

func toString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case string:
		number, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return number, true
	default:
		return 0, false
	}
}

func toBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, false
		}
		return parsed, true
	default:
		return false, false
	}
}
