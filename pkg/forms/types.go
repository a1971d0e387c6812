package forms

import "strings"

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeArray   FieldType = "array"
	FieldTypeObject  FieldType = "object"
)

const (
	ValidationRuleMin       = "min"
	ValidationRuleMax       = "max"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRulePattern   = "pattern"
	ValidationRuleMatch     = "match"
)

// ValidationRule represents a single declarative constraint on a field.
// Numeric bounds and length limits encode their threshold in
// Params["value"]; pattern rules keep the expression in Params["pattern"];
// match rules name the peer field in Params["field"] (the classic confirm
// password check). Values stay strings so JSON and YAML snapshots remain
// stable.
type ValidationRule struct {
	Kind   string            `json:"kind" yaml:"kind"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// Field describes an individual input inside a form definition.
type Field struct {
	Name        string            `json:"name" yaml:"name"`
	Type        FieldType         `json:"type" yaml:"type"`
	Format      string            `json:"format,omitempty" yaml:"format,omitempty"`
	Required    bool              `json:"required" yaml:"required"`
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Default     any               `json:"default,omitempty" yaml:"default,omitempty"`
	Enum        []any             `json:"enum,omitempty" yaml:"enum,omitempty"`
	// Condition names a feature flag; the field is only materialised when
	// the flag evaluates true. A leading "!" negates the check.
	Condition   string            `json:"condition,omitempty" yaml:"condition,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty" yaml:"validations,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Definition is a named declarative form: what a consumer needs to build,
// validate, and submit it, without committing to any rendering framework.
type Definition struct {
	ID          string            `json:"id" yaml:"id"`
	Title       string            `json:"title,omitempty" yaml:"title,omitempty"`
	Action      string            `json:"action,omitempty" yaml:"action,omitempty"`
	Method      string            `json:"method,omitempty" yaml:"method,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []Field           `json:"fields" yaml:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Flags holds the feature toggles consulted by field conditions.
type Flags map[string]bool

// Materialize resolves conditional fields against the supplied flags and
// returns a definition containing only the included fields, with their
// Condition cleared. The receiver is not mutated.
func (d Definition) Materialize(flags Flags) Definition {
	out := d
	out.Fields = make([]Field, 0, len(d.Fields))
	for _, field := range d.Fields {
		if !conditionHolds(field.Condition, flags) {
			continue
		}
		field.Condition = ""
		out.Fields = append(out.Fields, field)
	}
	return out
}

// FieldByName returns the named field and whether it exists.
func (d Definition) FieldByName(name string) (Field, bool) {
	for _, field := range d.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

func conditionHolds(condition string, flags Flags) bool {
	trimmed := strings.TrimSpace(condition)
	if trimmed == "" {
		return true
	}
	negate := strings.HasPrefix(trimmed, "!")
	if negate {
		trimmed = strings.TrimSpace(trimmed[1:])
	}
	value := flags[trimmed]
	if negate {
		return !value
	}
	return value
}
