package forms

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// FromDocument parses an OpenAPI payload and derives a form definition for
// the operation identified by operationID, so definitions can come from a
// service contract as well as YAML files. Only the request body is
// considered; nested objects flatten into dotted field names.
func FromDocument(ctx context.Context, raw []byte, operationID string) (Definition, error) {
	if err := ctx.Err(); err != nil {
		return Definition{}, err
	}
	if len(raw) == 0 {
		return Definition{}, errors.New("forms: openapi document is empty")
	}
	if strings.TrimSpace(operationID) == "" {
		return Definition{}, errors.New("forms: operation id is required")
	}

	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: false}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return Definition{}, fmt.Errorf("forms: load openapi document: %w", err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return Definition{}, fmt.Errorf("forms: validate openapi document: %w", err)
	}

	if spec.Paths == nil {
		return Definition{}, fmt.Errorf("forms: operation %q not found", operationID)
	}
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range item.Operations() {
			if operation == nil || operation.OperationID != operationID {
				continue
			}
			return definitionFromOperation(path, method, operation)
		}
	}
	return Definition{}, fmt.Errorf("forms: operation %q not found", operationID)
}

func definitionFromOperation(path, method string, operation *openapi3.Operation) (Definition, error) {
	def := Definition{
		ID:          operation.OperationID,
		Title:       operation.Summary,
		Action:      path,
		Method:      strings.ToUpper(method),
		Description: operation.Description,
	}

	schema := requestSchema(operation.RequestBody)
	if schema == nil {
		return def, nil
	}

	fields, err := fieldsFromSchema("", schema)
	if err != nil {
		return Definition{}, err
	}
	def.Fields = fields
	return def, nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func fieldsFromSchema(prefix string, schema *openapi3.Schema) ([]Field, error) {
	if schema == nil {
		return nil, nil
	}

	requiredSet := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		requiredSet[name] = struct{}{}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	var fields []Field
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		property := ref.Value
		_, isRequired := requiredSet[name]
		qualified := joinFieldPath(prefix, name)

		if typeOf(property) == "object" && len(property.Properties) > 0 {
			nested, err := fieldsFromSchema(qualified, property)
			if err != nil {
				return nil, err
			}
			fields = append(fields, nested...)
			continue
		}

		field, err := fieldFromSchema(qualified, property, isRequired)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func fieldFromSchema(name string, schema *openapi3.Schema, required bool) (Field, error) {
	fieldType, err := mapFieldType(typeOf(schema))
	if err != nil {
		return Field{}, fmt.Errorf("forms: field %s: %w", name, err)
	}

	field := Field{
		Name:        name,
		Type:        fieldType,
		Format:      schema.Format,
		Required:    required,
		Label:       labelFromName(name),
		Description: schema.Description,
		Default:     schema.Default,
	}
	if len(schema.Enum) > 0 {
		field.Enum = append([]any(nil), schema.Enum...)
	}
	field.Validations = validationsFromSchema(schema)
	return field, nil
}

func validationsFromSchema(schema *openapi3.Schema) []ValidationRule {
	var rules []ValidationRule

	if schema.Min != nil {
		rules = append(rules, ValidationRule{
			Kind:   ValidationRuleMin,
			Params: map[string]string{"value": strconv.FormatFloat(*schema.Min, 'g', -1, 64)},
		})
	}
	if schema.Max != nil {
		rules = append(rules, ValidationRule{
			Kind:   ValidationRuleMax,
			Params: map[string]string{"value": strconv.FormatFloat(*schema.Max, 'g', -1, 64)},
		})
	}
	if schema.MinLength > 0 {
		rules = append(rules, ValidationRule{
			Kind:   ValidationRuleMinLength,
			Params: map[string]string{"value": strconv.FormatUint(schema.MinLength, 10)},
		})
	}
	if schema.MaxLength != nil {
		rules = append(rules, ValidationRule{
			Kind:   ValidationRuleMaxLength,
			Params: map[string]string{"value": strconv.FormatUint(*schema.MaxLength, 10)},
		})
	}
	if schema.Pattern != "" {
		rules = append(rules, ValidationRule{
			Kind:   ValidationRulePattern,
			Params: map[string]string{"pattern": schema.Pattern},
		})
	}
	return rules
}

func mapFieldType(raw string) (FieldType, error) {
	switch raw {
	case "string", "":
		return FieldTypeString, nil
	case "integer":
		return FieldTypeInteger, nil
	case "number":
		return FieldTypeNumber, nil
	case "boolean":
		return FieldTypeBoolean, nil
	case "array":
		return FieldTypeArray, nil
	case "object":
		return FieldTypeObject, nil
	default:
		return "", fmt.Errorf("unsupported schema type %q", raw)
	}
}

func typeOf(schema *openapi3.Schema) string {
	if schema == nil || schema.Type == nil {
		return ""
	}
	values := schema.Type.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func joinFieldPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func labelFromName(name string) string {
	segments := strings.FieldsFunc(name, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})
	if len(segments) == 0 {
		return name
	}
	last := segments[len(segments)-1]
	if last == "" {
		return name
	}
	return strings.ToUpper(last[:1]) + last[1:]
}
