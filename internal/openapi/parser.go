// Package openapi derives form definitions from OpenAPI operations using
// kin-openapi. Only the string-typed request body properties become fields;
// scalar constraints (format, length bounds, pattern, required) translate
// into declarative rules the validator compiler understands.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formflow/pkg/schema"
)

const extensionKey = "x-formflow"

var errOperationIDMissing = errors.New("openapi: operation id is required")

// FormFromDocument parses raw as an OpenAPI 3 document and builds the form
// definition for the named operation.
func FormFromDocument(ctx context.Context, raw []byte, operationID string) (schema.Form, error) {
	if err := ctx.Err(); err != nil {
		return schema.Form{}, err
	}
	if operationID == "" {
		return schema.Form{}, errOperationIDMissing
	}
	if len(raw) == 0 {
		return schema.Form{}, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return schema.Form{}, fmt.Errorf("openapi: load document: %w", err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return schema.Form{}, errors.New("openapi: document does not contain any paths")
	}

	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range item.Operations() {
			if operation == nil || operation.OperationID != operationID {
				continue
			}
			return buildForm(path, method, operation)
		}
	}
	return schema.Form{}, fmt.Errorf("openapi: operation %q not found", operationID)
}

func buildForm(path, method string, operation *openapi3.Operation) (schema.Form, error) {
	body := requestSchema(operation.RequestBody)
	if body == nil {
		return schema.Form{}, fmt.Errorf("openapi: operation %q has no usable request body", operation.OperationID)
	}

	required := make(map[string]struct{}, len(body.Required))
	for _, name := range body.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	form := schema.Form{
		Name:   operation.OperationID,
		Action: path,
		Method: method,
	}
	for _, name := range names {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value
		if !isStringProperty(prop) {
			continue
		}
		_, req := required[name]
		form.Fields = append(form.Fields, buildField(name, prop, req))
	}

	if err := form.Validate(); err != nil {
		return schema.Form{}, err
	}
	return form, nil
}

func requestSchema(ref *openapi3.RequestBodyRef) *openapi3.Schema {
	if ref == nil || ref.Value == nil {
		return nil
	}
	content := ref.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func isStringProperty(prop *openapi3.Schema) bool {
	if prop.Type == nil {
		return false
	}
	types := prop.Type.Slice()
	return len(types) == 1 && types[0] == "string"
}

func buildField(name string, prop *openapi3.Schema, required bool) schema.Field {
	field := schema.Field{
		Name:        name,
		Label:       schema.Labelize(name),
		Description: prop.Description,
		Secret:      prop.Format == "password",
	}

	ext := extractExtension(prop.Extensions)

	if required {
		field.Rules = append(field.Rules, schema.RequiredRule(""))
	}
	if prop.Format == "email" {
		field.Rules = append(field.Rules, schema.EmailRule(message(ext)))
	}
	if threshold, ok := extensionInt(ext, "longerThan"); ok {
		field.Rules = append(field.Rules, schema.LongerThanRule(threshold, message(ext)))
	} else if prop.MinLength != 0 {
		field.Rules = append(field.Rules, schema.MinLengthRule(int(prop.MinLength), message(ext)))
	}
	if prop.MaxLength != nil {
		field.Rules = append(field.Rules, schema.MaxLengthRule(int(*prop.MaxLength), ""))
	}
	if prop.Pattern != "" {
		field.Rules = append(field.Rules, schema.PatternRule(prop.Pattern, ""))
	}

	if secret, ok := ext["secret"].(bool); ok {
		field.Secret = secret
	}
	if label, ok := ext["label"].(string); ok && label != "" {
		field.Label = label
	}
	if placeholder, ok := ext["placeholder"].(string); ok {
		field.Placeholder = placeholder
	}
	if initial, ok := ext["initial"].(string); ok {
		field.Initial = initial
	}
	return field
}

// extractExtension returns the x-formflow payload attached to a property, if
// any. kin-openapi surfaces extension values as decoded JSON.
func extractExtension(raw map[string]any) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	if payload, ok := raw[extensionKey].(map[string]any); ok {
		return payload
	}
	return nil
}

func extensionInt(ext map[string]any, key string) (int, bool) {
	value, ok := ext[key]
	if !ok {
		return 0, false
	}
	switch v := value.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func message(ext map[string]any) string {
	if msg, ok := ext["message"].(string); ok {
		return msg
	}
	return ""
}
