package schema

import (
	"errors"
	"fmt"
)

var (
	errFormNameMissing = errors.New("schema: form name is required")
	errNoFields        = errors.New("schema: form requires at least one field")
)

// Validate checks the definition for structural problems: a missing form
// name, an empty field list, unnamed fields, or duplicate field names.
func (f Form) Validate() error {
	if f.Name == "" {
		return errFormNameMissing
	}
	if len(f.Fields) == 0 {
		return errNoFields
	}
	seen := make(map[string]struct{}, len(f.Fields))
	for i, field := range f.Fields {
		if field.Name == "" {
			return fmt.Errorf("schema: field %d has no name", i)
		}
		if _, dup := seen[field.Name]; dup {
			return fmt.Errorf("schema: duplicate field %q", field.Name)
		}
		seen[field.Name] = struct{}{}
	}
	return nil
}
