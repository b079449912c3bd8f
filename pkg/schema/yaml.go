package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a form definition from a YAML document and validates it.
func ParseYAML(data []byte) (Form, error) {
	var form Form
	if err := yaml.Unmarshal(data, &form); err != nil {
		return Form{}, fmt.Errorf("schema: decode yaml: %w", err)
	}
	if form.Method == "" {
		form.Method = "POST"
	}
	if err := form.Validate(); err != nil {
		return Form{}, err
	}
	return form, nil
}
