package schema

// Rule kinds understood by the validator compiler. Numeric thresholds encode
// their value in Params["value"]; pattern rules keep the expression in
// Params["pattern"]; every kind accepts an optional Params["message"]
// override for the rejection reason.
const (
	RuleRequired   = "required"
	RuleEmail      = "email"
	RuleMinLength  = "minLength"
	RuleMaxLength  = "maxLength"
	RuleLongerThan = "longerThan"
	RulePattern    = "pattern"
)

// Rule is a single declarative validation constraint attached to a field.
type Rule struct {
	Kind   string            `json:"kind" yaml:"kind"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// Field describes one input of a form: its identity, presentation hints, the
// value it starts from, and the rules its values are validated against.
type Field struct {
	Name        string `json:"name" yaml:"name"`
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Secret      bool   `json:"secret,omitempty" yaml:"secret,omitempty"`
	Initial     string `json:"initial,omitempty" yaml:"initial,omitempty"`
	Rules       []Rule `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// Form is the declarative definition both runtime variants are built from.
type Form struct {
	Name   string  `json:"name" yaml:"name"`
	Action string  `json:"action,omitempty" yaml:"action,omitempty"`
	Method string  `json:"method,omitempty" yaml:"method,omitempty"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// Field returns the definition of the named field.
func (f Form) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldNames returns the field names in declaration order.
func (f Form) FieldNames() []string {
	names := make([]string, 0, len(f.Fields))
	for _, field := range f.Fields {
		names = append(names, field.Name)
	}
	return names
}
