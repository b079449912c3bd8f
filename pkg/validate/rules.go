package validate

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/goliatone/go-formflow/pkg/schema"
)

// FromRules compiles declarative rules into a single validator. Rules apply
// in declaration order; the first rejection wins. Unknown kinds and malformed
// parameters are configuration mistakes and reported as errors.
func FromRules(rules []schema.Rule) (Validator, error) {
	if len(rules) == 0 {
		return Accept(), nil
	}

	compiled := make([]Validator, 0, len(rules))
	for _, rule := range rules {
		v, err := compileRule(rule)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, v)
	}
	return Chain(compiled...), nil
}

func compileRule(rule schema.Rule) (Validator, error) {
	message := rule.Message()
	switch rule.Kind {
	case schema.RuleRequired:
		return Required(message), nil
	case schema.RuleEmail:
		return Email(message), nil
	case schema.RuleMinLength:
		n, err := ruleThreshold(rule)
		if err != nil {
			return nil, err
		}
		return MinLength(n, message), nil
	case schema.RuleMaxLength:
		n, err := ruleThreshold(rule)
		if err != nil {
			return nil, err
		}
		return MaxLength(n, message), nil
	case schema.RuleLongerThan:
		n, err := ruleThreshold(rule)
		if err != nil {
			return nil, err
		}
		return LongerThan(n, message), nil
	case schema.RulePattern:
		expr := rule.Params["pattern"]
		if expr == "" {
			return nil, fmt.Errorf("validate: rule %q requires a pattern", rule.Kind)
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("validate: rule %q: %w", rule.Kind, err)
		}
		return Pattern(re, message), nil
	default:
		return nil, fmt.Errorf("validate: unknown rule kind %q", rule.Kind)
	}
}

func ruleThreshold(rule schema.Rule) (int, error) {
	raw := rule.Params["value"]
	if raw == "" {
		return 0, fmt.Errorf("validate: rule %q requires a value", rule.Kind)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("validate: rule %q: invalid value %q", rule.Kind, raw)
	}
	return n, nil
}
