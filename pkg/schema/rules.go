package schema

import "strconv"

// EmailRule rejects non-empty values that lack an '@'. Empty input passes:
// the field only starts complaining once the user has typed something.
func EmailRule(message string) Rule {
	return Rule{Kind: RuleEmail, Params: messageParams(message)}
}

// RequiredRule rejects empty values.
func RequiredRule(message string) Rule {
	return Rule{Kind: RuleRequired, Params: messageParams(message)}
}

// MinLengthRule rejects non-empty values shorter than n runes. Empty input
// passes, mirroring EmailRule's permissive stance.
func MinLengthRule(n int, message string) Rule {
	return lengthRule(RuleMinLength, n, message)
}

// MaxLengthRule rejects values longer than n runes.
func MaxLengthRule(n int, message string) Rule {
	return lengthRule(RuleMaxLength, n, message)
}

// LongerThanRule rejects any value of n runes or fewer, empty input included.
// This is the strict threshold used by the reactive login definition.
func LongerThanRule(n int, message string) Rule {
	return lengthRule(RuleLongerThan, n, message)
}

// PatternRule rejects non-empty values that do not match the expression.
func PatternRule(expr, message string) Rule {
	params := messageParams(message)
	if params == nil {
		params = make(map[string]string, 1)
	}
	params["pattern"] = expr
	return Rule{Kind: RulePattern, Params: params}
}

func lengthRule(kind string, n int, message string) Rule {
	params := messageParams(message)
	if params == nil {
		params = make(map[string]string, 1)
	}
	params["value"] = strconv.Itoa(n)
	return Rule{Kind: kind, Params: params}
}

func messageParams(message string) map[string]string {
	if message == "" {
		return nil
	}
	return map[string]string{"message": message}
}

// Message returns the configured rejection reason override, if any.
func (r Rule) Message() string {
	return r.Params["message"]
}
