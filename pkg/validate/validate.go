// Package validate holds the pure field validators and the compiler that
// turns declarative schema rules into them. A validator never errors: it maps
// every input to an accepted or rejected outcome.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-formflow/pkg/outcome"
)

// Validator maps a raw field value to its validation outcome. Validators are
// pure: no side effects, same outcome for the same input.
type Validator func(value string) outcome.Outcome

// Accept returns a validator that accepts everything.
func Accept() Validator {
	return func(value string) outcome.Outcome {
		return outcome.Accept(value)
	}
}

// Required rejects empty values.
func Required(reason string) Validator {
	if reason == "" {
		reason = "Value is required"
	}
	return func(value string) outcome.Outcome {
		if value == "" {
			return outcome.Reject(value, reason)
		}
		return outcome.Accept(value)
	}
}

// Email rejects non-empty values lacking an '@'. Empty input is accepted so
// an untouched field does not complain before the user types anything.
func Email(reason string) Validator {
	if reason == "" {
		reason = "Enter a valid email"
	}
	return func(value string) outcome.Outcome {
		if value != "" && !strings.ContainsRune(value, '@') {
			return outcome.Reject(value, reason)
		}
		return outcome.Accept(value)
	}
}

// MinLength rejects non-empty values shorter than n runes. Like Email, empty
// input passes; pair with Required when a value must be present.
func MinLength(n int, reason string) Validator {
	if reason == "" {
		reason = fmt.Sprintf("Must be at least %d characters", n)
	}
	return func(value string) outcome.Outcome {
		if value != "" && utf8.RuneCountInString(value) < n {
			return outcome.Reject(value, reason)
		}
		return outcome.Accept(value)
	}
}

// MaxLength rejects values longer than n runes.
func MaxLength(n int, reason string) Validator {
	if reason == "" {
		reason = fmt.Sprintf("Must be at most %d characters", n)
	}
	return func(value string) outcome.Outcome {
		if utf8.RuneCountInString(value) > n {
			return outcome.Reject(value, reason)
		}
		return outcome.Accept(value)
	}
}

// LongerThan rejects any value of n runes or fewer, empty input included.
// This is the strict threshold the reactive login pipeline uses.
func LongerThan(n int, reason string) Validator {
	if reason == "" {
		reason = fmt.Sprintf("Must be longer than %d characters", n)
	}
	return func(value string) outcome.Outcome {
		if utf8.RuneCountInString(value) <= n {
			return outcome.Reject(value, reason)
		}
		return outcome.Accept(value)
	}
}

// Pattern rejects non-empty values that do not match re.
func Pattern(re *regexp.Regexp, reason string) Validator {
	if re == nil {
		panic("validate: pattern requires a regexp")
	}
	if reason == "" {
		reason = fmt.Sprintf("Must match %s", re.String())
	}
	return func(value string) outcome.Outcome {
		if value != "" && !re.MatchString(value) {
			return outcome.Reject(value, reason)
		}
		return outcome.Accept(value)
	}
}

// Chain combines validators; the first rejection wins. An empty chain
// accepts everything.
func Chain(validators ...Validator) Validator {
	return func(value string) outcome.Outcome {
		for _, v := range validators {
			if v == nil {
				continue
			}
			if result := v(value); result.Rejected() {
				return result
			}
		}
		return outcome.Accept(value)
	}
}
