// Package outcome defines the accept-or-reject result of validating a single
// form field value. Rejections are ordinary values: they flow through
// observable streams like any other emission and never terminate them.
package outcome

import "fmt"

// Outcome carries the value a validator observed plus, when rejected, the
// human-readable reason. An outcome is either accepted or rejected, never
// both.
type Outcome struct {
	value    string
	reason   string
	rejected bool
}

// Accept returns an accepted outcome for value.
func Accept(value string) Outcome {
	return Outcome{value: value}
}

// Reject returns a rejected outcome carrying a human-readable reason.
func Reject(value, reason string) Outcome {
	if reason == "" {
		reason = "value rejected"
	}
	return Outcome{value: value, reason: reason, rejected: true}
}

// Value reports the raw field value the outcome was produced for, regardless
// of acceptance.
func (o Outcome) Value() string {
	return o.value
}

// Accepted reports whether the value passed validation.
func (o Outcome) Accepted() bool {
	return !o.rejected
}

// Rejected reports whether the value failed validation.
func (o Outcome) Rejected() bool {
	return o.rejected
}

// Reason returns the rejection message; it is empty for accepted outcomes.
func (o Outcome) Reason() string {
	return o.reason
}

func (o Outcome) String() string {
	if o.rejected {
		return fmt.Sprintf("reject(%q: %s)", o.value, o.reason)
	}
	return fmt.Sprintf("accept(%q)", o.value)
}
