// Package field implements the observable holder of one form field: a
// replay-latest subject whose emissions are validation outcomes.
package field

import (
	"github.com/goliatone/go-formflow/pkg/observe"
	"github.com/goliatone/go-formflow/pkg/outcome"
	"github.com/goliatone/go-formflow/pkg/validate"
)

// Subject owns one field's most recent value and notifies subscribers of the
// validation outcome of every push. Rejections are emissions like any other:
// the subject stays fully usable after one.
type Subject struct {
	name      string
	validator validate.Validator
	outcomes  *observe.Signal[outcome.Outcome]
}

// New constructs a subject whose initial emission is the outcome for the
// empty value, so subscribers always have something to replay.
func New(name string, validator validate.Validator) *Subject {
	if validator == nil {
		validator = validate.Accept()
	}
	return &Subject{
		name:      name,
		validator: validator,
		outcomes:  observe.NewSignal(validator("")),
	}
}

// Name reports the field identifier the subject was created with.
func (s *Subject) Name() string {
	return s.name
}

// Push stores value and synchronously notifies every subscriber with its
// validation outcome before returning.
func (s *Subject) Push(value string) {
	s.outcomes.Set(s.validator(value))
}

// Subscribe attaches fn to the outcome stream. The current outcome is
// delivered synchronously before any later push is observed; the returned
// function detaches fn.
func (s *Subject) Subscribe(fn func(outcome.Outcome)) (cancel func()) {
	return s.outcomes.Subscribe(fn)
}

// Latest returns the most recent outcome without subscribing.
func (s *Subject) Latest() outcome.Outcome {
	return s.outcomes.Latest()
}

// Value returns the most recently pushed raw value without subscribing.
func (s *Subject) Value() string {
	return s.outcomes.Latest().Value()
}

// Outcomes exposes the underlying signal so derived signals (combined
// validity, for one) can be built on top of it.
func (s *Subject) Outcomes() *observe.Signal[outcome.Outcome] {
	return s.outcomes
}

// Dispose releases all subscribers. Pushing or subscribing afterwards panics.
func (s *Subject) Dispose() {
	s.outcomes.Dispose()
}
