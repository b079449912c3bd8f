// Package flow implements the reactive form pipeline: one observable subject
// per field, a combined-validity signal derived from all of them, and a
// commit step that hands the latest values to a sink. Everything is
// synchronous — a push validates, notifies, and recomputes validity before it
// returns.
package flow

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formflow/pkg/field"
	"github.com/goliatone/go-formflow/pkg/observe"
	"github.com/goliatone/go-formflow/pkg/outcome"
	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/sink"
	"github.com/goliatone/go-formflow/pkg/validate"
)

// Option customises flow construction.
type Option func(*settings)

type settings struct {
	sink      sink.Sink
	overrides map[string]validate.Validator
}

// WithSink routes commits to s instead of the default in-memory sink.
func WithSink(s sink.Sink) Option {
	return func(cfg *settings) {
		if s != nil {
			cfg.sink = s
		}
	}
}

// WithValidator replaces the rule-compiled validator for one field. Useful
// when a field needs a check the declarative rules cannot express.
func WithValidator(fieldName string, v validate.Validator) Option {
	return func(cfg *settings) {
		if fieldName == "" || v == nil {
			return
		}
		if cfg.overrides == nil {
			cfg.overrides = make(map[string]validate.Validator)
		}
		cfg.overrides[fieldName] = v
	}
}

// Flow is the logic object the view layer talks to: push raw values in,
// observe per-field outcomes and combined validity, submit when the consumer
// decides the form is ready.
type Flow struct {
	def      schema.Form
	order    []string
	fields   map[string]*field.Subject
	validity *observe.Signal[bool]
	sink     sink.Sink
}

// New builds a flow from a form definition. Each field gets a subject whose
// validator is compiled from the field's rules (or supplied via
// WithValidator); the combined-validity signal is derived from all subjects
// and carries a value from the moment the flow exists.
func New(def schema.Form, options ...Option) (*Flow, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	cfg := settings{sink: sink.NewMemory()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	f := &Flow{
		def:    def,
		order:  def.FieldNames(),
		fields: make(map[string]*field.Subject, len(def.Fields)),
		sink:   cfg.sink,
	}

	signals := make([]*observe.Signal[outcome.Outcome], 0, len(def.Fields))
	for _, fd := range def.Fields {
		validator := cfg.overrides[fd.Name]
		if validator == nil {
			compiled, err := validate.FromRules(fd.Rules)
			if err != nil {
				return nil, fmt.Errorf("flow: field %q: %w", fd.Name, err)
			}
			validator = compiled
		}

		subject := field.New(fd.Name, validator)
		if fd.Initial != "" {
			subject.Push(fd.Initial)
		}
		f.fields[fd.Name] = subject
		signals = append(signals, subject.Outcomes())
	}

	f.validity = observe.CombineAll(allAccepted, signals...)
	return f, nil
}

func allAccepted(outcomes []outcome.Outcome) bool {
	for _, o := range outcomes {
		if o.Rejected() {
			return false
		}
	}
	return true
}

// Definition returns the form definition the flow was built from.
func (f *Flow) Definition() schema.Form {
	return f.def
}

// Push stores a raw value into the named field, running its validator and
// notifying subscribers synchronously.
func (f *Flow) Push(name, value string) error {
	subject, ok := f.fields[name]
	if !ok {
		return fmt.Errorf("flow: unknown field %q", name)
	}
	subject.Push(value)
	return nil
}

// Field returns the subject for the named field.
func (f *Flow) Field(name string) (*field.Subject, error) {
	subject, ok := f.fields[name]
	if !ok {
		return nil, fmt.Errorf("flow: unknown field %q", name)
	}
	return subject, nil
}

// FieldNames returns the field names in definition order.
func (f *Flow) FieldNames() []string {
	return append([]string(nil), f.order...)
}

// Validity exposes the combined-validity signal: true iff the latest outcome
// of every field is accepted. The view layer gates its submit trigger on
// this; the flow itself never re-checks it.
func (f *Flow) Validity() *observe.Signal[bool] {
	return f.validity
}

// Valid reports the current value of the combined-validity signal.
func (f *Flow) Valid() bool {
	return f.validity.Latest()
}

// Values reads the latest raw value of every field without subscribing.
func (f *Flow) Values() map[string]string {
	values := make(map[string]string, len(f.order))
	for name, subject := range f.fields {
		values[name] = subject.Value()
	}
	return values
}

// Reasons returns the current rejection reason for every rejecting field.
// Accepted fields are absent from the map.
func (f *Flow) Reasons() map[string]string {
	reasons := make(map[string]string)
	for name, subject := range f.fields {
		if latest := subject.Latest(); latest.Rejected() {
			reasons[name] = latest.Reason()
		}
	}
	return reasons
}

// Submit reads the latest values and forwards them to the sink. It does not
// mutate any subject and does not gate on validity — preventing an invalid
// submission is the consuming interface's job.
func (f *Flow) Submit(ctx context.Context) (sink.Receipt, error) {
	if ctx == nil {
		return sink.Receipt{}, errors.New("flow: context is required")
	}
	receipt, err := f.sink.Commit(ctx, f.def.Name, f.Values())
	if err != nil {
		return sink.Receipt{}, fmt.Errorf("flow: submit %q: %w", f.def.Name, err)
	}
	return receipt, nil
}

// Dispose tears down the validity signal and every field subject. Using the
// flow afterwards panics.
func (f *Flow) Dispose() {
	f.validity.Dispose()
	for _, subject := range f.fields {
		subject.Dispose()
	}
}
