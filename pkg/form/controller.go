// Package form implements the synchronous, validate-on-demand variant of the
// runtime: values are buffered while editing and validated only when the
// caller attempts to commit. No intermediate state leaks out.
package form

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/validate"
)

// Phase is the controller's lifecycle state.
type Phase string

const (
	// PhaseEditing accepts value updates; nothing has been committed.
	PhaseEditing Phase = "editing"
	// PhaseCommitted holds a validated snapshot; updates are refused until
	// Reset.
	PhaseCommitted Phase = "committed"
)

// ErrCommitted is returned by Set once the controller holds a committed
// snapshot.
var ErrCommitted = errors.New("form: controller already committed")

// Result reports one commit attempt. When Committed is false, Reasons names
// every rejecting field with its rejection message.
type Result struct {
	Committed bool
	Reasons   map[string]string
}

// Controller buffers field values and validates them all at once on
// AttemptCommit.
type Controller struct {
	def        schema.Form
	order      []string
	validators map[string]validate.Validator
	buffered   map[string]string
	snapshot   map[string]string
	phase      Phase
}

// NewController compiles the definition's rules and starts in the editing
// phase with each field holding its initial value.
func NewController(def schema.Form) (*Controller, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		def:        def,
		order:      def.FieldNames(),
		validators: make(map[string]validate.Validator, len(def.Fields)),
		buffered:   make(map[string]string, len(def.Fields)),
		phase:      PhaseEditing,
	}
	for _, fd := range def.Fields {
		validator, err := validate.FromRules(fd.Rules)
		if err != nil {
			return nil, fmt.Errorf("form: field %q: %w", fd.Name, err)
		}
		c.validators[fd.Name] = validator
		c.buffered[fd.Name] = fd.Initial
	}
	return c, nil
}

// Phase reports whether the controller is editing or committed.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Set buffers a value for the named field. It fails once a snapshot has been
// committed; Reset first.
func (c *Controller) Set(name, value string) error {
	if c.phase == PhaseCommitted {
		return ErrCommitted
	}
	if _, ok := c.buffered[name]; !ok {
		return fmt.Errorf("form: unknown field %q", name)
	}
	c.buffered[name] = value
	return nil
}

// Value returns the currently buffered value for the named field.
func (c *Controller) Value(name string) (string, error) {
	value, ok := c.buffered[name]
	if !ok {
		return "", fmt.Errorf("form: unknown field %q", name)
	}
	return value, nil
}

// AttemptCommit validates every buffered value. If all validators accept, the
// values become the committed snapshot and the controller transitions to
// PhaseCommitted; otherwise it stays editing and the result carries each
// field's rejection reason. The stored snapshot is never touched by a failed
// attempt.
func (c *Controller) AttemptCommit() Result {
	if c.phase == PhaseCommitted {
		return Result{Committed: true}
	}

	reasons := make(map[string]string)
	for _, name := range c.order {
		if result := c.validators[name](c.buffered[name]); result.Rejected() {
			reasons[name] = result.Reason()
		}
	}
	if len(reasons) > 0 {
		return Result{Reasons: reasons}
	}

	snapshot := make(map[string]string, len(c.buffered))
	for name, value := range c.buffered {
		snapshot[name] = value
	}
	c.snapshot = snapshot
	c.phase = PhaseCommitted
	return Result{Committed: true}
}

// Reset clears buffered values back to the definition's initial values,
// discards any snapshot, and returns to the editing phase.
func (c *Controller) Reset() {
	for _, fd := range c.def.Fields {
		c.buffered[fd.Name] = fd.Initial
	}
	c.snapshot = nil
	c.phase = PhaseEditing
}

// Snapshot returns a copy of the committed values. ok is false while the
// controller is still editing.
func (c *Controller) Snapshot() (values map[string]string, ok bool) {
	if c.phase != PhaseCommitted {
		return nil, false
	}
	values = make(map[string]string, len(c.snapshot))
	for name, value := range c.snapshot {
		values[name] = value
	}
	return values, true
}
