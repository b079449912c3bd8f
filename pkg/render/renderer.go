// Package render defines the contract between the form runtime and its
// presentation layers, plus the registry renderers are discovered through.
package render

import (
	"context"

	"github.com/goliatone/go-formflow/pkg/flow"
	"github.com/goliatone/go-formflow/pkg/schema"
)

// Renderer turns a form definition plus its current runtime state into bytes
// (HTML, plain text, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form schema.Form, options Options) ([]byte, error)
}

// Options is the runtime state a renderer surfaces: current values, rejection
// reasons keyed by field name, whether the submit control should be enabled,
// and optional theming.
type Options struct {
	// Values pre-populates rendered controls by field name.
	Values map[string]string
	// Errors carries each rejecting field's reason, rendered adjacent to the
	// offending control.
	Errors map[string]string
	// Valid gates the submit control. Renderers disable the trigger while
	// false instead of re-running validators themselves.
	Valid bool
	// Theme carries resolved theme tokens when the caller wants themed
	// output. Nil means unthemed.
	Theme *ThemeConfig
}

// FromFlow snapshots a reactive flow into renderer options.
func FromFlow(f *flow.Flow) Options {
	return Options{
		Values: f.Values(),
		Errors: f.Reasons(),
		Valid:  f.Valid(),
	}
}
