// Package text renders form state as a plain-text summary, useful for
// non-interactive terminals and debugging.
package text

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/schema"
)

// Renderer implements render.Renderer with plain-text output.
type Renderer struct{}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the text renderer.
func New() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Name() string {
	return "text"
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render writes one line per field (label, current value, rejection reason if
// any) and a final line reporting whether the form can be submitted. Secret
// values are masked.
func (r *Renderer) Render(ctx context.Context, form schema.Form, options render.Options) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("text: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s %s)\n", form.Name, methodOrDefault(form.Method), form.Action)
	for _, fd := range form.Fields {
		value := options.Values[fd.Name]
		if fd.Secret && value != "" {
			value = strings.Repeat("*", len(value))
		}
		fmt.Fprintf(&b, "  %s: %s", fd.DisplayLabel(), value)
		if reason := options.Errors[fd.Name]; reason != "" {
			fmt.Fprintf(&b, "  [%s]", reason)
		}
		b.WriteByte('\n')
	}
	if options.Valid {
		b.WriteString("submit: enabled\n")
	} else {
		b.WriteString("submit: disabled\n")
	}
	return []byte(b.String()), nil
}

func methodOrDefault(method string) string {
	if method == "" {
		return "POST"
	}
	return method
}
