// Package html renders a form definition and its runtime state to an HTML
// fragment: inputs prefilled with the latest values, rejection reasons next
// to the offending fields, and a submit button that stays disabled while the
// combined validity is false.
package html

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/schema"
)

// Option configures the renderer before construction.
type Option func(*config)

type config struct {
	templates   fs.FS
	submitLabel string
}

// WithTemplatesFS supplies an alternate template bundle. The bundle must
// contain form.html at its root.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templates = files
		}
	}
}

// WithSubmitLabel overrides the submit button caption (default "Submit").
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(label) != "" {
			cfg.submitLabel = label
		}
	}
}

// Renderer implements render.Renderer over a pongo2 template set.
type Renderer struct {
	template    *pongo2.Template
	submitLabel string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer, loading the embedded templates unless an
// alternate bundle is supplied.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templates: TemplatesFS(), submitLabel: "Submit"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	set := pongo2.NewSet("formflow", pongo2.NewFSLoader(cfg.templates))
	tpl, err := set.FromFile("form.html")
	if err != nil {
		return nil, fmt.Errorf("html: load form template: %w", err)
	}
	return &Renderer{template: tpl, submitLabel: cfg.submitLabel}, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "html"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the form fragment. Authored text (labels, descriptions,
// rejection reasons) is sanitized before interpolation; user-supplied values
// are escaped by the template engine.
func (r *Renderer) Render(ctx context.Context, form schema.Form, options render.Options) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("html: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}

	fields := make([]pongo2.Context, 0, len(form.Fields))
	for _, fd := range form.Fields {
		fields = append(fields, pongo2.Context{
			"name":        fd.Name,
			"label":       sanitizeText(fd.DisplayLabel()),
			"description": sanitizeText(fd.Description),
			"placeholder": sanitizeText(fd.Placeholder),
			"input_type":  inputType(fd),
			"value":       options.Values[fd.Name],
			"error":       sanitizeText(options.Errors[fd.Name]),
		})
	}

	out, err := r.template.ExecuteBytes(pongo2.Context{
		"form_name":    form.Name,
		"action":       form.Action,
		"method":       methodOrDefault(form.Method),
		"fields":       fields,
		"valid":        options.Valid,
		"submit_label": sanitizeText(r.submitLabel),
		"css_vars":     cssVarBlock(options.Theme),
		"theme":        themeName(options.Theme),
	})
	if err != nil {
		return nil, fmt.Errorf("html: execute form template: %w", err)
	}
	return out, nil
}

func inputType(fd schema.Field) string {
	if fd.Secret {
		return "password"
	}
	for _, rule := range fd.Rules {
		if rule.Kind == schema.RuleEmail {
			return "email"
		}
	}
	return "text"
}

func methodOrDefault(method string) string {
	if method == "" {
		return "POST"
	}
	return method
}

func themeName(cfg *render.ThemeConfig) string {
	if cfg == nil {
		return ""
	}
	return cfg.Theme
}

// cssVarBlock flattens theme CSS variables into a deterministic declaration
// list for the template's <style> block.
func cssVarBlock(cfg *render.ThemeConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	names := make([]string, 0, len(cfg.CSSVars))
	for name := range cfg.CSSVars {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s: %s; ", name, cfg.CSSVars[name])
	}
	return strings.TrimSpace(b.String())
}
