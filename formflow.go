package formflow

import (
	"context"

	internalopenapi "github.com/goliatone/go-formflow/internal/openapi"
	"github.com/goliatone/go-formflow/pkg/flow"
	"github.com/goliatone/go-formflow/pkg/form"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/renderers/html"
	"github.com/goliatone/go-formflow/pkg/renderers/text"
	"github.com/goliatone/go-formflow/pkg/schema"
)

// Form aliases the declarative definition exported via the root package for
// convenience.
type Form = schema.Form

// Field aliases one form field definition.
type Field = schema.Field

// Rule aliases a declarative validation constraint.
type Rule = schema.Rule

// LoginForm returns the built-in reactive login definition.
func LoginForm() Form {
	return schema.LoginForm()
}

// ClassicLoginForm returns the built-in validate-on-demand login definition.
func ClassicLoginForm() Form {
	return schema.ClassicLoginForm()
}

// NewFlow builds a reactive pipeline for an arbitrary form definition.
func NewFlow(def Form, options ...flow.Option) (*flow.Flow, error) {
	return flow.New(def, options...)
}

// NewLoginFlow builds the reactive login pipeline: observable email and
// password subjects, a combined validity signal, and a commit action. The
// password threshold is the strict one (length must exceed 4).
func NewLoginFlow(options ...flow.Option) (*flow.Flow, error) {
	return flow.New(schema.LoginForm(), options...)
}

// NewLoginController builds the synchronous, validate-on-demand login
// variant. Its password threshold (at least 4 characters, empty tolerated)
// deliberately differs from the reactive one.
func NewLoginController() (*form.Controller, error) {
	return form.NewController(schema.ClassicLoginForm())
}

// FormFromOpenAPI derives a form definition from the named operation of an
// OpenAPI 3 document.
func FormFromOpenAPI(ctx context.Context, document []byte, operationID string) (schema.Form, error) {
	return internalopenapi.FormFromDocument(ctx, document, operationID)
}

// FormFromYAML decodes and validates a YAML form definition.
func FormFromYAML(document []byte) (schema.Form, error) {
	return schema.ParseYAML(document)
}

// DefaultRegistry returns a renderer registry with the built-in HTML and
// text renderers registered.
func DefaultRegistry() (*render.Registry, error) {
	registry := render.NewRegistry()

	htmlRenderer, err := html.New()
	if err != nil {
		return nil, err
	}
	if err := registry.Register(htmlRenderer); err != nil {
		return nil, err
	}
	if err := registry.Register(text.New()); err != nil {
		return nil, err
	}
	return registry, nil
}
