package render

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-formflow/pkg/flow"
	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/google/go-cmp/cmp"
)

type stubRenderer struct {
	name string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain; charset=utf-8" }
func (s stubRenderer) Render(context.Context, schema.Form, Options) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register(stubRenderer{name: "text"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	renderer, err := registry.Get("text")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if renderer.Name() != "text" {
		t.Fatalf("renderer name = %q", renderer.Name())
	}

	if !registry.Has("text") {
		t.Fatal("Has should report registered renderer")
	}
	if registry.Has("html") {
		t.Fatal("Has reported an unregistered renderer")
	}
}

func TestRegistryDuplicate(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(stubRenderer{name: "text"})

	err := registry.Register(stubRenderer{name: "text"})
	if err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("err = %v", err)
	}
}

func TestRegistryRejectsInvalidRenderers(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register(nil); err == nil {
		t.Fatal("nil renderer should be rejected")
	}
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatal("unnamed renderer should be rejected")
	}
}

func TestRegistryListIsSorted(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(stubRenderer{name: "text"})
	registry.MustRegister(stubRenderer{name: "html"})

	if diff := cmp.Diff([]string{"html", "text"}, registry.List()); diff != "" {
		t.Fatalf("List mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	_, err := NewRegistry().Get("html")
	if err == nil || !strings.Contains(err.Error(), `renderer "html" not found`) {
		t.Fatalf("err = %v", err)
	}
}

func TestFromFlow(t *testing.T) {
	f, err := flow.New(schema.LoginForm())
	if err != nil {
		t.Fatalf("flow.New: %v", err)
	}
	defer f.Dispose()

	f.Push("email", "a@b.com")
	f.Push("password", "abcd")

	options := FromFlow(f)
	if options.Valid {
		t.Fatal("short password should leave the snapshot invalid")
	}
	if options.Values["email"] != "a@b.com" {
		t.Fatalf("values = %v", options.Values)
	}
	if options.Errors["password"] == "" {
		t.Fatal("password reason missing")
	}
	if _, ok := options.Errors["email"]; ok {
		t.Fatal("accepted email should carry no error")
	}
}
