package flow

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/sink"
	"github.com/goliatone/go-formflow/pkg/validate"
	"github.com/google/go-cmp/cmp"
)

func newLoginFlow(t *testing.T, options ...Option) *Flow {
	t.Helper()
	f, err := New(schema.LoginForm(), options...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(f.Dispose)
	return f
}

func TestValidityStartsFalse(t *testing.T) {
	f := newLoginFlow(t)

	// Empty email passes but the strict password threshold rejects "".
	if f.Valid() {
		t.Fatal("fresh login flow should not be valid")
	}
}

func TestValidityFlipsWhenBothFieldsPass(t *testing.T) {
	// The untouched email field already accepts (empty input passes Email),
	// so validity flips as soon as the password clears its threshold.
	orders := []struct {
		name   string
		pushes [][2]string
		want   []bool
	}{
		{
			name:   "email first",
			pushes: [][2]string{{"email", "a@b.com"}, {"password", "abcde"}},
			want:   []bool{false, false, true},
		},
		{
			name:   "password first",
			pushes: [][2]string{{"password", "abcde"}, {"email", "a@b.com"}},
			want:   []bool{false, true, true},
		},
	}

	for _, order := range orders {
		t.Run(order.name, func(t *testing.T) {
			f := newLoginFlow(t)

			var seen []bool
			cancel := f.Validity().Subscribe(func(v bool) { seen = append(seen, v) })
			defer cancel()

			for _, push := range order.pushes {
				if err := f.Push(push[0], push[1]); err != nil {
					t.Fatalf("Push(%q): %v", push[0], err)
				}
			}

			if diff := cmp.Diff(order.want, seen); diff != "" {
				t.Fatalf("validity emissions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidityStaysFalseWhileAnyFieldRejects(t *testing.T) {
	f := newLoginFlow(t)

	var seen []bool
	cancel := f.Validity().Subscribe(func(v bool) { seen = append(seen, v) })
	defer cancel()

	f.Push("email", "")
	f.Push("password", "abc")

	for i, v := range seen {
		if v {
			t.Fatalf("emission %d reported valid", i)
		}
	}
	if len(seen) != 3 {
		t.Fatalf("expected 3 emissions, got %d", len(seen))
	}
}

func TestBoundaryPasswordRejects(t *testing.T) {
	f := newLoginFlow(t)

	f.Push("email", "a@b.com")
	f.Push("password", "abcd")

	if f.Valid() {
		t.Fatal("four-character password should keep the flow invalid")
	}
	reasons := f.Reasons()
	if reasons["password"] != "Password must be longer than 4 characters" {
		t.Fatalf("password reason = %q", reasons["password"])
	}
	if _, ok := reasons["email"]; ok {
		t.Fatal("accepted email should not carry a reason")
	}
}

func TestPushUnknownField(t *testing.T) {
	f := newLoginFlow(t)

	err := f.Push("username", "gopher")
	if err == nil || err.Error() != `flow: unknown field "username"` {
		t.Fatalf("err = %v", err)
	}
	if _, err := f.Field("username"); err == nil {
		t.Fatal("Field should reject unknown names")
	}
}

func TestValuesAndFieldNames(t *testing.T) {
	f := newLoginFlow(t)

	f.Push("email", "a@b.com")
	f.Push("password", "secret-pass")

	want := map[string]string{"email": "a@b.com", "password": "secret-pass"}
	if diff := cmp.Diff(want, f.Values()); diff != "" {
		t.Fatalf("Values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"email", "password"}, f.FieldNames()); diff != "" {
		t.Fatalf("FieldNames mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmitForwardsLatestValues(t *testing.T) {
	store := sink.NewMemory()
	f := newLoginFlow(t, WithSink(store))

	f.Push("email", "a@b.com")
	f.Push("password", "abcde")

	receipt, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if receipt.Seq != 1 {
		t.Fatalf("receipt seq = %d", receipt.Seq)
	}

	records := store.Records()
	if len(records) != 1 {
		t.Fatalf("expected one record, got %d", len(records))
	}
	want := map[string]string{"email": "a@b.com", "password": "abcde"}
	if diff := cmp.Diff(want, records[0].Values); diff != "" {
		t.Fatalf("committed values mismatch (-want +got):\n%s", diff)
	}
	if records[0].Form != "login" {
		t.Fatalf("record form = %q", records[0].Form)
	}
}

func TestSubmitRequiresContext(t *testing.T) {
	f := newLoginFlow(t)
	if _, err := f.Submit(nil); err == nil {
		t.Fatal("nil context should be rejected")
	}
}

type failingSink struct{}

func (failingSink) Commit(context.Context, string, map[string]string) (sink.Receipt, error) {
	return sink.Receipt{}, errors.New("store is on fire")
}

func TestSubmitWrapsSinkError(t *testing.T) {
	f := newLoginFlow(t, WithSink(failingSink{}))

	_, err := f.Submit(context.Background())
	if err == nil {
		t.Fatal("expected the sink error")
	}
	want := `flow: submit "login": store is on fire`
	if err.Error() != want {
		t.Fatalf("err = %q, want %q", err, want)
	}
}

func TestWithValidatorOverridesRules(t *testing.T) {
	def := schema.LoginForm()
	f, err := New(def, WithValidator("password", validate.MinLength(2, "too short")))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(f.Dispose)

	f.Push("password", "ab")
	subject, err := f.Field("password")
	if err != nil {
		t.Fatalf("Field: %v", err)
	}
	if got := subject.Latest(); !got.Accepted() {
		t.Fatalf("override should accept two characters: %s", got)
	}
}

func TestInitialValuesPushedAtConstruction(t *testing.T) {
	def := schema.Form{
		Name: "profile",
		Fields: []schema.Field{
			{Name: "email", Initial: "a@b.com", Rules: []schema.Rule{schema.EmailRule("")}},
		},
	}
	f, err := New(def)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(f.Dispose)

	if f.Values()["email"] != "a@b.com" {
		t.Fatalf("initial value missing: %v", f.Values())
	}
	if !f.Valid() {
		t.Fatal("valid initial value should make the flow valid")
	}
}

func TestNewRejectsBadDefinitions(t *testing.T) {
	if _, err := New(schema.Form{}); err == nil {
		t.Fatal("nameless form should be rejected")
	}

	bad := schema.Form{
		Name:   "broken",
		Fields: []schema.Field{{Name: "f", Rules: []schema.Rule{{Kind: "telepathy"}}}},
	}
	_, err := New(bad)
	if err == nil {
		t.Fatal("unknown rule kind should surface at construction")
	}
	want := `flow: field "f": validate: unknown rule kind "telepathy"`
	if err.Error() != want {
		t.Fatalf("err = %q, want %q", err, want)
	}
}
