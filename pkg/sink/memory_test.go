package sink

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMemoryCommitAssignsSequence(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	first, err := m.Commit(ctx, "login", map[string]string{"email": "a@b.com"})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	second, err := m.Commit(ctx, "login", map[string]string{"email": "c@d.com"})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if first.Seq != 1 || second.Seq != 2 {
		t.Fatalf("sequences = %d, %d", first.Seq, second.Seq)
	}
	if first.Committed.IsZero() {
		t.Fatal("receipt should carry a commit time")
	}

	records := m.Records()
	if len(records) != 2 {
		t.Fatalf("record count = %d", len(records))
	}
	if diff := cmp.Diff(map[string]string{"email": "a@b.com"}, records[0].Values); diff != "" {
		t.Fatalf("first record mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	m := NewMemory()
	values := map[string]string{"email": "a@b.com"}

	if _, err := m.Commit(context.Background(), "login", values); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	values["email"] = "mutated"

	if got := m.Records()[0].Values["email"]; got != "a@b.com" {
		t.Fatalf("stored value = %q, caller mutation leaked", got)
	}
}

func TestMemoryCommitContext(t *testing.T) {
	m := NewMemory()

	if _, err := m.Commit(nil, "login", nil); err == nil {
		t.Fatal("nil context should be rejected")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.Commit(ctx, "login", nil); err == nil {
		t.Fatal("cancelled context should be rejected")
	}
}
