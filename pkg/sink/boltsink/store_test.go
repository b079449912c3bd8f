package boltsink

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func openStore(t *testing.T, path string) *Store {
	t.Helper()
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCommitAssignsIncreasingSequences(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "journal.db"))
	ctx := context.Background()

	first, err := store.Commit(ctx, "login", map[string]string{"email": "a@b.com"})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	second, err := store.Commit(ctx, "login", map[string]string{"email": "c@d.com"})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if first.Seq != 1 || second.Seq != 2 {
		t.Fatalf("sequences = %d, %d", first.Seq, second.Seq)
	}
}

func TestBucketsAreIndependentPerForm(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "journal.db"))
	ctx := context.Background()

	store.Commit(ctx, "login", map[string]string{"email": "a@b.com"})
	receipt, err := store.Commit(ctx, "signup", map[string]string{"email": "new@b.com"})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if receipt.Seq != 1 {
		t.Fatalf("each form keeps its own sequence, got %d", receipt.Seq)
	}

	entries, err := store.Entries("signup")
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entry count = %d", len(entries))
	}
}

func TestJournalSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	ctx := context.Background()

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.Commit(ctx, "login", map[string]string{"email": "a@b.com"}); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := openStore(t, path)
	entries, err := reopened.Entries("login")
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entry count = %d", len(entries))
	}
	if entries[0].Seq != 1 {
		t.Fatalf("seq = %d", entries[0].Seq)
	}
	if diff := cmp.Diff(map[string]string{"email": "a@b.com"}, entries[0].Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	// The sequence keeps counting after a reopen.
	receipt, err := reopened.Commit(ctx, "login", map[string]string{"email": "c@d.com"})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if receipt.Seq != 2 {
		t.Fatalf("seq after reopen = %d", receipt.Seq)
	}
}

func TestEntriesForUnknownForm(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "journal.db"))

	entries, err := store.Entries("never-committed")
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("entry count = %d", len(entries))
	}
}

func TestCommitValidation(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "journal.db"))

	if _, err := store.Commit(nil, "login", nil); err == nil {
		t.Fatal("nil context should be rejected")
	}
	if _, err := store.Commit(context.Background(), "", nil); err == nil {
		t.Fatal("empty form name should be rejected")
	}
}
