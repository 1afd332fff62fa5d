package history

import (
	"path/filepath"
	"testing"
	"time"

	"aptlite/pkg/manager"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := OpenAt(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func recordAt(t *testing.T, store *Store, ts time.Time, op manager.Operation, pkgs ...string) {
	t.Helper()

	entry := NewEntry(op, pkgs)
	entry.Timestamp = ts
	entry.MarkSuccess()
	if err := store.Record(entry); err != nil {
		t.Fatalf("Record() error: %v", err)
	}
}

func TestOpenUsesDataDir(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmpDir)

	store, err := Open()
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer store.Close()

	if store == nil {
		t.Fatal("Open() returned nil")
	}
}

func TestRecordAndCount(t *testing.T) {
	store := setupTestStore(t)

	entry := NewEntry(manager.OpInstall, []string{"vim", "git"})
	entry.MarkSuccess()
	if err := store.Record(entry); err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	count, err := store.Count()
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}
}

func TestListNewestFirst(t *testing.T) {
	store := setupTestStore(t)

	base := time.Now().Add(-time.Hour)
	names := []string{"a", "b", "c", "d", "e"}
	for i, name := range names {
		recordAt(t, store, base.Add(time.Duration(i)*time.Minute), manager.OpInstall, name)
	}

	entries, err := store.List(0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(entries) != len(names) {
		t.Fatalf("expected %d entries, got %d", len(names), len(entries))
	}
	if entries[0].Packages[0] != "e" || entries[4].Packages[0] != "a" {
		t.Errorf("entries not newest first: %v ... %v", entries[0].Packages, entries[4].Packages)
	}

	limited, err := store.List(2)
	if err != nil {
		t.Fatalf("List(2) error: %v", err)
	}
	if len(limited) != 2 || limited[1].Packages[0] != "d" {
		t.Errorf("List(2) = %+v", limited)
	}
}

func TestLast(t *testing.T) {
	store := setupTestStore(t)

	last, err := store.Last()
	if err != nil {
		t.Fatalf("Last() error: %v", err)
	}
	if last != nil {
		t.Errorf("expected nil on empty store, got %+v", last)
	}

	now := time.Now()
	recordAt(t, store, now.Add(-time.Minute), manager.OpUpdate)
	recordAt(t, store, now, manager.OpRemove, "nano")

	last, err = store.Last()
	if err != nil {
		t.Fatalf("Last() error: %v", err)
	}
	if last == nil || last.Operation != manager.OpRemove {
		t.Errorf("Last() = %+v, want remove", last)
	}
}

func TestClear(t *testing.T) {
	store := setupTestStore(t)

	now := time.Now()
	recordAt(t, store, now.Add(-time.Second), manager.OpUpgrade)
	recordAt(t, store, now, manager.OpUpdate)

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}

	count, _ := store.Count()
	if count != 0 {
		t.Errorf("expected 0 entries after Clear, got %d", count)
	}
	if last, _ := store.Last(); last != nil {
		t.Errorf("Last() after Clear = %+v, want nil", last)
	}

	// Store remains usable
	recordAt(t, store, now.Add(time.Second), manager.OpUpdate)
	if count, _ := store.Count(); count != 1 {
		t.Errorf("expected 1 entry after re-record, got %d", count)
	}
}

func TestPrune(t *testing.T) {
	store := setupTestStore(t)

	now := time.Now()
	recordAt(t, store, now.Add(-48*time.Hour), manager.OpInstall, "old")
	recordAt(t, store, now.Add(-47*time.Hour), manager.OpInstall, "older")
	recordAt(t, store, now, manager.OpInstall, "new")

	deleted, err := store.Prune(24 * time.Hour)
	if err != nil {
		t.Fatalf("Prune() error: %v", err)
	}
	if deleted != 2 {
		t.Errorf("expected 2 pruned, got %d", deleted)
	}

	entries, _ := store.List(0)
	if len(entries) != 1 || entries[0].Packages[0] != "new" {
		t.Errorf("unexpected remaining entries: %+v", entries)
	}
}

func TestRoundTripFields(t *testing.T) {
	store := setupTestStore(t)

	entry := NewEntry(manager.OpInstall, []string{"nosuchpkg"})
	entry.ExitCode = 100
	entry.Lines = 3
	entry.Error = "exit status 100"
	if err := store.Record(entry); err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	last, err := store.Last()
	if err != nil || last == nil {
		t.Fatalf("Last() = %v, %v", last, err)
	}
	if last.ExitCode != 100 || last.Lines != 3 || last.Success || last.Error != "exit status 100" {
		t.Errorf("fields not preserved: %+v", last)
	}
	if last.ID != entry.ID {
		t.Errorf("ID = %q, want %q", last.ID, entry.ID)
	}
}
