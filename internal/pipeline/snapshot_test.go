package pipeline

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestTakeSnapshot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.jpg"), "")
	writeFile(t, filepath.Join(dir, "a.jpg"), "")
	writeFile(t, filepath.Join(dir, "C.png"), "")
	if err := os.Mkdir(filepath.Join(dir, "nested.jpg"), 0o755); err != nil {
		t.Fatal(err)
	}

	snap, err := TakeSnapshot(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names := snap.Names()
	want := []string{"C.png", "a.jpg", "b.jpg"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("name %d = %s, want %s", i, names[i], want[i])
		}
	}
	if snap.Has("nested.jpg") {
		t.Error("expected subdirectories to be ignored")
	}
	if !snap.Has("a.jpg") || snap.Has("A.jpg") {
		t.Error("expected exact, case-sensitive lookups")
	}
}

func TestTakeSnapshotIsStable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.jpg"), "")

	snap, err := TakeSnapshot(dir)
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "b.jpg"), "")

	if snap.Len() != 1 || snap.Has("b.jpg") {
		t.Error("expected snapshot not to see files created afterwards")
	}
}

func TestTakeSnapshotMissing(t *testing.T) {
	_, err := TakeSnapshot(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestCleanup(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	t.Run("removes only reference names", func(t *testing.T) {
		out := t.TempDir()
		writeFile(t, filepath.Join(out, "Jane.Doe.jpg"), "")
		writeFile(t, filepath.Join(out, "John.Smith.jpg"), "")
		ref := NewSnapshot("ref", []string{"Jane.Doe.jpg", "Someone.Else.jpg"})

		removed, err := Cleanup(out, ref, false, logger)
		if err != nil {
			t.Fatal(err)
		}
		if removed != 1 {
			t.Errorf("expected 1 removed, got %d", removed)
		}
		if names := listDir(t, out); len(names) != 1 || names[0] != "John.Smith.jpg" {
			t.Errorf("unexpected remaining files: %v", names)
		}
	})

	t.Run("empty reference does nothing", func(t *testing.T) {
		out := t.TempDir()
		writeFile(t, filepath.Join(out, "Jane.Doe.jpg"), "")

		removed, err := Cleanup(out, NewSnapshot("ref", nil), false, logger)
		if err != nil || removed != 0 {
			t.Errorf("expected no-op, got %d, %v", removed, err)
		}
	})

	t.Run("missing output does nothing", func(t *testing.T) {
		ref := NewSnapshot("ref", []string{"Jane.Doe.jpg"})
		removed, err := Cleanup(filepath.Join(t.TempDir(), "missing"), ref, false, logger)
		if err != nil || removed != 0 {
			t.Errorf("expected no-op, got %d, %v", removed, err)
		}
	})

	t.Run("dry run keeps files", func(t *testing.T) {
		out := t.TempDir()
		writeFile(t, filepath.Join(out, "Jane.Doe.jpg"), "")
		ref := NewSnapshot("ref", []string{"Jane.Doe.jpg"})

		removed, err := Cleanup(out, ref, true, logger)
		if err != nil {
			t.Fatal(err)
		}
		if removed != 1 {
			t.Errorf("expected 1 counted, got %d", removed)
		}
		if len(listDir(t, out)) != 1 {
			t.Error("expected dry run to keep the file")
		}
	})
}
