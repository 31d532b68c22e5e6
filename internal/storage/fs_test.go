package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func tempDir(t *testing.T) *FS {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestWriteAndRead(t *testing.T) {
	s := tempDir(t)
	content := []byte("Groceries\nMilk\n")
	if err := s.Write("note.txt", content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("note.txt")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestDelete(t *testing.T) {
	s := tempDir(t)
	_ = s.Write("del.txt", []byte("bye"))
	if err := s.Delete("del.txt"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Read("del.txt"); err == nil {
		t.Error("expected error reading deleted file")
	}
}

func TestDelete_MissingWrapsNotExist(t *testing.T) {
	s := tempDir(t)
	err := s.Delete("missing.txt")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

func TestEntries_SkipsHiddenAndDirs(t *testing.T) {
	s := tempDir(t)
	_ = s.Write("a.txt", []byte("a"))
	_ = s.Write("b.txt", []byte("bb"))
	_ = os.WriteFile(filepath.Join(s.root, ".hidden"), []byte("x"), 0o644)
	_ = os.Mkdir(filepath.Join(s.root, "sub"), 0o755)

	entries, err := s.Entries()
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(entries), entries)
	}
	sizes := map[string]int64{}
	for _, e := range entries {
		sizes[e.Name] = e.Size
	}
	if sizes["a.txt"] != 1 || sizes["b.txt"] != 2 {
		t.Errorf("sizes = %v", sizes)
	}
}

func TestTraversalBlocked(t *testing.T) {
	s := tempDir(t)

	cases := []string{
		"../../etc/passwd",
		"../outside.txt",
		"/etc/shadow",
		"sub/note.txt",
		"..",
		"",
	}
	for _, p := range cases {
		if _, err := s.Read(p); err == nil {
			t.Errorf("expected error for path %q", p)
		}
		if err := s.Write(p, []byte("x")); err == nil {
			t.Errorf("expected error for write to %q", p)
		}
	}
}

func TestAtomicWriteNoCorruption(t *testing.T) {
	s := tempDir(t)
	_ = s.Write("atomic.txt", []byte("original content"))

	updated := []byte("updated content")
	if err := s.Write("atomic.txt", updated); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _ := s.Read("atomic.txt")
	if string(got) != string(updated) {
		t.Errorf("expected updated content, got %q", got)
	}

	// Confirm no leftover temp files.
	matches, _ := filepath.Glob(filepath.Join(s.root, tempPattern))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestStat(t *testing.T) {
	s := tempDir(t)
	before := time.Now().Add(-time.Minute)
	_ = s.Write("t.txt", []byte("x"))

	times, err := s.Stat("t.txt")
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if times.Modified.Before(before) {
		t.Errorf("modified = %v, want after %v", times.Modified, before)
	}
	if times.Created.IsZero() {
		t.Error("created should never be zero")
	}

	mod := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := os.Chtimes(filepath.Join(s.root, "t.txt"), mod, mod); err != nil {
		t.Fatal(err)
	}
	times, _ = s.Stat("t.txt")
	if !times.Modified.Equal(mod) {
		t.Errorf("modified = %v, want %v", times.Modified, mod)
	}
}

func TestStat_Missing(t *testing.T) {
	s := tempDir(t)
	if _, err := s.Stat("nope.txt"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

func TestNewFS_NonExistentDir(t *testing.T) {
	_, err := NewFS(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Error("expected error for non-existent dir")
	}
}

func TestNewFS_FileNotDir(t *testing.T) {
	f, _ := os.CreateTemp("", "pocketnotes-test-*")
	_ = f.Close()
	defer os.Remove(f.Name())
	_, err := NewFS(f.Name())
	if err == nil {
		t.Error("expected error when root is a file")
	}
}
