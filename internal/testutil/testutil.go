// Package testutil provides shared test helpers for setting up note
// directories and journals.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/pocketnotes/internal/journal"
	"github.com/starford/pocketnotes/internal/notestore"
)

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestJournal creates a temporary SQLite journal that is automatically cleaned up.
func TestJournal(t *testing.T) *journal.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "pocketnotes-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := journal.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestStore opens a note store on a fresh temporary directory and returns it
// with the directory path.
func TestStore(t *testing.T, opts ...notestore.Option) (*notestore.Store, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "Notes")
	store, err := notestore.Open(dir, append([]notestore.Option{notestore.WithLogger(Logger())}, opts...)...)
	if err != nil {
		t.Fatal(err)
	}
	return store, dir
}
