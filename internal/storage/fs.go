package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const tempPattern = ".pocketnotes-tmp-*"

// FS implements Provider backed by a single local directory.
type FS struct {
	root string // absolute path to the note directory
}

// NewFS creates a new FS provider rooted at the given directory.
// The directory must already exist.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage: root is not a directory: %s", abs)
	}
	return &FS{root: abs}, nil
}

// Root returns the absolute directory path.
func (f *FS) Root() string { return f.root }

// safePath resolves a name against the root and rejects anything that is not
// a direct child of it.
func (f *FS) safePath(name string) (string, error) {
	if name == "" || name == "." || name == ".." {
		return "", fmt.Errorf("storage: invalid name: %q", name)
	}
	if filepath.IsAbs(name) || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("storage: name must not contain a path: %s", name)
	}
	abs := filepath.Join(f.root, name)
	if filepath.Dir(abs) != f.root {
		return "", fmt.Errorf("storage: name escapes root: %s", name)
	}
	return abs, nil
}

// Entries returns the visible regular files of the directory. Hidden files
// (including in-flight temp files) and subdirectories are skipped.
func (f *FS) Entries() ([]Entry, error) {
	dirEntries, err := os.ReadDir(f.root)
	if err != nil {
		return nil, fmt.Errorf("storage: read dir: %w", err)
	}
	out := make([]Entry, 0, len(dirEntries))
	for _, d := range dirEntries {
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") || !d.Type().IsRegular() {
			continue
		}
		info, err := d.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		out = append(out, Entry{Name: d.Name(), Size: info.Size()})
	}
	return out, nil
}

// Read returns the raw bytes of a note file.
func (f *FS) Read(name string) ([]byte, error) {
	abs, err := f.safePath(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", name, err)
	}
	return data, nil
}

// Write atomically writes content: tmp file → fsync → rename.
func (f *FS) Write(name string, content []byte) error {
	abs, err := f.safePath(name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.root, tempPattern)
	if err != nil {
		return fmt.Errorf("storage: create temp: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up on any failure path.
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("storage: write temp: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("storage: chmod temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("storage: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close temp: %w", err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return fmt.Errorf("storage: rename: %w", err)
	}
	success = true
	return nil
}

// Delete removes a note file. The returned error wraps os.ErrNotExist when
// the file is already gone.
func (f *FS) Delete(name string) error {
	abs, err := f.safePath(name)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		return fmt.Errorf("storage: delete %s: %w", name, err)
	}
	return nil
}

// Stat returns the creation and modification times of a note file.
func (f *FS) Stat(name string) (Times, error) {
	abs, err := f.safePath(name)
	if err != nil {
		return Times{}, err
	}
	t, err := fileTimes(abs)
	if err != nil {
		return Times{}, fmt.Errorf("storage: stat %s: %w", name, err)
	}
	return t, nil
}
