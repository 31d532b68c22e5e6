// Package notestore keeps a directory of plain-text note files and an
// in-memory index of their filenames, newest first.
//
// A Store is not safe for concurrent use. Callers that share one between
// goroutines must serialise access themselves.
package notestore

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/starford/pocketnotes/internal/apperr"
	"github.com/starford/pocketnotes/internal/models"
	"github.com/starford/pocketnotes/internal/preview"
	"github.com/starford/pocketnotes/internal/storage"
)

// Extension is appended to every generated filename.
const Extension = ".txt"

// Store owns a note directory and the ordered index mirroring it.
type Store struct {
	dir    string
	fs     storage.Provider // nil while the directory is unavailable
	index  []string
	logger *slog.Logger
	now    func() time.Time
	mkfs   func(dir string) (storage.Provider, error)
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the time source used for display dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open creates dir (with parents) if needed and loads the index from it.
// The returned Store is always usable: when the directory cannot be created
// or read it is empty and every mutation reports DirectoryUnavailable until
// a later Reload succeeds.
func Open(dir string, opts ...Option) (*Store, error) {
	s := &Store{
		dir:    dir,
		logger: slog.Default(),
		now:    time.Now,
		mkfs:   openDir,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, s.Reload()
}

func openDir(dir string) (storage.Provider, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create notes dir: %w", err)
	}
	return storage.NewFS(dir)
}

// Reload re-attaches the directory and rebuilds the index from disk.
func (s *Store) Reload() error {
	if s.fs == nil {
		p, err := s.mkfs(s.dir)
		if err != nil {
			s.index = nil
			s.logger.Error("notestore: notes directory unavailable",
				slog.String("dir", s.dir),
				slog.String("error", err.Error()))
			return apperr.New(apperr.KindDirectoryUnavailable, "open", "", err)
		}
		s.fs = p
	}
	return s.load()
}

type candidate struct {
	name    string
	created time.Time
}

// load lists the directory and orders note files by creation time,
// newest first. Empty files are not notes. A note whose creation date cannot
// be read is kept at the end of the index and reported as
// AttributeReadFailed once the index is complete.
func (s *Store) load() error {
	entries, err := s.fs.Entries()
	if err != nil {
		s.index = nil
		s.fs = nil
		s.logger.Error("notestore: list notes directory failed",
			slog.String("dir", s.dir),
			slog.String("error", err.Error()))
		return apperr.New(apperr.KindDirectoryUnavailable, "load", "", err)
	}

	var attrErr error
	notes := make([]candidate, 0, len(entries))
	for _, e := range entries {
		if e.Size == 0 || validName(e.Name) != nil {
			continue
		}
		times, err := s.fs.Stat(e.Name)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			// Still a note; with no creation date it sorts last.
			s.logger.Warn("notestore: read creation date failed",
				slog.String("filename", e.Name),
				slog.String("error", err.Error()))
			if attrErr == nil {
				attrErr = apperr.New(apperr.KindAttributeReadFailed, "load", e.Name, err)
			}
			times = storage.Times{}
		}
		notes = append(notes, candidate{name: e.Name, created: times.Created})
	}

	slices.SortFunc(notes, func(a, b candidate) int {
		if c := b.created.Compare(a.created); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})

	s.index = make([]string, len(notes))
	for i, n := range notes {
		s.index[i] = n.name
	}
	s.logger.Debug("notestore: index loaded",
		slog.String("dir", s.dir),
		slog.Int("notes", len(s.index)))
	return attrErr
}

// Stale reports whether the set of note files on disk no longer matches the
// index, for example after another process added or removed a file.
func (s *Store) Stale() bool {
	if s.fs == nil {
		return true
	}
	entries, err := s.fs.Entries()
	if err != nil {
		return true
	}
	onDisk := 0
	for _, e := range entries {
		if e.Size == 0 || validName(e.Name) != nil {
			continue
		}
		if !slices.Contains(s.index, e.Name) {
			return true
		}
		onDisk++
	}
	return onDisk != len(s.index)
}

// Dir returns the directory the store was opened on.
func (s *Store) Dir() string { return s.dir }

// Available reports whether the directory is attached.
func (s *Store) Available() bool { return s.fs != nil }

// Len returns the number of indexed notes.
func (s *Store) Len() int { return len(s.index) }

// Filenames returns a copy of the index.
func (s *Store) Filenames() []string { return slices.Clone(s.index) }

// Contains reports whether name is in the index.
func (s *Store) Contains(name string) bool { return slices.Contains(s.index, name) }

// GenerateFilename returns a fresh filename for a note that has not been
// saved yet. Nothing is created until Save is called with non-empty text.
func (s *Store) GenerateFilename() string {
	return strings.ToUpper(uuid.NewString()) + Extension
}

// List derives a summary for every indexed note, in index order.
// Nothing is cached between calls.
func (s *Store) List() []models.NoteSummary {
	out := make([]models.NoteSummary, 0, len(s.index))
	if s.fs == nil {
		return out
	}
	now := s.now()
	for _, name := range s.index {
		content, _ := s.Read(name)
		var modified time.Time
		if times, err := s.fs.Stat(name); err != nil {
			s.logger.Warn("notestore: read modification date failed",
				slog.String("filename", name),
				slog.String("error", err.Error()))
		} else {
			modified = times.Modified
		}
		f := preview.Derive(content, modified, now)
		out = append(out, models.NoteSummary{
			Filename:    name,
			Title:       f.Title,
			Subtitle:    f.Subtitle,
			DisplayDate: f.DisplayDate,
			ModifiedAt:  modified,
		})
	}
	return out
}

// Read returns the content of the named note. The string is empty whenever
// the error is non-nil.
func (s *Store) Read(name string) (string, error) {
	if err := validName(name); err != nil {
		return "", apperr.New(apperr.KindInvalidFilename, "read", name, err)
	}
	if s.fs == nil {
		return "", apperr.New(apperr.KindDirectoryUnavailable, "read", name, nil)
	}
	data, err := s.fs.Read(name)
	if err != nil {
		s.logger.Warn("notestore: read failed",
			slog.String("filename", name),
			slog.String("error", err.Error()))
		return "", apperr.New(apperr.KindFileReadFailed, "read", name, err)
	}
	return string(data), nil
}

// Save stores text under name and moves the note to the front of the index.
// Empty text deletes the note instead. The returned list is always the
// current one, including when err is non-nil.
func (s *Store) Save(name, text string) ([]models.NoteSummary, error) {
	if err := validName(name); err != nil {
		return s.List(), apperr.New(apperr.KindInvalidFilename, "save", name, err)
	}
	if s.fs == nil {
		return s.List(), apperr.New(apperr.KindDirectoryUnavailable, "save", name, nil)
	}

	pos := s.remove(name)

	if text == "" {
		if err := s.deleteFile(name); err != nil {
			s.restore(pos, name)
			return s.List(), apperr.New(apperr.KindFileDeleteFailed, "save", name, err)
		}
		return s.List(), nil
	}

	if err := s.fs.Write(name, []byte(text)); err != nil {
		s.logger.Error("notestore: write failed",
			slog.String("filename", name),
			slog.String("error", err.Error()))
		s.restore(pos, name)
		return s.List(), apperr.New(apperr.KindFileWriteFailed, "save", name, err)
	}
	s.index = slices.Insert(s.index, 0, name)
	s.logger.Debug("notestore: saved", slog.String("filename", name), slog.Int("bytes", len(text)))
	return s.List(), nil
}

// Delete removes the named note from disk and from the index. Deleting a
// note that does not exist is not an error.
func (s *Store) Delete(name string) ([]models.NoteSummary, error) {
	if err := validName(name); err != nil {
		return s.List(), apperr.New(apperr.KindInvalidFilename, "delete", name, err)
	}
	if s.fs == nil {
		return s.List(), apperr.New(apperr.KindDirectoryUnavailable, "delete", name, nil)
	}

	pos := s.remove(name)
	if err := s.deleteFile(name); err != nil {
		s.restore(pos, name)
		return s.List(), apperr.New(apperr.KindFileDeleteFailed, "delete", name, err)
	}
	return s.List(), nil
}

// deleteFile removes a note file; a file that is already gone is fine.
func (s *Store) deleteFile(name string) error {
	err := s.fs.Delete(name)
	switch {
	case err == nil:
		s.logger.Debug("notestore: deleted", slog.String("filename", name))
		return nil
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		s.logger.Error("notestore: delete failed",
			slog.String("filename", name),
			slog.String("error", err.Error()))
		return err
	}
}

// remove drops name from the index and returns its former position, or -1.
func (s *Store) remove(name string) int {
	i := slices.Index(s.index, name)
	if i >= 0 {
		s.index = slices.Delete(s.index, i, i+1)
	}
	return i
}

// restore puts name back at pos after a failed mutation left its file on disk.
func (s *Store) restore(pos int, name string) {
	if pos < 0 {
		return
	}
	s.index = slices.Insert(s.index, min(pos, len(s.index)), name)
}

// validName accepts plain, visible file names carrying the note extension.
func validName(name string) error {
	switch {
	case name == "":
		return errors.New("empty filename")
	case strings.ContainsAny(name, `/\`) || name == "." || name == "..":
		return errors.New("filename must not contain a path")
	case strings.HasPrefix(name, "."):
		return errors.New("filename must not be hidden")
	case !strings.HasSuffix(name, Extension) || len(name) == len(Extension):
		return fmt.Errorf("filename must end in %s", Extension)
	}
	return nil
}
