// Package noteservice serialises access to a note store and fans each
// mutation out to the activity journal and live-update subscribers.
package noteservice

import (
	"context"
	"log/slog"
	"sync"

	"github.com/starford/pocketnotes/internal/apperr"
	"github.com/starford/pocketnotes/internal/journal"
	"github.com/starford/pocketnotes/internal/models"
	"github.com/starford/pocketnotes/internal/notestore"
	"github.com/starford/pocketnotes/internal/preview"
)

// Journal records note activity.
type Journal interface {
	Record(ev models.ActivityEvent) (models.ActivityEvent, error)
	Recent(limit int) ([]models.ActivityEvent, error)
	Since(after int64, limit int) ([]models.ActivityEvent, error)
}

// Publisher receives note change notifications.
type Publisher interface {
	PublishNoteEvent(kind, filename string)
}

// Option configures a Service.
type Option func(*Service)

// WithJournal records every mutation to j.
func WithJournal(j Journal) Option {
	return func(s *Service) { s.journal = j }
}

// WithPublisher notifies p after every mutation.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.pub = p }
}

// WithLogger sets the logger for journal failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// Service is safe for concurrent use.
type Service struct {
	mu      sync.Mutex
	store   *notestore.Store
	journal Journal
	pub     Publisher
	logger  *slog.Logger
}

// NewService wraps store. The service takes over exclusive use of it.
func NewService(store *notestore.Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the current note list.
func (s *Service) List(_ context.Context) []models.NoteSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.List()
}

// Count returns the number of notes.
func (s *Service) Count(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Len()
}

// Read returns a note's content ("" on any error).
func (s *Service) Read(_ context.Context, filename string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Read(filename)
}

// GenerateFilename reserves nothing; see notestore.Store.GenerateFilename.
func (s *Service) GenerateFilename(_ context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.GenerateFilename()
}

// Save stores text under filename; empty text deletes the note.
func (s *Service) Save(_ context.Context, filename, text string) ([]models.NoteSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(filename, text)
}

func (s *Service) save(filename, text string) ([]models.NoteSummary, error) {
	existed := s.store.Contains(filename)
	list, err := s.store.Save(filename, text)
	if err != nil {
		return list, err
	}
	switch {
	case text != "":
		s.notify(journal.KindSaved, filename, preview.Title(text))
	case existed:
		s.notify(journal.KindDeleted, filename, "")
	}
	return list, nil
}

// Create saves text under a freshly generated filename and returns it.
// Empty text creates nothing.
func (s *Service) Create(_ context.Context, text string) (string, []models.NoteSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	filename := s.store.GenerateFilename()
	list, err := s.save(filename, text)
	return filename, list, err
}

// Delete removes a note. Missing notes are not an error.
func (s *Service) Delete(_ context.Context, filename string) ([]models.NoteSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existed := s.store.Contains(filename)
	list, err := s.store.Delete(filename)
	if err != nil {
		return list, err
	}
	if existed {
		s.notify(journal.KindDeleted, filename, "")
	}
	return list, nil
}

// Share returns the text to hand to an outbound share target, together with
// the note title for use as a subject line.
func (s *Service) Share(_ context.Context, filename string) (title, text string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, err = s.store.Read(filename)
	if err != nil {
		return "", "", err
	}
	return preview.Title(text), text, nil
}

// Reload rebuilds the index from disk.
func (s *Service) Reload(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.store.Reload()
	if rebuilt(err) {
		s.notify(journal.KindReloaded, "", "")
	}
	return err
}

// Reconcile reloads the index only when the directory changed behind the
// store's back. It reports whether the index was rebuilt.
func (s *Service) Reconcile(_ context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.store.Stale() {
		return false, nil
	}
	err := s.store.Reload()
	if !rebuilt(err) {
		return false, err
	}
	s.notify(journal.KindReloaded, "", "")
	return true, err
}

// rebuilt reports whether a store reload produced a fresh index. A note
// without a readable creation date is still indexed.
func rebuilt(err error) bool {
	return err == nil || apperr.KindOf(err) == apperr.KindAttributeReadFailed
}

// Available reports whether the notes directory is usable.
func (s *Service) Available(_ context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Available()
}

// Activity returns the most recent journal entries.
func (s *Service) Activity(_ context.Context, limit int) ([]models.ActivityEvent, error) {
	if s.journal == nil {
		return []models.ActivityEvent{}, nil
	}
	return s.journal.Recent(limit)
}

// ActivitySince returns journal entries with an ID greater than after,
// oldest first, for clients catching up after a disconnect.
func (s *Service) ActivitySince(_ context.Context, after int64, limit int) ([]models.ActivityEvent, error) {
	if s.journal == nil {
		return []models.ActivityEvent{}, nil
	}
	return s.journal.Since(after, limit)
}

// notify must be called with mu held.
func (s *Service) notify(kind, filename, title string) {
	if s.journal != nil {
		if _, err := s.journal.Record(models.ActivityEvent{Kind: kind, Filename: filename, Title: title}); err != nil {
			s.logger.Warn("noteservice: journal record failed",
				slog.String("kind", kind),
				slog.String("filename", filename),
				slog.String("error", err.Error()))
		}
	}
	if s.pub != nil {
		s.pub.PublishNoteEvent(kind, filename)
	}
}
