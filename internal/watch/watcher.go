// Package watch reconciles the note index with changes made to the note
// directory by other processes.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for a burst of events to
// settle before reconciling.
const DefaultDebounce = 200 * time.Millisecond

// Reconciler brings the index back in line with the directory.
type Reconciler interface {
	Reconcile(ctx context.Context) (bool, error)
}

// Watch starts an fsnotify watcher on dir and calls r.Reconcile after each
// burst of note file changes until ctx is cancelled. Only files carrying ext
// are considered; hidden files (including the store's own temp files) are
// ignored.
//
// The store's own atomic writes also produce events. Reconcile is expected
// to be a no-op when the index already matches the directory.
func Watch(ctx context.Context, dir, ext string, debounce time.Duration, r Reconciler, logger *slog.Logger) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("dir", dir))

	var timer *time.Timer
	var timerCh <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			timerCh = timer.C
		} else {
			timer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-timerCh:
			reloaded, err := r.Reconcile(ctx)
			if err != nil {
				logger.Warn("watcher: reconcile failed", slog.String("error", err.Error()))
			} else if reloaded {
				logger.Debug("watcher: index reloaded")
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(ev, ext) {
				continue
			}
			logger.Debug("watcher: change",
				slog.String("file", filepath.Base(ev.Name)),
				slog.String("op", ev.Op.String()))
			schedule()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// relevant reports whether ev can change the set of notes on disk.
func relevant(ev fsnotify.Event, ext string) bool {
	name := filepath.Base(ev.Name)
	if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ext) {
		return false
	}
	return ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) != 0
}
