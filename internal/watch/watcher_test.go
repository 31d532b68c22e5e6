package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/pocketnotes/internal/noteservice"
	"github.com/starford/pocketnotes/internal/notestore"
	"github.com/starford/pocketnotes/internal/testutil"
)

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func startWatcher(t *testing.T) (*noteservice.Service, string) {
	t.Helper()
	store, dir := testutil.TestStore(t)
	svc := noteservice.NewService(store, noteservice.WithLogger(testutil.Logger()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = Watch(ctx, dir, notestore.Extension, 20*time.Millisecond, svc, testutil.Logger())
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	// Give the watcher time to register.
	time.Sleep(50 * time.Millisecond)
	return svc, dir
}

func TestWatcher_ExternalFilePickedUp(t *testing.T) {
	svc, dir := startWatcher(t)
	ctx := context.Background()

	if err := os.WriteFile(filepath.Join(dir, "EXTERNAL.txt"), []byte("Hello\nfrom outside"), 0o644); err != nil {
		t.Fatal(err)
	}
	eventually(t, 2*time.Second, 20*time.Millisecond, func() bool {
		return svc.Count(ctx) == 1
	}, "external note was not indexed")
}

func TestWatcher_ExternalRemovalDropped(t *testing.T) {
	svc, dir := startWatcher(t)
	ctx := context.Background()

	name, _, err := svc.Create(ctx, "short lived")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(dir, name)); err != nil {
		t.Fatal(err)
	}
	eventually(t, 2*time.Second, 20*time.Millisecond, func() bool {
		return svc.Count(ctx) == 0
	}, "removed note still indexed")
}

func TestWatcher_OwnSavesKeepOrder(t *testing.T) {
	svc, _ := startWatcher(t)
	ctx := context.Background()

	a, _, _ := svc.Create(ctx, "A")
	b, _, _ := svc.Create(ctx, "B")
	_, _ = svc.Save(ctx, a, "A again")

	time.Sleep(150 * time.Millisecond)
	list := svc.List(ctx)
	if len(list) != 2 || list[0].Filename != a || list[1].Filename != b {
		t.Errorf("order changed after own saves: %+v", list)
	}
}

func TestRelevant(t *testing.T) {
	cases := []struct {
		ev   fsnotify.Event
		want bool
	}{
		{fsnotify.Event{Name: "/n/A.txt", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "/n/A.txt", Op: fsnotify.Remove}, true},
		{fsnotify.Event{Name: "/n/A.txt", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/n/.pocketnotes-tmp-123", Op: fsnotify.Create}, false},
		{fsnotify.Event{Name: "/n/image.png", Op: fsnotify.Create}, false},
	}
	for _, tc := range cases {
		if got := relevant(tc.ev, ".txt"); got != tc.want {
			t.Errorf("relevant(%v) = %v, want %v", tc.ev, got, tc.want)
		}
	}
}
