// Package watch reports changes to the SQLite database file so open
// dashboards can refresh when another process inserts a listing.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/foodshare/internal/core/ports/driven"
	"github.com/custodia-labs/foodshare/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.ChangeWatcher = (*Watcher)(nil)

// DefaultInterval is the minimum time between two change notifications.
const DefaultInterval = 500 * time.Millisecond

// ErrClosed is returned by Watch after Close.
var ErrClosed = errors.New("watch: watcher is closed")

// Watcher watches a database file and its -wal and -journal companions.
// Bursts of writes are coalesced into at most one notification per interval.
type Watcher struct {
	dbPath   string
	interval time.Duration

	mu      sync.Mutex
	closed  bool
	watcher *fsnotify.Watcher
}

// New creates a watcher for dbPath. A non-positive interval uses DefaultInterval.
func New(dbPath string, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{
		dbPath:   dbPath,
		interval: interval,
	}
}

// Watch starts watching and returns the notification channel.
// The directory is watched rather than the file, since SQLite replaces
// and truncates its companion files.
func (w *Watcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, ErrClosed
	}
	if w.watcher != nil {
		return nil, errors.New("watch: already watching")
	}

	dir := filepath.Dir(w.dbPath)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("watch: database directory %s: %w", dir, statErr(err))
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: creating watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch: adding %s: %w", dir, err)
	}
	w.watcher = fsw

	pending := make(chan struct{}, 1)
	out := make(chan struct{}, 1)

	go w.collect(ctx, fsw, pending)
	go w.emit(ctx, pending, out)

	logger.Debug("watching %s", w.dbPath)
	return out, nil
}

// collect turns relevant filesystem events into pending signals.
func (w *Watcher) collect(ctx context.Context, fsw *fsnotify.Watcher, pending chan<- struct{}) {
	defer close(pending)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !w.handleFsEvent(event) {
				continue
			}
			select {
			case pending <- struct{}{}:
			default: // A notification is already pending
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// emit forwards pending signals to out, at most once per interval.
func (w *Watcher) emit(ctx context.Context, pending <-chan struct{}, out chan<- struct{}) {
	defer close(out)
	limiter := rate.NewLimiter(rate.Every(w.interval), 1)
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-pending:
			if !ok {
				return
			}
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			select {
			case out <- struct{}{}:
			default: // Receiver has not consumed the last notification
			}
		}
	}
}

// handleFsEvent reports whether an event is a write to the database.
func (w *Watcher) handleFsEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	switch filepath.Clean(event.Name) {
	case filepath.Clean(w.dbPath),
		filepath.Clean(w.dbPath + "-wal"),
		filepath.Clean(w.dbPath + "-journal"):
		return true
	default:
		return false
	}
}

// Close stops watching. Close is idempotent.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}

func statErr(err error) error {
	if err != nil {
		return err
	}
	return errors.New("not a directory")
}
