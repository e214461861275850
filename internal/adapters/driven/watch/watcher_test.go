package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	w := New("/tmp/foodshare.db", 0)
	require.NotNil(t, w)
	assert.Equal(t, DefaultInterval, w.interval)

	w = New("/tmp/foodshare.db", time.Second)
	assert.Equal(t, time.Second, w.interval)
}

func TestWatcher_Watch(t *testing.T) {
	t.Run("notifies on database write", func(t *testing.T) {
		dir := t.TempDir()
		dbPath := filepath.Join(dir, "foodshare.db")
		require.NoError(t, os.WriteFile(dbPath, []byte("initial"), 0600))

		w := New(dbPath, 10*time.Millisecond)
		defer w.Close()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := w.Watch(ctx)
		require.NoError(t, err)

		go func() {
			time.Sleep(50 * time.Millisecond)
			_ = os.WriteFile(dbPath+"-wal", []byte("frame"), 0600)
		}()

		select {
		case _, ok := <-changes:
			assert.True(t, ok)
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for change notification")
		}
	})

	t.Run("ignores unrelated files", func(t *testing.T) {
		dir := t.TempDir()
		dbPath := filepath.Join(dir, "foodshare.db")

		w := New(dbPath, 10*time.Millisecond)
		defer w.Close()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := w.Watch(ctx)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0600))

		select {
		case <-changes:
			t.Fatal("unexpected notification for unrelated file")
		case <-time.After(200 * time.Millisecond):
		}
	})

	t.Run("coalesces bursts", func(t *testing.T) {
		dir := t.TempDir()
		dbPath := filepath.Join(dir, "foodshare.db")

		w := New(dbPath, time.Hour)
		defer w.Close()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := w.Watch(ctx)
		require.NoError(t, err)

		for i := 0; i < 10; i++ {
			require.NoError(t, os.WriteFile(dbPath, []byte{byte(i)}, 0600))
		}

		select {
		case <-changes:
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for first notification")
		}

		select {
		case <-changes:
			t.Fatal("burst should produce one notification per interval")
		case <-time.After(200 * time.Millisecond):
		}
	})

	t.Run("closes channel when context is cancelled", func(t *testing.T) {
		w := New(filepath.Join(t.TempDir(), "foodshare.db"), 0)
		defer w.Close()
		ctx, cancel := context.WithCancel(context.Background())

		changes, err := w.Watch(ctx)
		require.NoError(t, err)
		cancel()

		select {
		case _, ok := <-changes:
			if ok {
				for range changes {
				}
			}
		case <-time.After(time.Second):
			t.Fatal("channel did not close after context cancellation")
		}
	})

	t.Run("returns error for missing directory", func(t *testing.T) {
		w := New("/non/existent/path/foodshare.db", 0)

		changes, err := w.Watch(context.Background())
		assert.Error(t, err)
		assert.Nil(t, changes)
	})

	t.Run("returns error when closed", func(t *testing.T) {
		w := New(filepath.Join(t.TempDir(), "foodshare.db"), 0)
		require.NoError(t, w.Close())

		changes, err := w.Watch(context.Background())
		assert.ErrorIs(t, err, ErrClosed)
		assert.Nil(t, changes)
	})

	t.Run("rejects a second watch", func(t *testing.T) {
		w := New(filepath.Join(t.TempDir(), "foodshare.db"), 0)
		defer w.Close()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		_, err := w.Watch(ctx)
		require.NoError(t, err)
		_, err = w.Watch(ctx)
		assert.Error(t, err)
	})
}

func TestWatcher_Close_Idempotent(t *testing.T) {
	w := New("/tmp/foodshare.db", 0)

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestHandleFsEvent(t *testing.T) {
	dbPath := filepath.Join("/data", "foodshare.db")
	w := New(dbPath, 0)

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write db", fsnotify.Event{Name: dbPath, Op: fsnotify.Write}, true},
		{"create wal", fsnotify.Event{Name: dbPath + "-wal", Op: fsnotify.Create}, true},
		{"write journal", fsnotify.Event{Name: dbPath + "-journal", Op: fsnotify.Write}, true},
		{"write and chmod", fsnotify.Event{Name: dbPath, Op: fsnotify.Write | fsnotify.Chmod}, true},
		{"chmod only", fsnotify.Event{Name: dbPath, Op: fsnotify.Chmod}, false},
		{"remove wal", fsnotify.Event{Name: dbPath + "-wal", Op: fsnotify.Remove}, false},
		{"shm file", fsnotify.Event{Name: dbPath + "-shm", Op: fsnotify.Write}, false},
		{"other file", fsnotify.Event{Name: "/data/other.db", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.handleFsEvent(tt.event))
		})
	}
}
