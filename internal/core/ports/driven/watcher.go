package driven

import "context"

// ChangeWatcher reports writes to the underlying database made by any process.
type ChangeWatcher interface {
	// Watch returns a channel that receives a value after each observed change.
	// The channel is closed when ctx is cancelled or the watcher is closed.
	Watch(ctx context.Context) (<-chan struct{}, error)

	// Close stops watching and releases resources.
	Close() error
}
