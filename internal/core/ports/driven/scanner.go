package driven

import "context"

// Scanner lists candidate document files under a root directory.
// The returned order is deterministic; it defines the file ordering
// of search results.
type Scanner interface {
	// Scan walks root recursively and returns the paths of supported
	// document files in a stable order.
	Scan(ctx context.Context, root string) ([]string, error)
}

// Watcher reports changes to supported documents under a root, so a
// caller can flag an in-memory result set as possibly stale.
type Watcher interface {
	// Watch starts watching root and returns a channel of changed
	// file paths. The channel is closed when ctx is cancelled or the
	// watcher is closed.
	Watch(ctx context.Context, root string) (<-chan string, error)

	// Close releases the watcher's resources.
	Close() error
}
