package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/halcyon-labs/restitch/internal/core/ports/driven"
	"github.com/halcyon-labs/restitch/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.Watcher = (*Watcher)(nil)

// Watcher reports writes to supported documents under a root via
// fsnotify. Each Watch call gets its own fsnotify handle; starting a
// new watch shuts the previous one down.
type Watcher struct {
	supports func(string) bool

	mu sync.Mutex
	fw *fsnotify.Watcher
}

// NewWatcher creates a watcher. supports filters the reported paths,
// normally the container's Supports method.
func NewWatcher(supports func(string) bool) *Watcher {
	return &Watcher{supports: supports}
}

// Watch starts watching root and every directory below it. The
// returned channel carries the paths of supported files that were
// written, created, renamed or removed; it closes when ctx is
// cancelled or the watcher is closed. A previous watch on this
// Watcher is shut down first, closing its channel.
func (w *Watcher) Watch(ctx context.Context, root string) (<-chan string, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if addErr := fw.Add(path); addErr != nil {
				logger.Warn("Watching %s: %v", path, addErr)
			}
		}
		return nil
	})
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	w.mu.Lock()
	if w.fw != nil {
		// Closing the old handle ends its run goroutine, which sees
		// the Events channel close and closes its path channel.
		w.fw.Close()
	}
	w.fw = fw
	w.mu.Unlock()

	events := make(chan string)
	go w.run(ctx, fw, events)

	logger.Debug("Watching %s", root)
	return events, nil
}

// run pumps fsnotify events into the path channel until the watcher
// shuts down. The handle is passed in so a later Watch call never
// touches the one this goroutine reads.
func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher, events chan<- string) {
	defer close(events)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			// New directories join the watch so the whole tree stays
			// covered.
			if ev.Has(fsnotify.Create) {
				if err := fw.Add(ev.Name); err == nil {
					logger.Debug("Watching new entry %s", ev.Name)
				}
			}
			if !w.relevant(ev) {
				continue
			}
			select {
			case events <- ev.Name:
			case <-ctx.Done():
				return
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("Watcher: %v", err)
		}
	}
}

// relevant filters out events for unsupported files and lock files.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}
	if strings.HasPrefix(filepath.Base(ev.Name), "~$") {
		return false
	}
	return w.supports(ev.Name)
}

// Close stops the current watch and closes its event channel.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fw == nil {
		return nil
	}
	err := w.fw.Close()
	w.fw = nil
	return err
}
