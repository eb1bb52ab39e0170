package journal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"waymark/internal/ports"
)

// Watch streams an event whenever the canonical journal file changes,
// including replacements by another process. Callers should drain the
// channel; it is closed once ctx is done or the watcher fails.
func (j *Journal) Watch(ctx context.Context) (<-chan ports.JournalEvent, error) {
	dir := filepath.Dir(j.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("journal: ensure dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("journal: create watcher: %w", err)
	}
	// Watch the directory, not the file: atomic saves replace the file
	// by rename, which would silently detach a file-level watch.
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("journal: watch %s: %w", dir, err)
	}

	events := make(chan ports.JournalEvent, 8)

	go func() {
		defer close(events)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Name != j.path {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				select {
				case events <- ports.JournalEvent{}:
				default:
					// Receiver is behind; one pending event is enough.
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				j.log.Warn("journal watch error", "err", err)
			}
		}
	}()

	return events, nil
}
