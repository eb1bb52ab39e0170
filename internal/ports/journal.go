package ports

import (
	"context"

	"waymark/internal/domain"
)

// LoadResult is what a journal read yields. MaxID lets the session
// advance its ID generator past every persisted mark so IDs are never
// reused across restarts.
type LoadResult struct {
	Bookmarks []domain.Bookmark
	MaxID     int64
}

// JournalEvent signals that the persisted journal changed outside this
// process and in-memory bookmarks should be reloaded.
type JournalEvent struct{}

// Journal persists the bookmark list. Implementations must replace the
// canonical file atomically; readers may never observe a partial write.
type Journal interface {
	// Load reads the persisted bookmarks. Missing, empty, or corrupt
	// data degrades to an empty result, never an error a caller has to
	// special-case during setup.
	Load() (LoadResult, error)

	// Schedule records the given snapshot as the pending state and
	// (re)starts the save debounce. Multiple calls within the window
	// collapse into one write.
	Schedule(marks []domain.Bookmark)

	// SaveNow cancels any pending debounced save and writes the
	// snapshot synchronously. Used at shutdown.
	SaveNow(marks []domain.Bookmark) error

	// Watch streams change events until ctx is cancelled. The channel
	// is closed when ctx is done or the watcher fails.
	Watch(ctx context.Context) (<-chan JournalEvent, error)

	// Close stops timers and performs no further writes.
	Close() error
}
