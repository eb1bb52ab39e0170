// Package host provides the headless ports.Host used by the CLI, TUI,
// and MCP processes. There are no live buffers outside an editor, so
// anchor placement is a no-op and marks navigate by their stored rows;
// jumps open the file in $EDITOR at the recorded line.
package host

import (
	"errors"
	"os"

	"waymark/internal/adapters/editor"
	"waymark/internal/domain"
)

// Headless implements ports.Host against the plain filesystem.
type Headless struct {
	opener *editor.Opener
}

// NewHeadless creates a headless host. opener may be nil for processes
// that never jump (e.g. the MCP server).
func NewHeadless(opener *editor.Opener) *Headless {
	return &Headless{opener: opener}
}

// PlaceAnchor always declines: no buffer is loaded to anchor into.
func (h *Headless) PlaceAnchor(string, int) (domain.AnchorRef, bool) {
	return 0, false
}

// ReleaseAnchor is a no-op.
func (h *Headless) ReleaseAnchor(domain.AnchorRef) {}

// AnchorRow always declines; stored rows are used as last known.
func (h *Headless) AnchorRow(domain.AnchorRef) (int, bool) {
	return 0, false
}

// Jump opens the file at the given row in the user's editor. Window
// and tab hints have no meaning here and are ignored.
func (h *Headless) Jump(file string, row, _ int, _, _ int) error {
	if h.opener == nil {
		return errors.New("no editor available")
	}
	if _, err := os.Stat(file); err != nil {
		return err
	}
	return h.opener.OpenAt(file, row)
}

// Context reports a single fixed window and tab.
func (h *Headless) Context() (int, int) {
	return 1, 1
}

// FileExists reports whether path names a readable file.
func (h *Headless) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// IsDir reports whether path names a directory.
func (h *Headless) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
