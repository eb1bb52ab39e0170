package ports

import "waymark/internal/domain"

// Host is the editor-side collaborator the mark engine runs against.
// The engine never edits text itself: it asks the host for anchors that
// stay attached to a line as edits occur, reads them back before using
// a stored row, and delegates view movement to Jump.
type Host interface {
	// PlaceAnchor attaches a live anchor at (file, row). Best-effort:
	// ok is false when the target buffer is not currently loaded, in
	// which case the mark keeps its stored row as last known position.
	PlaceAnchor(file string, row int) (ref domain.AnchorRef, ok bool)

	// ReleaseAnchor frees a previously placed anchor. Zero refs are ignored.
	ReleaseAnchor(ref domain.AnchorRef)

	// AnchorRow reads an anchor's current row. ok is false when the
	// anchor is unknown or its buffer is gone.
	AnchorRow(ref domain.AnchorRef) (row int, ok bool)

	// Jump moves the view to (file, row, col). win and tab are hints
	// from the mark's recorded context; hosts without window or tab
	// notions ignore them.
	Jump(file string, row, col, win, tab int) error

	// Context returns the host's current window and tab identifiers.
	Context() (win, tab int)

	FileExists(path string) bool
	IsDir(path string) bool
}

// IgnorePolicy decides which files never receive automarks. The engine
// treats it as opaque.
type IgnorePolicy interface {
	Ignored(file string) bool
}
