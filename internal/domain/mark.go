package domain

import "slices"

// MarkKind distinguishes the two mark lists in merged views.
type MarkKind int

const (
	KindAutoMark MarkKind = iota
	KindBookmark
)

func (k MarkKind) String() string {
	switch k {
	case KindAutoMark:
		return "automark"
	case KindBookmark:
		return "bookmark"
	default:
		return "unknown"
	}
}

// AnchorRef is an opaque handle to a host-managed position anchor.
// Zero means the mark has no live anchor and its stored row is the
// last known position.
type AnchorRef int64

// AutoMark is a session-only, heuristically recorded position.
// It is never persisted. The automark list is kept oldest-first.
type AutoMark struct {
	ID     int64
	File   string // absolute path
	Row    int    // 1-based
	Col    int    // 1-based
	Stamp  int64  // session-relative milliseconds
	Win    int    // host window context at record time
	Tab    int    // host tab context at record time
	Anchor AnchorRef
}

// Bookmark is a user-placed, persistent position.
// The bookmark list is kept newest-first.
type Bookmark struct {
	ID     int64
	File   string
	Row    int
	Col    int
	Stamp  int64 // wall-clock epoch seconds
	Anchor AnchorRef
}

// MergedMark is a derived entry in the unified chronological view
// spanning both mark kinds. It is rebuilt on every navigation request
// and never stored.
type MergedMark struct {
	ID       int64
	File     string
	Row      int
	Col      int
	SortTime float64 // epoch seconds
	Kind     MarkKind
	Win      int // automark entries only
	Tab      int
}

// SortMerged orders marks ascending by sort time, breaking ties by ID.
// IDs are assigned monotonically, so the tie-break is deterministic
// even when two marks share a timestamp.
func SortMerged(marks []MergedMark) {
	slices.SortFunc(marks, func(a, b MergedMark) int {
		if a.SortTime < b.SortTime {
			return -1
		}
		if a.SortTime > b.SortTime {
			return 1
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
}
