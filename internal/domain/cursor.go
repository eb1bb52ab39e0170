package domain

// Cursor is the navigation position inside one mark list: Staging when
// no element is active, otherwise a 1-based index. Both mark lists use
// the same state machine; they only differ in which end of the slice
// holds the newest mark, so every transition takes the list's order.
type Cursor int

// Staging means "not currently positioned within this list".
const Staging Cursor = -1

// Order describes how a mark list is laid out in time.
type Order int

const (
	OldestFirst Order = iota // automark list
	NewestFirst              // bookmark list
)

// IsStaging reports whether the cursor has no active position.
func (c Cursor) IsStaging() bool {
	return c == Staging
}

// Prev steps one element toward older. From Staging it enters at the
// newest element. Wraps past the oldest element when the list has more
// than one entry; a single-element list always resolves to 1.
func (c Cursor) Prev(n int, order Order) Cursor {
	if n <= 0 {
		return Staging
	}
	if n == 1 {
		return 1
	}
	switch order {
	case NewestFirst:
		// Older lives at higher indexes.
		if c.IsStaging() {
			return 1
		}
		if c >= Cursor(n) {
			return 1
		}
		return c + 1
	default:
		// Older lives at lower indexes.
		if c.IsStaging() {
			return Cursor(n)
		}
		if c <= 1 {
			return Cursor(n)
		}
		return c - 1
	}
}

// Next steps one element toward newer. From Staging it enters at the
// oldest element. Wraparound mirrors Prev.
func (c Cursor) Next(n int, order Order) Cursor {
	if n <= 0 {
		return Staging
	}
	if n == 1 {
		return 1
	}
	switch order {
	case NewestFirst:
		if c.IsStaging() {
			return Cursor(n)
		}
		if c <= 1 {
			return Cursor(n)
		}
		return c - 1
	default:
		if c.IsStaging() {
			return 1
		}
		if c >= Cursor(n) {
			return 1
		}
		return c + 1
	}
}

// ClampAfterRemoval resets a cursor that points past the shrunken list.
func (c Cursor) ClampAfterRemoval(n int) Cursor {
	if c.IsStaging() || int(c) > n {
		return Staging
	}
	return c
}
