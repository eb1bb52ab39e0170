package application

import (
	"waymark/internal/domain"
)

// direction of a navigation step along the time axis.
type direction int

const (
	older direction = iota
	newer
)

// Tracker records and navigates automarks: the session-only marks
// placed heuristically as the user moves between positions.
type Tracker struct {
	s *Session
}

// shouldRecord decides whether a movement to (file, row) warrants a new
// automark, given the last recorded position. Forced requests skip the
// distance heuristics but still refuse an exactly unchanged position;
// the caller then falls back to a timestamp refresh. Caller holds mu.
func (t *Tracker) shouldRecord(file string, row int, forced bool) bool {
	s := t.s
	if forced {
		return file != s.lastFile || row != s.lastRow
	}
	if file != s.lastFile {
		return true
	}
	dist := abs(row - s.lastRow)
	if dist >= s.cfg.MinLines {
		return true
	}
	if s.clock.NowMono()-s.lastStamp >= int64(s.cfg.MinIntervalMS) && dist >= 1 {
		return true
	}
	return false
}

// Add records an automark at (file, row, col) if the heuristics agree.
// Called on idle timeouts, mode changes, and jump events; forced is set
// for explicit requests.
func (t *Tracker) Add(file string, row, col int, forced bool) {
	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()

	// A jump in progress must not leave automarks behind.
	if file == "" || s.navigating {
		return
	}
	if s.ignore != nil && s.ignore.Ignored(file) {
		return
	}

	now := s.clock.NowMono()
	if !t.shouldRecord(file, row, forced) {
		if !forced {
			return
		}
		// Forced at the unchanged position: refresh whatever mark
		// already sits there instead of duplicating it.
		for i := range s.autos {
			if s.autos[i].File == file && s.autos[i].Row == row {
				s.autos[i].Stamp = now
			}
		}
		for i := range s.books {
			if s.books[i].File == file && s.books[i].Row == row {
				s.books[i].Stamp = s.clock.NowEpoch()
				s.scheduleSave()
			}
		}
		s.autoCursor = domain.Staging
		return
	}

	// Bookmark-line guard. Must run before cleanup: otherwise cleanup
	// could delete a nearby automark that never gets replaced, or the
	// new automark would shadow a bookmark's line.
	for i := range s.books {
		if s.books[i].File != file {
			continue
		}
		s.syncBookRow(&s.books[i])
		if s.books[i].Row == row {
			if forced {
				s.books[i].Stamp = s.clock.NowEpoch()
				s.scheduleSave()
			}
			return
		}
	}

	// Proximity cleanup, newest to oldest. Marks within two lines are
	// micro-movement duplicates and always go. Marks within the wider
	// band go only when they share window and tab context and are old
	// enough that they read as incidental churn, not intent.
	win, tab := s.host.Context()
	for i := len(s.autos) - 1; i >= 0; i-- {
		m := &s.autos[i]
		if m.File != file {
			continue
		}
		s.syncAutoRow(m)
		dist := abs(m.Row - row)
		switch {
		case dist <= 2:
			s.removeAuto(i)
		case dist <= s.cfg.CleanupLines && m.Win == win && m.Tab == tab:
			if now-m.Stamp >= int64(s.cfg.RecentMS) {
				s.removeAuto(i)
			}
		}
	}

	mark := domain.AutoMark{
		ID:    s.newID(),
		File:  file,
		Row:   row,
		Col:   col,
		Stamp: now,
		Win:   win,
		Tab:   tab,
	}
	if ref, ok := s.host.PlaceAnchor(file, row); ok {
		mark.Anchor = ref
	}
	s.autos = append(s.autos, mark)
	s.autoCursor = domain.Staging
	s.lastVisited = 0
	s.lastFile, s.lastRow, s.lastStamp = file, row, now

	if len(s.autos) > s.cfg.MaxAutoMarks {
		s.removeAuto(0)
	}
}

// Prev jumps count steps toward the older end of the automark list.
func (t *Tracker) Prev(count int) (domain.AutoMark, error) {
	return t.step(count, older)
}

// Next jumps count steps toward the newer end of the automark list.
func (t *Tracker) Next(count int) (domain.AutoMark, error) {
	return t.step(count, newer)
}

func (t *Tracker) step(count int, dir direction) (domain.AutoMark, error) {
	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if count < 1 {
		count = 1
	}
	if len(s.autos) == 0 {
		return domain.AutoMark{}, ErrNoMarks
	}

	cur := s.autoCursor
	for range count {
		if dir == older {
			cur = cur.Prev(len(s.autos), domain.OldestFirst)
		} else {
			cur = cur.Next(len(s.autos), domain.OldestFirst)
		}
	}

	// A candidate whose file vanished is dropped and the next one in
	// the same direction is tried, at most once around the list.
	for attempts := len(s.autos); attempts > 0; attempts-- {
		idx := int(cur) - 1
		m := &s.autos[idx]
		if !s.host.FileExists(m.File) {
			s.removeAuto(idx)
			n := len(s.autos)
			if n == 0 {
				s.autoCursor = domain.Staging
				return domain.AutoMark{}, ErrNoMarks
			}
			if dir == older {
				cur = domain.Cursor(idx)
				if cur < 1 {
					cur = domain.Cursor(n)
				}
			} else {
				cur = domain.Cursor(idx + 1)
				if int(cur) > n {
					cur = 1
				}
			}
			continue
		}

		s.syncAutoRow(m)
		gen := s.beginNavigation()
		err := s.host.Jump(m.File, m.Row, m.Col, m.Win, m.Tab)
		s.endNavigation(gen)
		if err != nil {
			s.autoCursor = domain.Staging
			return domain.AutoMark{}, &JumpError{File: m.File, Row: m.Row, Err: err}
		}
		s.autoCursor = cur
		return *m, nil
	}

	s.autoCursor = domain.Staging
	return domain.AutoMark{}, ErrNoMarks
}

// Purge removes every automark whose file is no longer readable.
// Returns how many marks were dropped.
func (t *Tracker) Purge() int {
	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for i := len(s.autos) - 1; i >= 0; i-- {
		if !s.host.FileExists(s.autos[i].File) {
			s.removeAuto(i)
			removed++
		}
	}
	return removed
}

// Remove deletes the automark with the given ID.
func (t *Tracker) Remove(id int64) error {
	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.autos {
		if s.autos[i].ID == id {
			s.removeAuto(i)
			s.autoCursor = domain.Staging
			return nil
		}
	}
	return ErrNoMarks
}

// Clear drops all automarks and their anchors.
func (t *Tracker) Clear() {
	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.autos {
		s.host.ReleaseAnchor(s.autos[i].Anchor)
	}
	s.autos = nil
	s.autoCursor = domain.Staging
}

// Marks returns a defensive copy of the automark list, oldest-first.
func (t *Tracker) Marks() []domain.AutoMark {
	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autosCopy()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
