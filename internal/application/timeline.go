package application

import (
	"waymark/internal/domain"
)

// Timeline is the merged chronological view spanning both mark lists.
// Automark stamps live on the session-relative monotonic clock and
// bookmark stamps on the wall clock; the session clock's startup
// anchors project both onto one epoch axis. The view is rebuilt on
// every request — mark IDs, not indices, identify positions across
// rebuilds.
type Timeline struct {
	s *Session
}

type position struct {
	file string
	row  int
}

// View builds the merged view, ascending by time. When an automark and
// a bookmark share a (file, row), the bookmark wins: it is the
// persistent mark.
func (tl *Timeline) View() []domain.MergedMark {
	s := tl.s
	s.mu.Lock()
	defer s.mu.Unlock()
	return tl.buildLocked()
}

func (tl *Timeline) buildLocked() []domain.MergedMark {
	s := tl.s
	seen := make(map[position]bool, len(s.books))
	out := make([]domain.MergedMark, 0, len(s.books)+len(s.autos))

	for i := range s.books {
		m := &s.books[i]
		s.syncBookRow(m)
		seen[position{m.File, m.Row}] = true
		out = append(out, domain.MergedMark{
			ID:       m.ID,
			File:     m.File,
			Row:      m.Row,
			Col:      m.Col,
			SortTime: float64(m.Stamp),
			Kind:     domain.KindBookmark,
		})
	}
	for i := range s.autos {
		m := &s.autos[i]
		s.syncAutoRow(m)
		if seen[position{m.File, m.Row}] {
			continue
		}
		out = append(out, domain.MergedMark{
			ID:       m.ID,
			File:     m.File,
			Row:      m.Row,
			Col:      m.Col,
			SortTime: s.clock.MonoToEpoch(m.Stamp),
			Kind:     domain.KindAutoMark,
			Win:      m.Win,
			Tab:      m.Tab,
		})
	}

	domain.SortMerged(out)
	return out
}

// Prev jumps count steps toward older across both mark kinds.
func (tl *Timeline) Prev(count int) (domain.MergedMark, error) {
	return tl.step(count, older)
}

// Next jumps count steps toward newer across both mark kinds.
func (tl *Timeline) Next(count int) (domain.MergedMark, error) {
	return tl.step(count, newer)
}

func (tl *Timeline) step(count int, dir direction) (domain.MergedMark, error) {
	s := tl.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if count < 1 {
		count = 1
	}
	view := tl.buildLocked()
	if len(view) == 0 {
		return domain.MergedMark{}, ErrNoMarks
	}

	// Resolve the last-visited mark in the fresh view; a deleted mark
	// degrades to staging.
	cur := domain.Staging
	if s.lastVisited != 0 {
		for i := range view {
			if view[i].ID == s.lastVisited {
				cur = domain.Cursor(i + 1)
				break
			}
		}
	}

	// The view is ascending by time, so it navigates as oldest-first.
	for range count {
		if dir == older {
			cur = cur.Prev(len(view), domain.OldestFirst)
		} else {
			cur = cur.Next(len(view), domain.OldestFirst)
		}
	}

	for attempts := len(view); attempts > 0; attempts-- {
		m := view[int(cur)-1]
		if !s.host.FileExists(m.File) {
			// Remove from the origin list, not the transient view.
			tl.removeOriginLocked(m)
			view = tl.buildLocked()
			n := len(view)
			if n == 0 {
				s.lastVisited = 0
				return domain.MergedMark{}, ErrNoMarks
			}
			if dir == older {
				cur--
				if cur < 1 {
					cur = domain.Cursor(n)
				}
			} else if int(cur) > n {
				cur = 1
			}
			continue
		}

		gen := s.beginNavigation()
		err := s.host.Jump(m.File, m.Row, m.Col, m.Win, m.Tab)
		s.endNavigation(gen)
		if err != nil {
			s.lastVisited = 0
			return m, &JumpError{File: m.File, Row: m.Row, Err: err}
		}
		s.lastVisited = m.ID
		return m, nil
	}

	s.lastVisited = 0
	return domain.MergedMark{}, ErrNoMarks
}

// removeOriginLocked deletes the mark backing a merged entry from its
// origin list, persisting when a bookmark was dropped. Caller holds mu.
func (tl *Timeline) removeOriginLocked(m domain.MergedMark) {
	s := tl.s
	if m.Kind == domain.KindBookmark {
		for i := range s.books {
			if s.books[i].ID == m.ID {
				s.removeBook(i)
				s.scheduleSave()
				return
			}
		}
		return
	}
	for i := range s.autos {
		if s.autos[i].ID == m.ID {
			s.removeAuto(i)
			return
		}
	}
}
