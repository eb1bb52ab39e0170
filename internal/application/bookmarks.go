package application

import (
	"path/filepath"

	"waymark/internal/domain"
)

// Bookmarks is the store for user-placed persistent marks. The list is
// newest-first; every mutation schedules a debounced journal save.
type Bookmarks struct {
	s *Session
}

// Add places a bookmark at (file, row, col). It refuses a duplicate on
// the same (file, row) and removes any automark sitting on that line,
// keeping the two kinds mutually exclusive per position.
func (b *Bookmarks) Add(file string, row, col int) (domain.Bookmark, error) {
	s := b.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if file == "" {
		return domain.Bookmark{}, &ValidationError{Field: "file", Message: "file is required"}
	}

	for i := range s.books {
		if s.books[i].File != file {
			continue
		}
		s.syncBookRow(&s.books[i])
		if s.books[i].Row == row {
			return domain.Bookmark{}, ErrDuplicateMark
		}
	}

	for i := len(s.autos) - 1; i >= 0; i-- {
		if s.autos[i].File != file {
			continue
		}
		s.syncAutoRow(&s.autos[i])
		if s.autos[i].Row == row {
			s.removeAuto(i)
		}
	}

	mark := domain.Bookmark{
		ID:    s.newID(),
		File:  file,
		Row:   row,
		Col:   col,
		Stamp: s.clock.NowEpoch(),
	}
	if ref, ok := s.host.PlaceAnchor(file, row); ok {
		mark.Anchor = ref
	}
	s.books = append([]domain.Bookmark{mark}, s.books...)
	s.bookCursor = domain.Staging
	s.scheduleSave()
	return mark, nil
}

// Toggle removes every mark of either kind at (file, row), or adds a
// bookmark there when the line is unmarked. Returns true when a
// bookmark was added.
func (b *Bookmarks) Toggle(file string, row, col int) (bool, error) {
	s := b.s
	s.mu.Lock()

	removed := false
	savedBookmark := false
	for i := len(s.autos) - 1; i >= 0; i-- {
		if s.autos[i].File != file {
			continue
		}
		s.syncAutoRow(&s.autos[i])
		if s.autos[i].Row == row {
			s.removeAuto(i)
			removed = true
		}
	}
	for i := len(s.books) - 1; i >= 0; i-- {
		if s.books[i].File != file {
			continue
		}
		s.syncBookRow(&s.books[i])
		if s.books[i].Row == row {
			s.removeBook(i)
			removed = true
			savedBookmark = true
		}
	}
	if removed {
		if savedBookmark {
			s.scheduleSave()
		}
		s.mu.Unlock()
		return false, nil
	}
	s.mu.Unlock()

	_, err := b.Add(file, row, col)
	return err == nil, err
}

// DeleteCurrent removes the bookmark under the navigation cursor.
func (b *Bookmarks) DeleteCurrent() error {
	s := b.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bookCursor.IsStaging() {
		return ErrNoMarks
	}
	s.removeBook(int(s.bookCursor) - 1)
	s.bookCursor = domain.Staging
	s.scheduleSave()
	return nil
}

// Remove deletes the bookmark with the given ID.
func (b *Bookmarks) Remove(id int64) error {
	s := b.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.books {
		if s.books[i].ID == id {
			s.removeBook(i)
			s.bookCursor = domain.Staging
			s.scheduleSave()
			return nil
		}
	}
	return ErrNoMarks
}

// JumpTo moves the view to the i-th bookmark (1-based, newest-first).
// A missing file deletes the bookmark and persists the change; other
// jump failures leave the list untouched. Automark tracking stays
// suppressed for the duration of the jump.
func (b *Bookmarks) JumpTo(i int) (domain.Bookmark, error) {
	s := b.s
	s.mu.Lock()
	defer s.mu.Unlock()
	return b.jumpLocked(i)
}

func (b *Bookmarks) jumpLocked(i int) (domain.Bookmark, error) {
	s := b.s
	if i < 1 || i > len(s.books) {
		return domain.Bookmark{}, &ValidationError{Field: "index", Message: "out of range"}
	}

	gen := s.beginNavigation()
	defer s.endNavigation(gen)

	m := &s.books[i-1]
	s.syncBookRow(m)
	if err := s.host.Jump(m.File, m.Row, m.Col, 0, 0); err != nil {
		if !s.host.FileExists(m.File) {
			gone := *m
			s.removeBook(i - 1)
			s.scheduleSave()
			return gone, ErrFileMissing
		}
		return *m, &JumpError{File: m.File, Row: m.Row, Err: err}
	}
	s.bookCursor = domain.Cursor(i)
	return *m, nil
}

// Prev steps count bookmarks toward older and jumps there.
func (b *Bookmarks) Prev(count int) (domain.Bookmark, error) {
	return b.step(count, older)
}

// Next steps count bookmarks toward newer and jumps there.
func (b *Bookmarks) Next(count int) (domain.Bookmark, error) {
	return b.step(count, newer)
}

func (b *Bookmarks) step(count int, dir direction) (domain.Bookmark, error) {
	s := b.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if count < 1 {
		count = 1
	}
	if len(s.books) == 0 {
		return domain.Bookmark{}, ErrNoMarks
	}

	cur := s.bookCursor
	for range count {
		if dir == older {
			cur = cur.Prev(len(s.books), domain.NewestFirst)
		} else {
			cur = cur.Next(len(s.books), domain.NewestFirst)
		}
	}
	return b.jumpLocked(int(cur))
}

// Clean removes bookmarks whose file is unreadable while its parent
// directory still exists. The directory check distinguishes a deleted
// file from a temporarily unmounted volume, so an absent external
// drive does not wipe its bookmarks.
func (b *Bookmarks) Clean() int {
	s := b.s
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for i := len(s.books) - 1; i >= 0; i-- {
		m := &s.books[i]
		if s.host.FileExists(m.File) {
			continue
		}
		if !s.host.IsDir(filepath.Dir(m.File)) {
			continue
		}
		s.removeBook(i)
		removed++
	}
	if removed > 0 {
		s.scheduleSave()
	}
	return removed
}

// Clear drops all bookmarks and persists the empty list.
func (b *Bookmarks) Clear() {
	s := b.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.books {
		s.host.ReleaseAnchor(s.books[i].Anchor)
	}
	s.books = nil
	s.bookCursor = domain.Staging
	s.scheduleSave()
}

// Marks returns a defensive copy of the bookmark list, newest-first.
func (b *Bookmarks) Marks() []domain.Bookmark {
	s := b.s
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.booksCopy()
}
