package application

import (
	"fmt"
	"sync"
	"time"

	"waymark/internal/config"
	"waymark/internal/domain"
	"waymark/internal/ports"
)

// Session owns all mutable mark state: both lists, their navigation
// cursors, the ID generator, the session clock anchors, and the
// navigating flag. Every mutation goes through a single mutex, the Go
// stand-in for the host editor's single event loop; the in-memory
// lists never see concurrent writers.
//
// The tracker, bookmark store, and timeline are views over this state,
// wired up at construction so none of them reach for globals.
type Session struct {
	mu      sync.Mutex
	cfg     config.Settings
	host    ports.Host
	ignore  ports.IgnorePolicy
	journal ports.Journal
	clock   *domain.SessionClock

	nextID int64
	autos  []domain.AutoMark // oldest-first
	books  []domain.Bookmark // newest-first

	autoCursor  domain.Cursor
	bookCursor  domain.Cursor
	lastVisited int64 // merged-timeline cursor, keyed by mark ID; 0 = staging

	// Last recorded automark position, input to the record heuristics.
	lastFile  string
	lastRow   int
	lastStamp int64

	// navigating suppresses automark creation during a programmatic
	// jump. navGen guards the fallback reset timer against staleness.
	navigating bool
	navGen     uint64

	tracker   *Tracker
	bookmarks *Bookmarks
	timeline  *Timeline
}

// NewSession wires a session from its collaborators. now is the wall
// clock, normally time.Now. No journal I/O happens here; call Load to
// pull in persisted bookmarks.
func NewSession(cfg config.Settings, host ports.Host, ignore ports.IgnorePolicy, journal ports.Journal, now func() time.Time) *Session {
	s := &Session{
		cfg:        cfg,
		host:       host,
		ignore:     ignore,
		journal:    journal,
		clock:      domain.NewSessionClock(now),
		autoCursor: domain.Staging,
		bookCursor: domain.Staging,
	}
	s.tracker = &Tracker{s: s}
	s.bookmarks = &Bookmarks{s: s}
	s.timeline = &Timeline{s: s}
	return s
}

// Open builds a session and loads the persisted bookmarks.
func Open(cfg config.Settings, host ports.Host, ignore ports.IgnorePolicy, journal ports.Journal) (*Session, error) {
	s := NewSession(cfg, host, ignore, journal, time.Now)
	if err := s.Load(); err != nil {
		return nil, fmt.Errorf("load journal: %w", err)
	}
	return s, nil
}

// Tracker returns the automark tracker view of this session.
func (s *Session) Tracker() *Tracker { return s.tracker }

// Bookmarks returns the bookmark store view of this session.
func (s *Session) Bookmarks() *Bookmarks { return s.bookmarks }

// Timeline returns the merged-timeline view of this session.
func (s *Session) Timeline() *Timeline { return s.timeline }

// Load replaces the in-memory bookmarks with the journal's contents
// and advances the ID generator past the highest loaded ID so IDs stay
// unique across restarts. Cursors reset to staging.
func (s *Session) Load() error {
	res, err := s.journal.Load()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.books {
		s.host.ReleaseAnchor(s.books[i].Anchor)
	}
	s.books = res.Bookmarks
	for i := range s.books {
		if ref, ok := s.host.PlaceAnchor(s.books[i].File, s.books[i].Row); ok {
			s.books[i].Anchor = ref
		}
	}
	if res.MaxID > s.nextID {
		s.nextID = res.MaxID
	}
	s.bookCursor = domain.Staging
	s.lastVisited = 0
	return nil
}

// Close flushes dirty state synchronously and releases the journal.
// The synchronous save bumps the journal generation first, so it wins
// over any in-flight debounced write.
func (s *Session) Close() error {
	s.mu.Lock()
	snapshot := s.booksCopy()
	s.mu.Unlock()

	saveErr := s.journal.SaveNow(snapshot)
	closeErr := s.journal.Close()
	if saveErr != nil {
		return saveErr
	}
	return closeErr
}

// newID hands out the next mark ID. Caller holds mu.
func (s *Session) newID() int64 {
	s.nextID++
	return s.nextID
}

// beginNavigation raises the suppression flag and arms the fallback
// reset. The timer only clears the flag if no newer navigation has
// started since, so a stale timer cannot re-enable tracking midway
// through a later jump. Caller holds mu.
func (s *Session) beginNavigation() uint64 {
	s.navigating = true
	s.navGen++
	gen := s.navGen
	time.AfterFunc(time.Duration(s.cfg.NavResetMS)*time.Millisecond, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.navGen == gen {
			s.navigating = false
		}
	})
	return gen
}

// endNavigation lowers the flag unless a newer navigation owns it.
// Caller holds mu.
func (s *Session) endNavigation(gen uint64) {
	if s.navGen == gen {
		s.navigating = false
	}
}

// booksCopy returns a snapshot safe to hand to the journal or callers.
// Caller holds mu.
func (s *Session) booksCopy() []domain.Bookmark {
	out := make([]domain.Bookmark, len(s.books))
	copy(out, s.books)
	return out
}

// autosCopy returns a snapshot of the automark list. Caller holds mu.
func (s *Session) autosCopy() []domain.AutoMark {
	out := make([]domain.AutoMark, len(s.autos))
	copy(out, s.autos)
	return out
}

// scheduleSave hands the current bookmark snapshot to the journal's
// debounced pipeline. Caller holds mu.
func (s *Session) scheduleSave() {
	s.journal.Schedule(s.booksCopy())
}

// syncAutoRow refreshes a mark's row from its live anchor, if any.
// Caller holds mu.
func (s *Session) syncAutoRow(m *domain.AutoMark) {
	if m.Anchor == 0 {
		return
	}
	if row, ok := s.host.AnchorRow(m.Anchor); ok {
		m.Row = row
	}
}

// syncBookRow is syncAutoRow for bookmarks. Caller holds mu.
func (s *Session) syncBookRow(m *domain.Bookmark) {
	if m.Anchor == 0 {
		return
	}
	if row, ok := s.host.AnchorRow(m.Anchor); ok {
		m.Row = row
	}
}

// removeAuto deletes the automark at index i (0-based), releasing its
// anchor and clamping the cursor. Caller holds mu.
func (s *Session) removeAuto(i int) {
	s.host.ReleaseAnchor(s.autos[i].Anchor)
	s.autos = append(s.autos[:i], s.autos[i+1:]...)
	s.autoCursor = s.autoCursor.ClampAfterRemoval(len(s.autos))
}

// removeBook deletes the bookmark at index i (0-based). Caller holds mu.
func (s *Session) removeBook(i int) {
	s.host.ReleaseAnchor(s.books[i].Anchor)
	s.books = append(s.books[:i], s.books[i+1:]...)
	s.bookCursor = s.bookCursor.ClampAfterRemoval(len(s.books))
}
