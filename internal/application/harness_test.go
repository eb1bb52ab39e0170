package application

import (
	"context"
	"time"

	"waymark/internal/config"
	"waymark/internal/domain"
	"waymark/internal/ports"
)

// fakeClock is a hand-advanced wall clock for deterministic heuristics.
type fakeClock struct {
	cur time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{cur: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) now() time.Time          { return c.cur }
func (c *fakeClock) advance(d time.Duration) { c.cur = c.cur.Add(d) }

type jumpCall struct {
	file     string
	row, col int
	win, tab int
}

// fakeHost simulates the editor side. Every path exists unless marked
// missing, and anchors are only granted when anchoring is switched on.
type fakeHost struct {
	missing  map[string]bool
	noDir    map[string]bool
	failJump map[string]error

	anchoring bool
	nextRef   domain.AnchorRef
	anchors   map[domain.AnchorRef]int

	jumps []jumpCall
	win   int
	tab   int
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		missing:  map[string]bool{},
		noDir:    map[string]bool{},
		failJump: map[string]error{},
		anchors:  map[domain.AnchorRef]int{},
		win:      1,
		tab:      1,
	}
}

func (h *fakeHost) PlaceAnchor(file string, row int) (domain.AnchorRef, bool) {
	if !h.anchoring {
		return 0, false
	}
	h.nextRef++
	h.anchors[h.nextRef] = row
	return h.nextRef, true
}

func (h *fakeHost) ReleaseAnchor(ref domain.AnchorRef) {
	delete(h.anchors, ref)
}

func (h *fakeHost) AnchorRow(ref domain.AnchorRef) (int, bool) {
	row, ok := h.anchors[ref]
	return row, ok
}

func (h *fakeHost) Jump(file string, row, col, win, tab int) error {
	if err := h.failJump[file]; err != nil {
		return err
	}
	h.jumps = append(h.jumps, jumpCall{file, row, col, win, tab})
	return nil
}

func (h *fakeHost) Context() (int, int) { return h.win, h.tab }

func (h *fakeHost) FileExists(path string) bool { return !h.missing[path] }

func (h *fakeHost) IsDir(path string) bool { return !h.noDir[path] }

func (h *fakeHost) lastJump() jumpCall {
	return h.jumps[len(h.jumps)-1]
}

// fakeJournal records scheduling and saving without touching disk.
type fakeJournal struct {
	loadRes   ports.LoadResult
	scheduled [][]domain.Bookmark
	saved     [][]domain.Bookmark
	closed    bool
}

func (f *fakeJournal) Load() (ports.LoadResult, error) { return f.loadRes, nil }

func (f *fakeJournal) Schedule(marks []domain.Bookmark) {
	f.scheduled = append(f.scheduled, marks)
}

func (f *fakeJournal) SaveNow(marks []domain.Bookmark) error {
	f.saved = append(f.saved, marks)
	return nil
}

func (f *fakeJournal) Watch(ctx context.Context) (<-chan ports.JournalEvent, error) {
	ch := make(chan ports.JournalEvent)
	close(ch)
	return ch, nil
}

func (f *fakeJournal) Close() error {
	f.closed = true
	return nil
}

type ignoreFunc func(string) bool

func (fn ignoreFunc) Ignored(file string) bool { return fn(file) }

// newTestSession wires a session against the fakes with the default
// tunables.
func newTestSession() (*Session, *fakeHost, *fakeJournal, *fakeClock) {
	return newTestSessionCfg(nil)
}

// newTestSessionCfg lets a test adjust the tunables before wiring.
func newTestSessionCfg(mut func(*config.Settings)) (*Session, *fakeHost, *fakeJournal, *fakeClock) {
	cfg := config.Settings{
		MinLines:       8,
		MinIntervalMS:  30_000,
		CleanupLines:   15,
		RecentMS:       60_000,
		MaxAutoMarks:   30,
		SaveDebounceMS: 300,
		NavResetMS:     2_000,
	}
	if mut != nil {
		mut(&cfg)
	}
	host := newFakeHost()
	journal := &fakeJournal{}
	clock := newFakeClock()
	s := NewSession(cfg, host, nil, journal, clock.now)
	return s, host, journal, clock
}
