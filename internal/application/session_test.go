package application

import (
	"testing"

	"waymark/internal/domain"
	"waymark/internal/ports"
)

func TestSessionLoad(t *testing.T) {
	s, _, journal, _ := newTestSession()
	journal.loadRes = ports.LoadResult{
		Bookmarks: []domain.Bookmark{
			{ID: 7, File: "/a.go", Row: 1, Stamp: 100},
			{ID: 3, File: "/b.go", Row: 2, Stamp: 50},
		},
		MaxID: 7,
	}

	if err := s.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := len(s.Bookmarks().Marks()); got != 2 {
		t.Fatalf("loaded %d bookmarks, want 2", got)
	}

	// New IDs continue past everything persisted.
	m, err := s.Bookmarks().Add("/c.go", 3, 1)
	if err != nil {
		t.Fatal(err)
	}
	if m.ID != 8 {
		t.Errorf("next ID = %d, want 8", m.ID)
	}
}

func TestSessionLoad_ReplacesAnchors(t *testing.T) {
	s, host, journal, _ := newTestSession()
	host.anchoring = true
	journal.loadRes = ports.LoadResult{
		Bookmarks: []domain.Bookmark{
			{ID: 1, File: "/a.go", Row: 1},
			{ID: 2, File: "/b.go", Row: 2},
		},
		MaxID: 2,
	}

	if err := s.Load(); err != nil {
		t.Fatal(err)
	}
	if got := len(host.anchors); got != 2 {
		t.Fatalf("anchors after first load = %d, want 2", got)
	}

	// Reloading drops the old anchors before placing fresh ones.
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}
	if got := len(host.anchors); got != 2 {
		t.Errorf("anchors after reload = %d, want 2", got)
	}
}

func TestSessionClose(t *testing.T) {
	s, _, journal, _ := newTestSession()
	if _, err := s.Bookmarks().Add("/a.go", 5, 1); err != nil {
		t.Fatal(err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if len(journal.saved) != 1 {
		t.Fatalf("synchronous saves = %d, want 1", len(journal.saved))
	}
	if len(journal.saved[0]) != 1 {
		t.Errorf("saved snapshot has %d bookmarks, want 1", len(journal.saved[0]))
	}
	if !journal.closed {
		t.Errorf("journal not closed")
	}
}
