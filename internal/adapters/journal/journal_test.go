package journal

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"waymark/internal/domain"
)

func testJournal(t *testing.T) *Journal {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "bookmarks.json"), 10*time.Millisecond, nil)
}

func TestJournalRoundTrip(t *testing.T) {
	j := testJournal(t)
	marks := []domain.Bookmark{
		{ID: 2, File: "/a.go", Row: 10, Col: 3, Stamp: 1_700_000_100},
		{ID: 1, File: "/b.go", Row: 5, Col: 1, Stamp: 1_700_000_000},
	}

	if err := j.SaveNow(marks); err != nil {
		t.Fatalf("SaveNow: %v", err)
	}

	res, err := New(j.Path(), time.Second, nil).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.MaxID != 2 {
		t.Errorf("MaxID = %d, want 2", res.MaxID)
	}
	ignore := cmpopts.IgnoreFields(domain.Bookmark{}, "Anchor")
	if diff := cmp.Diff(marks, res.Bookmarks, ignore); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestJournalLoad_MissingFile(t *testing.T) {
	j := testJournal(t)
	res, err := j.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(res.Bookmarks) != 0 || res.MaxID != 0 {
		t.Errorf("missing file yielded %+v, want empty", res)
	}
}

func TestJournalLoad_ToleratesBadContent(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"corrupt json", "this is not json {{{"},
		{"empty file", ""},
		{"whitespace only", "  \n\t "},
		{"missing bookmarks key", `{"saved_at": 1700000000}`},
		{"wrong type", `{"bookmarks": 42}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := testJournal(t)
			if err := os.MkdirAll(filepath.Dir(j.Path()), 0o755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(j.Path(), []byte(tt.raw), 0o644); err != nil {
				t.Fatal(err)
			}

			res, err := j.Load()
			if err != nil {
				t.Fatalf("Load must not fail on bad content: %v", err)
			}
			if len(res.Bookmarks) != 0 {
				t.Errorf("bad content yielded %d bookmarks", len(res.Bookmarks))
			}
		})
	}
}

func TestJournalLoad_LegacyPositionalRecords(t *testing.T) {
	j := testJournal(t)
	raw := `{
  "bookmarks": [
    ["/old/a.go", 12, 4, 1600000000],
    {"id": 5, "fname": "/new/b.go", "row": 7, "col": 1, "timestamp": 1700000000}
  ],
  "saved_at": 1700000001
}`
	if err := os.WriteFile(j.Path(), []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := j.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(res.Bookmarks) != 2 {
		t.Fatalf("loaded %d bookmarks, want 2", len(res.Bookmarks))
	}

	legacy := res.Bookmarks[0]
	if legacy.File != "/old/a.go" || legacy.Row != 12 || legacy.Col != 4 || legacy.Stamp != 1600000000 {
		t.Errorf("legacy record = %+v", legacy)
	}
	// The positional record carried no ID; it gets one past the maximum.
	if legacy.ID != 6 {
		t.Errorf("legacy ID = %d, want 6", legacy.ID)
	}
	if res.MaxID != 6 {
		t.Errorf("MaxID = %d, want 6", res.MaxID)
	}
}

func TestJournalLoad_SkipsEmptyFname(t *testing.T) {
	j := testJournal(t)
	raw := `{"bookmarks": [{"fname": "", "row": 1, "col": 1, "timestamp": 1}], "saved_at": 1}`
	if err := os.WriteFile(j.Path(), []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := j.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Bookmarks) != 0 {
		t.Errorf("nameless record loaded: %+v", res.Bookmarks)
	}
}

func TestJournalSchedule_DebouncedWrite(t *testing.T) {
	j := testJournal(t)

	j.Schedule([]domain.Bookmark{{ID: 1, File: "/a.go", Row: 1}})
	j.Schedule([]domain.Bookmark{
		{ID: 1, File: "/a.go", Row: 1},
		{ID: 2, File: "/b.go", Row: 2},
	})

	deadline := time.Now().Add(2 * time.Second)
	for {
		res, err := j.Load()
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Bookmarks) == 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("debounced write never landed; have %d bookmarks", len(res.Bookmarks))
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestJournalSaveNow_CancelsPendingDebounce(t *testing.T) {
	j := testJournal(t)

	j.Schedule([]domain.Bookmark{{ID: 1, File: "/stale.go", Row: 1}})
	if err := j.SaveNow([]domain.Bookmark{{ID: 2, File: "/final.go", Row: 2}}); err != nil {
		t.Fatalf("SaveNow: %v", err)
	}

	// Give a leaked debounce timer every chance to misfire.
	time.Sleep(50 * time.Millisecond)

	res, err := j.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Bookmarks) != 1 || res.Bookmarks[0].File != "/final.go" {
		t.Errorf("canonical content = %+v, want only /final.go", res.Bookmarks)
	}
}

func TestJournalStaleWriteIsDiscarded(t *testing.T) {
	j := testJournal(t)

	// Capture an asynchronous save job, then supersede it before it runs.
	j.mu.Lock()
	j.pending = []domain.Bookmark{{ID: 1, File: "/old.go", Row: 1}}
	j.dirty = true
	j.gen.Add(1)
	j.mu.Unlock()
	job := j.startSave()
	if job == nil {
		t.Fatal("startSave returned nil with dirty state")
	}

	if err := j.SaveNow([]domain.Bookmark{{ID: 2, File: "/new.go", Row: 2}}); err != nil {
		t.Fatal(err)
	}

	// The superseded job must neither fail nor touch the canonical file.
	if err := job.run(); err != nil {
		t.Fatalf("stale job run: %v", err)
	}
	res, err := j.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Bookmarks) != 1 || res.Bookmarks[0].File != "/new.go" {
		t.Errorf("stale write clobbered the journal: %+v", res.Bookmarks)
	}
	if _, err := os.Stat(job.tmp); !os.IsNotExist(err) {
		t.Errorf("stale temp file left behind: %v", err)
	}
}

func TestJournalLoad_SweepsOrphanedTempFiles(t *testing.T) {
	j := testJournal(t)
	dir := filepath.Dir(j.Path())

	old := j.Path() + ".tmp.1"
	if err := os.WriteFile(old, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	stale := time.Now().Add(-time.Minute)
	if err := os.Chtimes(old, stale, stale); err != nil {
		t.Fatal(err)
	}

	young := j.Path() + ".tmp.2"
	if err := os.WriteFile(young, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	unrelated := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(unrelated, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(unrelated, stale, stale); err != nil {
		t.Fatal(err)
	}

	if _, err := j.Load(); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Errorf("old orphan not swept: %v", err)
	}
	if _, err := os.Stat(young); err != nil {
		t.Errorf("young temp file swept: %v", err)
	}
	if _, err := os.Stat(unrelated); err != nil {
		t.Errorf("unrelated file swept: %v", err)
	}
}

func TestJournalClose_RefusesFurtherWrites(t *testing.T) {
	j := testJournal(t)
	if err := j.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	j.Schedule([]domain.Bookmark{{ID: 1, File: "/a.go", Row: 1}})
	time.Sleep(50 * time.Millisecond)

	if _, err := os.Stat(j.Path()); !os.IsNotExist(err) {
		t.Errorf("write happened after Close: %v", err)
	}
}

func TestJournalWatch_SeesExternalReplacement(t *testing.T) {
	j := testJournal(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := j.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	// Another process replacing the file is a SaveNow from its side.
	other := New(j.Path(), time.Second, nil)
	if err := other.SaveNow([]domain.Bookmark{{ID: 1, File: "/a.go", Row: 1}}); err != nil {
		t.Fatal(err)
	}

	select {
	case _, ok := <-events:
		if !ok {
			t.Fatal("watch channel closed early")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event for an external journal replacement")
	}

	cancel()
	select {
	case _, ok := <-events:
		for ok {
			_, ok = <-events
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watch channel not closed after cancel")
	}
}
