package views

import (
	"strings"
	"testing"

	"waymark/internal/domain"
)

func TestFilterString(t *testing.T) {
	if got := FilterAll.String(); got != "all" {
		t.Errorf("FilterAll = %q", got)
	}
	if got := FilterBookmarks.String(); got != "bookmarks" {
		t.Errorf("FilterBookmarks = %q", got)
	}
	if got := FilterAutoMarks.String(); got != "automarks" {
		t.Errorf("FilterAutoMarks = %q", got)
	}
}

func TestVisible_FiltersByKind(t *testing.T) {
	m := &MarksModel{
		marks: []domain.MergedMark{
			{ID: 1, Kind: domain.KindAutoMark},
			{ID: 2, Kind: domain.KindBookmark},
			{ID: 3, Kind: domain.KindAutoMark},
		},
	}

	if got := len(m.visible()); got != 3 {
		t.Errorf("all filter shows %d, want 3", got)
	}

	m.filter = FilterBookmarks
	books := m.visible()
	if len(books) != 1 || books[0].ID != 2 {
		t.Errorf("bookmark filter shows %+v", books)
	}

	m.filter = FilterAutoMarks
	if got := len(m.visible()); got != 2 {
		t.Errorf("automark filter shows %d, want 2", got)
	}
}

func TestSelected_OutOfRange(t *testing.T) {
	m := &MarksModel{}
	if _, ok := m.selected(); ok {
		t.Error("empty list reported a selection")
	}

	m.marks = []domain.MergedMark{{ID: 1}}
	m.cursor = 5
	if _, ok := m.selected(); ok {
		t.Error("cursor past the end reported a selection")
	}
	m.cursor = 0
	if mark, ok := m.selected(); !ok || mark.ID != 1 {
		t.Errorf("selected = (%+v, %v)", mark, ok)
	}
}

func TestShortenPath(t *testing.T) {
	if got := shortenPath("/a/b.go", 48); got != "/a/b.go" {
		t.Errorf("short path changed: %q", got)
	}

	long := "/very/deep/directory/tree/with/many/levels/of/nesting/file.go"
	got := shortenPath(long, 30)
	if !strings.HasPrefix(got, "…/") {
		t.Errorf("shortened path lacks ellipsis: %q", got)
	}
	if strings.Contains(got, "/very/") {
		t.Errorf("leading components kept: %q", got)
	}
}

func TestRelativeAge_ZeroStamp(t *testing.T) {
	if got := relativeAge(0); got != "-" {
		t.Errorf("zero stamp age = %q, want -", got)
	}
}
