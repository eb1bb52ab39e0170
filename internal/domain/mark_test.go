package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSortMerged_AscendingByTime(t *testing.T) {
	marks := []MergedMark{
		{ID: 3, SortTime: 300},
		{ID: 1, SortTime: 100},
		{ID: 2, SortTime: 200},
	}
	SortMerged(marks)

	want := []int64{1, 2, 3}
	var got []int64
	for _, m := range marks {
		got = append(got, m.ID)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestSortMerged_TiesBreakByID(t *testing.T) {
	marks := []MergedMark{
		{ID: 9, SortTime: 100},
		{ID: 2, SortTime: 100},
		{ID: 5, SortTime: 100},
	}
	SortMerged(marks)

	want := []int64{2, 5, 9}
	var got []int64
	for _, m := range marks {
		got = append(got, m.ID)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tie-break mismatch (-want +got):\n%s", diff)
	}
}

func TestMarkKindString(t *testing.T) {
	if got := KindAutoMark.String(); got != "automark" {
		t.Errorf("KindAutoMark = %q", got)
	}
	if got := KindBookmark.String(); got != "bookmark" {
		t.Errorf("KindBookmark = %q", got)
	}
	if got := MarkKind(99).String(); got != "unknown" {
		t.Errorf("unknown kind = %q", got)
	}
}
