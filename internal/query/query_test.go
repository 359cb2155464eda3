package query

import (
	"testing"

	"dailythought/internal/entrystore"
	"dailythought/internal/models"
)

func dated(dates ...string) []models.DiaryEntry {
	out := make([]models.DiaryEntry, len(dates))
	for i, d := range dates {
		out[i] = models.DiaryEntry{ID: d + "#" + string(rune('a'+i)), Date: d}
	}
	return out
}

func dates(entries []models.DiaryEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Date
	}
	return out
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApplyFilterAndSort(t *testing.T) {
	entries := dated("2024-01-01", "2024-03-05", "2024-02-10")
	cases := []struct {
		name  string
		term  string
		order SortOrder
		want  []string
	}{
		{"prefix matches all newest", "2024-0", Newest, []string{"2024-03-05", "2024-02-10", "2024-01-01"}},
		{"month filter", "03", Newest, []string{"2024-03-05"}},
		{"empty term oldest", "", Oldest, []string{"2024-01-01", "2024-02-10", "2024-03-05"}},
		{"whitespace term is empty", "   ", Newest, []string{"2024-03-05", "2024-02-10", "2024-01-01"}},
		{"no match", "1999", Newest, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := dates(Apply(entries, tc.term, tc.order))
			if !sameStrings(got, tc.want) {
				t.Errorf("Apply(%q, %s) = %v, want %v", tc.term, tc.order, got, tc.want)
			}
		})
	}
}

func TestApplyIsCaseInsensitive(t *testing.T) {
	entries := []models.DiaryEntry{{ID: "1", Date: "2024-May-01"}, {ID: "2", Date: "2024-06-01"}}
	got := Apply(entries, "MAY", Newest)
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("got %v", got)
	}
}

func TestApplyStableForEqualDates(t *testing.T) {
	entries := []models.DiaryEntry{
		{ID: "first", Date: "2024-01-02"},
		{ID: "older", Date: "2024-01-01"},
		{ID: "second", Date: "2024-01-02"},
	}
	for _, order := range []SortOrder{Newest, Oldest} {
		got := Apply(entries, "", order)
		var same []string
		for _, e := range got {
			if e.Date == "2024-01-02" {
				same = append(same, e.ID)
			}
		}
		if !sameStrings(same, []string{"first", "second"}) {
			t.Errorf("%s: equal dates reordered: %v", order, same)
		}
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	entries := dated("2024-01-01", "2024-03-05", "2024-02-10")
	Apply(entries, "", Newest)
	if !sameStrings(dates(entries), []string{"2024-01-01", "2024-03-05", "2024-02-10"}) {
		t.Errorf("input reordered: %v", dates(entries))
	}
}

func TestSummary(t *testing.T) {
	cases := []struct {
		r    Result
		want string
	}{
		{Result{Entries: dated("2024-03-05"), Term: "03"}, `Found 1 entry matching "03"`},
		{Result{Entries: dated("2024-03-05", "2024-03-06"), Term: "03"}, `Found 2 entries matching "03"`},
		{Result{Entries: dated("2024-03-05"), Term: ""}, ""},
	}
	for _, tc := range cases {
		if got := tc.r.Summary(); got != tc.want {
			t.Errorf("Summary() = %q, want %q", got, tc.want)
		}
	}
}

func TestSortOrderToggle(t *testing.T) {
	if Newest.Toggle() != Oldest || Oldest.Toggle() != Newest {
		t.Error("Toggle does not flip")
	}
	if ParseSortOrder("OLDEST") != Oldest || ParseSortOrder("whatever") != Newest {
		t.Error("ParseSortOrder mismatch")
	}
}

func TestEngineMemoizesOnInputs(t *testing.T) {
	store := entrystore.New()
	store.Replace(dated("2024-01-01", "2024-03-05", "2024-02-10"))
	eng := NewEngine(store)

	first := eng.Result()
	eng.Result()
	if eng.computs != 1 {
		t.Fatalf("computations = %d, want 1", eng.computs)
	}
	if first.Entries[0].Date != "2024-03-05" {
		t.Errorf("default order should be newest, got %v", dates(first.Entries))
	}

	eng.SetTerm("03")
	if got := eng.Result(); got.Count() != 1 {
		t.Errorf("Count = %d, want 1", got.Count())
	}
	if eng.ToggleOrder() != Oldest {
		t.Error("ToggleOrder should switch to oldest")
	}
	eng.Result()
	if eng.computs != 3 {
		t.Errorf("computations = %d, want 3", eng.computs)
	}

	store.Put(models.DiaryEntry{ID: "new", Date: "2024-03-20"})
	if got := eng.Result(); got.Count() != 2 {
		t.Errorf("collection change not reflected, Count = %d", got.Count())
	}
	if eng.computs != 4 {
		t.Errorf("computations = %d, want 4", eng.computs)
	}
}
