package entrystore

import (
	"testing"

	"dailythought/internal/models"
)

func ids(entries []models.DiaryEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func equal(a, b []string) bool {
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

func TestReplaceKeepsInsertionOrder(t *testing.T) {
	s := New()
	s.Replace([]models.DiaryEntry{{ID: "c"}, {ID: "a"}, {ID: "b"}, {ID: "a", Body: "dup"}})

	if got := ids(s.All()); !equal(got, []string{"c", "a", "b"}) {
		t.Fatalf("order = %v", got)
	}
	if e, _ := s.Get("a"); e.Body != "dup" {
		t.Errorf("duplicate id should keep last value, got %q", e.Body)
	}
}

func TestPutReplacesInPlace(t *testing.T) {
	s := New()
	s.Replace([]models.DiaryEntry{{ID: "a"}, {ID: "b", Body: "old"}, {ID: "c"}})
	v := s.Version()

	s.Put(models.DiaryEntry{ID: "b", Body: "new"})
	if got := ids(s.All()); !equal(got, []string{"a", "b", "c"}) {
		t.Fatalf("order = %v", got)
	}
	if e, _ := s.Get("b"); e.Body != "new" {
		t.Errorf("body = %q, want new", e.Body)
	}
	if s.Version() == v {
		t.Error("version not bumped")
	}

	s.Put(models.DiaryEntry{ID: "d"})
	if got := ids(s.All()); !equal(got, []string{"a", "b", "c", "d"}) {
		t.Errorf("order after append = %v", got)
	}
}

func TestRemoveClearsCurrent(t *testing.T) {
	s := New()
	s.Replace([]models.DiaryEntry{{ID: "a"}, {ID: "b"}})
	s.Load(models.DiaryEntry{ID: "b", Body: "loaded"})

	if cur, ok := s.Current(); !ok || cur.Body != "loaded" {
		t.Fatalf("Current = %+v, %v", cur, ok)
	}
	if !s.Remove("b") {
		t.Fatal("Remove(b) = false")
	}
	if s.Remove("b") {
		t.Error("second Remove(b) = true")
	}
	if _, ok := s.Current(); ok {
		t.Error("current entry should be cleared after removal")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestAllReturnsCopy(t *testing.T) {
	s := New()
	s.Replace([]models.DiaryEntry{{ID: "a", Body: "x"}})
	all := s.All()
	all[0].Body = "mutated"
	if e, _ := s.Get("a"); e.Body != "x" {
		t.Errorf("store mutated through All(): %q", e.Body)
	}
}
