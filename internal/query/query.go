// Package query filters and sorts a user's entries for the dashboard list.
package query

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"dailythought/internal/models"
)

type SortOrder string

const (
	Newest SortOrder = "newest"
	Oldest SortOrder = "oldest"
)

// ParseSortOrder maps user input to a sort order; anything unrecognised is Newest.
func ParseSortOrder(s string) SortOrder {
	if SortOrder(strings.ToLower(strings.TrimSpace(s))) == Oldest {
		return Oldest
	}
	return Newest
}

func (o SortOrder) Toggle() SortOrder {
	if o == Oldest {
		return Newest
	}
	return Oldest
}

func (o SortOrder) Label() string {
	if o == Oldest {
		return "Oldest First"
	}
	return "Newest First"
}

// Apply filters entries whose date text contains term (case-insensitive) and sorts them by
// date. Equal dates keep their input order. The input slice is not modified.
func Apply(entries []models.DiaryEntry, term string, order SortOrder) []models.DiaryEntry {
	needle := strings.ToLower(strings.TrimSpace(term))

	out := make([]models.DiaryEntry, 0, len(entries))
	for _, e := range entries {
		if needle == "" || strings.Contains(strings.ToLower(e.Date), needle) {
			out = append(out, e)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Day(), out[j].Day()
		if order == Oldest {
			return a.Before(b)
		}
		return a.After(b)
	})
	return out
}

type Result struct {
	Entries []models.DiaryEntry
	Term    string
	Order   SortOrder
}

func (r Result) Count() int { return len(r.Entries) }

// Summary is the "Found N entries" line shown under an active search, empty otherwise.
func (r Result) Summary() string {
	term := strings.TrimSpace(r.Term)
	if term == "" {
		return ""
	}
	noun := "entries"
	if len(r.Entries) == 1 {
		noun = "entry"
	}
	return fmt.Sprintf("Found %d %s matching %q", len(r.Entries), noun, term)
}

// Source is the collection the engine reads; entrystore.Store satisfies it.
type Source interface {
	Snapshot() ([]models.DiaryEntry, uint64)
}

// Engine re-derives the dashboard view from its source, reusing the previous result while
// the collection version, term and order are unchanged.
type Engine struct {
	src Source

	mu      sync.Mutex
	term    string
	order   SortOrder
	memo    *Result
	memoVer uint64
	computs int
}

func NewEngine(src Source) *Engine {
	return &Engine{src: src, order: Newest}
}

func (e *Engine) SetTerm(term string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.term = term
}

func (e *Engine) SetOrder(order SortOrder) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.order = order
}

// ToggleOrder flips the sort order and returns the new one.
func (e *Engine) ToggleOrder() SortOrder {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.order = e.order.Toggle()
	return e.order
}

func (e *Engine) Result() Result {
	entries, ver := e.src.Snapshot()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.memo != nil && e.memoVer == ver && e.memo.Term == e.term && e.memo.Order == e.order {
		return *e.memo
	}
	r := Result{Entries: Apply(entries, e.term, e.order), Term: e.term, Order: e.order}
	e.memo, e.memoVer = &r, ver
	e.computs++
	return r
}
