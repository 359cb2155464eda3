// Package entrystore holds the client's view of a user's entries and the entry being viewed.
package entrystore

import (
	"sync"

	"dailythought/internal/models"
)

// Store keeps the entry collection in insertion order, keyed by id. Every mutation bumps
// Version so readers can memoize derived views.
type Store struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]models.DiaryEntry
	current string
	version uint64
}

func New() *Store {
	return &Store{entries: make(map[string]models.DiaryEntry)}
}

// Replace swaps the whole collection for a fresh server listing. Duplicate ids keep the
// first position and the last value.
func (s *Store) Replace(entries []models.DiaryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = s.order[:0]
	s.entries = make(map[string]models.DiaryEntry, len(entries))
	for _, e := range entries {
		if _, dup := s.entries[e.ID]; !dup {
			s.order = append(s.order, e.ID)
		}
		s.entries[e.ID] = e
	}
	if _, ok := s.entries[s.current]; !ok {
		s.current = ""
	}
	s.version++
}

// Put replaces an entry in place, or appends it when the id is new.
func (s *Store) Put(e models.DiaryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[e.ID]; !ok {
		s.order = append(s.order, e.ID)
	}
	s.entries[e.ID] = e
	s.version++
}

// Remove deletes an entry. It reports whether the entry was present.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return false
	}
	delete(s.entries, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.current == id {
		s.current = ""
	}
	s.version++
	return true
}

func (s *Store) Get(id string) (models.DiaryEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	return e, ok
}

// All returns a copy of the collection in insertion order.
func (s *Store) All() []models.DiaryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.DiaryEntry, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.entries[id])
	}
	return out
}

// Snapshot returns the collection together with the version it was read at.
func (s *Store) Snapshot() ([]models.DiaryEntry, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.DiaryEntry, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.entries[id])
	}
	return out, s.version
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Load makes e the current entry, adding it to the collection when needed.
func (s *Store) Load(e models.DiaryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[e.ID]; !ok {
		s.order = append(s.order, e.ID)
	}
	s.entries[e.ID] = e
	s.current = e.ID
	s.version++
}

// Current returns the entry being viewed, if any.
func (s *Store) Current() (models.DiaryEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == "" {
		return models.DiaryEntry{}, false
	}
	e, ok := s.entries[s.current]
	return e, ok
}
