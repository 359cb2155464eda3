package editor

import (
	"sync"

	"golang.org/x/sync/semaphore"
)

// Guard admits at most one in-flight save per entry id. A caller that finds a save already
// running is turned away rather than queued.
type Guard struct {
	mu   sync.Mutex
	sems map[string]*semaphore.Weighted
}

func NewGuard() *Guard {
	return &Guard{sems: make(map[string]*semaphore.Weighted)}
}

// TryAcquire claims the save slot for id. The returned release must be called once the save
// has resolved.
func (g *Guard) TryAcquire(id string) (release func(), ok bool) {
	g.mu.Lock()
	sem, found := g.sems[id]
	if !found {
		sem = semaphore.NewWeighted(1)
		g.sems[id] = sem
	}
	g.mu.Unlock()

	if !sem.TryAcquire(1) {
		return nil, false
	}
	var once sync.Once
	return func() { once.Do(func() { sem.Release(1) }) }, true
}

var defaultGuard = NewGuard()
