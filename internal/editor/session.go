// Package editor drives the view/edit/save lifecycle of a single diary entry, including the
// debounced autosave.
package editor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"dailythought/internal/client"
	"dailythought/internal/models"
)

const (
	DefaultAutosaveDelay = 60 * time.Second
	DefaultStatusWindow  = 3 * time.Second

	saveFailedMessage = "Failed to save diary. Please try again."
)

var (
	ErrNotEditing   = errors.New("entry is not being edited")
	ErrSaveInFlight = errors.New("a save for this entry is already in progress")
	ErrClosed       = errors.New("editor session closed")
)

// Persister submits the mutable fields of an entry and returns the stored representation.
type Persister interface {
	UpdateEntry(ctx context.Context, id string, changes models.EntryChanges) (models.DiaryEntry, error)
}

// Committer receives the server's copy of an entry after a successful save.
type Committer interface {
	Put(e models.DiaryEntry)
}

type Snapshot struct {
	State   State
	Entry   models.DiaryEntry
	Draft   models.EntryChanges
	Counts  Counts
	Dirty   bool
	Message string
}

type trigger int

const (
	manual trigger = iota
	autosave
)

func (t trigger) String() string {
	if t == autosave {
		return "autosave"
	}
	return "manual"
}

type Option func(*Session)

func WithClock(c clockwork.Clock) Option { return func(s *Session) { s.clock = c } }

func WithAutosaveDelay(d time.Duration) Option { return func(s *Session) { s.autosaveDelay = d } }

func WithStatusWindow(d time.Duration) Option { return func(s *Session) { s.statusWindow = d } }

// WithGuard shares a single-flight guard between sessions. Sessions default to a
// process-wide guard.
func WithGuard(g *Guard) Option { return func(s *Session) { s.guard = g } }

func WithCommitter(c Committer) Option { return func(s *Session) { s.store = c } }

func WithLogger(l *zap.Logger) Option { return func(s *Session) { s.logger = l } }

// WithOnChange registers an observer called after every transition, outside the session lock.
func WithOnChange(fn func(Snapshot)) Option { return func(s *Session) { s.onChange = fn } }

// WithContext sets the context used by autosaves.
func WithContext(ctx context.Context) Option { return func(s *Session) { s.ctx = ctx } }

// Session is the edit state machine for one loaded entry.
type Session struct {
	id            string
	persist       Persister
	store         Committer
	guard         *Guard
	clock         clockwork.Clock
	logger        *zap.Logger
	onChange      func(Snapshot)
	ctx           context.Context
	autosaveDelay time.Duration
	statusWindow  time.Duration

	mu        sync.Mutex
	state     State
	committed models.DiaryEntry
	draft     models.EntryChanges
	message   string
	closed    bool

	autosaveTimer clockwork.Timer
	autosaveGen   uint64
	statusTimer   clockwork.Timer
	statusGen     uint64
}

func New(entry models.DiaryEntry, persist Persister, opts ...Option) *Session {
	s := &Session{
		id:            entry.ID,
		persist:       persist,
		guard:         defaultGuard,
		clock:         clockwork.NewRealClock(),
		logger:        zap.NewNop(),
		ctx:           context.Background(),
		autosaveDelay: DefaultAutosaveDelay,
		statusWindow:  DefaultStatusWindow,
		state:         Viewing,
		committed:     entry,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.draft = changesOf(entry)
	return s
}

func changesOf(e models.DiaryEntry) models.EntryChanges {
	c := models.EntryChanges{Body: e.Body, Mood: e.Mood, MoodIntensity: e.MoodIntensity}
	if !c.Mood.Valid() {
		c.Mood = models.DefaultMood
	}
	if !models.ValidIntensity(c.MoodIntensity) {
		c.MoodIntensity = models.DefaultIntensity
	}
	return c
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		State:   s.state,
		Entry:   s.committed,
		Draft:   s.draft,
		Counts:  CountText(s.draft.Body),
		Dirty:   s.dirtyLocked(),
		Message: s.message,
	}
}

func (s *Session) dirtyLocked() bool {
	return s.draft != changesOf(s.committed)
}

// Edit enters edit mode, seeding the working copy from the committed entry.
func (s *Session) Edit() error {
	s.mu.Lock()
	switch {
	case s.closed:
		s.mu.Unlock()
		return ErrClosed
	case s.state.editable():
		s.mu.Unlock()
		return nil
	}
	s.stopStatusLocked()
	s.state = Editing
	s.message = ""
	s.draft = changesOf(s.committed)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

func (s *Session) SetBody(body string) error {
	return s.mutate(func(d *models.EntryChanges) error {
		d.Body = body
		return nil
	})
}

func (s *Session) SetMood(m models.Mood) error {
	return s.mutate(func(d *models.EntryChanges) error {
		if !m.Valid() {
			return &client.ValidationError{Field: "mood", Message: "unknown mood " + string(m)}
		}
		d.Mood = m
		return nil
	})
}

func (s *Session) SetIntensity(i int) error {
	return s.mutate(func(d *models.EntryChanges) error {
		if !models.ValidIntensity(i) {
			return &client.ValidationError{Field: "moodIntensity", Message: "intensity must be between 1 and 5"}
		}
		d.MoodIntensity = i
		return nil
	})
}

func (s *Session) mutate(apply func(*models.EntryChanges) error) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if !s.state.editable() {
		s.mu.Unlock()
		return ErrNotEditing
	}
	if err := apply(&s.draft); err != nil {
		s.mu.Unlock()
		return err
	}
	s.resetAutosaveLocked()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

// Save submits the working copy. It returns ErrSaveInFlight without contacting the server
// when another save for the same entry has not resolved yet.
func (s *Session) Save(ctx context.Context) error {
	return s.save(ctx, manual)
}

// Cancel discards the working copy and returns to viewing.
func (s *Session) Cancel() error {
	s.mu.Lock()
	switch {
	case s.closed:
		s.mu.Unlock()
		return ErrClosed
	case s.state == Saving:
		s.mu.Unlock()
		return ErrSaveInFlight
	case !s.state.editable():
		s.mu.Unlock()
		return ErrNotEditing
	}
	s.stopAutosaveLocked()
	s.stopStatusLocked()
	s.state = Viewing
	s.message = ""
	s.draft = changesOf(s.committed)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

// Close stops all timers. Saves that resolve afterwards are discarded.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.stopAutosaveLocked()
	s.stopStatusLocked()
}

func (s *Session) save(ctx context.Context, t trigger) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	switch s.state {
	case Editing, Error:
	case Saving:
		s.mu.Unlock()
		s.logger.Debug("save dropped", zap.String("entry_id", s.ID()), zap.Stringer("trigger", t))
		return ErrSaveInFlight
	default:
		s.mu.Unlock()
		return ErrNotEditing
	}
	if t == autosave && !s.dirtyLocked() {
		s.mu.Unlock()
		return nil
	}
	release, ok := s.guard.TryAcquire(s.id)
	if !ok {
		s.mu.Unlock()
		s.logger.Debug("save dropped", zap.String("entry_id", s.ID()), zap.Stringer("trigger", t))
		return ErrSaveInFlight
	}
	defer release()

	s.stopAutosaveLocked()
	s.stopStatusLocked()
	s.state = Saving
	s.message = ""
	sent := s.draft
	id := s.id
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)

	updated, err := s.persist.UpdateEntry(ctx, id, sent)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.logger.Debug("save result discarded", zap.String("entry_id", id), zap.Error(err))
		return ErrClosed
	}
	if err != nil {
		s.state = Error
		s.message = client.UserMessage(err, saveFailedMessage)
		s.scheduleStatusLocked(Editing)
		snap = s.snapshotLocked()
		s.mu.Unlock()

		s.logger.Warn("save failed", zap.String("entry_id", id), zap.Stringer("trigger", t), zap.Error(err))
		s.notify(snap)
		return err
	}

	s.committed = updated
	if s.store != nil {
		s.store.Put(updated)
	}
	if s.draft == sent {
		s.stopAutosaveLocked()
		s.state = Saved
		s.draft = changesOf(updated)
		s.scheduleStatusLocked(Viewing)
	} else {
		// Typed while the save was in flight: keep editing the newer text.
		s.state = Editing
		s.resetAutosaveLocked()
	}
	snap = s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Info("entry saved", zap.String("entry_id", id), zap.Stringer("trigger", t))
	s.notify(snap)
	return nil
}

func (s *Session) resetAutosaveLocked() {
	s.stopAutosaveLocked()
	if s.autosaveDelay <= 0 {
		return
	}
	gen := s.autosaveGen
	s.autosaveTimer = s.clock.AfterFunc(s.autosaveDelay, func() { s.fireAutosave(gen) })
}

func (s *Session) stopAutosaveLocked() {
	s.autosaveGen++
	if s.autosaveTimer != nil {
		s.autosaveTimer.Stop()
		s.autosaveTimer = nil
	}
}

func (s *Session) fireAutosave(gen uint64) {
	s.mu.Lock()
	stale := gen != s.autosaveGen || s.closed
	s.mu.Unlock()
	if stale {
		return
	}
	if err := s.save(s.ctx, autosave); err != nil && !errors.Is(err, ErrSaveInFlight) {
		s.logger.Debug("autosave did not complete", zap.String("entry_id", s.ID()), zap.Error(err))
	}
}

// scheduleStatusLocked clears the transient Saved/Error indicator after the status window.
func (s *Session) scheduleStatusLocked(next State) {
	s.stopStatusLocked()
	gen := s.statusGen
	s.statusTimer = s.clock.AfterFunc(s.statusWindow, func() { s.clearStatus(gen, next) })
}

func (s *Session) stopStatusLocked() {
	s.statusGen++
	if s.statusTimer != nil {
		s.statusTimer.Stop()
		s.statusTimer = nil
	}
}

func (s *Session) clearStatus(gen uint64, next State) {
	s.mu.Lock()
	if gen != s.statusGen || s.closed {
		s.mu.Unlock()
		return
	}
	s.statusTimer = nil
	s.state = next
	s.message = ""
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
}

func (s *Session) notify(snap Snapshot) {
	if s.onChange != nil {
		s.onChange(snap)
	}
}
