// Package deletion implements the two-step confirm/execute protocol for removing an entry.
package deletion

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"dailythought/internal/client"
)

const deleteFailedMessage = "Failed to delete diary. Please try again."

type State int

const (
	Idle State = iota
	Requested
	Deleting
	Done
	Error
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Requested:
		return "requested"
	case Deleting:
		return "deleting"
	case Done:
		return "done"
	case Error:
		return "error"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

var (
	ErrNotRequested = errors.New("deletion was not requested")
	ErrInProgress   = errors.New("deletion already in progress")
	ErrFinished     = errors.New("entry already deleted")
)

type Deleter interface {
	DeleteEntry(ctx context.Context, id string) error
}

// Remover drops the entry from the local collection once the server has deleted it.
type Remover interface {
	Remove(id string) bool
}

type Option func(*Workflow)

func WithRemover(r Remover) Option { return func(w *Workflow) { w.store = r } }

// WithNavigate sets the callback run after a successful delete, typically to leave the
// entry's detail view.
func WithNavigate(fn func()) Option { return func(w *Workflow) { w.navigate = fn } }

func WithLogger(l *zap.Logger) Option { return func(w *Workflow) { w.logger = l } }

// Workflow guards the delete of one entry.
type Workflow struct {
	id       string
	deleter  Deleter
	store    Remover
	navigate func()
	logger   *zap.Logger

	mu      sync.Mutex
	state   State
	message string
}

func New(id string, d Deleter, opts ...Option) *Workflow {
	w := &Workflow{id: id, deleter: d, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Message is the error text from the last failed attempt.
func (w *Workflow) Message() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.message
}

// Prompting reports whether the confirmation prompt should be shown.
func (w *Workflow) Prompting() bool {
	return w.State() == Requested
}

// Request opens the confirmation prompt. Nothing is sent to the server.
func (w *Workflow) Request() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.state {
	case Deleting:
		return ErrInProgress
	case Done:
		return ErrFinished
	}
	w.state = Requested
	w.message = ""
	return nil
}

// Cancel closes the prompt. It is a no-op when no prompt is open.
func (w *Workflow) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == Requested {
		w.state = Cancelled
	}
}

// Confirm issues the delete. On failure the prompt is dismissed and the entry is left alone.
func (w *Workflow) Confirm(ctx context.Context) error {
	w.mu.Lock()
	switch w.state {
	case Requested:
	case Deleting:
		w.mu.Unlock()
		return ErrInProgress
	case Done:
		w.mu.Unlock()
		return ErrFinished
	default:
		w.mu.Unlock()
		return ErrNotRequested
	}
	w.state = Deleting
	w.mu.Unlock()

	err := w.deleter.DeleteEntry(ctx, w.id)

	w.mu.Lock()
	if err != nil {
		w.state = Error
		w.message = client.UserMessage(err, deleteFailedMessage)
		w.mu.Unlock()
		w.logger.Warn("delete failed", zap.String("entry_id", w.id), zap.Error(err))
		return err
	}
	w.state = Done
	w.mu.Unlock()

	if w.store != nil {
		w.store.Remove(w.id)
	}
	w.logger.Info("entry deleted", zap.String("entry_id", w.id))
	if w.navigate != nil {
		w.navigate()
	}
	return nil
}
