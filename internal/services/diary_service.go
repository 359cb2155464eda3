package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"dailythought/internal/models"
)

// DiaryStore is the persistence the diary service needs; repository.DiaryRepository implements it.
type DiaryStore interface {
	EntryLister
	Get(ctx context.Context, ownerID int, id string) (models.DiaryEntry, error)
	Create(ctx context.Context, e *models.DiaryEntry) error
	Update(ctx context.Context, ownerID int, id string, c models.EntryChanges, at time.Time) (models.DiaryEntry, error)
	Delete(ctx context.Context, ownerID int, id string) error
}

// ValidationError is returned for input the client must correct.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }

type DiaryService struct {
	store        DiaryStore
	enc          *EncryptionService
	analytics    *AnalyticsService
	moodTracking bool
	clock        clockwork.Clock
	metrics      *Metrics
	logger       *zap.Logger
}

type DiaryOption func(*DiaryService)

// WithMoodTracking(false) stores the default mood pair regardless of what the client sends.
func WithMoodTracking(enabled bool) DiaryOption {
	return func(s *DiaryService) { s.moodTracking = enabled }
}
func WithDiaryClock(c clockwork.Clock) DiaryOption { return func(s *DiaryService) { s.clock = c } }
func WithDiaryMetrics(m *Metrics) DiaryOption      { return func(s *DiaryService) { s.metrics = m } }
func WithDiaryLogger(l *zap.Logger) DiaryOption    { return func(s *DiaryService) { s.logger = l } }

// WithAnalytics invalidates cached snapshots after each write.
func WithAnalytics(a *AnalyticsService) DiaryOption {
	return func(s *DiaryService) { s.analytics = a }
}

func NewDiaryService(store DiaryStore, enc *EncryptionService, opts ...DiaryOption) *DiaryService {
	s := &DiaryService{
		store:        store,
		enc:          enc,
		moodTracking: true,
		clock:        clockwork.NewRealClock(),
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *DiaryService) List(ctx context.Context, ownerID int) ([]models.DiaryEntry, error) {
	entries, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if err := s.enc.DecryptEntry(&entries[i]); err != nil {
			return nil, fmt.Errorf("decrypt entry %s: %w", entries[i].ID, err)
		}
	}
	return entries, nil
}

func (s *DiaryService) Get(ctx context.Context, ownerID int, id string) (models.DiaryEntry, error) {
	e, err := s.store.Get(ctx, ownerID, id)
	if err != nil {
		return models.DiaryEntry{}, err
	}
	if err := s.enc.DecryptEntry(&e); err != nil {
		return models.DiaryEntry{}, fmt.Errorf("decrypt entry %s: %w", id, err)
	}
	return e, nil
}

func (s *DiaryService) Create(ctx context.Context, ownerID int, in models.NewEntry) (models.DiaryEntry, error) {
	if err := s.validateDate(in.Date); err != nil {
		return models.DiaryEntry{}, err
	}
	if strings.TrimSpace(in.Body) == "" {
		return models.DiaryEntry{}, &ValidationError{Field: "body", Message: "body is required"}
	}
	mood, intensity, err := s.moodPair(in.Mood, in.MoodIntensity)
	if err != nil {
		return models.DiaryEntry{}, err
	}

	now := s.clock.Now().UTC()
	e := models.DiaryEntry{
		OwnerID:       ownerID,
		Date:          in.Date,
		Body:          in.Body,
		Mood:          mood,
		MoodIntensity: intensity,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	stored := e
	if stored.Body, err = s.enc.EncryptBody(in.Body); err != nil {
		return models.DiaryEntry{}, fmt.Errorf("encrypt body: %w", err)
	}
	err = s.store.Create(ctx, &stored)
	s.metrics.write("create", err)
	if err != nil {
		return models.DiaryEntry{}, err
	}
	e.ID = stored.ID
	s.invalidate(ownerID)
	s.logger.Info("entry created", zap.Int("user_id", ownerID), zap.String("entry_id", e.ID))
	return e, nil
}

func (s *DiaryService) Update(ctx context.Context, ownerID int, id string, c models.EntryChanges) (models.DiaryEntry, error) {
	mood, intensity, err := s.moodPair(c.Mood, c.MoodIntensity)
	if err != nil {
		return models.DiaryEntry{}, err
	}
	body, err := s.enc.EncryptBody(c.Body)
	if err != nil {
		return models.DiaryEntry{}, fmt.Errorf("encrypt body: %w", err)
	}
	updated, err := s.store.Update(ctx, ownerID, id, models.EntryChanges{Body: body, Mood: mood, MoodIntensity: intensity}, s.clock.Now().UTC())
	s.metrics.write("update", err)
	if err != nil {
		return models.DiaryEntry{}, err
	}
	updated.Body = c.Body
	s.invalidate(ownerID)
	s.logger.Info("entry updated", zap.Int("user_id", ownerID), zap.String("entry_id", id))
	return updated, nil
}

func (s *DiaryService) Delete(ctx context.Context, ownerID int, id string) error {
	err := s.store.Delete(ctx, ownerID, id)
	s.metrics.write("delete", err)
	if err != nil {
		return err
	}
	s.invalidate(ownerID)
	s.logger.Info("entry deleted", zap.Int("user_id", ownerID), zap.String("entry_id", id))
	return nil
}

// validateDate allows one day of lead over the server's UTC date for clients east of UTC.
func (s *DiaryService) validateDate(date string) error {
	if date == "" {
		return &ValidationError{Field: "date", Message: "date is required"}
	}
	d, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return &ValidationError{Field: "date", Message: "expected YYYY-MM-DD"}
	}
	limit := s.clock.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 1)
	if d.After(limit) {
		return &ValidationError{Field: "date", Message: "date cannot be in the future"}
	}
	return nil
}

// moodPair resolves the stored mood pair. Zero values take the defaults.
func (s *DiaryService) moodPair(m models.Mood, intensity int) (models.Mood, int, error) {
	if !s.moodTracking {
		return models.DefaultMood, models.DefaultIntensity, nil
	}
	if m == "" {
		m = models.DefaultMood
	}
	if !m.Valid() {
		return "", 0, &ValidationError{Field: "mood", Message: fmt.Sprintf("unknown mood %q", m)}
	}
	if intensity == 0 {
		intensity = models.DefaultIntensity
	}
	if !models.ValidIntensity(intensity) {
		return "", 0, &ValidationError{Field: "moodIntensity", Message: "intensity must be between 1 and 5"}
	}
	return m, intensity, nil
}

func (s *DiaryService) invalidate(ownerID int) {
	if s.analytics != nil {
		s.analytics.Invalidate(ownerID)
	}
}
