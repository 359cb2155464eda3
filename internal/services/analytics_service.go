package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"dailythought/internal/analytics"
	"dailythought/internal/models"
)

type EntryLister interface {
	ListByOwner(ctx context.Context, ownerID int) ([]models.DiaryEntry, error)
}

// AnalyticsService serves mood snapshots, caching them per user and day until the user
// writes again or the TTL lapses.
type AnalyticsService struct {
	entries EntryLister
	cache   *cache.Cache
	window  int
	clock   clockwork.Clock
	metrics *Metrics
	logger  *zap.Logger
}

type AnalyticsOption func(*AnalyticsService)

func WithAnalyticsClock(c clockwork.Clock) AnalyticsOption {
	return func(s *AnalyticsService) { s.clock = c }
}

func WithAnalyticsMetrics(m *Metrics) AnalyticsOption {
	return func(s *AnalyticsService) { s.metrics = m }
}

func WithAnalyticsLogger(l *zap.Logger) AnalyticsOption {
	return func(s *AnalyticsService) { s.logger = l }
}

func NewAnalyticsService(entries EntryLister, trendWindow int, ttl time.Duration, opts ...AnalyticsOption) *AnalyticsService {
	s := &AnalyticsService{
		entries: entries,
		cache:   cache.New(ttl, 2*ttl),
		window:  trendWindow,
		clock:   clockwork.NewRealClock(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func cacheKey(ownerID int, today time.Time) string {
	return strconv.Itoa(ownerID) + ":" + today.Format(models.DateLayout)
}

// Snapshot aggregates the owner's entries. A zero today means the server's current date.
func (s *AnalyticsService) Snapshot(ctx context.Context, ownerID int, today time.Time) (models.MoodAnalyticsSnapshot, error) {
	if today.IsZero() {
		today = s.clock.Now().UTC()
	}
	key := cacheKey(ownerID, today)
	if v, found := s.cache.Get(key); found {
		s.lookup("hit")
		return v.(models.MoodAnalyticsSnapshot), nil
	}
	s.lookup("miss")

	start := s.clock.Now()
	entries, err := s.entries.ListByOwner(ctx, ownerID)
	if err != nil {
		return models.MoodAnalyticsSnapshot{}, fmt.Errorf("load entries for analytics: %w", err)
	}
	snap := analytics.Aggregate(entries, analytics.Options{
		TrendWindow: s.window,
		Today:       today,
		Now:         s.clock.Now,
	})
	if s.metrics != nil {
		s.metrics.AggregationDuration.Observe(s.clock.Since(start).Seconds())
	}
	s.cache.Set(key, snap, cache.DefaultExpiration)
	s.logger.Debug("analytics computed", zap.Int("user_id", ownerID), zap.Int("total_entries", snap.TotalEntries))
	return snap, nil
}

// Invalidate drops every cached snapshot of the owner.
func (s *AnalyticsService) Invalidate(ownerID int) {
	prefix := strconv.Itoa(ownerID) + ":"
	for key := range s.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			s.cache.Delete(key)
		}
	}
}

func (s *AnalyticsService) lookup(result string) {
	if s.metrics != nil {
		s.metrics.AnalyticsLookups.WithLabelValues(result).Inc()
	}
}
