// Package analytics turns a user's diary entries into mood statistics.
package analytics

import (
	"sort"
	"time"

	"dailythought/internal/models"
)

// DefaultTrendWindow is the number of most recent entries included in the trend.
const DefaultTrendWindow = 7

type Options struct {
	// TrendWindow bounds the trend length. Zero means DefaultTrendWindow.
	TrendWindow int
	// Order breaks ties for the most common mood. Nil means models.Moods.
	Order []models.Mood
	// Today, when set, caps the streak anchor: entries dated after it are ignored for the streak.
	Today time.Time
	// Now stamps LastUpdated. Nil means time.Now.
	Now func() time.Time
}

func (o Options) trendWindow() int {
	if o.TrendWindow <= 0 {
		return DefaultTrendWindow
	}
	return o.TrendWindow
}

func (o Options) order() []models.Mood {
	if len(o.Order) == 0 {
		return models.Moods
	}
	return o.Order
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// Aggregate computes the analytics snapshot. Output depends only on the input set of
// entries and opts, except for LastUpdated.
func Aggregate(entries []models.DiaryEntry, opts Options) models.MoodAnalyticsSnapshot {
	snap := models.MoodAnalyticsSnapshot{
		MoodDistribution: map[models.Mood]int{},
		MoodTrend:        []models.TrendPoint{},
		LastUpdated:      opts.now(),
	}

	withMood := make([]models.DiaryEntry, 0, len(entries))
	for _, e := range entries {
		if e.HasMood() && !e.Day().IsZero() {
			withMood = append(withMood, e)
		}
	}
	if len(withMood) == 0 {
		return snap
	}

	snap.TotalEntries = len(withMood)
	for _, e := range withMood {
		snap.MoodDistribution[e.Mood]++
	}
	snap.MostCommonMood = mostCommon(snap.MoodDistribution, opts.order())
	snap.StreakDays = Streak(withMood, opts.Today)
	snap.MoodTrend = Trend(withMood, opts.trendWindow())
	return snap
}

// mostCommon picks the highest count; ties go to the mood ranked first in order.
// Moods missing from order rank after all listed ones, alphabetically.
func mostCommon(dist map[models.Mood]int, order []models.Mood) *models.Mood {
	rank := make(map[models.Mood]int, len(order))
	for i, m := range order {
		if _, seen := rank[m]; !seen {
			rank[m] = i
		}
	}
	rankOf := func(m models.Mood) int {
		if r, ok := rank[m]; ok {
			return r
		}
		return len(order)
	}

	var best models.Mood
	bestCount := 0
	for m, c := range dist {
		if c == 0 {
			continue
		}
		switch {
		case c > bestCount:
		case c == bestCount && rankOf(m) < rankOf(best):
		case c == bestCount && rankOf(m) == rankOf(best) && m < best:
		default:
			continue
		}
		best, bestCount = m, c
	}
	if bestCount == 0 {
		return nil
	}
	return &best
}

// Streak counts consecutive calendar days with at least one entry, walking backward from
// the most recent entry day. A non-zero today excludes entries dated after it.
func Streak(entries []models.DiaryEntry, today time.Time) int {
	days := make(map[time.Time]struct{}, len(entries))
	var latest time.Time
	for _, e := range entries {
		d := e.Day()
		if d.IsZero() {
			continue
		}
		if !today.IsZero() && d.After(truncateDay(today)) {
			continue
		}
		days[d] = struct{}{}
		if d.After(latest) {
			latest = d
		}
	}
	if latest.IsZero() {
		return 0
	}

	streak := 0
	for d := latest; ; d = d.AddDate(0, 0, -1) {
		if _, ok := days[d]; !ok {
			break
		}
		streak++
	}
	return streak
}

// Trend returns the most recent window entries in ascending date order.
func Trend(entries []models.DiaryEntry, window int) []models.TrendPoint {
	sorted := make([]models.DiaryEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})
	if window > 0 && len(sorted) > window {
		sorted = sorted[len(sorted)-window:]
	}

	out := make([]models.TrendPoint, 0, len(sorted))
	for _, e := range sorted {
		out = append(out, models.TrendPoint{Date: e.Date, Mood: e.Mood, Intensity: e.MoodIntensity})
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
