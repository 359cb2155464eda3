package models

import "time"

// DateLayout is the calendar-day format used for entry dates everywhere.
const DateLayout = "2006-01-02"

type DiaryEntry struct {
	ID            string    `db:"id" json:"id"`
	OwnerID       int       `db:"owner_id" json:"ownerId"`
	Date          string    `db:"entry_date" json:"date"` // YYYY-MM-DD
	Body          string    `db:"body" json:"body"`     // Encrypted in DB when a key is configured
	Mood          Mood      `db:"mood" json:"mood"`
	MoodIntensity int       `db:"mood_intensity" json:"moodIntensity"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// HasMood reports whether the entry carries usable mood data.
func (e DiaryEntry) HasMood() bool {
	return e.Mood.Valid()
}

// Day parses the entry date. The zero time is returned for malformed dates.
func (e DiaryEntry) Day() time.Time {
	d, err := time.Parse(DateLayout, e.Date)
	if err != nil {
		return time.Time{}
	}
	return d
}

// NormalizeMood fills the mood pair with defaults so an entry never carries a partial pair.
func (e *DiaryEntry) NormalizeMood() {
	if !e.Mood.Valid() {
		e.Mood = DefaultMood
	}
	if !ValidIntensity(e.MoodIntensity) {
		e.MoodIntensity = DefaultIntensity
	}
}

// EntryChanges holds the mutable fields of an entry.
type EntryChanges struct {
	Body          string `json:"body"`
	Mood          Mood   `json:"mood"`
	MoodIntensity int    `json:"moodIntensity"`
}

// NewEntry is the payload for creating an entry.
type NewEntry struct {
	Date          string `json:"date"`
	Body          string `json:"body"`
	Mood          Mood   `json:"mood"`
	MoodIntensity int    `json:"moodIntensity"`
}

type TrendPoint struct {
	Date      string `json:"date"`
	Mood      Mood   `json:"mood"`
	Intensity int    `json:"intensity"`
}

type MoodAnalyticsSnapshot struct {
	TotalEntries     int          `json:"totalEntries"`
	MoodDistribution map[Mood]int `json:"moodDistribution"`
	MostCommonMood   *Mood        `json:"mostCommonMood,omitempty"`
	StreakDays       int          `json:"streakDays"`
	MoodTrend        []TrendPoint `json:"moodTrend"`
	LastUpdated      time.Time    `json:"lastUpdated"`
}

// IsEmpty reports whether the snapshot has no mood data; consumers render an empty state.
func (s MoodAnalyticsSnapshot) IsEmpty() bool {
	return s.TotalEntries == 0
}

// Percentages returns the rounded share of each mood present in the distribution.
func (s MoodAnalyticsSnapshot) Percentages() map[Mood]int {
	out := make(map[Mood]int, len(s.MoodDistribution))
	if s.TotalEntries == 0 {
		return out
	}
	for m, c := range s.MoodDistribution {
		out[m] = roundPercent(c, s.TotalEntries)
	}
	return out
}

// MostCommonShare is the rounded percentage of entries carrying the most common mood.
func (s MoodAnalyticsSnapshot) MostCommonShare() int {
	if s.TotalEntries == 0 || s.MostCommonMood == nil {
		return 0
	}
	return roundPercent(s.MoodDistribution[*s.MostCommonMood], s.TotalEntries)
}

func roundPercent(part, total int) int {
	return (part*200 + total) / (2 * total)
}
