package client

import (
	"strings"
	"time"

	"dailythought/internal/models"
)

// ValidateNewEntry checks a create request the way the entry form does: date and body are
// required, the date may not be in the future, and the mood pair must be in range.
func ValidateNewEntry(in models.NewEntry, today time.Time) error {
	if strings.TrimSpace(in.Date) == "" {
		return &ValidationError{Field: "date", Message: "date is required"}
	}
	d, err := time.Parse(models.DateLayout, in.Date)
	if err != nil {
		return &ValidationError{Field: "date", Message: "expected YYYY-MM-DD"}
	}
	y, m, day := today.Date()
	if d.After(time.Date(y, m, day, 0, 0, 0, 0, time.UTC)) {
		return &ValidationError{Field: "date", Message: "date cannot be in the future"}
	}
	if strings.TrimSpace(in.Body) == "" {
		return &ValidationError{Field: "body", Message: "body is required"}
	}
	return ValidateChanges(models.EntryChanges{Body: in.Body, Mood: in.Mood, MoodIntensity: in.MoodIntensity})
}

// ValidateChanges checks the mutable fields of an entry.
func ValidateChanges(c models.EntryChanges) error {
	if !c.Mood.Valid() {
		return &ValidationError{Field: "mood", Message: "unknown mood " + string(c.Mood)}
	}
	if !models.ValidIntensity(c.MoodIntensity) {
		return &ValidationError{Field: "moodIntensity", Message: "intensity must be between 1 and 5"}
	}
	return nil
}
