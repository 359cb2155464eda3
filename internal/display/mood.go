// Package display renders entries, moods and analytics for the terminal.
package display

import (
	"github.com/fatih/color"
	colorful "github.com/lucasb-eyer/go-colorful"

	"dailythought/internal/models"
)

// Background is the terminal color that mood swatches are shaded against.
var Background = colorful.Color{R: 0, G: 0, B: 0}

// MoodColor is the base color of a mood; unknown moods take content's color.
func MoodColor(m models.Mood) colorful.Color {
	c, err := colorful.Hex(m.Color())
	if err != nil {
		c, _ = colorful.Hex(models.DefaultMood.Color())
	}
	return c
}

// Opacity maps an intensity onto 0.6..1.0. Out of range intensities are clamped.
func Opacity(intensity int) float64 {
	if intensity < models.MinIntensity {
		intensity = models.MinIntensity
	}
	if intensity > models.MaxIntensity {
		intensity = models.MaxIntensity
	}
	return 0.5 + float64(intensity)*0.1
}

// Shade composites the mood color over bg at the intensity's opacity.
func Shade(m models.Mood, intensity int, bg colorful.Color) colorful.Color {
	return bg.BlendRgb(MoodColor(m), Opacity(intensity)).Clamped()
}

func swatch(m models.Mood, intensity int) *color.Color {
	r, g, b := Shade(m, intensity, Background).RGB255()
	return color.RGB(int(r), int(g), int(b))
}

// Badge is the colored "● Label (n/5)" marker for an entry's mood.
func Badge(m models.Mood, intensity int) string {
	if !m.Valid() {
		return color.New(color.Faint).Sprint("○ no mood")
	}
	return swatch(m, intensity).Sprintf("● %s (%d/5)", m.Label(), intensity)
}
