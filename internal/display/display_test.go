package display

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	colorful "github.com/lucasb-eyer/go-colorful"

	"dailythought/internal/models"
	"dailythought/internal/query"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestOpacity(t *testing.T) {
	cases := map[int]float64{-2: 0.6, 1: 0.6, 3: 0.8, 5: 1.0, 9: 1.0}
	for in, want := range cases {
		if got := Opacity(in); got < want-1e-9 || got > want+1e-9 {
			t.Errorf("Opacity(%d) = %v, want %v", in, got, want)
		}
	}
}

func TestShade(t *testing.T) {
	if got := Shade(models.MoodHappy, 5, Background).Hex(); got != "#ffd700" {
		t.Errorf("full intensity happy = %s", got)
	}
	if got := MoodColor("meh").Hex(); got != strings.ToLower(models.MoodContent.Color()) {
		t.Errorf("unknown mood color = %s", got)
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	_, _, dim := Shade(models.MoodSad, 1, Background).Hsl()
	_, _, bright := Shade(models.MoodSad, 5, Background).Hsl()
	if dim >= bright {
		t.Errorf("low intensity not dimmer on dark background: %v >= %v", dim, bright)
	}
	_, _, light := Shade(models.MoodSad, 1, white).Hsl()
	if light <= bright {
		t.Errorf("low intensity not lighter on light background: %v <= %v", light, bright)
	}
}

func TestBadge(t *testing.T) {
	if got := Badge(models.MoodTired, 2); got != "● Tired (2/5)" {
		t.Errorf("Badge = %q", got)
	}
	if got := Badge("", 0); got != "○ no mood" {
		t.Errorf("Badge(empty) = %q", got)
	}
}

func TestPreview(t *testing.T) {
	long := strings.Repeat("a", 50)
	cases := map[string]string{
		"short":             "short",
		"  first\nsecond  ": "first",
		long:                strings.Repeat("a", 39) + "…",
	}
	for in, want := range cases {
		if got := Preview(in); got != want {
			t.Errorf("Preview(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEntries(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	entries := []models.DiaryEntry{
		{ID: "a", Date: "2024-05-01", Body: "Today was good", Mood: models.MoodHappy, MoodIntensity: 4},
	}
	p.Entries(query.Result{Entries: entries, Term: "05", Order: query.Newest})

	out := buf.String()
	for _, want := range []string{"2024-05-01", "Happy (4/5)", "Today was good", `Found 1 entry matching "05"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	p.Entries(query.Result{Order: query.Oldest})
	if !strings.Contains(buf.String(), "none") || strings.Contains(buf.String(), "Found") {
		t.Errorf("empty output = %q", buf.String())
	}
}

func TestAnalytics(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.Analytics(models.MoodAnalyticsSnapshot{MoodDistribution: map[models.Mood]int{}})
	if !strings.Contains(buf.String(), "No mood data yet") {
		t.Errorf("empty analytics = %q", buf.String())
	}

	buf.Reset()
	happy := models.MoodHappy
	p.Analytics(models.MoodAnalyticsSnapshot{
		TotalEntries:     4,
		MoodDistribution: map[models.Mood]int{models.MoodHappy: 3, models.MoodSad: 1},
		MostCommonMood:   &happy,
		StreakDays:       1,
		MoodTrend:        []models.TrendPoint{{Date: "2024-05-03", Mood: models.MoodSad, Intensity: 2}},
		LastUpdated:      time.Now(),
	})
	out := buf.String()
	for _, want := range []string{"1 day", "75% of entries", "3 (75%)", "1 (25%)", "Sad (2/5)", happy.Description()} {
		if !strings.Contains(out, want) {
			t.Errorf("analytics missing %q:\n%s", want, out)
		}
	}
}
