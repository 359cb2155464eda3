package models

import "strings"

type Mood string

const (
	MoodHappy    Mood = "happy"
	MoodExcited  Mood = "excited"
	MoodGrateful Mood = "grateful"
	MoodRelaxed  Mood = "relaxed"
	MoodContent  Mood = "content"
	MoodTired    Mood = "tired"
	MoodAnxious  Mood = "anxious"
	MoodSad      Mood = "sad"
	MoodAngry    Mood = "angry"
	MoodStressed Mood = "stressed"
)

const (
	DefaultMood      = MoodContent
	DefaultIntensity = 3
	MinIntensity     = 1
	MaxIntensity     = 5
)

// Moods is the canonical ordering of the mood enumeration. Aggregation tie-breaks follow it.
var Moods = []Mood{
	MoodHappy, MoodExcited, MoodGrateful, MoodRelaxed, MoodContent,
	MoodTired, MoodAnxious, MoodSad, MoodAngry, MoodStressed,
}

type moodInfo struct {
	label       string
	color       string
	description string
}

var moodTable = map[Mood]moodInfo{
	MoodHappy:    {"Happy", "#FFD700", "You tend to feel joyful and content."},
	MoodExcited:  {"Excited", "#FF8C00", "You experience enthusiasm and anticipation."},
	MoodGrateful: {"Grateful", "#9370DB", "You appreciate the positive aspects of life."},
	MoodRelaxed:  {"Relaxed", "#87CEFA", "You feel calm and at ease."},
	MoodContent:  {"Content", "#98FB98", "You experience satisfaction with your current state."},
	MoodTired:    {"Tired", "#A9A9A9", "You feel physically or mentally exhausted."},
	MoodAnxious:  {"Anxious", "#FFA07A", "You experience worry or unease."},
	MoodSad:      {"Sad", "#6495ED", "You feel sorrow or unhappiness."},
	MoodAngry:    {"Angry", "#FF6347", "You experience strong feelings of displeasure."},
	MoodStressed: {"Stressed", "#FF4500", "You feel mental or emotional tension."},
}

func (m Mood) Valid() bool {
	_, ok := moodTable[m]
	return ok
}

func (m Mood) String() string { return string(m) }

func (m Mood) Label() string {
	if info, ok := moodTable[m]; ok {
		return info.label
	}
	return string(m)
}

// Color is the hex color of the mood indicator. Unknown moods use content's color.
func (m Mood) Color() string {
	if info, ok := moodTable[m]; ok {
		return info.color
	}
	return moodTable[DefaultMood].color
}

func (m Mood) Description() string {
	if info, ok := moodTable[m]; ok {
		return info.description
	}
	return "Your mood varies."
}

// Rank is the position of the mood in the canonical ordering, or -1.
func (m Mood) Rank() int {
	for i, c := range Moods {
		if c == m {
			return i
		}
	}
	return -1
}

// ParseMood accepts a mood name in any case.
func ParseMood(s string) (Mood, bool) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	return m, m.Valid()
}

func ValidIntensity(i int) bool {
	return i >= MinIntensity && i <= MaxIntensity
}
