package models

import (
	"fmt"
	"strings"
	"time"
)

// Mood is the single mood recorded for a day.
type Mood string

const (
	MoodHappy      Mood = "happy"
	MoodSad        Mood = "sad"
	MoodNeutral    Mood = "neutral"
	MoodExcited    Mood = "excited"
	MoodMotivated  Mood = "motivated"
	MoodStressed   Mood = "stressed"
	MoodCalm       Mood = "calm"
	MoodFun        Mood = "fun"
	MoodAnxious    Mood = "anxious"
	MoodGrateful   Mood = "grateful"
	MoodProductive Mood = "productive"
	MoodTired      Mood = "tired"
	MoodOther      Mood = "other"
)

// Moods lists every accepted mood in display order.
var Moods = []Mood{
	MoodHappy, MoodSad, MoodNeutral, MoodExcited, MoodMotivated, MoodStressed, MoodCalm,
	MoodFun, MoodAnxious, MoodGrateful, MoodProductive, MoodTired, MoodOther,
}

// Valid reports whether m is one of the enumerated moods. The empty mood is not valid;
// callers treat it as "absent".
func (m Mood) Valid() bool {
	for _, known := range Moods {
		if m == known {
			return true
		}
	}
	return false
}

// ParseMood parses a mood name case-insensitively. An empty string yields an absent mood.
func ParseMood(s string) (Mood, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	m := Mood(s)
	if !m.Valid() {
		return "", fmt.Errorf("unknown mood %q", s)
	}
	return m, nil
}

type Meeting struct {
	Title string `json:"title"`
	Time  string `json:"time"`
	Notes string `json:"notes,omitempty"`
}

type Task struct {
	Caption string `json:"caption"`
	URL     string `json:"url,omitempty"`
}

// Entry is one calendar day's recorded activity. Date is always YYYY-MM-DD.
// Summary is generated by the backend and is never sent back on save.
type Entry struct {
	ID           string    `json:"id"`
	Date         string    `json:"date"`
	Meetings     []Meeting `json:"meetings"`
	Tasks        []Task    `json:"tasks"`
	Mood         Mood      `json:"mood,omitempty"`
	JournalNotes string    `json:"journalNotes"`
	Summary      string    `json:"summary,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty"`
}

// HasJournal reports whether the entry carries any journal text.
func (e Entry) HasJournal() bool {
	return strings.TrimSpace(e.JournalNotes) != ""
}

// Input returns the user-authored fields of the entry as a save payload.
func (e Entry) Input() EntryInput {
	return EntryInput{
		Date:         e.Date,
		Meetings:     append([]Meeting{}, e.Meetings...),
		Tasks:        append([]Task{}, e.Tasks...),
		Mood:         e.Mood,
		JournalNotes: e.JournalNotes,
	}
}

// EntryInput is the payload for creating or fully replacing an entry.
type EntryInput struct {
	Date         string    `json:"date"`
	Meetings     []Meeting `json:"meetings"`
	Tasks        []Task    `json:"tasks"`
	Mood         Mood      `json:"mood,omitempty"`
	JournalNotes string    `json:"journalNotes"`
}
