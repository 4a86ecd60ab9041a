package calendar

import (
	"strconv"

	"github.com/julianstephens/lifecal/internal/models"
)

// Status is the visual classification of a day cell.
type Status int

const (
	StatusNoEntry Status = iota
	StatusHasEntry
	StatusToday
	StatusFuture
)

func (s Status) String() string {
	switch s {
	case StatusHasEntry:
		return "Has Entry"
	case StatusToday:
		return "Today"
	case StatusFuture:
		return "Future"
	default:
		return "No Entry"
	}
}

// StatusOf classifies date relative to today. Both are YYYY-MM-DD, which
// order lexically. Future wins over everything, then today over hasEntry.
func StatusOf(date, today string, hasEntry bool) Status {
	switch {
	case date > today:
		return StatusFuture
	case date == today:
		return StatusToday
	case hasEntry:
		return StatusHasEntry
	default:
		return StatusNoEntry
	}
}

// Badges summarize an entry inside its day cell.
type Badges struct {
	HasEntry bool
	Mood     models.Mood
	Meetings int
	Tasks    int
	Journal  bool
	Summary  bool
}

// BadgesFor derives badges from e; a nil entry yields the zero value.
func BadgesFor(e *models.Entry) Badges {
	if e == nil {
		return Badges{}
	}
	return Badges{
		HasEntry: true,
		Mood:     e.Mood,
		Meetings: len(e.Meetings),
		Tasks:    len(e.Tasks),
		Journal:  e.HasJournal(),
		Summary:  e.Summary != "",
	}
}

// Labels lists the badges worth showing. Zero counts are omitted.
func (b Badges) Labels() []string {
	if !b.HasEntry {
		return nil
	}
	var out []string
	if b.Mood != "" {
		out = append(out, string(b.Mood))
	}
	if b.Meetings > 0 {
		out = append(out, plural(b.Meetings, "meeting"))
	}
	if b.Tasks > 0 {
		out = append(out, plural(b.Tasks, "task"))
	}
	if b.Journal {
		out = append(out, "journal")
	}
	if b.Summary {
		out = append(out, "summary")
	}
	return out
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
