// Package entrycard renders one journal entry as a card.
package entrycard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lifecal/internal/models"
)

var (
	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#BD93F9")).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8F8F2")).
			Underline(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// BoxStyle frames a card.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6272A4")).
			Padding(0, 1)
)

// Render lays out the entry's mood, meetings, tasks, journal and summary.
// Empty sections are omitted.
func Render(e models.Entry) string {
	var b strings.Builder
	b.WriteString(dateStyle.Render(e.Date))
	if e.Mood != "" {
		b.WriteString(mutedStyle.Render("  mood: " + string(e.Mood)))
	}
	b.WriteString("\n")

	if len(e.Meetings) > 0 {
		b.WriteString("\n" + sectionStyle.Render("Meetings") + "\n")
		for _, mt := range e.Meetings {
			line := "  • " + strings.TrimSpace(mt.Time+" "+mt.Title)
			if mt.Notes != "" {
				line += mutedStyle.Render(" · " + mt.Notes)
			}
			b.WriteString(line + "\n")
		}
	}
	if len(e.Tasks) > 0 {
		b.WriteString("\n" + sectionStyle.Render("Tasks") + "\n")
		for _, t := range e.Tasks {
			line := "  ☐ " + t.Caption
			if t.URL != "" {
				line += mutedStyle.Render(" " + t.URL)
			}
			b.WriteString(line + "\n")
		}
	}
	if e.HasJournal() {
		b.WriteString("\n" + sectionStyle.Render("Journal") + "\n")
		b.WriteString(e.JournalNotes + "\n")
	}
	if e.Summary != "" {
		b.WriteString("\n" + mutedStyle.Render("Summary: "+e.Summary) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Boxed is Render inside BoxStyle.
func Boxed(e models.Entry) string {
	return BoxStyle.Render(Render(e))
}
