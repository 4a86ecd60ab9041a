// Package dashboard is the Today tab: the entry of the day and this month's
// entries, newest first, with a cursor.
package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lifecal/internal/calendar"
	"github.com/julianstephens/lifecal/internal/models"
	"github.com/julianstephens/lifecal/internal/tui/components/entrycard"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#BD93F9")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

type Model struct {
	entries    []models.Entry
	entryOfDay *models.Entry
	cursor     int
	loading    bool
}

func New() Model {
	return Model{}
}

func (m *Model) SetLoading(loading bool) { m.loading = loading }
func (m Model) Loading() bool            { return m.loading }
func (m Model) Entries() []models.Entry  { return m.entries }
func (m Model) Cursor() int              { return m.cursor }

// EntryOfDay returns today's entry, if one was written.
func (m Model) EntryOfDay() (models.Entry, bool) {
	if m.entryOfDay == nil {
		return models.Entry{}, false
	}
	return *m.entryOfDay, true
}

// Set replaces the loaded data and keeps the cursor in range.
func (m *Model) Set(entries []models.Entry, entryOfDay *models.Entry) {
	m.entries, m.entryOfDay, m.loading = entries, entryOfDay, false
	if m.cursor >= len(m.entries) {
		m.cursor = max(len(m.entries)-1, 0)
	}
}

// Move shifts the cursor by delta, clamped to the list.
func (m *Model) Move(delta int) {
	m.cursor = min(max(m.cursor+delta, 0), max(len(m.entries)-1, 0))
}

// Selected is the entry under the cursor.
func (m Model) Selected() (models.Entry, bool) {
	if len(m.entries) == 0 {
		return models.Entry{}, false
	}
	return m.entries[m.cursor], true
}

func (m Model) View(today time.Time) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Today · " + today.Format("Monday, January 2")))
	b.WriteString("\n\n")

	switch {
	case m.entryOfDay != nil:
		b.WriteString(entrycard.Boxed(*m.entryOfDay))
	case m.loading:
		b.WriteString(mutedStyle.Render("Loading..."))
	default:
		b.WriteString(entrycard.BoxStyle.Render(mutedStyle.Render("Nothing written today yet. Press a to add an entry.")))
	}
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render(calendar.MonthOf(today).Title()))
	b.WriteString("\n")
	if len(m.entries) == 0 && !m.loading {
		b.WriteString(mutedStyle.Render("No entries this month."))
		return b.String()
	}
	for i, e := range m.entries {
		line := fmt.Sprintf("%s  %s", e.Date, strings.Join(calendar.BadgesFor(&e).Labels(), " · "))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("› " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}
