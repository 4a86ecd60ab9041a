package calendar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// WeekdayHeader labels the Sunday-first columns.
const WeekdayHeader = "Su Mo Tu We Th Fr Sa"

// entryMarker follows the day number when an entry exists, including today.
const entryMarker = "•"

// Styles controls how each status is drawn.
type Styles struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Blank    lipgloss.Style
	NoEntry  lipgloss.Style
	HasEntry lipgloss.Style
	Today    lipgloss.Style
	Future   lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#BD93F9")),
		Header:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4")),
		Blank:    lipgloss.NewStyle(),
		NoEntry:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F8F8F2")),
		HasEntry: lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B")),
		Today:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BE9FD")).Underline(true),
		Future:   lipgloss.NewStyle().Foreground(lipgloss.Color("#44475A")),
		Selected: lipgloss.NewStyle().Reverse(true),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4")).Italic(true),
	}
}

func (s Styles) forStatus(st Status) lipgloss.Style {
	switch st {
	case StatusHasEntry:
		return s.HasEntry
	case StatusToday:
		return s.Today
	case StatusFuture:
		return s.Future
	default:
		return s.NoEntry
	}
}

// Render draws the grid's month: title, weekday header, weeks and legend.
// Each column is three characters wide: the day and an entry marker.
func Render(g *Grid, s Styles) string {
	var b strings.Builder

	title := g.Month().Title()
	if g.Loading() {
		title += " " + s.Muted.Render("loading…")
	}
	b.WriteString(s.Title.Render(title))
	b.WriteString("\n")

	labels := strings.Fields(WeekdayHeader)
	for i, l := range labels {
		labels[i] = fmt.Sprintf("%-3s", l)
	}
	b.WriteString(s.Header.Render(strings.TrimRight(strings.Join(labels, " "), " ")))
	b.WriteString("\n")

	cells := g.Cells()
	for i := 0; i < len(cells); i += 7 {
		end := i + 7
		if end > len(cells) {
			end = len(cells)
		}
		week := make([]string, 0, 7)
		for _, c := range cells[i:end] {
			week = append(week, renderCell(c, s))
		}
		b.WriteString(strings.Join(week, " "))
		b.WriteString("\n")
	}

	b.WriteString(Legend(s))
	return b.String()
}

func renderCell(c Cell, s Styles) string {
	if c.Blank {
		return s.Blank.Render("   ")
	}
	marker := " "
	if c.Badges.HasEntry {
		marker = entryMarker
	}
	style := s.forStatus(c.Status)
	if c.Selected {
		style = style.Inherit(s.Selected).Reverse(true)
	}
	return style.Render(fmt.Sprintf("%2d%s", c.Day, marker))
}

// Legend names the four statuses in their styles.
func Legend(s Styles) string {
	parts := make([]string, 0, 4)
	for _, st := range []Status{StatusToday, StatusHasEntry, StatusNoEntry, StatusFuture} {
		parts = append(parts, s.forStatus(st).Render("■ "+st.String()))
	}
	return strings.Join(parts, "  ")
}

// DaySummary is a one-line description of the selected day.
func DaySummary(g *Grid) string {
	date := g.Selected()
	st := g.DayStatus(date)
	e, ok := g.Entry(date)
	if !ok {
		return fmt.Sprintf("%s · %s", date, st)
	}
	labels := BadgesFor(&e).Labels()
	if len(labels) == 0 {
		return fmt.Sprintf("%s · %s", date, st)
	}
	return fmt.Sprintf("%s · %s · %s", date, st, strings.Join(labels, " · "))
}
