// Package storylist renders the Storybook tab's list of stories.
package storylist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lifecal/internal/models"
	"github.com/julianstephens/lifecal/internal/storybook"
)

const excerptRunes = 100

var (
	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

// Render draws every story as a header line. Expanded stories show all their
// paragraphs wrapped to width; collapsed ones show an excerpt.
func Render(l *storybook.List, width int) string {
	if l.Len() == 0 {
		return mutedStyle.Render("No stories yet. Press a to turn a stretch of your journal into one.")
	}

	wrap := lipgloss.NewStyle().Width(max(width, 40))
	var b strings.Builder
	for i, s := range l.Stories() {
		header := fmt.Sprintf("%s  %s", s.Title, mutedStyle.Render(Meta(s)))
		if i == l.Cursor() {
			b.WriteString(selectedStyle.Render("› ") + header)
		} else {
			b.WriteString("  " + header)
		}
		b.WriteString("\n")

		if l.Expanded(s.ID) {
			for _, p := range storybook.Paragraphs(s.Content) {
				b.WriteString(wrap.Render(p))
				b.WriteString("\n\n")
			}
		} else if excerpt := storybook.Excerpt(s.Content, excerptRunes); excerpt != "" {
			b.WriteString(mutedStyle.Render("    " + excerpt))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Meta is the range and length line shown next to a story's title.
func Meta(s models.Story) string {
	return fmt.Sprintf("%s → %s · %d words", s.StartDate, s.EndDate, storybook.WordCount(s.Content))
}
