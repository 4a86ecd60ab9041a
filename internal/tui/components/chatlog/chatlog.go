// Package chatlog renders the assistant conversation for the chat viewport.
package chatlog

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lifecal/internal/constants"
	"github.com/julianstephens/lifecal/internal/models"
)

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8BE9FD")).
			Bold(true)

	assistantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF79C6")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Render lays out msgs oldest first, wrapping message bodies to width.
func Render(msgs []models.ChatMessage, width int) string {
	wrap := lipgloss.NewStyle().Width(max(width-2, 10))

	var b strings.Builder
	for i, msg := range msgs {
		if i > 0 {
			b.WriteString("\n")
		}
		if msg.Role == models.RoleUser {
			b.WriteString(userStyle.Render("You") + mutedStyle.Render(" "+msg.Timestamp.Format(constants.TimeFormat)))
		} else {
			b.WriteString(assistantStyle.Render("Assistant"))
		}
		b.WriteString("\n")
		b.WriteString(wrap.Render(msg.Content))
		b.WriteString("\n")
	}
	return b.String()
}
