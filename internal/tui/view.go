package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lifecal/internal/calendar"
	"github.com/julianstephens/lifecal/internal/chat"
	"github.com/julianstephens/lifecal/internal/constants"
	"github.com/julianstephens/lifecal/internal/modal"
	"github.com/julianstephens/lifecal/internal/tui/components/chatlog"
	"github.com/julianstephens/lifecal/internal/tui/components/entrycard"
	"github.com/julianstephens/lifecal/internal/tui/components/storylist"
)

func (m Model) View() string {
	var content string

	switch m.state {
	case constants.StateLogin:
		content = m.viewLogin()
	case constants.StateCalendar:
		content = m.viewCalendar()
	case constants.StateDashboard:
		content = m.viewDashboard()
	case constants.StateChat:
		content = m.viewChat()
	case constants.StateStorybook:
		content = m.viewStorybook()
	case constants.StateEntryDetail:
		content = m.viewEntryDetail()
	case constants.StateEntryForm, constants.StateStoryForm:
		content = m.viewForm()
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	var parts []string
	if m.state != constants.StateLogin {
		parts = append(parts, m.viewTabs())
	}
	parts = append(parts, docStyle.Render(content))
	if m.toast != "" {
		parts = append(parts, m.viewToast())
	}
	parts = append(parts, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	tabs := make([]string, 0, len(tabTitles)+1)
	for i, title := range tabTitles {
		if m.tab == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	if m.session != nil {
		if u := m.session.User(); u.Name != "" {
			tabs = append(tabs, mutedStyle.Render("  "+u.Name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToast() string {
	if m.toastErr {
		return dangerStyle.Render("  ✗ " + m.toast)
	}
	return successStyle.Render("  ✓ " + m.toast)
}

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Life Calendar"))
	b.WriteString("\n\n")
	if m.authBusy {
		b.WriteString(mutedStyle.Render("Signing in..."))
		return b.String()
	}
	b.WriteString(m.form.View())
	return b.String()
}

func (m Model) viewCalendar() string {
	var b strings.Builder
	b.WriteString(calendar.Render(m.grid, m.gridStyles))
	b.WriteString("\n\n")

	switch {
	case m.grid.Loading():
		b.WriteString(mutedStyle.Render("Loading entries..."))
	case m.grid.Err() != nil:
		b.WriteString(mutedStyle.Render("Entries for this month are unavailable."))
	default:
		b.WriteString(calendar.DaySummary(m.grid))
	}
	return b.String()
}

func (m Model) viewDashboard() string {
	return m.dash.View(m.today())
}

func (m Model) viewEntryDetail() string {
	var b strings.Builder
	b.WriteString(entrycard.Boxed(m.detail))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("e edit · d delete · esc close"))
	return b.String()
}

func (m Model) viewForm() string {
	var b strings.Builder
	if m.formErr != "" {
		b.WriteString(dangerStyle.Render(m.formErr))
		b.WriteString("\n\n")
	}
	if m.state == constants.StateEntryForm && m.entryDialog.Busy() {
		b.WriteString(mutedStyle.Render("Saving..."))
		return b.String()
	}
	if m.form != nil {
		b.WriteString(m.form.View())
	}
	return b.String()
}

func (m Model) viewConfirmDelete() string {
	var (
		question string
		busy     bool
	)
	if m.entryDialog.State() == modal.ConfirmingDelete {
		question = fmt.Sprintf("Delete the entry for %s?", m.entryDialog.Subject())
		busy = m.entryDialog.Busy()
	} else {
		title := m.stories.Dialog.Subject()
		if s, ok := m.stories.Current(); ok && s.ID == title {
			title = s.Title
		}
		question = fmt.Sprintf("Delete the story %q?", title)
		busy = m.stories.Dialog.Busy()
	}

	var b strings.Builder
	b.WriteString(dangerStyle.Render("⚠ " + question))
	b.WriteString("\n\n")
	if busy {
		b.WriteString(mutedStyle.Render("Deleting..."))
	} else {
		b.WriteString("This cannot be undone. Press y to delete or n to cancel.")
	}
	return b.String()
}

func (m Model) viewChat() string {
	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.chat.Loading() {
		b.WriteString(m.spinner.View() + mutedStyle.Render(" Thinking..."))
		b.WriteString("\n")
	}
	if m.chat.Fresh() && m.input.Value() == "" {
		b.WriteString(mutedStyle.Render("Try asking (↑/↓ to pick, enter to send):"))
		b.WriteString("\n")
		for i, s := range chat.Suggestions {
			if i == m.suggestion {
				b.WriteString(selectedStyle.Render("› " + s))
			} else {
				b.WriteString(mutedStyle.Render("  " + s))
			}
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())
	return b.String()
}

// refreshChatView re-renders the transcript into the viewport and scrolls to the end.
func (m *Model) refreshChatView() {
	m.viewport.SetContent(chatlog.Render(m.chat.Messages(), m.viewport.Width))
	m.viewport.GotoBottom()
}

func (m Model) viewStorybook() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Storybook"))
	b.WriteString("\n\n")

	if m.storyDialog.Busy() {
		b.WriteString(m.spinner.View() + mutedStyle.Render(" Writing your story..."))
		b.WriteString("\n\n")
	}
	if !m.storiesLoaded {
		b.WriteString(mutedStyle.Render("Loading stories..."))
		return b.String()
	}
	b.WriteString(storylist.Render(m.stories, m.width-8))
	return b.String()
}
