package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/lifecal/internal/api"
	"github.com/julianstephens/lifecal/internal/constants"
	lcerrors "github.com/julianstephens/lifecal/internal/errors"
	"github.com/julianstephens/lifecal/internal/logger"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		if !m.inForm() {
			return nil
		}
	case clearToastMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}
		return nil
	case spinner.TickMsg:
		if !m.chat.Loading() && !m.storyDialog.Busy() {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	case monthLoadedMsg:
		return m.onMonthLoaded(msg)
	case dashboardLoadedMsg:
		return m.onDashboardLoaded(msg)
	case entrySavedMsg:
		return m.onEntrySaved(msg)
	case entryDeletedMsg:
		return m.onEntryDeleted(msg)
	case chatAnsweredMsg:
		return m.onChatAnswered(msg)
	case storiesLoadedMsg:
		return m.onStoriesLoaded(msg)
	case storyCreatedMsg:
		return m.onStoryCreated(msg)
	case storyDeletedMsg:
		return m.onStoryDeleted(msg)
	case authDoneMsg:
		return m.onAuthDone(msg)
	case loggedOutMsg:
		return m.endSession("Signed out.", false)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return tea.Quit
		}
	}

	switch m.state {
	case constants.StateLogin:
		return m.updateLogin(msg)
	case constants.StateEntryForm:
		return m.updateEntryForm(msg)
	case constants.StateStoryForm:
		return m.updateStoryForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.state == constants.StateChat {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return cmd
		}
		return nil
	}

	if m.onTab() {
		if cmd, handled := m.updateGlobalKeys(keyMsg); handled {
			return cmd
		}
	}

	switch m.state {
	case constants.StateCalendar:
		return m.updateCalendar(keyMsg)
	case constants.StateDashboard:
		return m.updateDashboard(keyMsg)
	case constants.StateChat:
		return m.updateChat(keyMsg)
	case constants.StateStorybook:
		return m.updateStorybook(keyMsg)
	case constants.StateEntryDetail:
		return m.updateEntryDetail(keyMsg)
	case constants.StateConfirmDelete:
		return m.updateConfirmDelete(keyMsg)
	}
	return nil
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.help.Width = w
	m.viewport.Width = max(w-6, 20)
	m.viewport.Height = max(h-14, 5)
	m.input.Width = max(w-10, 20)
	m.refreshChatView()
}

func (m Model) inForm() bool {
	switch m.state {
	case constants.StateLogin, constants.StateEntryForm, constants.StateStoryForm:
		return m.form != nil
	}
	return false
}

// updateGlobalKeys handles tab switching, help, quit and sign out. Letter keys
// are left to the chat input.
func (m *Model) updateGlobalKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	typing := m.state == constants.StateChat
	switch {
	case key.Matches(msg, m.keys.Tab):
		return m.switchTab((m.tab + 1) % tabCount), true
	case key.Matches(msg, m.keys.ShiftTab):
		return m.switchTab((m.tab + tabCount - 1) % tabCount), true
	case key.Matches(msg, m.keys.Logout):
		return logoutCmd(m.ctx, m.backend), true
	case typing:
		return nil, false
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil, true
	}
	return nil, false
}

func (m *Model) switchTab(t constants.SessionState) tea.Cmd {
	m.state, m.tab = t, t
	if t != constants.StateChat {
		m.input.Blur()
	}
	switch t {
	case constants.StateChat:
		m.refreshChatView()
		return m.input.Focus()
	case constants.StateStorybook:
		if !m.storiesLoaded {
			return m.loadStories()
		}
	}
	return nil
}

// handleErr turns a failed request into a toast, or into the login screen
// when the backend rejected the session.
func (m *Model) handleErr(err error, fallback string) tea.Cmd {
	if errors.Is(err, api.ErrUnauthorized) {
		return m.endSession("Your session has expired. Please sign in again.", true)
	}
	return m.notify(lcerrors.UserMessage(err, fallback), true)
}

func (m *Model) endSession(notice string, isErr bool) tea.Cmd {
	if m.session != nil {
		if err := m.session.Teardown(m.ctx); err != nil {
			logger.Warn("Failed to clear session", "error", err)
		}
	}
	return tea.Batch(m.openLogin(), m.notify(notice, isErr))
}
