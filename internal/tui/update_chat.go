package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/lifecal/internal/api"
	"github.com/julianstephens/lifecal/internal/chat"
	lcerrors "github.com/julianstephens/lifecal/internal/errors"
)

func (m *Model) updateChat(msg tea.KeyMsg) tea.Cmd {
	fresh := m.chat.Fresh() && m.input.Value() == ""
	switch {
	case key.Matches(msg, m.keys.ClearChat):
		if err := m.chat.Clear(m.ctx); err != nil {
			return m.notify(lcerrors.UserMessage(err, "Couldn't clear the conversation."), true)
		}
		m.suggestion = 0
		m.refreshChatView()
		return nil
	case msg.Type == tea.KeyUp && fresh:
		m.suggestion = (m.suggestion + len(chat.Suggestions) - 1) % len(chat.Suggestions)
		return nil
	case msg.Type == tea.KeyDown && fresh:
		m.suggestion = (m.suggestion + 1) % len(chat.Suggestions)
		return nil
	case msg.Type == tea.KeyPgUp, msg.Type == tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	case msg.Type == tea.KeyEnter:
		return m.askQuestion()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// askQuestion sends the typed question, or the highlighted suggestion when the
// conversation has not started and nothing is typed.
func (m *Model) askQuestion() tea.Cmd {
	if m.chat.Loading() {
		return nil
	}
	q := m.input.Value()
	if q == "" && m.chat.Fresh() {
		q = chat.Suggestions[m.suggestion]
	}
	question, ok := m.chat.Submit(m.ctx, q)
	if !ok {
		return nil
	}
	m.input.Reset()
	m.refreshChatView()
	return tea.Batch(askCmd(m.ctx, m.backend, question), m.spinner.Tick)
}

func (m *Model) onChatAnswered(msg chatAnsweredMsg) tea.Cmd {
	if _, ok := m.chat.Resolve(m.ctx, msg.questionID, msg.answer, msg.err); !ok {
		return nil
	}
	m.refreshChatView()
	if errors.Is(msg.err, api.ErrUnauthorized) {
		return m.handleErr(msg.err, "")
	}
	return nil
}
