package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lifecal/internal/api"
	"github.com/julianstephens/lifecal/internal/constants"
	lcerrors "github.com/julianstephens/lifecal/internal/errors"
	"github.com/julianstephens/lifecal/internal/logger"
	"github.com/julianstephens/lifecal/internal/storybook"
	"github.com/julianstephens/lifecal/internal/tui/handlers"
)

func (m *Model) updateStorybook(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.stories.Move(-1)
	case key.Matches(msg, m.keys.Down):
		m.stories.Move(1)
	case key.Matches(msg, m.keys.Enter):
		if s, ok := m.stories.Current(); ok {
			m.stories.Toggle(s.ID)
		}
	case key.Matches(msg, m.keys.New):
		return m.openStoryForm()
	case key.Matches(msg, m.keys.Delete):
		s, ok := m.stories.Current()
		if !ok {
			return nil
		}
		if err := m.stories.ConfirmDelete(s.ID); err != nil {
			return nil
		}
		m.state = constants.StateConfirmDelete
	case key.Matches(msg, m.keys.Refresh):
		return m.loadStories()
	}
	return nil
}

func (m *Model) openStoryForm() tea.Cmd {
	if m.storyDialog.Busy() {
		return m.notify("A story is already being written.", false)
	}
	if err := m.storyDialog.Create("story"); err != nil {
		return nil
	}
	// A draft survives a failed generation that finished while the user was elsewhere.
	if m.storyForm == nil {
		m.storyForm = &storybook.FormModel{Period: string(storybook.PeriodLastWeek)}
	}
	m.formErr = ""
	m.form = handlers.NewStoryForm(m.storyForm)
	m.state = constants.StateStoryForm
	return m.form.Init()
}

func (m *Model) updateStoryForm(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		return m.cancelStoryForm()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return tea.Batch(cmd, m.submitStory())
	case huh.StateAborted:
		return m.cancelStoryForm()
	}
	return cmd
}

func (m *Model) cancelStoryForm() tea.Cmd {
	if err := m.storyDialog.Cancel(); err != nil {
		return nil
	}
	m.form, m.formErr, m.storyForm = nil, "", nil
	m.state = m.tab
	return nil
}

func (m *Model) submitStory() tea.Cmd {
	req, err := m.storyForm.Request(m.today())
	if err != nil {
		m.formErr = lcerrors.UserMessage(err, err.Error())
		m.form = handlers.NewStoryForm(m.storyForm)
		return m.form.Init()
	}
	if err := m.storyDialog.Submit(); err != nil {
		return nil
	}
	m.form, m.formErr = nil, ""
	m.state = m.tab
	return tea.Batch(createStoryCmd(m.ctx, m.backend, req), m.spinner.Tick)
}

func (m *Model) onStoryCreated(msg storyCreatedMsg) tea.Cmd {
	if !m.storyDialog.Busy() {
		return nil
	}
	if msg.err != nil {
		m.storyDialog.Failed(msg.err)
		if errors.Is(msg.err, api.ErrUnauthorized) {
			return m.handleErr(msg.err, "")
		}
		text := lcerrors.UserMessage(msg.err, "Couldn't create the story. Please try again.")
		if m.state != constants.StateStorybook {
			// Another dialog may be open; leave it alone and keep the draft for a.
			if err := m.storyDialog.Close(); err != nil {
				logger.Debug("Unexpected story dialog state", "error", err)
			}
			return m.notify(text+" Press a in Storybook to retry.", true)
		}
		m.form = handlers.NewStoryForm(m.storyForm)
		m.state = constants.StateStoryForm
		return tea.Batch(m.notify(text, true), m.form.Init())
	}
	if err := m.storyDialog.Saved(); err != nil {
		logger.Debug("Unexpected story completion", "error", err)
	}
	m.storyForm = nil
	m.stories.Prepend(msg.story)
	m.stories.Toggle(msg.story.ID)
	return m.notify(fmt.Sprintf("Created %q.", msg.story.Title), false)
}

func (m *Model) onStoriesLoaded(msg storiesLoadedMsg) tea.Cmd {
	if m.state == constants.StateLogin {
		return nil
	}
	if msg.err != nil {
		return m.handleErr(msg.err, "Couldn't load your stories.")
	}
	m.stories.Set(msg.stories)
	m.storiesLoaded = true
	return nil
}

func (m *Model) onStoryDeleted(msg storyDeletedMsg) tea.Cmd {
	dialog := &m.stories.Dialog
	if !dialog.Busy() || dialog.Subject() != msg.id {
		return nil
	}
	if msg.err != nil {
		dialog.Failed(msg.err)
		return m.handleErr(msg.err, "Couldn't delete the story. Please try again.")
	}
	if err := dialog.Deleted(); err != nil {
		logger.Debug("Unexpected delete completion", "error", err)
	}
	m.stories.Remove(msg.id)
	m.state = m.tab
	return m.notify("Story deleted.", false)
}
