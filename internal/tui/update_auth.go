package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lifecal/internal/calendar"
	"github.com/julianstephens/lifecal/internal/constants"
	lcerrors "github.com/julianstephens/lifecal/internal/errors"
	"github.com/julianstephens/lifecal/internal/modal"
	"github.com/julianstephens/lifecal/internal/models"
	"github.com/julianstephens/lifecal/internal/storybook"
	"github.com/julianstephens/lifecal/internal/tui/components/dashboard"
	"github.com/julianstephens/lifecal/internal/tui/handlers"
	"github.com/julianstephens/lifecal/internal/tui/state"
)

// openLogin drops everything loaded for the previous user and shows the
// sign-in form.
func (m *Model) openLogin() tea.Cmd {
	m.grid = calendar.NewGrid(m.now)
	m.entryDialog = &modal.Machine{}
	m.storyDialog = &modal.Machine{}
	m.stories = storybook.NewList()
	m.storiesLoaded = false
	m.dash = dashboard.New()
	m.detail = models.Entry{}
	m.entryForm, m.storyForm = nil, nil
	m.formErr = ""
	m.input.Blur()

	m.authBusy = false
	m.authForm = &state.AuthFormModel{Mode: state.AuthModeLogin}
	m.form = handlers.NewAuthForm(m.authForm)
	m.state, m.tab = constants.StateLogin, constants.StateCalendar
	return m.form.Init()
}

func (m *Model) updateLogin(msg tea.Msg) tea.Cmd {
	if m.authBusy {
		return nil
	}
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.authBusy = true
		return tea.Batch(cmd, authCmd(m.ctx, m.backend, *m.authForm))
	case huh.StateAborted:
		return tea.Quit
	}
	return cmd
}

func (m *Model) onAuthDone(msg authDoneMsg) tea.Cmd {
	if m.state != constants.StateLogin || !m.authBusy {
		return nil
	}
	m.authBusy = false

	err := msg.err
	if err == nil && m.session != nil {
		err = m.session.Init(m.ctx, msg.result.Token, msg.result.User)
	}
	if err != nil {
		m.authForm.ClearSecrets()
		m.form = handlers.NewAuthForm(m.authForm)
		return tea.Batch(
			m.notify(lcerrors.UserMessage(err, "Sign-in failed. Check your details and try again."), true),
			m.form.Init(),
		)
	}

	name := msg.result.User.Name
	if name == "" {
		name = msg.result.User.Email
	}
	m.authForm, m.form = nil, nil
	m.state, m.tab = constants.StateCalendar, constants.StateCalendar
	return tea.Batch(m.notify(fmt.Sprintf("Welcome, %s!", name), false), m.loadAll())
}
