package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lifecal/internal/api"
	"github.com/julianstephens/lifecal/internal/calendar"
	"github.com/julianstephens/lifecal/internal/constants"
	"github.com/julianstephens/lifecal/internal/entryform"
	lcerrors "github.com/julianstephens/lifecal/internal/errors"
	"github.com/julianstephens/lifecal/internal/logger"
	"github.com/julianstephens/lifecal/internal/modal"
	"github.com/julianstephens/lifecal/internal/models"
	"github.com/julianstephens/lifecal/internal/tui/handlers"
	"github.com/julianstephens/lifecal/internal/utils"
)

func (m *Model) onMonthLoaded(msg monthLoadedMsg) tea.Cmd {
	if !m.grid.Finish(msg.month, msg.entries, msg.err) || msg.err == nil {
		return nil
	}
	return m.handleErr(msg.err, fmt.Sprintf("Couldn't load entries for %s.", msg.month.Title()))
}

func (m *Model) onDashboardLoaded(msg dashboardLoadedMsg) tea.Cmd {
	if m.state == constants.StateLogin {
		return nil
	}
	if msg.err != nil {
		m.dash.SetLoading(false)
		return m.handleErr(msg.err, "Couldn't load your dashboard.")
	}
	m.dash.Set(msg.entries, msg.entryOfDay)
	return nil
}

func (m *Model) updateCalendar(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.grid.MoveSelection(-1)
	case key.Matches(msg, m.keys.Right):
		m.grid.MoveSelection(1)
	case key.Matches(msg, m.keys.Up):
		m.grid.MoveSelection(-7)
	case key.Matches(msg, m.keys.Down):
		m.grid.MoveSelection(7)
	case key.Matches(msg, m.keys.PrevMonth):
		return m.loadMonth(m.grid.PrevMonth())
	case key.Matches(msg, m.keys.NextMonth):
		return m.loadMonth(m.grid.NextMonth())
	case key.Matches(msg, m.keys.Today):
		return m.loadMonth(calendar.MonthOf(m.today()))
	case key.Matches(msg, m.keys.Refresh):
		return m.loadMonth(m.grid.Month())
	case key.Matches(msg, m.keys.Enter):
		return m.openDay(m.grid.Selected())
	}
	return nil
}

// openDay opens the detail for a day with an entry and the creation form for
// an empty past day.
func (m *Model) openDay(date string) tea.Cmd {
	switch m.grid.Click(date) {
	case calendar.ActionView:
		e, _ := m.grid.Entry(date)
		m.openDetail(e)
	case calendar.ActionCreate:
		return m.openCreate(date)
	}
	return nil
}

func (m *Model) openDetail(e models.Entry) {
	if err := m.entryDialog.View(e.Date); err != nil {
		logger.Debug("Ignoring view request", "error", err)
		return
	}
	m.detail = e
	m.state = constants.StateEntryDetail
}

func (m *Model) openCreate(date string) tea.Cmd {
	if err := m.entryDialog.Create(date); err != nil {
		logger.Debug("Ignoring create request", "error", err)
		return nil
	}
	m.entryForm = entryform.New(date)
	m.formErr = ""
	m.state = constants.StateEntryForm
	return m.rebuildEntryForm()
}

func (m *Model) rebuildEntryForm() tea.Cmd {
	title := "New entry · " + m.entryDialog.Subject()
	if m.entryDialog.State() == modal.Editing {
		title = "Edit entry · " + m.entryDialog.Subject()
	}
	m.form = handlers.NewEntryForm(m.entryForm, title)
	return m.form.Init()
}

func (m *Model) updateDashboard(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.dash.Move(-1)
	case key.Matches(msg, m.keys.Down):
		m.dash.Move(1)
	case key.Matches(msg, m.keys.Enter):
		if e, ok := m.dash.Selected(); ok {
			m.openDetail(e)
		}
	case key.Matches(msg, m.keys.New):
		if e, ok := m.dash.EntryOfDay(); ok {
			m.openDetail(e)
			return nil
		}
		return m.openCreate(utils.FormatDate(m.today()))
	case key.Matches(msg, m.keys.Refresh):
		return m.loadDashboard()
	}
	return nil
}

func (m *Model) updateEntryDetail(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Edit):
		if err := m.entryDialog.Edit(); err != nil {
			return nil
		}
		m.entryForm = entryform.FromEntry(m.detail)
		m.formErr = ""
		m.state = constants.StateEntryForm
		return m.rebuildEntryForm()
	case key.Matches(msg, m.keys.Delete):
		if err := m.entryDialog.RequestDelete(); err != nil {
			return nil
		}
		m.state = constants.StateConfirmDelete
	case key.Matches(msg, m.keys.Back):
		if err := m.entryDialog.Close(); err != nil {
			return nil
		}
		m.state = m.tab
	}
	return nil
}

func (m *Model) updateEntryForm(msg tea.Msg) tea.Cmd {
	if m.entryDialog.Busy() {
		return nil
	}
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		return m.cancelEntryForm()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return tea.Batch(cmd, m.submitEntry())
	case huh.StateAborted:
		return m.cancelEntryForm()
	}
	return cmd
}

func (m *Model) cancelEntryForm() tea.Cmd {
	if err := m.entryDialog.Cancel(); err != nil {
		return nil
	}
	m.form, m.formErr = nil, ""
	if m.entryDialog.State() == modal.Viewing {
		m.state = constants.StateEntryDetail
	} else {
		m.state = m.tab
	}
	return nil
}

func (m *Model) submitEntry() tea.Cmd {
	in, err := m.entryForm.Build()
	if err != nil {
		m.formErr = lcerrors.UserMessage(err, err.Error())
		return m.rebuildEntryForm()
	}
	if err := m.entryDialog.Submit(); err != nil {
		return nil
	}
	m.formErr = ""

	id := ""
	if m.entryDialog.State() == modal.Editing {
		id = m.detail.ID
	}
	return saveEntryCmd(m.ctx, m.backend, id, in)
}

func (m *Model) onEntrySaved(msg entrySavedMsg) tea.Cmd {
	if !m.entryDialog.Busy() {
		return nil
	}
	if msg.err != nil {
		m.entryDialog.Failed(msg.err)
		if errors.Is(msg.err, api.ErrUnauthorized) {
			return m.handleErr(msg.err, "")
		}
		return tea.Batch(
			m.notify(lcerrors.UserMessage(msg.err, "Couldn't save the entry. Please try again."), true),
			m.rebuildEntryForm(),
		)
	}

	created := m.entryDialog.State() == modal.Creating
	if err := m.entryDialog.Saved(); err != nil {
		logger.Debug("Unexpected save completion", "error", err)
	}
	m.form = nil
	if created {
		m.state = m.tab
	} else {
		m.detail = msg.entry
		m.state = constants.StateEntryDetail
	}
	return tea.Batch(m.notify("Entry saved.", false), m.loadMonth(m.grid.Month()), m.loadDashboard())
}

func (m *Model) updateConfirmDelete(msg tea.KeyMsg) tea.Cmd {
	deletingEntry := m.entryDialog.State() == modal.ConfirmingDelete
	dialog := &m.stories.Dialog
	if deletingEntry {
		dialog = m.entryDialog
	}

	switch {
	case key.Matches(msg, m.keys.Confirm):
		if err := dialog.Submit(); err != nil {
			return nil
		}
		if deletingEntry {
			return deleteEntryCmd(m.ctx, m.backend, m.detail)
		}
		return deleteStoryCmd(m.ctx, m.backend, dialog.Subject())
	case key.Matches(msg, m.keys.Deny):
		if err := dialog.Cancel(); err != nil {
			return nil
		}
		if deletingEntry {
			m.state = constants.StateEntryDetail
			return nil
		}
		_ = dialog.Close()
		m.state = m.tab
	}
	return nil
}

func (m *Model) onEntryDeleted(msg entryDeletedMsg) tea.Cmd {
	if !m.entryDialog.Busy() || m.entryDialog.State() != modal.ConfirmingDelete {
		return nil
	}
	if msg.err != nil {
		m.entryDialog.Failed(msg.err)
		return m.handleErr(msg.err, "Couldn't delete the entry. Please try again.")
	}
	if err := m.entryDialog.Deleted(); err != nil {
		logger.Debug("Unexpected delete completion", "error", err)
	}
	m.state = m.tab
	return tea.Batch(
		m.notify(fmt.Sprintf("Deleted the entry for %s.", msg.date), false),
		m.loadMonth(m.grid.Month()),
		m.loadDashboard(),
	)
}
