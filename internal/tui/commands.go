package tui

import (
	"context"
	"errors"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/lifecal/internal/api"
	"github.com/julianstephens/lifecal/internal/calendar"
	"github.com/julianstephens/lifecal/internal/logger"
	"github.com/julianstephens/lifecal/internal/models"
	"github.com/julianstephens/lifecal/internal/tui/state"
)

const toastTTL = 4 * time.Second

type monthLoadedMsg struct {
	month   calendar.Month
	entries []models.Entry
	err     error
}

type dashboardLoadedMsg struct {
	entries    []models.Entry
	entryOfDay *models.Entry
	err        error
}

type entrySavedMsg struct {
	entry   models.Entry
	created bool
	err     error
}

type entryDeletedMsg struct {
	date string
	err  error
}

type chatAnsweredMsg struct {
	questionID string
	answer     string
	err        error
}

type storiesLoadedMsg struct {
	stories []models.Story
	err     error
}

type storyCreatedMsg struct {
	story models.Story
	err   error
}

type storyDeletedMsg struct {
	id  string
	err error
}

type authDoneMsg struct {
	result api.AuthResult
	err    error
}

type loggedOutMsg struct{}

type clearToastMsg struct{ id int }

// loadMonth switches the grid to month and fetches it unless it lies in the future.
func (m *Model) loadMonth(month calendar.Month) tea.Cmd {
	if !m.grid.Begin(month) {
		return nil
	}
	backend, ctx := m.backend, m.ctx
	return func() tea.Msg {
		entries, err := backend.ListEntries(ctx, month.FirstDate(), month.LastDate())
		return monthLoadedMsg{month: month, entries: entries, err: err}
	}
}

// loadDashboard fetches the current month's entries and today's entry concurrently.
func (m *Model) loadDashboard() tea.Cmd {
	m.dash.SetLoading(true)
	backend, ctx := m.backend, m.ctx
	month := calendar.MonthOf(m.today())
	today := month.Date(m.today().Day())
	return func() tea.Msg {
		var (
			entries []models.Entry
			ofDay   *models.Entry
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			list, err := backend.ListEntries(gctx, month.FirstDate(), month.LastDate())
			if err != nil {
				return err
			}
			sort.SliceStable(list, func(i, j int) bool { return list[i].Date > list[j].Date })
			entries = list
			return nil
		})
		g.Go(func() error {
			e, err := backend.EntryForDate(gctx, today)
			if errors.Is(err, api.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			ofDay = &e
			return nil
		})
		err := g.Wait()
		return dashboardLoadedMsg{entries: entries, entryOfDay: ofDay, err: err}
	}
}

func (m *Model) loadStories() tea.Cmd {
	backend, ctx := m.backend, m.ctx
	return func() tea.Msg {
		stories, err := backend.ListStories(ctx)
		return storiesLoadedMsg{stories: stories, err: err}
	}
}

func (m *Model) loadAll() tea.Cmd {
	return tea.Batch(m.loadMonth(m.grid.Month()), m.loadDashboard())
}

func saveEntryCmd(ctx context.Context, b Backend, id string, in models.EntryInput) tea.Cmd {
	return func() tea.Msg {
		if id == "" {
			e, err := b.CreateEntry(ctx, in)
			return entrySavedMsg{entry: e, created: true, err: err}
		}
		e, err := b.UpdateEntry(ctx, id, in)
		return entrySavedMsg{entry: e, err: err}
	}
}

func deleteEntryCmd(ctx context.Context, b Backend, e models.Entry) tea.Cmd {
	return func() tea.Msg {
		return entryDeletedMsg{date: e.Date, err: b.DeleteEntry(ctx, e.ID)}
	}
}

func askCmd(ctx context.Context, b Backend, question models.ChatMessage) tea.Cmd {
	return func() tea.Msg {
		answer, err := b.Ask(ctx, question.Content)
		return chatAnsweredMsg{questionID: question.ID, answer: answer, err: err}
	}
}

func createStoryCmd(ctx context.Context, b Backend, req models.StoryRequest) tea.Cmd {
	return func() tea.Msg {
		s, err := b.CreateStory(ctx, req)
		return storyCreatedMsg{story: s, err: err}
	}
}

func deleteStoryCmd(ctx context.Context, b Backend, id string) tea.Cmd {
	return func() tea.Msg {
		return storyDeletedMsg{id: id, err: b.DeleteStory(ctx, id)}
	}
}

func authCmd(ctx context.Context, b Backend, f state.AuthFormModel) tea.Cmd {
	return func() tea.Msg {
		var (
			res api.AuthResult
			err error
		)
		if f.Registering() {
			res, err = b.Register(ctx, f.Name, f.Email, f.Password, f.Confirm)
		} else {
			res, err = b.Login(ctx, f.Email, f.Password)
		}
		return authDoneMsg{result: res, err: err}
	}
}

func logoutCmd(ctx context.Context, b Backend) tea.Cmd {
	return func() tea.Msg {
		// The local session ends regardless of what the backend says.
		if err := b.Logout(ctx); err != nil {
			logger.Warn("Backend logout failed", "error", err)
		}
		return loggedOutMsg{}
	}
}

// notify shows a toast and schedules its removal.
func (m *Model) notify(text string, isErr bool) tea.Cmd {
	m.toastID++
	m.toast, m.toastErr = text, isErr
	id := m.toastID
	return tea.Tick(toastTTL, func(time.Time) tea.Msg { return clearToastMsg{id: id} })
}
