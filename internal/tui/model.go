package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lifecal/internal/api"
	"github.com/julianstephens/lifecal/internal/calendar"
	"github.com/julianstephens/lifecal/internal/chat"
	"github.com/julianstephens/lifecal/internal/constants"
	"github.com/julianstephens/lifecal/internal/entryform"
	"github.com/julianstephens/lifecal/internal/logger"
	"github.com/julianstephens/lifecal/internal/modal"
	"github.com/julianstephens/lifecal/internal/models"
	"github.com/julianstephens/lifecal/internal/session"
	"github.com/julianstephens/lifecal/internal/storybook"
	"github.com/julianstephens/lifecal/internal/tui/components/dashboard"
	"github.com/julianstephens/lifecal/internal/tui/state"
)

// Backend is the part of the REST client the TUI talks to. *api.Client
// satisfies it.
type Backend interface {
	calendar.EntryLister
	chat.Asker
	EntryForDate(ctx context.Context, date string) (models.Entry, error)
	CreateEntry(ctx context.Context, in models.EntryInput) (models.Entry, error)
	UpdateEntry(ctx context.Context, id string, in models.EntryInput) (models.Entry, error)
	DeleteEntry(ctx context.Context, id string) error
	ListStories(ctx context.Context) ([]models.Story, error)
	CreateStory(ctx context.Context, req models.StoryRequest) (models.Story, error)
	DeleteStory(ctx context.Context, id string) error
	Login(ctx context.Context, email, password string) (api.AuthResult, error)
	Register(ctx context.Context, name, email, password, confirm string) (api.AuthResult, error)
	Logout(ctx context.Context) error
}

type Deps struct {
	Ctx        context.Context
	Backend    Backend
	Session    *session.Session
	Transcript chat.Transcript
	// Now returns the current time in the user's timezone.
	Now func() time.Time
}

var tabTitles = []string{"Calendar", "Dashboard", "Chat", "Storybook"}

const tabCount = 4

type Model struct {
	ctx     context.Context
	backend Backend
	session *session.Session
	now     func() time.Time

	state  constants.SessionState
	tab    constants.SessionState
	keys   KeyMap
	help   help.Model
	width  int
	height int

	// calendar and entry dialog
	grid        *calendar.Grid
	gridStyles  calendar.Styles
	entryDialog *modal.Machine
	detail      models.Entry
	entryForm   *entryform.FormModel

	form    *huh.Form
	formErr string

	dash dashboard.Model

	// chat
	chat       *chat.Panel
	input      textinput.Model
	viewport   viewport.Model
	spinner    spinner.Model
	suggestion int

	// storybook
	stories       *storybook.List
	storiesLoaded bool
	storyDialog   *modal.Machine
	storyForm     *storybook.FormModel

	authForm *state.AuthFormModel
	authBusy bool

	toast    string
	toastErr bool
	toastID  int
}

func New(d Deps) Model {
	if d.Ctx == nil {
		d.Ctx = context.Background()
	}
	if d.Now == nil {
		d.Now = time.Now
	}

	ti := textinput.New()
	ti.Placeholder = "Ask about your journal..."
	ti.CharLimit = 500
	ti.Prompt = "› "

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	panel := chat.NewPanel(d.Transcript, d.Now)
	if err := panel.Load(d.Ctx); err != nil {
		logger.Warn("Failed to load chat transcript", "error", err)
	}

	m := Model{
		ctx:         d.Ctx,
		backend:     d.Backend,
		session:     d.Session,
		now:         d.Now,
		state:       constants.StateCalendar,
		tab:         constants.StateCalendar,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		grid:        calendar.NewGrid(d.Now),
		gridStyles:  calendar.DefaultStyles(),
		entryDialog: &modal.Machine{},
		chat:        panel,
		input:       ti,
		viewport:    viewport.New(80, 12),
		spinner:     sp,
		dash:        dashboard.New(),
		stories:     storybook.NewList(),
		storyDialog: &modal.Machine{},
	}
	m.refreshChatView()

	if m.session == nil || !m.session.Authenticated() {
		m.openLogin()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.state == constants.StateLogin {
		return m.form.Init()
	}
	return m.loadAll()
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateCalendar:
		keys = append(keys, m.keys.Enter, m.keys.PrevMonth, m.keys.NextMonth)
	case constants.StateDashboard:
		keys = append(keys, m.keys.Enter, m.keys.New, m.keys.Refresh)
	case constants.StateChat:
		keys = []key.Binding{m.keys.Tab, m.keys.Enter, m.keys.ClearChat}
	case constants.StateStorybook:
		keys = append(keys, m.keys.Enter, m.keys.New, m.keys.Delete)
	case constants.StateEntryDetail:
		keys = []key.Binding{m.keys.Edit, m.keys.Delete, m.keys.Back}
	case constants.StateConfirmDelete:
		keys = []key.Binding{m.keys.Confirm, m.keys.Deny}
	case constants.StateEntryForm, constants.StateStoryForm, constants.StateLogin:
		keys = []key.Binding{m.keys.Back}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Logout}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right, m.keys.Enter, m.keys.Back}

	var actions []key.Binding
	switch m.state {
	case constants.StateCalendar:
		actions = []key.Binding{m.keys.PrevMonth, m.keys.NextMonth, m.keys.Today, m.keys.Refresh}
	case constants.StateDashboard:
		actions = []key.Binding{m.keys.New, m.keys.Refresh}
	case constants.StateChat:
		actions = []key.Binding{m.keys.ClearChat}
	case constants.StateStorybook:
		actions = []key.Binding{m.keys.New, m.keys.Delete, m.keys.Refresh}
	case constants.StateEntryDetail:
		actions = []key.Binding{m.keys.Edit, m.keys.Delete}
	}
	return [][]key.Binding{global, navigation, actions}
}

// onTab reports whether one of the four top-level tabs is showing.
func (m Model) onTab() bool {
	return m.state < constants.StateLogin
}

func (m Model) today() time.Time {
	return m.now()
}
