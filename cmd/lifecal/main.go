package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"github.com/julianstephens/lifecal/internal/api"
	"github.com/julianstephens/lifecal/internal/cli"
	"github.com/julianstephens/lifecal/internal/cli/assistant"
	"github.com/julianstephens/lifecal/internal/cli/auth"
	"github.com/julianstephens/lifecal/internal/cli/backups"
	"github.com/julianstephens/lifecal/internal/cli/entries"
	"github.com/julianstephens/lifecal/internal/cli/settings"
	"github.com/julianstephens/lifecal/internal/cli/stories"
	"github.com/julianstephens/lifecal/internal/cli/system"
	"github.com/julianstephens/lifecal/internal/constants"
	lcerrors "github.com/julianstephens/lifecal/internal/errors"
	"github.com/julianstephens/lifecal/internal/keyring"
	"github.com/julianstephens/lifecal/internal/logger"
	"github.com/julianstephens/lifecal/internal/models"
	"github.com/julianstephens/lifecal/internal/session"
	"github.com/julianstephens/lifecal/internal/storage/sqlite"
	"github.com/julianstephens/lifecal/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Path to the local state database." type:"path" default:"${config_path}"`
	APIURL  string `name:"api-url" help:"Backend base URL. Overrides ${api_env} and the stored setting."`
	Debug   bool   `help:"Mirror debug logs to stderr."`

	Init   system.InitCmd   `cmd:"" help:"Initialize lifecal local storage."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Tui    system.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`

	Login    auth.LoginCmd    `cmd:"" help:"Sign in to your Life Calendar account."`
	Register auth.RegisterCmd `cmd:"" help:"Create a Life Calendar account."`
	Logout   auth.LogoutCmd   `cmd:"" help:"Sign out and forget the stored token."`
	Whoami   auth.WhoamiCmd   `cmd:"" help:"Show the signed-in account."`
	Profile  auth.ProfileCmd  `cmd:"" help:"Manage your profile."`

	Calendar entries.CalendarCmd `cmd:"" help:"Show a month with the days that have entries."`
	Entry    struct {
		List   entries.EntryListCmd   `cmd:"" help:"List a month's entries." default:"1"`
		Today  entries.EntryTodayCmd  `cmd:"" help:"Show today's entry."`
		Show   entries.EntryShowCmd   `cmd:"" help:"Show the entry for a date."`
		Add    entries.EntryAddCmd    `cmd:"" help:"Create an entry."`
		Edit   entries.EntryEditCmd   `cmd:"" help:"Edit an existing entry."`
		Delete entries.EntryDeleteCmd `cmd:"" help:"Delete an entry."`
	} `cmd:"" help:"Manage journal entries."`
	Story struct {
		List   stories.StoryListCmd   `cmd:"" help:"List your stories." default:"1"`
		Show   stories.StoryShowCmd   `cmd:"" help:"Show a story."`
		Create stories.StoryCreateCmd `cmd:"" help:"Generate a story from a stretch of your journal."`
		Rename stories.StoryRenameCmd `cmd:"" help:"Change a story's title."`
		Delete stories.StoryDeleteCmd `cmd:"" help:"Delete a story."`
	} `cmd:"" help:"Manage storybook stories."`

	Ask  assistant.AskCmd `cmd:"" help:"Ask the assistant about your journal."`
	Chat struct {
		History assistant.ChatHistoryCmd `cmd:"" help:"Show the saved conversation." default:"1"`
		Clear   assistant.ChatClearCmd   `cmd:"" help:"Clear the saved conversation."`
	} `cmd:"" help:"Manage the assistant conversation."`

	Backup struct {
		Create backups.BackupCreateCmd `cmd:"" help:"Snapshot your journal." default:"1"`
		List   backups.BackupListCmd   `cmd:"" help:"List snapshots."`
		Show   backups.BackupShowCmd   `cmd:"" help:"Summarize a snapshot."`
	} `cmd:"" help:"Manage journal snapshots."`
	Settings struct {
		Show settings.SettingsShowCmd `cmd:"" help:"Show settings." default:"1"`
		Set  settings.SettingsSetCmd  `cmd:"" help:"Change a setting."`
	} `cmd:"" help:"Manage application settings."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Life Calendar journaling client"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
			"api_env":     constants.APIURLEnvVar,
		},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
		Level:     os.Getenv(constants.LogLevelEnvVar),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := strings.Fields(ctx.Command())[0]
	store := sqlite.NewStore(CLI.Config)

	// init creates the store itself; doctor reports a broken store instead of failing.
	loaded := false
	if command != "init" {
		if err := store.Load(runCtx); err != nil {
			if command != "doctor" {
				lcerrors.Fatal(err)
			}
			logger.Warn("Local storage unavailable", "error", err)
		} else {
			loaded = true
		}
	}

	prefs := models.Settings{Timezone: constants.DefaultTimezone, RequestsPerSecond: constants.DefaultRequestsPerSec}
	sess := session.New(keyring.Default(), store)
	if loaded {
		if s, err := store.GetSettings(runCtx); err != nil {
			logger.Warn("Failed to read settings, using defaults", "error", err)
		} else {
			prefs = s
		}
		if _, err := sess.Restore(runCtx); err != nil {
			logger.Warn("Failed to restore session", "error", err)
		}
	}

	client := api.New(api.ResolveBaseURL(CLI.APIURL, prefs.APIURL), sess,
		api.WithRateLimit(prefs.RequestsPerSecond),
		api.WithUnauthorizedHandler(func() {
			if err := sess.Teardown(context.Background()); err != nil {
				logger.Warn("Failed to clear rejected session", "error", err)
			}
		}),
	)

	appCtx := (&cli.Context{
		Store:       store,
		Session:     sess,
		API:         client,
		Now:         utils.Clock(prefs.Timezone),
		Out:         os.Stdout,
		In:          os.Stdin,
		Interactive: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
	}).WithContext(runCtx)

	err := ctx.Run(appCtx)
	if cerr := store.Close(); cerr != nil {
		logger.Warn("Failed to close local storage", "error", cerr)
	}
	if err != nil {
		stop()
		lcerrors.Fatal(err)
	}
}
