package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/gosuri/uitable"

	"github.com/julianstephens/lifecal/internal/api"
	"github.com/julianstephens/lifecal/internal/backup"
	"github.com/julianstephens/lifecal/internal/constants"
	"github.com/julianstephens/lifecal/internal/logger"
	"github.com/julianstephens/lifecal/internal/session"
	"github.com/julianstephens/lifecal/internal/storage"
	"github.com/julianstephens/lifecal/internal/utils"
)

// ErrNotSignedIn is returned by commands that need a backend session.
var ErrNotSignedIn = errors.New("not signed in, run 'lifecal login' first")

type Context struct {
	Store   storage.Provider
	Session *session.Session
	API     *api.Client

	// Now returns the current time in the configured timezone.
	Now func() time.Time
	Out io.Writer
	In  io.Reader

	// Interactive is false when prompts must not be shown (tests, piped input).
	Interactive bool

	base context.Context
}

// WithContext sets the context every command runs under.
func (c *Context) WithContext(ctx context.Context) *Context {
	c.base = ctx
	return c
}

// Ctx returns the command's base context.
func (c *Context) Ctx() context.Context {
	if c.base == nil {
		return context.Background()
	}
	return c.base
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) Print(args ...any) {
	fmt.Fprint(c.out(), args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

// Today returns the current date (YYYY-MM-DD) in the configured timezone.
func (c *Context) Today() string {
	return utils.FormatDate(c.clock())
}

func (c *Context) clock() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Clock returns the configured clock, defaulting to time.Now.
func (c *Context) Clock() func() time.Time {
	if c.Now == nil {
		return time.Now
	}
	return c.Now
}

// RequireSession fails fast when nobody is signed in.
func (c *Context) RequireSession() error {
	if c.Session == nil || !c.Session.Authenticated() {
		return ErrNotSignedIn
	}
	return nil
}

// NewTable returns a table writer with the house separator.
func NewTable() *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	return tbl
}

// PrintTable writes tbl followed by a newline.
func (c *Context) PrintTable(tbl *uitable.Table) {
	fmt.Fprintln(c.out(), tbl)
}

// StartAutomaticBackup runs PerformAutomaticBackup in the background. The
// returned stop func cancels a snapshot still in progress and waits for it.
func (c *Context) StartAutomaticBackup() (stop func()) {
	ctx, cancel := context.WithCancel(c.Ctx())
	var wg sync.WaitGroup
	wg.Go(func() { c.PerformAutomaticBackup(ctx) })
	return func() {
		cancel()
		wg.Wait()
	}
}

// PerformAutomaticBackup snapshots the journal at most once a day. Failures are
// logged and never interrupt the caller.
func (c *Context) PerformAutomaticBackup(parent context.Context) {
	if c.Store == nil || c.API == nil || c.RequireSession() != nil {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		logger.Warn("Automatic backup skipped", "error", err)
		return
	}
	if len(backups) > 0 && time.Since(backups[0].Timestamp) < 24*time.Hour {
		return
	}

	ctx, cancel := context.WithTimeout(parent, 2*constants.RequestTimeout)
	defer cancel()
	path, err := mgr.Create(ctx, c.API, c.Session.User())
	if err != nil {
		logger.Warn("Automatic backup failed", "error", err)
		return
	}
	logger.Info("Automatic backup created", "path", path)
}
