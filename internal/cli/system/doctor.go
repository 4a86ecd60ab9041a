package system

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/lifecal/internal/backup"
	"github.com/julianstephens/lifecal/internal/cli"
	"github.com/julianstephens/lifecal/internal/constants"
	"github.com/julianstephens/lifecal/internal/keyring"
	"github.com/julianstephens/lifecal/internal/logger"
	"github.com/julianstephens/lifecal/internal/migration"
	"github.com/julianstephens/lifecal/internal/utils"
)

var (
	processesFunc   = ps.Processes
	keyringUsableFn = keyring.IsAvailable
)

type DoctorCmd struct{}

type gate int

const (
	gateNone gate = iota
	gateDB
	gateAPI
)

type check struct {
	name     string
	run      func(ctx *cli.Context) error
	requires gate
	provides gate
	warnOnly bool
}

var checks = []check{
	{name: "Database reachable", run: checkDBReachable, provides: gateDB},
	{name: "Schema version", run: checkSchemaVersion, requires: gateDB},
	{name: "Timezone setting", run: checkTimezone, requires: gateDB},
	{name: "Clock/timezone", run: checkClock},
	{name: "Keyring available", run: checkKeyring},
	{name: "Backend reachable", run: checkBackend, provides: gateAPI},
	{name: "Signed in", run: checkSignedIn, requires: gateAPI, warnOnly: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "Other instances", run: checkOtherInstances, warnOnly: true},
}

var skipReason = map[gate]string{
	gateDB:  "database not reachable",
	gateAPI: "backend not reachable",
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	passed := map[gate]bool{gateNone: true}

	for _, c := range checks {
		if !passed[c.requires] {
			ctx.Printf("⊘ %s: SKIPPED (%s)\n", c.name, skipReason[c.requires])
			continue
		}

		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
			if c.provides != gateNone {
				passed[c.provides] = true
			}
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if path := logger.Path(); path != "" {
		ctx.Printf("Logs: %s\n", path)
	}
	if hasError {
		ctx.Println("Some checks failed. Please address the issues above.")
		return errors.New("diagnostics failed")
	}
	ctx.Println("All checks passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if ctx.Store == nil {
		return errors.New("no local store configured")
	}
	if _, err := os.Stat(ctx.Store.GetConfigPath()); os.IsNotExist(err) {
		return fmt.Errorf("%s does not exist, run 'lifecal init'", ctx.Store.GetConfigPath())
	}
	if err := ctx.Store.Load(ctx.Ctx()); err != nil {
		// The file opened; the schema check reports the mismatch.
		if errors.Is(err, migration.ErrSchemaMismatch) {
			return nil
		}
		return err
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, err := ctx.Store.SchemaVersion(ctx.Ctx())
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	switch {
	case current < latest:
		return fmt.Errorf("schema version %d is behind %d, run 'lifecal init'", current, latest)
	case current > latest:
		return fmt.Errorf("schema version %d is newer than this binary supports (%d), upgrade lifecal", current, latest)
	}
	return nil
}

func checkTimezone(ctx *cli.Context) error {
	s, err := ctx.Store.GetSettings(ctx.Ctx())
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	if !utils.ValidateTimezone(s.Timezone) {
		return fmt.Errorf("invalid timezone %q, fix it with 'lifecal settings set timezone <IANA name>'", s.Timezone)
	}
	return nil
}

func checkClock(ctx *cli.Context) error {
	now := ctx.Clock()()
	if now.Year() < 2000 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	if _, err := time.Parse(constants.DateFormat, utils.FormatDate(now)); err != nil {
		return fmt.Errorf("date formatting failed: %w", err)
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyringUsableFn() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}

func checkBackend(ctx *cli.Context) error {
	if ctx.API == nil {
		return errors.New("no backend client configured")
	}
	c, cancel := context.WithTimeout(ctx.Ctx(), 5*time.Second)
	defer cancel()
	if err := ctx.API.Ping(c); err != nil {
		return fmt.Errorf("%s: %w", ctx.API.BaseURL(), err)
	}
	return nil
}

func checkSignedIn(ctx *cli.Context) error {
	if err := ctx.RequireSession(); err != nil {
		return err
	}
	if _, err := ctx.API.Profile(ctx.Ctx()); err != nil {
		return fmt.Errorf("stored token was rejected: %w", err)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if ctx.Store == nil {
		return errors.New("no local store configured")
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	snaps, err := mgr.List()
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		return fmt.Errorf("no journal snapshots in %s, run 'lifecal backup create'", mgr.Dir())
	}
	return nil
}

func checkOtherInstances(ctx *cli.Context) error {
	procs, err := processesFunc()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}
	self := os.Getpid()
	var pids []string
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		if p.Executable() == constants.AppName {
			pids = append(pids, fmt.Sprint(p.Pid()))
		}
	}
	if len(pids) > 0 {
		return fmt.Errorf("other lifecal processes running (pid %s); concurrent writes to the chat transcript may interleave", strings.Join(pids, ", "))
	}
	return nil
}
