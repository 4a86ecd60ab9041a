package backups

import (
	"fmt"
	"path/filepath"

	"github.com/julianstephens/lifecal/internal/backup"
	"github.com/julianstephens/lifecal/internal/cli"
	"github.com/julianstephens/lifecal/internal/constants"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireSession(); err != nil {
		return err
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	path, err := mgr.Create(ctx.Ctx(), ctx.API, ctx.Session.User())
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	ctx.Printf("✓ Backup created: %s\n", filepath.Base(path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	snaps, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(snaps) == 0 {
		ctx.Println("No backups found.")
		ctx.Printf("Backups are stored in: %s\n", mgr.Dir())
		return nil
	}

	ctx.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(snaps), constants.MaxBackups)
	tbl := cli.NewTable()
	for _, b := range snaps {
		tbl.AddRow(b.Timestamp.Local().Format("2006-01-02 15:04:05"), filepath.Base(b.Path), fmt.Sprintf("(%.1f KB)", float64(b.Size)/1024.0))
	}
	ctx.PrintTable(tbl)
	ctx.Printf("\nBackup directory: %s\n", mgr.Dir())
	return nil
}

type BackupShowCmd struct {
	File string `arg:"" help:"Path or filename of the backup to inspect."`
}

func (c *BackupShowCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	snap, err := mgr.Load(c.File)
	if err != nil {
		return err
	}

	tbl := cli.NewTable()
	tbl.AddRow("Created:", snap.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	tbl.AddRow("Account:", snap.User.Email)
	tbl.AddRow("Entries:", len(snap.Entries))
	tbl.AddRow("Stories:", len(snap.Stories))
	if n := len(snap.Entries); n > 0 {
		tbl.AddRow("Range:", snap.Entries[n-1].Date+" → "+snap.Entries[0].Date)
	}
	ctx.PrintTable(tbl)
	return nil
}
