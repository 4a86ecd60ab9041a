package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/lifecal/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Delete the existing local state (settings, cached profile, chat transcript) before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			ctx.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(ctx.Ctx()); err != nil {
		return err
	}
	ctx.Printf("Initialized lifecal storage at: %s\n", ctx.Store.GetConfigPath())
	ctx.Println("Next: sign in with 'lifecal login' or create an account with 'lifecal register'.")
	return nil
}
