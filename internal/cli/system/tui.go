package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/lifecal/internal/cli"
	"github.com/julianstephens/lifecal/internal/logger"
	"github.com/julianstephens/lifecal/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	// Snapshot the journal (at most once a day) while the UI starts
	stop := ctx.StartAutomaticBackup()
	defer stop()

	model := tui.New(tui.Deps{
		Ctx:        ctx.Ctx(),
		Backend:    ctx.API,
		Session:    ctx.Session,
		Transcript: ctx.Store,
		Now:        ctx.Clock(),
	})

	// Debug output on stderr would tear the alternate screen
	restore := logger.FileOnly()
	defer restore()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx.Ctx()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited with an error: %w", err)
	}
	return nil
}
