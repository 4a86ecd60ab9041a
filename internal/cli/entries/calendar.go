package entries

import (
	"fmt"

	"github.com/julianstephens/lifecal/internal/calendar"
	"github.com/julianstephens/lifecal/internal/cli"
)

type CalendarCmd struct {
	Month string `help:"Month to show (YYYY-MM). Defaults to the current month."`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireSession(); err != nil {
		return err
	}
	m, err := resolveMonth(ctx, c.Month)
	if err != nil {
		return err
	}

	grid := calendar.NewGrid(ctx.Clock())
	if err := grid.LoadMonth(ctx.Ctx(), ctx.API, m.Year, m.Month); err != nil {
		return fmt.Errorf("failed to load %s: %w", m.Title(), err)
	}

	ctx.Println(calendar.Render(grid, calendar.DefaultStyles()))
	ctx.Printf("\n%d entries this month\n", grid.EntryCount())
	return nil
}
