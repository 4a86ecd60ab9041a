package entries

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/lifecal/internal/api"
	"github.com/julianstephens/lifecal/internal/calendar"
	"github.com/julianstephens/lifecal/internal/cli"
	"github.com/julianstephens/lifecal/internal/entryform"
	"github.com/julianstephens/lifecal/internal/models"
	"github.com/julianstephens/lifecal/internal/utils"
)

type EntryListCmd struct {
	Month string `help:"Month to list (YYYY-MM). Defaults to the current month."`
}

func (c *EntryListCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireSession(); err != nil {
		return err
	}
	m, err := resolveMonth(ctx, c.Month)
	if err != nil {
		return err
	}

	list, err := ctx.API.ListEntries(ctx.Ctx(), m.FirstDate(), m.LastDate())
	if err != nil {
		return fmt.Errorf("failed to load entries: %w", err)
	}
	if len(list) == 0 {
		ctx.Printf("No entries in %s.\n", m.Title())
		return nil
	}

	tbl := cli.NewTable()
	tbl.AddRow("DATE", "MOOD", "MEETINGS", "TASKS", "JOURNAL")
	for _, e := range list {
		mood := string(e.Mood)
		if mood == "" {
			mood = "-"
		}
		journal := "-"
		if e.HasJournal() {
			journal = "yes"
		}
		tbl.AddRow(e.Date, mood, len(e.Meetings), len(e.Tasks), journal)
	}
	ctx.Printf("%s (%d entries)\n\n", m.Title(), len(list))
	ctx.PrintTable(tbl)
	return nil
}

type EntryTodayCmd struct{}

func (c *EntryTodayCmd) Run(ctx *cli.Context) error {
	return show(ctx, ctx.Today())
}

type EntryShowCmd struct {
	Date string `arg:"" help:"Date of the entry (YYYY-MM-DD or 'today'), or its ID."`
}

func (c *EntryShowCmd) Run(ctx *cli.Context) error {
	date, err := utils.ParseDateOrToday(c.Date, ctx.Clock()())
	if err != nil {
		return showByID(ctx, c.Date)
	}
	return show(ctx, date)
}

func showByID(ctx *cli.Context, id string) error {
	if err := ctx.RequireSession(); err != nil {
		return err
	}
	e, err := ctx.API.GetEntry(ctx.Ctx(), id)
	if errors.Is(err, api.ErrNotFound) {
		return fmt.Errorf("%q is neither a date nor a known entry ID", id)
	}
	if err != nil {
		return fmt.Errorf("failed to load entry: %w", err)
	}
	ctx.Print(Format(e))
	return nil
}

func show(ctx *cli.Context, date string) error {
	if err := ctx.RequireSession(); err != nil {
		return err
	}
	e, err := ctx.API.EntryForDate(ctx.Ctx(), date)
	if errors.Is(err, api.ErrNotFound) {
		ctx.Printf("No entry for %s.\n", date)
		if calendar.StatusOf(date, ctx.Today(), false) != calendar.StatusFuture {
			ctx.Printf("Create one with: lifecal entry add %s\n", date)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load entry: %w", err)
	}
	ctx.Print(Format(e))
	return nil
}

// Format renders an entry for the terminal.
func Format(e models.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Entry for %s\n", e.Date)
	if labels := calendar.BadgesFor(&e).Labels(); len(labels) > 0 {
		fmt.Fprintf(&b, "  %s\n", strings.Join(labels, " · "))
	}

	if e.Summary != "" {
		fmt.Fprintf(&b, "\nSummary\n  %s\n", e.Summary)
	}

	b.WriteString("\nMeetings\n")
	if len(e.Meetings) == 0 {
		b.WriteString("  none\n")
	}
	for _, m := range e.Meetings {
		fmt.Fprintf(&b, "  %s\n", entryform.FormatMeeting(m))
	}

	b.WriteString("\nTasks\n")
	if len(e.Tasks) == 0 {
		b.WriteString("  none\n")
	}
	for _, t := range e.Tasks {
		fmt.Fprintf(&b, "  - %s\n", entryform.FormatTask(t))
	}

	if e.HasJournal() {
		fmt.Fprintf(&b, "\nJournal\n  %s\n", strings.ReplaceAll(strings.TrimSpace(e.JournalNotes), "\n", "\n  "))
	}
	return b.String()
}

func resolveMonth(ctx *cli.Context, s string) (calendar.Month, error) {
	if s == "" {
		return calendar.MonthOf(ctx.Clock()()), nil
	}
	return calendar.ParseMonth(s)
}
