package entries

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/lifecal/internal/api"
	"github.com/julianstephens/lifecal/internal/calendar"
	"github.com/julianstephens/lifecal/internal/cli"
	"github.com/julianstephens/lifecal/internal/entryform"
	"github.com/julianstephens/lifecal/internal/utils"
)

// EntryFlags are shared by add and edit. Repeated --meeting and --task flags
// replace the whole list on edit.
type EntryFlags struct {
	Meeting []string `help:"Meeting as 'HH:MM Title | notes'. Repeatable." sep:"none"`
	Task    []string `help:"Task as 'Caption | https://link'. Repeatable." sep:"none"`
	Mood    *string  `help:"Mood for the day (happy, sad, productive, ...). Empty clears it."`
	Notes   *string  `help:"Journal notes."`
}

func (f EntryFlags) apply(form *entryform.FormModel) {
	if len(f.Meeting) > 0 {
		form.Meetings = strings.Join(f.Meeting, "\n")
	}
	if len(f.Task) > 0 {
		form.Tasks = strings.Join(f.Task, "\n")
	}
	if f.Mood != nil {
		form.Mood = *f.Mood
	}
	if f.Notes != nil {
		form.Notes = *f.Notes
	}
}

func (f EntryFlags) empty() bool {
	return len(f.Meeting) == 0 && len(f.Task) == 0 && f.Mood == nil && f.Notes == nil
}

type EntryAddCmd struct {
	Date       string `arg:"" optional:"" default:"today" help:"Date of the entry (YYYY-MM-DD or 'today')."`
	EntryFlags `embed:""`
}

func (c *EntryAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireSession(); err != nil {
		return err
	}
	date, err := utils.ParseDateOrToday(c.Date, ctx.Clock()())
	if err != nil {
		return err
	}
	if calendar.StatusOf(date, ctx.Today(), false) == calendar.StatusFuture {
		return fmt.Errorf("cannot create an entry for %s: future dates are read-only", date)
	}

	existing, err := ctx.API.EntryForDate(ctx.Ctx(), date)
	switch {
	case err == nil:
		return fmt.Errorf("an entry for %s already exists (id %s), use 'lifecal entry edit %s'", date, existing.ID, date)
	case !errors.Is(err, api.ErrNotFound):
		return fmt.Errorf("failed to check for an existing entry: %w", err)
	}

	form := entryform.New(date)
	c.apply(form)
	in, err := form.Build()
	if err != nil {
		return err
	}

	created, err := ctx.API.CreateEntry(ctx.Ctx(), in)
	if err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}
	ctx.Printf("✓ Entry created for %s\n", created.Date)
	return nil
}

type EntryEditCmd struct {
	Date       string `arg:"" help:"Date of the entry (YYYY-MM-DD or 'today')."`
	EntryFlags `embed:""`
}

func (c *EntryEditCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireSession(); err != nil {
		return err
	}
	date, err := utils.ParseDateOrToday(c.Date, ctx.Clock()())
	if err != nil {
		return err
	}
	if c.empty() {
		return errors.New("no changes specified, pass --meeting, --task, --mood or --notes")
	}

	existing, err := ctx.API.EntryForDate(ctx.Ctx(), date)
	if errors.Is(err, api.ErrNotFound) {
		return fmt.Errorf("no entry for %s, use 'lifecal entry add %s'", date, date)
	}
	if err != nil {
		return fmt.Errorf("failed to load entry: %w", err)
	}

	form := entryform.FromEntry(existing)
	c.apply(form)
	in, err := form.Build()
	if err != nil {
		return err
	}

	if _, err := ctx.API.UpdateEntry(ctx.Ctx(), existing.ID, in); err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	ctx.Printf("✓ Entry updated for %s\n", date)
	return nil
}

type EntryDeleteCmd struct {
	Date string `arg:"" help:"Date of the entry (YYYY-MM-DD or 'today')."`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *EntryDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireSession(); err != nil {
		return err
	}
	date, err := utils.ParseDateOrToday(c.Date, ctx.Clock()())
	if err != nil {
		return err
	}

	existing, err := ctx.API.EntryForDate(ctx.Ctx(), date)
	if errors.Is(err, api.ErrNotFound) {
		return fmt.Errorf("no entry for %s", date)
	}
	if err != nil {
		return fmt.Errorf("failed to load entry: %w", err)
	}

	ok, err := ctx.Confirm(fmt.Sprintf("Delete the entry for %s? This cannot be undone.", date), c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		ctx.Println("Cancelled.")
		return nil
	}

	if err := ctx.API.DeleteEntry(ctx.Ctx(), existing.ID); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	ctx.Printf("✓ Entry deleted for %s\n", date)
	return nil
}
