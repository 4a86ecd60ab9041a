package stories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/lifecal/internal/api"
	"github.com/julianstephens/lifecal/internal/cli"
	"github.com/julianstephens/lifecal/internal/models"
	"github.com/julianstephens/lifecal/internal/storybook"
)

type StoryListCmd struct {
	From string `help:"Only stories overlapping this start date (YYYY-MM-DD)."`
	To   string `help:"Only stories overlapping this end date (YYYY-MM-DD)."`
}

func (c *StoryListCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireSession(); err != nil {
		return err
	}
	if (c.From == "") != (c.To == "") {
		return errors.New("--from and --to must be given together")
	}

	var (
		list []models.Story
		err  error
	)
	if c.From != "" {
		list, err = ctx.API.StoriesInRange(ctx.Ctx(), c.From, c.To)
	} else {
		list, err = ctx.API.ListStories(ctx.Ctx())
	}
	if err != nil {
		return fmt.Errorf("failed to load stories: %w", err)
	}

	book := storybook.NewList()
	book.Set(list)
	if book.Len() == 0 {
		ctx.Println("No stories yet. Create one with: lifecal story create --period last-week --prompt \"...\"")
		return nil
	}

	tbl := cli.NewTable()
	tbl.AddRow("ID", "TITLE", "RANGE", "WORDS", "EXCERPT")
	for _, s := range book.Stories() {
		tbl.AddRow(s.ID, s.Title, s.StartDate+" → "+s.EndDate, storybook.WordCount(s.Content), storybook.Excerpt(s.Content, 48))
	}
	ctx.PrintTable(tbl)
	return nil
}

type StoryShowCmd struct {
	ID string `arg:"" help:"Story ID."`
}

func (c *StoryShowCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireSession(); err != nil {
		return err
	}
	s, err := ctx.API.GetStory(ctx.Ctx(), c.ID)
	if errors.Is(err, api.ErrNotFound) {
		return fmt.Errorf("story %s not found", c.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to load story: %w", err)
	}
	ctx.Print(Format(s))
	return nil
}

// Format renders a story with its paragraphs separated by blank lines.
func Format(s models.Story) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", s.Title)
	fmt.Fprintf(&b, "%s → %s · %d words", s.StartDate, s.EndDate, storybook.WordCount(s.Content))
	if s.AIModel != "" {
		fmt.Fprintf(&b, " · %s", s.AIModel)
	}
	b.WriteString("\n")
	for _, p := range storybook.Paragraphs(s.Content) {
		fmt.Fprintf(&b, "\n%s\n", p)
	}
	return b.String()
}

type StoryCreateCmd struct {
	Period string `help:"Preset range: last-week, last-month, last-quarter, last-year." xor:"range"`
	From   string `help:"Custom range start (YYYY-MM-DD)." xor:"range"`
	To     string `help:"Custom range end (YYYY-MM-DD)."`
	Prompt string `required:"" help:"What the story should focus on."`
	Title  string `help:"Story title. Defaults to 'My Story: <start> - <end>'."`
}

func (c *StoryCreateCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireSession(); err != nil {
		return err
	}

	form := storybook.FormModel{
		Period:    c.Period,
		StartDate: c.From,
		EndDate:   c.To,
		Title:     c.Title,
		Prompt:    c.Prompt,
	}
	if form.Period == "" && form.StartDate == "" {
		return errors.New("pass --period or --from/--to")
	}
	req, err := form.Request(ctx.Clock()())
	if err != nil {
		return err
	}

	ctx.Printf("Generating story for %s → %s...\n", req.StartDate, req.EndDate)
	s, err := ctx.API.CreateStory(ctx.Ctx(), req)
	if err != nil {
		return fmt.Errorf("failed to generate story: %w", err)
	}
	ctx.Printf("✓ Story created (id %s)\n\n", s.ID)
	ctx.Print(Format(s))
	return nil
}

type StoryRenameCmd struct {
	ID    string `arg:"" help:"Story ID."`
	Title string `arg:"" help:"New title."`
}

func (c *StoryRenameCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireSession(); err != nil {
		return err
	}
	title := strings.TrimSpace(c.Title)
	if title == "" {
		return errors.New("title cannot be empty")
	}

	s, err := ctx.API.UpdateStory(ctx.Ctx(), c.ID, models.StoryUpdate{Title: title})
	if errors.Is(err, api.ErrNotFound) {
		return fmt.Errorf("story %s not found", c.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to rename story: %w", err)
	}
	ctx.Printf("✓ Story %s renamed to %q\n", s.ID, s.Title)
	return nil
}

type StoryDeleteCmd struct {
	ID  string `arg:"" help:"Story ID."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *StoryDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireSession(); err != nil {
		return err
	}

	ok, err := ctx.Confirm("Delete this story? This cannot be undone.", c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		ctx.Println("Cancelled.")
		return nil
	}

	err = ctx.API.DeleteStory(ctx.Ctx(), c.ID)
	if errors.Is(err, api.ErrNotFound) {
		return fmt.Errorf("story %s not found", c.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to delete story: %w", err)
	}
	ctx.Printf("✓ Story %s deleted\n", c.ID)
	return nil
}
