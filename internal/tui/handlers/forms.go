package handlers

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lifecal/internal/entryform"
	"github.com/julianstephens/lifecal/internal/models"
	"github.com/julianstephens/lifecal/internal/storybook"
	"github.com/julianstephens/lifecal/internal/tui/state"
	"github.com/julianstephens/lifecal/internal/utils"
)

// NewEntryForm builds the create/edit form for an entry.
func NewEntryForm(fm *entryform.FormModel, title string) *huh.Form {
	moods := []huh.Option[string]{huh.NewOption("(none)", "")}
	for _, mood := range models.Moods {
		moods = append(moods, huh.NewOption(string(mood), string(mood)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(title).
				Description("One row per line. Blank rows are dropped."),
			huh.NewText().
				Title("Meetings").
				Description("HH:MM Title | notes").
				Lines(4).
				Value(&fm.Meetings).
				Validate(fm.MeetingsField),
			huh.NewText().
				Title("Tasks").
				Description("Caption | https://link").
				Lines(4).
				Value(&fm.Tasks).
				Validate(fm.TasksField),
			huh.NewSelect[string]().
				Title("Mood").
				Options(moods...).
				Value(&fm.Mood),
			huh.NewText().
				Title("Journal").
				Lines(6).
				Value(&fm.Notes),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewStoryForm builds the story generation form. The date fields only show for
// a custom period.
func NewStoryForm(fm *storybook.FormModel) *huh.Form {
	periods := make([]huh.Option[string], 0, len(storybook.Periods))
	for _, p := range storybook.Periods {
		periods = append(periods, huh.NewOption(p.Label(), string(p)))
	}
	custom := func() bool { return fm.Period != string(storybook.PeriodCustom) }

	validDate := func(s string) error {
		if _, err := utils.ParseDate(strings.TrimSpace(s)); err != nil {
			return fmt.Errorf("use YYYY-MM-DD")
		}
		return nil
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Period").
				Options(periods...).
				Value(&fm.Period),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Start date").
				Placeholder("YYYY-MM-DD").
				Value(&fm.StartDate).
				Validate(validDate),
			huh.NewInput().
				Title("End date").
				Placeholder("YYYY-MM-DD").
				Value(&fm.EndDate).
				Validate(validDate),
		).WithHideFunc(custom),
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Description("Leave blank for a default title").
				Value(&fm.Title),
			huh.NewText().
				Title("What should the story focus on?").
				Lines(4).
				Value(&fm.Prompt).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("prompt cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewAuthForm builds the sign-in form; name and confirmation only show when
// creating an account.
func NewAuthForm(fm *state.AuthFormModel) *huh.Form {
	signingIn := func() bool { return !fm.Registering() }

	required := func(field string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", field)
			}
			return nil
		}
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Welcome to Life Calendar").
				Options(
					huh.NewOption("Sign in", state.AuthModeLogin),
					huh.NewOption("Create an account", state.AuthModeRegister),
				).
				Value(&fm.Mode),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(required("name")),
		).WithHideFunc(signingIn),
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&fm.Email).
				Validate(func(s string) error {
					if _, err := mail.ParseAddress(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("enter a valid email address")
					}
					return nil
				}),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&fm.Password).
				Validate(required("password")),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&fm.Confirm).
				Validate(func(s string) error {
					if s != fm.Password {
						return fmt.Errorf("passwords do not match")
					}
					return nil
				}),
		).WithHideFunc(signingIn),
	).WithTheme(huh.ThemeDracula())
}
