package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/lifecal/internal/api"
	"github.com/julianstephens/lifecal/internal/cli"
	"github.com/julianstephens/lifecal/internal/logger"
)

type LoginCmd struct {
	Email    string `help:"Account email address."`
	Password string `help:"Account password (prompted when omitted)." env:"LIFECAL_PASSWORD"`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	email, err := ctx.Input("Email", c.Email, false)
	if err != nil {
		return err
	}
	password, err := ctx.Input("Password", c.Password, true)
	if err != nil {
		return err
	}

	res, err := ctx.API.Login(ctx.Ctx(), email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if err := ctx.Session.Init(ctx.Ctx(), res.Token, res.User); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	ctx.Printf("✓ Signed in as %s\n", displayName(res.User.Name, res.User.Email))
	return nil
}

type RegisterCmd struct {
	Name     string `help:"Display name."`
	Email    string `help:"Account email address."`
	Password string `help:"Account password (prompted when omitted)." env:"LIFECAL_PASSWORD"`
	Confirm  string `help:"Password confirmation (prompted when omitted)."`
}

func (c *RegisterCmd) Run(ctx *cli.Context) error {
	name, err := ctx.Input("Name", c.Name, false)
	if err != nil {
		return err
	}
	email, err := ctx.Input("Email", c.Email, false)
	if err != nil {
		return err
	}
	password, err := ctx.Input("Password", c.Password, true)
	if err != nil {
		return err
	}
	confirm, err := ctx.Input("Confirm password", c.Confirm, true)
	if err != nil {
		return err
	}

	res, err := ctx.API.Register(ctx.Ctx(), name, email, password, confirm)
	if errors.Is(err, api.ErrPasswordMismatch) {
		return err
	}
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	if err := ctx.Session.Init(ctx.Ctx(), res.Token, res.User); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	ctx.Printf("✓ Account created. Signed in as %s\n", displayName(res.User.Name, res.User.Email))
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	if !ctx.Session.Authenticated() {
		ctx.Println("Not signed in.")
		return nil
	}
	if err := ctx.API.Logout(ctx.Ctx()); err != nil {
		logger.Warn("Backend logout failed", "error", err)
	}
	if err := ctx.Session.Teardown(ctx.Ctx()); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	ctx.Println("✓ Signed out")
	return nil
}

type WhoamiCmd struct {
	Refresh bool `help:"Fetch the profile from the backend instead of the local cache."`
}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireSession(); err != nil {
		return err
	}

	user := ctx.Session.User()
	if c.Refresh || user.Email == "" {
		fresh, err := ctx.API.Profile(ctx.Ctx())
		if err != nil {
			return fmt.Errorf("failed to fetch profile: %w", err)
		}
		if err := ctx.Session.UpdateUser(ctx.Ctx(), fresh); err != nil {
			return fmt.Errorf("failed to cache profile: %w", err)
		}
		user = fresh
	}

	tbl := cli.NewTable()
	tbl.AddRow("Name:", user.Name)
	tbl.AddRow("Email:", user.Email)
	tbl.AddRow("ID:", user.ID)
	tbl.AddRow("API:", ctx.API.BaseURL())
	ctx.PrintTable(tbl)
	return nil
}

type ProfileSetCmd struct {
	Name string `required:"" help:"New display name."`
}

func (c *ProfileSetCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireSession(); err != nil {
		return err
	}
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return errors.New("name cannot be empty")
	}

	user, err := ctx.API.UpdateProfile(ctx.Ctx(), name)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if err := ctx.Session.UpdateUser(ctx.Ctx(), user); err != nil {
		return fmt.Errorf("failed to cache profile: %w", err)
	}
	ctx.Printf("✓ Profile updated: %s\n", user.Name)
	return nil
}

type ProfileCmd struct {
	Set ProfileSetCmd `cmd:"" help:"Update profile fields."`
}

func displayName(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}
