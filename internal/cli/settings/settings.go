package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/lifecal/internal/api"
	"github.com/julianstephens/lifecal/internal/cli"
	"github.com/julianstephens/lifecal/internal/constants"
	"github.com/julianstephens/lifecal/internal/models"
	"github.com/julianstephens/lifecal/internal/utils"
	"github.com/julianstephens/lifecal/internal/validation"
)

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Store.GetSettings(ctx.Ctx())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	tbl := cli.NewTable()
	tbl.AddRow("Current Settings:")
	tbl.AddRow("  "+constants.SettingAPIURL, s.APIURL)
	tbl.AddRow("  "+constants.SettingTimezone, s.Timezone)
	tbl.AddRow("  "+constants.SettingRequestsPerSecond, s.RequestsPerSecond)
	tbl.AddRow("")
	tbl.AddRow("Effective API URL:", api.ResolveBaseURL("", s.APIURL))
	ctx.PrintTable(tbl)
	return nil
}

type SettingsSetCmd struct {
	Key   string `arg:"" enum:"api_url,timezone,requests_per_second" help:"Setting name: api_url, timezone or requests_per_second."`
	Value string `arg:"" help:"New value."`
}

func (c *SettingsSetCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Store.GetSettings(ctx.Ctx())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if err := apply(&s, c.Key, strings.TrimSpace(c.Value)); err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(ctx.Ctx(), s); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated successfully.")
	return nil
}

func apply(s *models.Settings, key, value string) error {
	switch key {
	case constants.SettingAPIURL:
		if !validation.ValidURL(value) {
			return fmt.Errorf("api_url must be an absolute http(s) URL, got %q", value)
		}
		s.APIURL = strings.TrimRight(value, "/")
	case constants.SettingTimezone:
		if value == "" || !utils.ValidateTimezone(value) {
			return fmt.Errorf("unknown timezone %q (use an IANA name such as Europe/Berlin, or Local)", value)
		}
		s.Timezone = value
	case constants.SettingRequestsPerSecond:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("requests_per_second must be a non-negative integer, got %q", value)
		}
		s.RequestsPerSecond = n
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}
