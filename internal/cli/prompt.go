package cli

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
)

var errPromptUnavailable = errors.New("input required but prompts are disabled")

// Confirm asks a yes/no question. assumeYes short-circuits the prompt.
func (c *Context) Confirm(title string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if !c.Interactive {
		return false, errPromptUnavailable
	}
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

// Input prompts for a single value when current is empty.
func (c *Context) Input(title, current string, secret bool) (string, error) {
	if strings.TrimSpace(current) != "" {
		return current, nil
	}
	if !c.Interactive {
		return "", errPromptUnavailable
	}
	value := ""
	field := huh.NewInput().Title(title).Value(&value)
	if secret {
		field = field.EchoMode(huh.EchoModePassword)
	}
	if err := field.Run(); err != nil {
		return "", err
	}
	if secret {
		return value, nil
	}
	return strings.TrimSpace(value), nil
}
