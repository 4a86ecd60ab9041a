package keyring

import (
	"errors"
	"fmt"

	"github.com/julianstephens/lifecal/internal/constants"
	"github.com/zalando/go-keyring"
)

var (
	// ErrNotFound is returned when no token is stored in the keyring
	ErrNotFound = errors.New("auth token not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Store persists the session token. The OS keyring is the default
// implementation; tests and headless hosts may substitute their own.
type Store interface {
	GetToken() (string, error)
	SetToken(token string) error
	DeleteToken() error
}

// OS is the Store backed by the operating system keyring.
type OS struct {
	Service string
	User    string
}

// Default returns the OS keyring store under the application's service name.
func Default() *OS {
	return &OS{Service: constants.AppName, User: constants.DefaultKeyringUser}
}

// GetToken retrieves the bearer token. Returns ErrNotFound if none is stored.
func (k *OS) GetToken() (string, error) {
	token, err := keyring.Get(k.Service, k.User)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return token, nil
}

// SetToken stores the bearer token.
func (k *OS) SetToken(token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if err := keyring.Set(k.Service, k.User, token); err != nil {
		return fmt.Errorf("failed to store token in keyring: %w", err)
	}
	return nil
}

// DeleteToken removes the bearer token. A missing token is not an error.
func (k *OS) DeleteToken() error {
	err := keyring.Delete(k.Service, k.User)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete token from keyring: %w", err)
	}
	return nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

// Memory is an in-process Store.
type Memory struct {
	token string
}

func (m *Memory) GetToken() (string, error) {
	if m.token == "" {
		return "", ErrNotFound
	}
	return m.token, nil
}

func (m *Memory) SetToken(token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	m.token = token
	return nil
}

func (m *Memory) DeleteToken() error {
	m.token = ""
	return nil
}
