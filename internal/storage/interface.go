package storage

import (
	"context"
	"errors"

	"github.com/julianstephens/lifecal/internal/models"
)

// ErrNotFound is returned when a requested record is absent from the local store.
var ErrNotFound = errors.New("not found")

// Provider is the local state store. Journal data lives on the backend; only
// client settings, the cached profile and the chat transcript are kept here.
type Provider interface {
	// Lifecycle
	Init(ctx context.Context) error
	Load(ctx context.Context) error
	Close() error
	GetConfigPath() string
	SchemaVersion(ctx context.Context) (current, latest int, err error)

	// Settings
	GetSettings(ctx context.Context) (models.Settings, error)
	SaveSettings(ctx context.Context, s models.Settings) error

	// Profile
	GetProfile(ctx context.Context) (models.User, error)
	SaveProfile(ctx context.Context, u models.User) error
	ClearProfile(ctx context.Context) error

	// Chat transcript
	AppendChatMessage(ctx context.Context, msg models.ChatMessage) error
	ListChatMessages(ctx context.Context) ([]models.ChatMessage, error)
	ClearChat(ctx context.Context) error
}
