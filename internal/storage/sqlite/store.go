package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/lifecal/internal/constants"
	"github.com/julianstephens/lifecal/internal/logger"
	"github.com/julianstephens/lifecal/internal/migration"
	"github.com/julianstephens/lifecal/internal/models"
	"github.com/julianstephens/lifecal/migrations"
)

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Init creates the database if needed, applies migrations and seeds default settings.
func (s *Store) Init(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	runner, err := s.runner()
	if err != nil {
		return err
	}
	if _, err := runner.Apply(ctx, func(msg string) { logger.Info(msg) }); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	settings, err := s.GetSettings(ctx)
	if err != nil || settings.Timezone == "" {
		defaults := models.Settings{
			APIURL:            constants.DefaultAPIURL,
			Timezone:          constants.DefaultTimezone,
			RequestsPerSecond: constants.DefaultRequestsPerSec,
		}
		if err := s.SaveSettings(ctx, defaults); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}
	return nil
}

// Load opens an initialized database and checks its schema version.
func (s *Store) Load(ctx context.Context) error {
	if s.db != nil {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'lifecal init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	runner, err := s.runner()
	if err != nil {
		return err
	}
	return runner.Validate(ctx)
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

func (s *Store) SchemaVersion(ctx context.Context) (int, int, error) {
	runner, err := s.runner()
	if err != nil {
		return 0, 0, err
	}
	current, err := runner.CurrentVersion(ctx)
	if err != nil {
		return 0, 0, err
	}
	latest, err := runner.Latest()
	return current, latest, err
}

func (s *Store) runner() (*migration.Runner, error) {
	sub, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, sub), nil
}
