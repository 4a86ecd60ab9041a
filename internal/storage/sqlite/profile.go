package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/julianstephens/lifecal/internal/models"
	"github.com/julianstephens/lifecal/internal/storage"
)

// GetProfile returns the cached profile of the signed-in user.
func (s *Store) GetProfile(ctx context.Context) (models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, "SELECT id, name, email FROM profile LIMIT 1").Scan(&u.ID, &u.Name, &u.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, storage.ErrNotFound
	}
	return u, err
}

// SaveProfile replaces the cached profile. Only one profile is kept.
func (s *Store) SaveProfile(ctx context.Context, u models.User) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM profile"); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO profile (id, name, email, cached_at) VALUES (?, ?, ?, ?)",
		u.ID, u.Name, u.Email, time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) ClearProfile(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM profile")
	return err
}
