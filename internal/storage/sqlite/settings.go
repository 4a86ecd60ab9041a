package sqlite

import (
	"context"
	"fmt"
	"strconv"

	"github.com/julianstephens/lifecal/internal/constants"
	"github.com/julianstephens/lifecal/internal/models"
	"github.com/julianstephens/lifecal/internal/storage"
)

func (s *Store) GetSettings(ctx context.Context) (models.Settings, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	settings := models.Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		switch key {
		case constants.SettingAPIURL:
			settings.APIURL = value
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingRequestsPerSecond:
			n, err := strconv.Atoi(value)
			if err != nil {
				return models.Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.RequestsPerSecond = n
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}
	if count == 0 {
		return models.Settings{}, fmt.Errorf("settings %w", storage.ErrNotFound)
	}
	return settings, nil
}

func (s *Store) SaveSettings(ctx context.Context, settings models.Settings) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, "INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	values := map[string]string{
		constants.SettingAPIURL:            settings.APIURL,
		constants.SettingTimezone:          settings.Timezone,
		constants.SettingRequestsPerSecond: strconv.Itoa(settings.RequestsPerSecond),
	}
	for k, v := range values {
		if _, err := stmt.ExecContext(ctx, k, v); err != nil {
			return err
		}
	}
	return tx.Commit()
}
