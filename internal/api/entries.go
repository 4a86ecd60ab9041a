package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sort"

	"github.com/julianstephens/lifecal/internal/models"
)

// ListEntries returns the entries whose date falls within [start, end], both YYYY-MM-DD.
func (c *Client) ListEntries(ctx context.Context, start, end string) ([]models.Entry, error) {
	var raw json.RawMessage
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/entries",
		query:  url.Values{"startDate": {start}, "endDate": {end}},
	}, &raw)
	if err != nil {
		return nil, err
	}
	return decodeEntries(raw)
}

// AllEntries returns every entry of the signed-in user, newest first.
func (c *Client) AllEntries(ctx context.Context) ([]models.Entry, error) {
	var raw json.RawMessage
	if err := c.do(ctx, request{method: http.MethodGet, path: "/entries"}, &raw); err != nil {
		return nil, err
	}
	entries, err := decodeEntries(raw)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date > entries[j].Date })
	return entries, nil
}

// EntryForDate returns the entry recorded on date. The backend answers this
// query with either a single document or a list, so both are accepted.
func (c *Client) EntryForDate(ctx context.Context, date string) (models.Entry, error) {
	var raw json.RawMessage
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/entries",
		query:  url.Values{"startDate": {date}},
	}, &raw)
	if err != nil {
		return models.Entry{}, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return models.Entry{}, ErrNotFound
	}

	if raw[0] == '[' {
		entries, err := NormalizeEntries(raw)
		if err != nil {
			return models.Entry{}, err
		}
		for _, e := range entries {
			if e.Date == date {
				return e, nil
			}
		}
		return models.Entry{}, ErrNotFound
	}

	e, err := NormalizeEntry(raw)
	if err != nil {
		return models.Entry{}, err
	}
	if e.ID == "" || e.Date != date {
		return models.Entry{}, ErrNotFound
	}
	return e, nil
}

func (c *Client) GetEntry(ctx context.Context, id string) (models.Entry, error) {
	var w wireEntry
	if err := c.do(ctx, request{method: http.MethodGet, path: "/entries/" + url.PathEscape(id)}, &w); err != nil {
		return models.Entry{}, err
	}
	return w.toModel(), nil
}

func (c *Client) CreateEntry(ctx context.Context, in models.EntryInput) (models.Entry, error) {
	var w wireEntry
	if err := c.do(ctx, request{method: http.MethodPost, path: "/entries", body: in}, &w); err != nil {
		return models.Entry{}, err
	}
	return w.toModel(), nil
}

// UpdateEntry fully replaces the entry's user-authored fields.
func (c *Client) UpdateEntry(ctx context.Context, id string, in models.EntryInput) (models.Entry, error) {
	var w wireEntry
	if err := c.do(ctx, request{method: http.MethodPut, path: "/entries/" + url.PathEscape(id), body: in}, &w); err != nil {
		return models.Entry{}, err
	}
	return w.toModel(), nil
}

func (c *Client) DeleteEntry(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/entries/" + url.PathEscape(id)}, nil)
}

func decodeEntries(raw json.RawMessage) ([]models.Entry, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []models.Entry{}, nil
	}
	return NormalizeEntries(raw)
}
