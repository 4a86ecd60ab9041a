package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/julianstephens/lifecal/internal/models"
)

func toStories(wire []wireStory) []models.Story {
	out := make([]models.Story, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toModel())
	}
	return out
}

func (c *Client) ListStories(ctx context.Context) ([]models.Story, error) {
	var wire []wireStory
	if err := c.do(ctx, request{method: http.MethodGet, path: "/stories"}, &wire); err != nil {
		return nil, err
	}
	return toStories(wire), nil
}

// StoriesInRange returns stories whose range overlaps [start, end] as decided by the backend.
func (c *Client) StoriesInRange(ctx context.Context, start, end string) ([]models.Story, error) {
	var wire []wireStory
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/stories",
		query:  url.Values{"startDate": {start}, "endDate": {end}},
	}, &wire)
	if err != nil {
		return nil, err
	}
	return toStories(wire), nil
}

func (c *Client) GetStory(ctx context.Context, id string) (models.Story, error) {
	var w wireStory
	if err := c.do(ctx, request{method: http.MethodGet, path: "/stories/" + url.PathEscape(id)}, &w); err != nil {
		return models.Story{}, err
	}
	return w.toModel(), nil
}

// CreateStory asks the backend to generate a story. It blocks until generation finishes.
func (c *Client) CreateStory(ctx context.Context, req models.StoryRequest) (models.Story, error) {
	var w wireStory
	if err := c.do(ctx, request{method: http.MethodPost, path: "/stories", body: req}, &w); err != nil {
		return models.Story{}, err
	}
	return w.toModel(), nil
}

func (c *Client) UpdateStory(ctx context.Context, id string, upd models.StoryUpdate) (models.Story, error) {
	var w wireStory
	if err := c.do(ctx, request{method: http.MethodPut, path: "/stories/" + url.PathEscape(id), body: upd}, &w); err != nil {
		return models.Story{}, err
	}
	return w.toModel(), nil
}

func (c *Client) DeleteStory(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/stories/" + url.PathEscape(id)}, nil)
}
