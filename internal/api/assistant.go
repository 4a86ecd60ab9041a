package api

import (
	"context"
	"net/http"
	"strings"
)

// Ask sends a free-text question about the user's journal to the assistant.
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	var resp struct {
		Answer   string `json:"answer"`
		Response string `json:"response"`
	}
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/ai/ask",
		body:   map[string]string{"question": question},
	}, &resp)
	if err != nil {
		return "", err
	}
	answer := resp.Answer
	if answer == "" {
		answer = resp.Response
	}
	return strings.TrimSpace(answer), nil
}
