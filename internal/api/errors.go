package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTransport wraps failures that happened before a response arrived:
	// connection refused, DNS, timeouts.
	ErrTransport = errors.New("backend unreachable")
	// ErrUnauthorized is returned for 401 responses and for requests issued without a session.
	ErrUnauthorized = errors.New("not authorized")
	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("not found")
)

// Error is a non-2xx response from the backend.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// UserMessage is the server-provided message, if any.
func (e *Error) UserMessage() string {
	return e.Message
}

// Is lets errors.Is match the status-specific sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}
