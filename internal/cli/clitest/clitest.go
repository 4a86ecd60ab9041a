// Package clitest builds command contexts backed by a temporary state DB and a
// fake backend for command tests.
package clitest

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/lifecal/internal/api"
	"github.com/julianstephens/lifecal/internal/cli"
	"github.com/julianstephens/lifecal/internal/keyring"
	"github.com/julianstephens/lifecal/internal/models"
	"github.com/julianstephens/lifecal/internal/session"
	"github.com/julianstephens/lifecal/internal/storage/sqlite"
)

// Env is a command context plus its captured output.
type Env struct {
	*cli.Context
	Buf *bytes.Buffer
}

// Fixed is the frozen clock used by command tests: 2024-05-25 09:30 UTC.
var Fixed = time.Date(2024, time.May, 25, 9, 30, 0, 0, time.UTC)

// New returns a signed-out context whose API client talks to h.
func New(t *testing.T, h http.HandlerFunc) *Env {
	t.Helper()
	ctx := context.Background()

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "lifecal.db"))
	if err := store.Init(ctx); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	sess := session.New(&keyring.Memory{}, store)

	if h == nil {
		h = func(w http.ResponseWriter, r *http.Request) { http.NotFound(w, r) }
	}
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	client := api.New(srv.URL+"/api", sess,
		api.WithRateLimit(0),
		api.WithUnauthorizedHandler(func() { _ = sess.Teardown(context.Background()) }),
	)

	buf := &bytes.Buffer{}
	return &Env{
		Context: (&cli.Context{
			Store:   store,
			Session: sess,
			API:     client,
			Now:     func() time.Time { return Fixed },
			Out:     buf,
		}).WithContext(ctx),
		Buf: buf,
	}
}

// SignedIn is New with an active session for a test user.
func SignedIn(t *testing.T, h http.HandlerFunc) *Env {
	t.Helper()
	env := New(t, h)
	user := models.User{ID: "u1", Name: "Test User", Email: "test@example.com"}
	if err := env.Session.Init(context.Background(), "test-token", user); err != nil {
		t.Fatalf("failed to start session: %v", err)
	}
	return env
}
