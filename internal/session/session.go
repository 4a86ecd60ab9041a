// Package session owns the bearer token and the signed-in user's profile.
//
// A Session is established by Init after login or registration, restored from
// the keyring at startup, and torn down on logout or whenever the backend
// rejects the token. It implements oauth2.TokenSource so the request layer
// never reads the token directly.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/oauth2"

	"github.com/julianstephens/lifecal/internal/keyring"
	"github.com/julianstephens/lifecal/internal/logger"
	"github.com/julianstephens/lifecal/internal/models"
	"github.com/julianstephens/lifecal/internal/storage"
)

// ErrNoSession is returned by Token when nobody is signed in.
var ErrNoSession = errors.New("not signed in")

// ProfileCache is the subset of storage.Provider the session needs.
type ProfileCache interface {
	GetProfile(ctx context.Context) (models.User, error)
	SaveProfile(ctx context.Context, u models.User) error
	ClearProfile(ctx context.Context) error
}

type Session struct {
	tokens   keyring.Store
	profiles ProfileCache

	mu        sync.RWMutex
	token     string
	user      models.User
	listeners []func()
}

var _ oauth2.TokenSource = (*Session)(nil)

func New(tokens keyring.Store, profiles ProfileCache) *Session {
	return &Session{tokens: tokens, profiles: profiles}
}

// Init establishes a session and persists it.
func (s *Session) Init(ctx context.Context, token string, user models.User) error {
	if token == "" {
		return errors.New("empty auth token")
	}
	if err := s.tokens.SetToken(token); err != nil {
		return err
	}
	if s.profiles != nil {
		if err := s.profiles.SaveProfile(ctx, user); err != nil {
			return fmt.Errorf("failed to cache profile: %w", err)
		}
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()

	logger.Info("Session started", "user", user.Email)
	return nil
}

// Restore loads a persisted session. It reports false when none exists.
func (s *Session) Restore(ctx context.Context) (bool, error) {
	token, err := s.tokens.GetToken()
	if errors.Is(err, keyring.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var user models.User
	if s.profiles != nil {
		user, err = s.profiles.GetProfile(ctx)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return false, err
		}
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()
	return true, nil
}

// Teardown clears the token and cached profile and notifies listeners.
// It is safe to call on an already empty session.
func (s *Session) Teardown(ctx context.Context) error {
	s.mu.Lock()
	had := s.token != ""
	s.token = ""
	s.user = models.User{}
	listeners := append([]func(){}, s.listeners...)
	s.mu.Unlock()

	errs := []error{s.tokens.DeleteToken()}
	if s.profiles != nil {
		errs = append(errs, s.profiles.ClearProfile(ctx))
	}

	if had {
		logger.Info("Session ended")
		for _, fn := range listeners {
			fn()
		}
	}
	return errors.Join(errs...)
}

// OnTeardown registers fn to run after a live session is torn down.
func (s *Session) OnTeardown(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// UpdateUser replaces the cached profile without touching the token.
func (s *Session) UpdateUser(ctx context.Context, user models.User) error {
	if s.profiles != nil {
		if err := s.profiles.SaveProfile(ctx, user); err != nil {
			return err
		}
	}
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

func (s *Session) User() models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Token implements oauth2.TokenSource.
func (s *Session) Token() (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return nil, ErrNoSession
	}
	return &oauth2.Token{AccessToken: s.token, TokenType: "Bearer"}, nil
}
