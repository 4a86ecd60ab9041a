package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/julianstephens/lifecal/internal/models"
)

// ErrPasswordMismatch is returned by Register before any request is made.
var ErrPasswordMismatch = errors.New("passwords do not match")

// AuthResult is the token and profile returned by login and registration.
type AuthResult struct {
	Token string
	User  models.User
}

type authResponse struct {
	Token string   `json:"token"`
	User  wireUser `json:"user"`
}

func (r authResponse) result() (AuthResult, error) {
	if r.Token == "" {
		return AuthResult{}, errors.New("backend response did not include a token")
	}
	return AuthResult{Token: r.Token, User: r.User.toModel()}, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	var resp authResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   map[string]string{"email": email, "password": password},
		anon:   true,
	}, &resp)
	if err != nil {
		return AuthResult{}, err
	}
	return resp.result()
}

func (c *Client) Register(ctx context.Context, name, email, password, confirm string) (AuthResult, error) {
	if password != confirm {
		return AuthResult{}, ErrPasswordMismatch
	}
	var resp authResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/register",
		body: map[string]string{
			"username":        name,
			"email":           email,
			"password":        password,
			"confirmpassword": confirm,
		},
		anon: true,
	}, &resp)
	if err != nil {
		return AuthResult{}, err
	}
	return resp.result()
}

// Logout tells the backend to invalidate the token. Callers tear the local
// session down regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, request{method: http.MethodPost, path: "/auth/logout"}, nil)
}

func (c *Client) Profile(ctx context.Context) (models.User, error) {
	var w wireUser
	if err := c.do(ctx, request{method: http.MethodGet, path: "/user/profile"}, &w); err != nil {
		return models.User{}, err
	}
	return w.toModel(), nil
}

func (c *Client) UpdateProfile(ctx context.Context, name string) (models.User, error) {
	var w wireUser
	err := c.do(ctx, request{
		method: http.MethodPatch,
		path:   "/user/profile",
		body:   map[string]string{"name": name},
	}, &w)
	if err != nil {
		return models.User{}, err
	}
	return w.toModel(), nil
}
