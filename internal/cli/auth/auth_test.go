package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/julianstephens/lifecal/internal/api"
	"github.com/julianstephens/lifecal/internal/cli"
	"github.com/julianstephens/lifecal/internal/cli/clitest"
)

func TestLoginStartsSession(t *testing.T) {
	env := clitest.New(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			http.NotFound(w, r)
			return
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "ada@example.com" || body["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Invalid credentials"}`))
			return
		}
		w.Write([]byte(`{"token":"tok","user":{"_id":"u1","username":"ada","email":"ada@example.com"}}`))
	})

	cmd := &LoginCmd{Email: "ada@example.com", Password: "secret"}
	if err := cmd.Run(env.Context); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if !env.Session.Authenticated() {
		t.Fatal("session should be authenticated after login")
	}
	if got := env.Session.User().Name; got != "ada" {
		t.Errorf("user name = %q, want fallback to username", got)
	}
	if !strings.Contains(env.Buf.String(), "Signed in as ada") {
		t.Errorf("output = %q", env.Buf.String())
	}
}

func TestLoginBadCredentials(t *testing.T) {
	env := clitest.New(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	})

	err := (&LoginCmd{Email: "ada@example.com", Password: "wrong"}).Run(env.Context)
	if err == nil {
		t.Fatal("expected login to fail")
	}
	if !strings.Contains(err.Error(), "Invalid credentials") {
		t.Errorf("error = %v, want server message", err)
	}
	if env.Session.Authenticated() {
		t.Error("session should stay signed out")
	}
}

func TestLoginWithoutPromptsNeedsFlags(t *testing.T) {
	env := clitest.New(t, nil)
	if err := (&LoginCmd{Email: "ada@example.com"}).Run(env.Context); err == nil {
		t.Fatal("expected an error when the password is missing and prompts are disabled")
	}
}

func TestRegisterPasswordMismatch(t *testing.T) {
	called := false
	env := clitest.New(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	cmd := &RegisterCmd{Name: "Ada", Email: "ada@example.com", Password: "one", Confirm: "two"}
	err := cmd.Run(env.Context)
	if !errors.Is(err, api.ErrPasswordMismatch) {
		t.Fatalf("Run() error = %v, want ErrPasswordMismatch", err)
	}
	if called {
		t.Error("backend should not be called when passwords differ")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	env := clitest.SignedIn(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if err := (&LogoutCmd{}).Run(env.Context); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if env.Session.Authenticated() {
		t.Error("session should be cleared even when the backend logout fails")
	}
}

func TestWhoamiRequiresSession(t *testing.T) {
	env := clitest.New(t, nil)
	if err := (&WhoamiCmd{}).Run(env.Context); !errors.Is(err, cli.ErrNotSignedIn) {
		t.Errorf("Run() error = %v, want ErrNotSignedIn", err)
	}
}

func TestWhoamiRefresh(t *testing.T) {
	env := clitest.SignedIn(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"u1","name":"Renamed","email":"test@example.com"}`))
	})

	if err := (&WhoamiCmd{Refresh: true}).Run(env.Context); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if got := env.Session.User().Name; got != "Renamed" {
		t.Errorf("cached name = %q, want Renamed", got)
	}
	if !strings.Contains(env.Buf.String(), "Renamed") {
		t.Errorf("output = %q", env.Buf.String())
	}
}

func TestProfileSet(t *testing.T) {
	var method string
	env := clitest.SignedIn(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		w.Write([]byte(`{"id":"u1","name":"New Name","email":"test@example.com"}`))
	})

	if err := (&ProfileSetCmd{Name: "  "}).Run(env.Context); err == nil {
		t.Error("expected blank name to be rejected")
	}
	if err := (&ProfileSetCmd{Name: "New Name"}).Run(env.Context); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if method != http.MethodPatch {
		t.Errorf("method = %s, want PATCH", method)
	}
	if got := env.Session.User().Name; got != "New Name" {
		t.Errorf("cached name = %q", got)
	}
}
