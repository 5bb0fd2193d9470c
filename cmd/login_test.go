// ABOUTME: Tests for the login and register commands
// ABOUTME: Verifies validation exit codes and session persistence

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/pokebuild/teambuilder/internal/session"
)

func authServer(t *testing.T, isAdmin bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/token", "/auth/register":
			json.NewEncoder(w).Encode(map[string]any{
				"token": "tok123", "username": "ash", "isAdmin": isAdmin,
			})
		case "/users/ash":
			json.NewEncoder(w).Encode(map[string]any{
				"user": map[string]any{"user_id": 7, "username": "ash", "isAdmin": isAdmin},
			})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestLoginCommand_Success(t *testing.T) {
	server := authServer(t, false)
	defer server.Close()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runLogin(context.Background(), &buf, "ash", "pikachu1")

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("Logged in as ash")) {
		t.Errorf("expected login confirmation, got %q", buf.String())
	}

	sess := newStore().Current()
	if sess.Username != "ash" || sess.UserID != 7 || sess.Token != "tok123" {
		t.Errorf("session not persisted: %+v", sess)
	}
}

func TestLoginCommand_AdminFlagStored(t *testing.T) {
	server := authServer(t, true)
	defer server.Close()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	if exitCode := runLogin(context.Background(), &buf, "ash", "pikachu1"); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}

	if !newStore().Current().IsAdmin {
		t.Error("expected admin flag in persisted session")
	}
}

func TestLoginCommand_MissingCredentials(t *testing.T) {
	var buf bytes.Buffer
	exitCode := runLogin(context.Background(), &buf, "", "")

	if exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("username is required")) {
		t.Errorf("expected validation message, got %q", buf.String())
	}
}

func TestLoginCommand_BadCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Invalid username/password"}}`))
	}))
	defer server.Close()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runLogin(context.Background(), &buf, "ash", "wrong")

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Invalid username/password")) {
		t.Errorf("expected backend message, got %q", buf.String())
	}
}

func TestRegisterCommand_Success(t *testing.T) {
	server := authServer(t, false)
	defer server.Close()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runRegister(context.Background(), &buf, "ash", "pikachu1", "ash@pallet.town")

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("Successfully registered ash")) {
		t.Errorf("expected registration confirmation, got %q", buf.String())
	}
	if !newStore().Current().LoggedIn() {
		t.Error("expected register to log the user in")
	}
}

func TestRegisterCommand_InvalidInput(t *testing.T) {
	var buf bytes.Buffer
	exitCode := runRegister(context.Background(), &buf, "ab", "short", "not-an-email")

	if exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
	out := buf.String()
	for _, want := range []string{"username must be at least 3", "password must be at least 6", "valid email"} {
		if !bytes.Contains([]byte(out), []byte(want)) {
			t.Errorf("expected %q in output, got %q", want, out)
		}
	}
}

func TestWhoami(t *testing.T) {
	var buf bytes.Buffer
	if exitCode := runWhoami(&buf, session.Session{}); exitCode != 1 {
		t.Errorf("expected exit code 1 when logged out, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Not logged in.")) {
		t.Errorf("expected logged-out message, got %q", buf.String())
	}

	buf.Reset()
	sess := session.Session{Username: "ash", UserID: 7, IsAdmin: true, Token: "tok"}
	if exitCode := runWhoami(&buf, sess); exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Logged in as ash (id 7) [admin]")) {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestSessionFileLandsInConfigDir(t *testing.T) {
	server := authServer(t, false)
	defer server.Close()

	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	if exitCode := runLogin(context.Background(), &buf, "ash", "pikachu1"); exitCode != 0 {
		t.Fatalf("login failed: %s", buf.String())
	}

	st := session.NewStore(filepath.Join(xdg, "teambuilder"))
	if got := st.Load(); got.Username != "ash" {
		t.Errorf("expected session file under XDG dir, got %+v", got)
	}
}
