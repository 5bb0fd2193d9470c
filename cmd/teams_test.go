// ABOUTME: Tests for the teams command group
// ABOUTME: Covers listing, roster display, creation order, and the delete guard

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pokebuild/teambuilder/internal/session"
)

func seedSession(t *testing.T, sess session.Session) {
	t.Helper()
	if err := newStore().Set(sess); err != nil {
		t.Fatalf("seeding session: %v", err)
	}
}

func TestTeamsList_Empty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runTeamsList(context.Background(), &buf, false)

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("No teams found!")) {
		t.Errorf("expected empty message, got %q", buf.String())
	}
}

func TestTeamsList_SomeTeams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/teams/" {
			t.Errorf("expected path /teams/, got %s", r.URL.Path)
		}
		w.Write([]byte(`[{"team_id":1,"team_name":"Kanto Squad","user_id":7}]`))
	}))
	defer server.Close()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	if exitCode := runTeamsList(context.Background(), &buf, false); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Kanto Squad")) {
		t.Errorf("expected team name, got %q", buf.String())
	}
}

func TestTeamsList_MineRequiresSession(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var buf bytes.Buffer
	exitCode := runTeamsList(context.Background(), &buf, true)

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("not logged in")) {
		t.Errorf("expected login error, got %q", buf.String())
	}
}

func TestTeamsShow_RosterWithSprites(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/teams/1":
			w.Write([]byte(`{"team_id":1,"team_name":"Kanto Squad","user_id":7}`))
		case "/pokemon-teams/1":
			w.Write([]byte(`[{"pokemon_id":25,"pokemon_name":"pikachu","position":1,"nickname":""}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	if exitCode := runTeamsShow(context.Background(), &buf, "1"); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}

	out := buf.String()
	if !strings.Contains(out, "Kanto Squad (id 1)") {
		t.Errorf("expected team header, got %q", out)
	}
	if !strings.Contains(out, "Pikachu") {
		t.Errorf("expected title-cased name, got %q", out)
	}
	if !strings.Contains(out, "sprites/pokemon/25.png") {
		t.Errorf("expected sprite URL, got %q", out)
	}
}

func TestTeamsShow_InvalidID(t *testing.T) {
	var buf bytes.Buffer
	if exitCode := runTeamsShow(context.Background(), &buf, "abc"); exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
}

func TestTeamsCreate_PositionsFollowFlagOrder(t *testing.T) {
	var captured struct {
		UserID  int `json:"user_id"`
		TeamID  int `json:"team_id"`
		Pokemon []struct {
			PokemonID int `json:"pokemon_id"`
			Position  int `json:"position"`
		} `json:"pokemon"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/teams":
			json.NewEncoder(w).Encode(map[string]any{
				"team": map[string]any{"team_id": 42, "team_name": "Kanto Squad", "user_id": 7},
			})
		case "/pokemon-teams/42":
			json.NewDecoder(r.Body).Decode(&captured)
			w.WriteHeader(http.StatusCreated)
		default:
			t.Errorf("unexpected request: %s", r.URL.Path)
		}
	}))
	defer server.Close()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	seedSession(t, session.Session{Username: "ash", UserID: 7, Token: "tok"})
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runTeamsCreate(context.Background(), &buf, "Kanto Squad",
		[]string{"150:mewtwo", "25:pikachu", "6:charizard"})

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("Team created successfully!")) {
		t.Errorf("expected success message, got %q", buf.String())
	}

	wantIDs := []int{150, 25, 6}
	if len(captured.Pokemon) != 3 {
		t.Fatalf("expected 3 roster members, got %d", len(captured.Pokemon))
	}
	for i, m := range captured.Pokemon {
		if m.PokemonID != wantIDs[i] || m.Position != i+1 {
			t.Errorf("member %d: got id %d position %d", i, m.PokemonID, m.Position)
		}
	}
}

func TestTeamsCreate_Validation(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	tests := []struct {
		name    string
		team    string
		pokemon []string
		want    string
	}{
		{"missing name", "", []string{"25:pikachu"}, "team name is required"},
		{"no pokemon", "Squad", nil, "select at least one"},
		{"bad pokemon arg", "Squad", []string{"pikachu"}, "expected id:name"},
		{"bad pokemon id", "Squad", []string{"x:pikachu"}, "invalid pokemon id"},
		{"duplicate", "Squad", []string{"25:pikachu", "25:pikachu"}, "duplicate pokemon 25"},
		{"over cap", "Squad", []string{"1:a", "2:b", "3:c", "4:d", "5:e", "6:f", "7:g"}, "up to 6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			exitCode := runTeamsCreate(context.Background(), &buf, tt.team, tt.pokemon)
			if exitCode != 1 {
				t.Errorf("expected exit code 1, got %d", exitCode)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("expected %q in output, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestTeamsCreate_NotLoggedIn(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var buf bytes.Buffer
	exitCode := runTeamsCreate(context.Background(), &buf, "Squad", []string{"25:pikachu"})

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
}

func TestTeamsDelete_OwnerAllowed(t *testing.T) {
	deleted := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/teams/1" && r.Method == http.MethodGet:
			w.Write([]byte(`{"team_id":1,"team_name":"Kanto Squad","user_id":7}`))
		case r.URL.Path == "/teams/1" && r.Method == http.MethodDelete:
			deleted = true
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	seedSession(t, session.Session{Username: "ash", UserID: 7, Token: "tok"})
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	if exitCode := runTeamsDelete(context.Background(), &buf, "1"); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !deleted {
		t.Error("expected DELETE request")
	}
}

func TestTeamsDelete_NonOwnerBlocked(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			t.Error("delete must not be attempted without permission")
		}
		w.Write([]byte(`{"team_id":1,"team_name":"Kanto Squad","user_id":99}`))
	}))
	defer server.Close()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	seedSession(t, session.Session{Username: "ash", UserID: 7, Token: "tok"})
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runTeamsDelete(context.Background(), &buf, "1")

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("permission")) {
		t.Errorf("expected permission error, got %q", buf.String())
	}
}

func TestTeamsDelete_AdminAllowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Write([]byte(`{"team_id":1,"team_name":"Kanto Squad","user_id":99}`))
	}))
	defer server.Close()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	seedSession(t, session.Session{Username: "oak", UserID: 1, IsAdmin: true, Token: "tok"})
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	if exitCode := runTeamsDelete(context.Background(), &buf, "1"); exitCode != 0 {
		t.Errorf("expected exit code 0 for admin, got %d: %s", exitCode, buf.String())
	}
}

func TestParsePokemonArg(t *testing.T) {
	ref, err := parsePokemonArg("25:pikachu")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.PokemonID != 25 || ref.PokemonName != "pikachu" {
		t.Errorf("unexpected ref: %+v", ref)
	}

	for _, bad := range []string{"", "pikachu", "25:", "0:pikachu", "-1:pikachu", "x:pikachu"} {
		if _, err := parsePokemonArg(bad); err == nil {
			t.Errorf("parsePokemonArg(%q) expected error", bad)
		}
	}
}

func TestTitleCase(t *testing.T) {
	if got := titleCase("pikachu"); got != "Pikachu" {
		t.Errorf("expected Pikachu, got %q", got)
	}
	if got := titleCase(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}
