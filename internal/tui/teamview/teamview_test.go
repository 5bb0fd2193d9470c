// ABOUTME: Tests for the team detail screen
// ABOUTME: Covers roster ordering and permission-gated actions

package teamview

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pokebuild/teambuilder/internal/client"
)

var testTeam = client.Team{TeamID: 1, TeamName: "Kanto Squad", UserID: 7}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestRosterSortedByPosition(t *testing.T) {
	roster := []client.RosterMember{
		{PokemonID: 6, PokemonName: "charizard", Position: 3},
		{PokemonID: 150, PokemonName: "mewtwo", Position: 1},
		{PokemonID: 25, PokemonName: "pikachu", Position: 2, Nickname: "Sparky"},
	}

	tv := New(testTeam, nil, roster, false, false)
	view := tv.View()

	mewtwo := strings.Index(view, "Mewtwo")
	pikachu := strings.Index(view, "Pikachu")
	charizard := strings.Index(view, "Charizard")
	if mewtwo < 0 || pikachu < 0 || charizard < 0 {
		t.Fatalf("expected all roster names, got %q", view)
	}
	if !(mewtwo < pikachu && pikachu < charizard) {
		t.Error("expected roster rendered in position order")
	}
	if !strings.Contains(view, `"Sparky"`) {
		t.Error("expected nickname rendered")
	}
	if !strings.Contains(view, "sprites/pokemon/150.png") {
		t.Error("expected sprite URL rendered")
	}
}

func TestEmptyRoster(t *testing.T) {
	tv := New(testTeam, nil, nil, false, false)
	if !strings.Contains(tv.View(), "no Pokemon yet") {
		t.Error("expected empty roster message")
	}
}

func TestEditGatedByPermission(t *testing.T) {
	tv := New(testTeam, nil, nil, false, false)
	if _, cmd := tv.Update(key('e')); cmd != nil {
		t.Error("edit must be ignored without permission")
	}
	if _, cmd := tv.Update(key('d')); cmd != nil {
		t.Error("delete must be ignored without permission")
	}
	if strings.Contains(tv.View(), "e edit") {
		t.Error("action hints must be hidden without permission")
	}
}

func TestEditEmitsTeamAndRoster(t *testing.T) {
	roster := []client.RosterMember{{PokemonID: 25, PokemonName: "pikachu", Position: 1}}
	tv := New(testTeam, nil, roster, true, true)

	_, cmd := tv.Update(key('e'))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(EditRequestedMsg)
	if !ok {
		t.Fatalf("expected EditRequestedMsg, got %T", cmd())
	}
	if msg.Team.TeamID != 1 || len(msg.Roster) != 1 {
		t.Errorf("unexpected message: %+v", msg)
	}
}

func TestDeleteEmitsTeam(t *testing.T) {
	tv := New(testTeam, nil, nil, true, false)

	_, cmd := tv.Update(key('d'))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if msg, ok := cmd().(DeleteRequestedMsg); !ok || msg.Team.TeamID != 1 {
		t.Fatalf("expected DeleteRequestedMsg, got %T", cmd())
	}
}

func TestBackEmitsCancelled(t *testing.T) {
	tv := New(testTeam, nil, nil, false, false)

	_, cmd := tv.Update(key('b'))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(CancelledMsg); !ok {
		t.Fatalf("expected CancelledMsg, got %T", cmd())
	}
}

func TestOwnerLineAndBadges(t *testing.T) {
	owner := &client.User{UserID: 7, Username: "ash", IsAdmin: true}
	tv := New(testTeam, owner, nil, true, true)

	view := tv.View()
	if !strings.Contains(view, "ash") {
		t.Error("expected owner username")
	}
	if !strings.Contains(view, "ADMIN") {
		t.Error("expected admin badge")
	}
	if !strings.Contains(view, "YOURS") {
		t.Error("expected ownership badge")
	}
}
