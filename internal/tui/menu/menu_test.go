// ABOUTME: Tests for menu entry gating by session state
// ABOUTME: Admin-only and logged-in-only destinations must not leak

package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func hasItem(items []Item, want Item) bool {
	for _, it := range items {
		if it == want {
			return true
		}
	}
	return false
}

func TestLoggedOutEntries(t *testing.T) {
	items := New(false, false).Items()

	for _, want := range []Item{ItemPokedex, ItemTeams, ItemLogin, ItemSignup, ItemQuit} {
		if !hasItem(items, want) {
			t.Errorf("expected item %d when logged out", want)
		}
	}
	for _, hidden := range []Item{ItemMyTeams, ItemNewTeam, ItemUsers, ItemProfile, ItemLogout} {
		if hasItem(items, hidden) {
			t.Errorf("item %d must be hidden when logged out", hidden)
		}
	}
}

func TestLoggedInEntries(t *testing.T) {
	items := New(true, false).Items()

	for _, want := range []Item{ItemPokedex, ItemTeams, ItemMyTeams, ItemNewTeam, ItemProfile, ItemLogout, ItemQuit} {
		if !hasItem(items, want) {
			t.Errorf("expected item %d when logged in", want)
		}
	}
	for _, hidden := range []Item{ItemUsers, ItemLogin, ItemSignup} {
		if hasItem(items, hidden) {
			t.Errorf("item %d must be hidden for non-admins", hidden)
		}
	}
}

func TestAdminSeesUsers(t *testing.T) {
	if !hasItem(New(true, true).Items(), ItemUsers) {
		t.Error("expected Users entry for admins")
	}
}

func TestAdminFlagIgnoredWhenLoggedOut(t *testing.T) {
	if hasItem(New(false, true).Items(), ItemUsers) {
		t.Error("Users entry must require a login, not just the admin flag")
	}
}

func TestEnterEmitsSelection(t *testing.T) {
	m := New(false, false)

	// Move to the second entry and confirm it.
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = model.(*Menu)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command from enter")
	}

	msg, ok := cmd().(ItemSelectedMsg)
	if !ok {
		t.Fatalf("expected ItemSelectedMsg, got %T", cmd())
	}
	if msg.Item != ItemTeams {
		t.Errorf("expected ItemTeams, got %d", msg.Item)
	}
}

func TestCursorStopsAtBounds(t *testing.T) {
	m := New(false, false)

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = model.(*Menu)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if msg := cmd().(ItemSelectedMsg); msg.Item != ItemPokedex {
		t.Errorf("expected cursor pinned to first entry, got %d", msg.Item)
	}
}

func TestQuitShortcut(t *testing.T) {
	m := New(true, true)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected a command from q")
	}
	if msg := cmd().(ItemSelectedMsg); msg.Item != ItemQuit {
		t.Errorf("expected ItemQuit, got %d", msg.Item)
	}
}
