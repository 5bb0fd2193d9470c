// ABOUTME: Tests for the root TUI model
// ABOUTME: Covers screen routing, stale fetch handling, and auth transitions

package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pokebuild/teambuilder/internal/client"
	"github.com/pokebuild/teambuilder/internal/config"
	"github.com/pokebuild/teambuilder/internal/list"
	"github.com/pokebuild/teambuilder/internal/session"
	"github.com/pokebuild/teambuilder/internal/tui/listview"
	"github.com/pokebuild/teambuilder/internal/tui/menu"
	"github.com/pokebuild/teambuilder/internal/tui/teamview"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Default()
	api := client.New(cfg.APIURL)
	catalog := client.NewCatalog(cfg.CatalogURL)
	store := session.NewStore(t.TempDir())
	return New(cfg, api, catalog, store)
}

func update(t *testing.T, a *App, msg tea.Msg) (*App, tea.Cmd) {
	t.Helper()
	model, cmd := a.Update(msg)
	app, ok := model.(*App)
	if !ok {
		t.Fatalf("expected *App, got %T", model)
	}
	return app, cmd
}

func TestStartsOnMenu(t *testing.T) {
	a := newTestApp(t)
	if a.screen != ScreenMenu {
		t.Errorf("expected menu screen, got %d", a.screen)
	}
	if !strings.Contains(a.View(), "Pokemon Team Builder") {
		t.Error("expected app title in view")
	}
}

func TestMenuItemOpensList(t *testing.T) {
	a := newTestApp(t)

	a, cmd := update(t, a, menu.ItemSelectedMsg{Item: menu.ItemPokedex})

	if a.screen != ScreenList {
		t.Fatalf("expected list screen, got %d", a.screen)
	}
	if a.loader == nil || a.listView == nil {
		t.Fatal("expected loader and list view mounted")
	}
	if cmd == nil {
		t.Error("expected a fetch command")
	}
}

func TestPageResultAppliesToListView(t *testing.T) {
	a := newTestApp(t)
	a, _ = update(t, a, menu.ItemSelectedMsg{Item: menu.ItemPokedex})

	req := list.PageRequest{Gen: 1, Kind: list.KindPokemon, Offset: 0, Limit: a.cfg.PageSize}
	rows := []list.Row{{ID: 25, Name: "pikachu"}}
	a, _ = update(t, a, pageLoadedMsg{req: req, rows: rows})

	if !strings.Contains(a.View(), "Pikachu") {
		t.Error("expected fetched row rendered")
	}
}

func TestStalePageResultDropped(t *testing.T) {
	a := newTestApp(t)
	a, _ = update(t, a, menu.ItemSelectedMsg{Item: menu.ItemPokedex})

	stale := list.PageRequest{Gen: 99, Kind: list.KindPokemon, Offset: 0, Limit: a.cfg.PageSize}
	a, _ = update(t, a, pageLoadedMsg{req: stale, rows: []list.Row{{ID: 1, Name: "bulbasaur"}}})

	if len(a.loader.State().Rows) != 0 {
		t.Error("stale page result must not mutate the loader")
	}
}

func TestPageResultForTornDownScreenDropped(t *testing.T) {
	a := newTestApp(t)
	a, _ = update(t, a, menu.ItemSelectedMsg{Item: menu.ItemPokedex})
	a, _ = update(t, a, listview.CancelledMsg{})

	if a.screen != ScreenMenu || a.loader != nil {
		t.Fatal("expected list screen torn down")
	}

	// The in-flight fetch result must be dropped without a panic.
	req := list.PageRequest{Gen: 1, Kind: list.KindPokemon}
	a, _ = update(t, a, pageLoadedMsg{req: req, rows: []list.Row{{ID: 1, Name: "bulbasaur"}}})
	if a.screen != ScreenMenu {
		t.Error("expected to stay on menu")
	}
}

func TestPageErrorSurfacedInView(t *testing.T) {
	a := newTestApp(t)
	a, _ = update(t, a, menu.ItemSelectedMsg{Item: menu.ItemPokedex})

	req := list.PageRequest{Gen: 1, Kind: list.KindPokemon, Offset: 0, Limit: a.cfg.PageSize}
	a, _ = update(t, a, pageLoadedMsg{req: req, err: errors.New("cannot connect to http://localhost:3001")})

	if !strings.Contains(a.View(), "cannot connect") {
		t.Error("expected fetch error rendered")
	}
}

func TestAuthDoneUpdatesSessionAndMenu(t *testing.T) {
	a := newTestApp(t)

	sess := session.Session{Username: "ash", UserID: 7, Token: "tok"}
	a, _ = update(t, a, authDoneMsg{sess: sess})

	if a.screen != ScreenMenu {
		t.Errorf("expected menu screen, got %d", a.screen)
	}
	if a.status != "Logged in as ash" {
		t.Errorf("unexpected status %q", a.status)
	}
	if !a.store.Current().LoggedIn() {
		t.Error("expected session persisted")
	}

	items := a.menu.Items()
	found := false
	for _, it := range items {
		if it == menu.ItemMyTeams {
			found = true
		}
		if it == menu.ItemLogin {
			t.Error("login entry must disappear after auth")
		}
	}
	if !found {
		t.Error("expected My teams entry after auth")
	}
}

func TestAuthFailureReturnsToMenu(t *testing.T) {
	a := newTestApp(t)
	a, _ = update(t, a, menu.ItemSelectedMsg{Item: menu.ItemLogin})
	if a.screen != ScreenLogin {
		t.Fatalf("expected login screen, got %d", a.screen)
	}

	a, _ = update(t, a, authDoneMsg{err: errors.New("invalid credentials")})

	if a.screen != ScreenMenu {
		t.Errorf("expected menu screen, got %d", a.screen)
	}
	if !strings.Contains(a.status, "invalid credentials") {
		t.Errorf("expected error status, got %q", a.status)
	}
	if a.store.Current().LoggedIn() {
		t.Error("failed auth must not create a session")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	a := newTestApp(t)
	a, _ = update(t, a, authDoneMsg{sess: session.Session{Username: "ash", UserID: 7, Token: "tok"}})

	a, _ = update(t, a, menu.ItemSelectedMsg{Item: menu.ItemLogout})

	if a.store.Current().LoggedIn() {
		t.Error("expected session cleared")
	}
	for _, it := range a.menu.Items() {
		if it == menu.ItemMyTeams {
			t.Error("logged-in entries must disappear after logout")
		}
	}
}

func TestPokemonRowShowsSprite(t *testing.T) {
	a := newTestApp(t)
	a, _ = update(t, a, menu.ItemSelectedMsg{Item: menu.ItemPokedex})

	a, _ = update(t, a, listview.RowChosenMsg{
		Kind: list.KindPokemon,
		Row:  list.Row{ID: 25, Name: "pikachu"},
	})

	if !strings.Contains(a.status, "sprites/pokemon/25.png") {
		t.Errorf("expected sprite URL in status, got %q", a.status)
	}
}

func TestShowTeamComputesPermissions(t *testing.T) {
	a := newTestApp(t)
	a, _ = update(t, a, authDoneMsg{sess: session.Session{Username: "ash", UserID: 7, Token: "tok"}})

	team := client.Team{TeamID: 1, TeamName: "Kanto Squad", UserID: 99}
	a, _ = update(t, a, teamLoadedMsg{team: &team})

	if a.screen != ScreenTeam {
		t.Fatalf("expected team screen, got %d", a.screen)
	}
	// A non-owner's edit and delete keys must be inert.
	_, cmd := a.teamScreen.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	if cmd != nil {
		t.Error("delete must be ignored for non-owners")
	}
}

func TestTeamSavedOpensMyTeams(t *testing.T) {
	a := newTestApp(t)
	a, _ = update(t, a, authDoneMsg{sess: session.Session{Username: "ash", UserID: 7, Token: "tok"}})
	a, _ = update(t, a, menu.ItemSelectedMsg{Item: menu.ItemNewTeam})
	if a.screen != ScreenBuilder {
		t.Fatalf("expected builder screen, got %d", a.screen)
	}

	a, _ = update(t, a, teamSavedMsg{created: true})

	if a.screen != ScreenList {
		t.Errorf("expected list screen, got %d", a.screen)
	}
	if a.status != "Team created successfully!" {
		t.Errorf("unexpected status %q", a.status)
	}
	if a.builderScreen != nil || a.builderLoader != nil {
		t.Error("expected builder torn down")
	}
}

func TestBackFromTeamRestoresList(t *testing.T) {
	a := newTestApp(t)
	a, _ = update(t, a, menu.ItemSelectedMsg{Item: menu.ItemTeams})

	team := client.Team{TeamID: 1, TeamName: "Kanto Squad", UserID: 99}
	a, _ = update(t, a, teamLoadedMsg{team: &team})
	if a.screen != ScreenTeam {
		t.Fatalf("expected team screen, got %d", a.screen)
	}

	a, _ = update(t, a, teamview.CancelledMsg{})

	if a.screen != ScreenList {
		t.Errorf("expected return to list screen, got %d", a.screen)
	}
	if a.listView == nil || a.listView.Kind() != list.KindTeams {
		t.Error("expected teams list restored")
	}
}

func TestFrameHasBorders(t *testing.T) {
	a := newTestApp(t)
	a, _ = update(t, a, tea.WindowSizeMsg{Width: 100, Height: 30})

	view := a.View()
	if !strings.Contains(view, "╭─") || !strings.Contains(view, "╰─") {
		t.Error("expected frame borders in view")
	}
}
