// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Manages screen state and routes keyboard input to child components

package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pokebuild/teambuilder/internal/client"
	"github.com/pokebuild/teambuilder/internal/config"
	"github.com/pokebuild/teambuilder/internal/list"
	"github.com/pokebuild/teambuilder/internal/session"
	"github.com/pokebuild/teambuilder/internal/tui/builder"
	"github.com/pokebuild/teambuilder/internal/tui/debuglog"
	"github.com/pokebuild/teambuilder/internal/tui/forms"
	"github.com/pokebuild/teambuilder/internal/tui/icons"
	"github.com/pokebuild/teambuilder/internal/tui/listview"
	"github.com/pokebuild/teambuilder/internal/tui/menu"
	"github.com/pokebuild/teambuilder/internal/tui/profile"
	"github.com/pokebuild/teambuilder/internal/tui/styles"
	"github.com/pokebuild/teambuilder/internal/tui/teamview"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenLogin
	ScreenSignup
	ScreenList
	ScreenTeam
	ScreenBuilder
	ScreenProfile
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width before using single-column layout
)

// pageLoadedMsg is sent when a list page fetch completes
type pageLoadedMsg struct {
	req        list.PageRequest
	rows       []list.Row
	err        error
	forBuilder bool
}

// searchLoadedMsg is sent when a search fetch completes
type searchLoadedMsg struct {
	req        list.SearchRequest
	rows       []list.Row
	err        error
	forBuilder bool
}

// teamLoadedMsg is sent when a team detail fetch completes
type teamLoadedMsg struct {
	team   *client.Team
	owner  *client.User
	roster []client.RosterMember
	err    error
}

// teamSavedMsg is sent when a team create or edit completes
type teamSavedMsg struct {
	created bool
	err     error
}

// teamDeletedMsg is sent when a team delete completes
type teamDeletedMsg struct {
	err error
}

// authDoneMsg is sent when a login or signup round trip completes
type authDoneMsg struct {
	sess session.Session
	err  error
}

// profileLoadedMsg is sent when a profile fetch completes
type profileLoadedMsg struct {
	user  *client.User
	teams []client.Team
	err   error
}

// userSavedMsg is sent when a profile patch completes
type userSavedMsg struct {
	user *client.User
	err  error
}

// userDeletedMsg is sent when an account delete completes
type userDeletedMsg struct {
	username string
	err      error
}

// App is the root model for the TUI
type App struct {
	api      *client.Client
	catalog  *client.Catalog
	store    *session.Store
	cfg      *config.Config
	fetchers list.Fetchers

	screen Screen
	width  int
	height int
	status string

	// Child models
	menu          *menu.Menu
	listView      *listview.ListView
	loader        *list.Loader
	builderScreen *builder.Builder
	builderLoader *list.Loader
	teamScreen    *teamview.TeamView
	profileScreen *profile.Profile
	loginForm     *forms.Login
	signupForm    *forms.Signup

	// editOwner is the owner id of the team being edited, for roster payloads
	editOwner int

	// returnKind restores the list screen after a team detail is dismissed
	returnKind  list.Kind
	returnTitle string
	hasReturn   bool
}

// New creates a new TUI application
func New(cfg *config.Config, apiClient *client.Client, catalog *client.Catalog, store *session.Store) *App {
	a := &App{
		api:     apiClient,
		catalog: catalog,
		store:   store,
		cfg:     cfg,
		screen:  ScreenMenu,
	}
	a.fetchers = list.ClientFetchers(apiClient, catalog, func() string {
		return store.Current().Token
	})
	a.rebuildMenu()
	return a
}

func (a *App) rebuildMenu() {
	sess := a.store.Current()
	a.menu = menu.New(sess.LoggedIn(), sess.IsAdmin)
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a.forwardToScreen(msg)

	case tea.KeyMsg:
		// Handle global quit
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		a.status = ""
		return a.forwardToScreen(msg)

	case menu.ItemSelectedMsg:
		return a.handleMenuItem(msg.Item)

	case listview.LoadMoreMsg:
		return a.beginLoadMore()

	case listview.SearchMsg:
		return a.beginSearch(msg.Query)

	case listview.RowChosenMsg:
		return a.handleRowChosen(msg)

	case listview.RowToggledMsg:
		if a.screen == ScreenBuilder {
			return a.forwardToScreen(msg)
		}
		return a, nil

	case listview.CancelledMsg:
		if a.screen == ScreenBuilder {
			return a.forwardToScreen(msg)
		}
		a.screen = ScreenMenu
		a.listView = nil
		a.loader = nil
		return a, nil

	case builder.SubmitMsg:
		return a, a.saveTeam(msg)

	case builder.CancelledMsg:
		a.screen = ScreenMenu
		a.builderScreen = nil
		a.builderLoader = nil
		return a, nil

	case teamview.EditRequestedMsg:
		return a.openEditBuilder(msg)

	case teamview.DeleteRequestedMsg:
		return a, a.deleteTeam(msg.Team.TeamID)

	case teamview.CancelledMsg:
		return a.closeTeamView()

	case profile.TeamChosenMsg:
		return a, a.loadTeam(msg.TeamID)

	case profile.SaveRequestedMsg:
		return a, a.saveUser(msg)

	case profile.DeleteRequestedMsg:
		return a, a.deleteUser(msg.Username)

	case profile.CancelledMsg:
		a.screen = ScreenMenu
		a.profileScreen = nil
		return a, nil

	case forms.LoginSubmittedMsg:
		return a, a.login(msg.Username, msg.Password)

	case forms.SignupSubmittedMsg:
		return a, a.signup(msg)

	case forms.CancelledMsg:
		a.screen = ScreenMenu
		a.loginForm = nil
		a.signupForm = nil
		return a, nil

	case pageLoadedMsg:
		return a.applyPage(msg)

	case searchLoadedMsg:
		return a.applySearch(msg)

	case teamLoadedMsg:
		return a.showTeam(msg)

	case teamSavedMsg:
		return a.handleTeamSaved(msg)

	case teamDeletedMsg:
		return a.handleTeamDeleted(msg)

	case authDoneMsg:
		return a.handleAuthDone(msg)

	case profileLoadedMsg:
		return a.showProfile(msg)

	case userSavedMsg:
		return a.handleUserSaved(msg)

	case userDeletedMsg:
		return a.handleUserDeleted(msg)

	default:
		// Spinner ticks and huh internals go to the active screen
		return a.forwardToScreen(msg)
	}
}

// forwardToScreen routes a message to the active child model.
func (a *App) forwardToScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch a.screen {
	case ScreenMenu:
		if a.menu == nil {
			return a, nil
		}
		model, cmd := a.menu.Update(msg)
		a.menu = model.(*menu.Menu)
		return a, cmd
	case ScreenLogin:
		if a.loginForm == nil {
			return a, nil
		}
		model, cmd := a.loginForm.Update(msg)
		a.loginForm = model.(*forms.Login)
		return a, cmd
	case ScreenSignup:
		if a.signupForm == nil {
			return a, nil
		}
		model, cmd := a.signupForm.Update(msg)
		a.signupForm = model.(*forms.Signup)
		return a, cmd
	case ScreenList:
		if a.listView == nil {
			return a, nil
		}
		model, cmd := a.listView.Update(msg)
		a.listView = model.(*listview.ListView)
		return a, cmd
	case ScreenTeam:
		if a.teamScreen == nil {
			return a, nil
		}
		model, cmd := a.teamScreen.Update(msg)
		a.teamScreen = model.(*teamview.TeamView)
		return a, cmd
	case ScreenBuilder:
		if a.builderScreen == nil {
			return a, nil
		}
		model, cmd := a.builderScreen.Update(msg)
		a.builderScreen = model.(*builder.Builder)
		return a, cmd
	case ScreenProfile:
		if a.profileScreen == nil {
			return a, nil
		}
		model, cmd := a.profileScreen.Update(msg)
		a.profileScreen = model.(*profile.Profile)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleMenuItem(item menu.Item) (tea.Model, tea.Cmd) {
	switch item {
	case menu.ItemPokedex:
		return a.openList(list.KindPokemon, "Pokedex")
	case menu.ItemTeams:
		return a.openList(list.KindTeams, "All teams")
	case menu.ItemMyTeams:
		return a.openList(list.KindMyTeams, "My teams")
	case menu.ItemUsers:
		return a.openList(list.KindUsers, "Users")
	case menu.ItemNewTeam:
		return a.openBuilder(builder.New())
	case menu.ItemProfile:
		sess := a.store.Current()
		return a, a.loadProfile(sess.Username)
	case menu.ItemLogin:
		a.loginForm = forms.NewLogin()
		a.screen = ScreenLogin
		return a, a.loginForm.Init()
	case menu.ItemSignup:
		a.signupForm = forms.NewSignup()
		a.screen = ScreenSignup
		return a, a.signupForm.Init()
	case menu.ItemLogout:
		if err := a.store.Clear(); err != nil {
			debuglog.Error("clearing session", err)
		}
		a.rebuildMenu()
		a.status = "Logged out."
		return a, nil
	case menu.ItemQuit:
		return a, tea.Quit
	}
	return a, nil
}

// openList mounts a fresh loader and list view for the given kind.
func (a *App) openList(kind list.Kind, title string) (tea.Model, tea.Cmd) {
	a.loader = list.NewLoader(kind, a.fetchers, a.cfg.PageSize, a.cfg.SearchLimit, debuglog.Logger())
	a.listView = listview.New(kind, title)
	a.screen = ScreenList
	a.returnKind = kind
	a.returnTitle = title
	a.hasReturn = true

	req, ok := a.loader.Begin()
	if !ok {
		return a, nil
	}
	return a, tea.Batch(a.listView.SetLoading(true), a.fetchPage(a.loader, req, false))
}

// openBuilder mounts the builder with its own catalog loader.
func (a *App) openBuilder(b *builder.Builder) (tea.Model, tea.Cmd) {
	a.builderScreen = b
	a.builderLoader = list.NewLoader(list.KindNewTeam, a.fetchers, a.cfg.PageSize, a.cfg.SearchLimit, debuglog.Logger())
	a.screen = ScreenBuilder

	req, ok := a.builderLoader.Begin()
	if !ok {
		return a, nil
	}
	return a, tea.Batch(b.List().SetLoading(true), a.fetchPage(a.builderLoader, req, true))
}

// activeLoader returns the loader and list view behind the current screen.
func (a *App) activeLoader() (*list.Loader, *listview.ListView, bool) {
	if a.screen == ScreenBuilder && a.builderLoader != nil && a.builderScreen != nil {
		return a.builderLoader, a.builderScreen.List(), true
	}
	if a.screen == ScreenList && a.loader != nil && a.listView != nil {
		return a.loader, a.listView, false
	}
	return nil, nil, false
}

func (a *App) beginLoadMore() (tea.Model, tea.Cmd) {
	loader, view, forBuilder := a.activeLoader()
	if loader == nil {
		return a, nil
	}
	req, ok := loader.BeginMore()
	if !ok {
		return a, nil
	}
	return a, tea.Batch(view.SetLoading(true), a.fetchPage(loader, req, forBuilder))
}

// beginSearch starts a search, or restores the paginated view for a blank
// query.
func (a *App) beginSearch(query string) (tea.Model, tea.Cmd) {
	loader, view, forBuilder := a.activeLoader()
	if loader == nil {
		return a, nil
	}

	req, ok := loader.BeginSearch(query)
	if !ok {
		loader.Reset(loader.Kind())
		pageReq, pageOK := loader.Begin()
		if !pageOK {
			return a, nil
		}
		return a, tea.Batch(view.SetLoading(true), a.fetchPage(loader, pageReq, forBuilder))
	}
	return a, tea.Batch(view.SetLoading(true), a.fetchSearch(loader, req, forBuilder))
}

// fetchPage runs one page fetch off the event loop.
func (a *App) fetchPage(loader *list.Loader, req list.PageRequest, forBuilder bool) tea.Cmd {
	return func() tea.Msg {
		rows, err := loader.FetchPage(context.Background(), req)
		return pageLoadedMsg{req: req, rows: rows, err: err, forBuilder: forBuilder}
	}
}

// fetchSearch runs one search fetch off the event loop.
func (a *App) fetchSearch(loader *list.Loader, req list.SearchRequest, forBuilder bool) tea.Cmd {
	return func() tea.Msg {
		rows, err := loader.FetchSearch(context.Background(), req)
		return searchLoadedMsg{req: req, rows: rows, err: err, forBuilder: forBuilder}
	}
}

func (a *App) applyPage(msg pageLoadedMsg) (tea.Model, tea.Cmd) {
	loader, view := a.loaderFor(msg.forBuilder)
	if loader == nil {
		return a, nil
	}
	if err := loader.Apply(msg.req, msg.rows, msg.err); err != nil {
		debuglog.Error("loading page", err)
		view.SetError(err.Error())
		return a, nil
	}
	state := loader.State()
	view.SetRows(state.Rows, state.IsSearching)
	return a, nil
}

func (a *App) applySearch(msg searchLoadedMsg) (tea.Model, tea.Cmd) {
	loader, view := a.loaderFor(msg.forBuilder)
	if loader == nil {
		return a, nil
	}
	if err := loader.ApplySearch(msg.req, msg.rows, msg.err); err != nil {
		debuglog.Error("searching", err)
		view.SetError(err.Error())
		return a, nil
	}
	state := loader.State()
	view.SetRows(state.Rows, state.IsSearching)
	return a, nil
}

// loaderFor pairs a completed fetch with the loader it was started against.
// A fetch whose screen has since been torn down is dropped here; Apply's
// generation check handles the subtler case of a reset loader.
func (a *App) loaderFor(forBuilder bool) (*list.Loader, *listview.ListView) {
	if forBuilder {
		if a.builderLoader == nil || a.builderScreen == nil {
			return nil, nil
		}
		return a.builderLoader, a.builderScreen.List()
	}
	if a.loader == nil || a.listView == nil {
		return nil, nil
	}
	return a.loader, a.listView
}

func (a *App) handleRowChosen(msg listview.RowChosenMsg) (tea.Model, tea.Cmd) {
	switch msg.Kind {
	case list.KindTeams, list.KindMyTeams:
		return a, a.loadTeam(msg.Row.ID)
	case list.KindUsers:
		return a, a.loadProfile(msg.Row.Name)
	case list.KindPokemon:
		a.status = fmt.Sprintf("#%d %s  %s", msg.Row.ID, msg.Row.Name, client.SpriteURL(msg.Row.ID))
		return a, nil
	}
	return a, nil
}

// loadTeam fetches a team, its roster, and its owner for the detail screen.
func (a *App) loadTeam(teamID int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		t, err := a.api.GetTeamByID(ctx, teamID)
		if err != nil {
			return teamLoadedMsg{err: err}
		}
		roster, err := a.api.GetTeamRoster(ctx, teamID)
		if err != nil {
			return teamLoadedMsg{err: err}
		}

		// Owner detail is best effort: the roster is still useful without it.
		var owner *client.User
		sess := a.store.Current()
		if sess.LoggedIn() && sess.UserID == t.UserID {
			owner = &client.User{UserID: sess.UserID, Username: sess.Username, IsAdmin: sess.IsAdmin}
		} else if sess.LoggedIn() {
			if users, err := a.api.GetUsers(ctx, sess.Token); err == nil {
				for i := range users {
					if users[i].UserID == t.UserID {
						owner = &users[i]
						break
					}
				}
			}
		}

		return teamLoadedMsg{team: t, roster: roster, owner: owner}
	}
}

func (a *App) showTeam(msg teamLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		debuglog.Error("loading team", msg.err)
		a.status = "Error: " + msg.err.Error()
		return a, nil
	}
	sess := a.store.Current()
	canModify := sess.CanModify(msg.team.UserID)
	isOwn := sess.LoggedIn() && sess.UserID == msg.team.UserID
	a.teamScreen = teamview.New(*msg.team, msg.owner, msg.roster, canModify, isOwn)
	a.screen = ScreenTeam
	return a, nil
}

func (a *App) closeTeamView() (tea.Model, tea.Cmd) {
	a.teamScreen = nil
	if a.hasReturn {
		return a.openList(a.returnKind, a.returnTitle)
	}
	a.screen = ScreenMenu
	return a, nil
}

func (a *App) openEditBuilder(msg teamview.EditRequestedMsg) (tea.Model, tea.Cmd) {
	a.editOwner = msg.Team.UserID
	a.teamScreen = nil
	return a.openBuilder(builder.NewEdit(msg.Team, msg.Roster))
}

// saveTeam persists a new or edited team and its roster.
func (a *App) saveTeam(msg builder.SubmitMsg) tea.Cmd {
	sess := a.store.Current()
	ownerID := a.editOwner
	return func() tea.Msg {
		ctx := context.Background()
		if !sess.LoggedIn() {
			return teamSavedMsg{err: fmt.Errorf("you must be logged in to save a team")}
		}

		if msg.TeamID == 0 {
			created, err := a.api.CreateTeam(ctx, msg.Name, sess.UserID, sess.Token)
			if err != nil {
				return teamSavedMsg{err: err}
			}
			if err := a.api.AddPokemonToTeam(ctx, created.TeamID, created.UserID, msg.Refs, sess.Token); err != nil {
				return teamSavedMsg{err: err}
			}
			return teamSavedMsg{created: true}
		}

		if _, err := a.api.PatchTeam(ctx, msg.TeamID, msg.Name, sess.Token); err != nil {
			return teamSavedMsg{err: err}
		}
		if err := a.api.EditPokemonInTeam(ctx, msg.TeamID, ownerID, msg.Refs, sess.Token); err != nil {
			return teamSavedMsg{err: err}
		}
		return teamSavedMsg{}
	}
}

func (a *App) handleTeamSaved(msg teamSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		debuglog.Error("saving team", msg.err)
		if a.builderScreen != nil {
			a.builderScreen.SetError(msg.err.Error())
		}
		return a, nil
	}

	a.builderScreen = nil
	a.builderLoader = nil
	a.editOwner = 0
	if msg.created {
		a.status = "Team created successfully!"
	} else {
		a.status = "Team edited successfully!"
	}
	return a.openList(list.KindMyTeams, "My teams")
}

func (a *App) deleteTeam(teamID int) tea.Cmd {
	sess := a.store.Current()
	return func() tea.Msg {
		err := a.api.DeleteTeam(context.Background(), teamID, sess.Token)
		return teamDeletedMsg{err: err}
	}
}

func (a *App) handleTeamDeleted(msg teamDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		debuglog.Error("deleting team", msg.err)
		a.status = "Error: " + msg.err.Error()
		return a, nil
	}
	a.status = "Team deleted."
	return a.closeTeamView()
}

// login exchanges credentials for a token, then resolves the full user record
// so the session carries the user id.
func (a *App) login(username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		auth, err := a.api.Login(ctx, username, password)
		if err != nil {
			return authDoneMsg{err: err}
		}
		user, err := a.api.GetUser(ctx, auth.Username, auth.Token)
		if err != nil {
			return authDoneMsg{err: err}
		}
		return authDoneMsg{sess: session.Session{
			Username: user.Username,
			UserID:   user.UserID,
			IsAdmin:  auth.IsAdmin || user.IsAdmin,
			Token:    auth.Token,
		}}
	}
}

func (a *App) signup(msg forms.SignupSubmittedMsg) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		auth, err := a.api.Register(ctx, client.RegisterRequest{
			Username: msg.Username,
			Password: msg.Password,
			Email:    msg.Email,
		})
		if err != nil {
			return authDoneMsg{err: err}
		}
		user, err := a.api.GetUser(ctx, auth.Username, auth.Token)
		if err != nil {
			return authDoneMsg{err: err}
		}
		return authDoneMsg{sess: session.Session{
			Username: user.Username,
			UserID:   user.UserID,
			IsAdmin:  auth.IsAdmin || user.IsAdmin,
			Token:    auth.Token,
		}}
	}
}

func (a *App) handleAuthDone(msg authDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		debuglog.Error("authenticating", msg.err)
		a.status = "Error: " + msg.err.Error()
		a.screen = ScreenMenu
		a.loginForm = nil
		a.signupForm = nil
		return a, nil
	}

	if err := a.store.Set(msg.sess); err != nil {
		debuglog.Error("persisting session", err)
	}
	a.api.SetToken(msg.sess.Token)
	a.rebuildMenu()
	a.status = "Logged in as " + msg.sess.Username
	a.screen = ScreenMenu
	a.loginForm = nil
	a.signupForm = nil
	return a, nil
}

// loadProfile fetches a user record and their teams.
func (a *App) loadProfile(username string) tea.Cmd {
	sess := a.store.Current()
	return func() tea.Msg {
		ctx := context.Background()
		user, err := a.api.GetUser(ctx, username, sess.Token)
		if err != nil {
			return profileLoadedMsg{err: err}
		}
		teams, err := a.api.GetProfileTeams(ctx, user.UserID)
		if err != nil {
			return profileLoadedMsg{err: err}
		}
		return profileLoadedMsg{user: user, teams: teams}
	}
}

func (a *App) showProfile(msg profileLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		debuglog.Error("loading profile", msg.err)
		a.status = "Error: " + msg.err.Error()
		return a, nil
	}
	sess := a.store.Current()
	a.profileScreen = profile.New(*msg.user, msg.teams, sess.CanModify(msg.user.UserID))
	a.screen = ScreenProfile
	return a, nil
}

// saveUser persists a profile edit.
func (a *App) saveUser(msg profile.SaveRequestedMsg) tea.Cmd {
	sess := a.store.Current()
	return func() tea.Msg {
		user, err := a.api.PatchUser(context.Background(), msg.Username, msg.Patch, sess.Token)
		return userSavedMsg{user: user, err: err}
	}
}

func (a *App) handleUserSaved(msg userSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		debuglog.Error("saving profile", msg.err)
		a.status = "Error: " + msg.err.Error()
		if a.profileScreen != nil {
			a.profileScreen.SetError()
		}
		return a, nil
	}
	a.status = "Profile updated."
	return a, a.loadProfile(msg.user.Username)
}

func (a *App) deleteUser(username string) tea.Cmd {
	sess := a.store.Current()
	return func() tea.Msg {
		err := a.api.DeleteUser(context.Background(), username, sess.Token)
		return userDeletedMsg{username: username, err: err}
	}
}

// handleUserDeleted tears down the profile screen. Deleting your own account
// also ends the session, matching the backend invalidating the token.
func (a *App) handleUserDeleted(msg userDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		debuglog.Error("deleting account", msg.err)
		a.status = "Error: " + msg.err.Error()
		return a, nil
	}

	a.profileScreen = nil
	a.screen = ScreenMenu
	sess := a.store.Current()
	if sess.Username == msg.username {
		if err := a.store.Clear(); err != nil {
			debuglog.Error("clearing session", err)
		}
		a.api.SetToken("")
		a.rebuildMenu()
		a.status = "Account deleted."
		return a, nil
	}
	a.status = fmt.Sprintf("Deleted user %s", msg.username)
	return a, nil
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenMenu:
		content = a.childView(a.menu)
	case ScreenLogin:
		content = a.childView(a.loginForm)
	case ScreenSignup:
		content = a.childView(a.signupForm)
	case ScreenList:
		content = a.childView(a.listView)
	case ScreenTeam:
		content = a.childView(a.teamScreen)
	case ScreenBuilder:
		content = a.childView(a.builderScreen)
	case ScreenProfile:
		content = a.childView(a.profileScreen)
	default:
		content = a.childView(a.menu)
	}

	return a.wrapWithFrame(content)
}

// viewer is the subset of tea.Model the frame needs.
type viewer interface {
	View() string
}

func (a *App) childView(v viewer) string {
	switch m := v.(type) {
	case *menu.Menu:
		if m == nil {
			return ""
		}
	case *forms.Login:
		if m == nil {
			return ""
		}
	case *forms.Signup:
		if m == nil {
			return ""
		}
	case *listview.ListView:
		if m == nil {
			return ""
		}
	case *teamview.TeamView:
		if m == nil {
			return ""
		}
	case *builder.Builder:
		if m == nil {
			return ""
		}
	case *profile.Profile:
		if m == nil {
			return ""
		}
	}
	return v.View()
}

// renderHeader creates the header bar with app branding and session context
func (a *App) renderHeader() string {
	// Guard against zero/small width before WindowSizeMsg is received
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	icon := icons.App.String()
	title := "Pokemon Team Builder"

	leftText := fmt.Sprintf(" %s %s", icon, titleStyle.Render(title))

	rightText := ""
	sess := a.store.Current()
	if sess.LoggedIn() {
		who := sess.Username
		if sess.IsAdmin {
			who += " " + icons.Shield.String()
		}
		rightText = contextStyle.Render(who) + " "
	}

	leftRendered := lipgloss.NewStyle().Render(leftText)
	rightRendered := lipgloss.NewStyle().Align(lipgloss.Right).Render(rightText)

	leftWidth := lipgloss.Width(leftRendered)
	rightWidth := lipgloss.Width(rightRendered)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╭─ and ─╮
	if fillWidth < 0 {
		fillWidth = 0
	}

	fill := strings.Repeat("─", fillWidth)

	header := "╭─" + leftRendered + fill + rightRendered + "─╮"

	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	// Guard against zero/small width before WindowSizeMsg is received
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	var shortcuts []string
	switch a.screen {
	case ScreenMenu:
		shortcuts = []string{"↑↓ Navigate", "Enter Select", "q Quit"}
	case ScreenLogin, ScreenSignup:
		shortcuts = []string{"Tab Next", "Enter Confirm", "Esc Cancel"}
	case ScreenList:
		shortcuts = []string{"↑↓ Navigate", "Enter Select", "/ Search", "m More", "b Back"}
	case ScreenTeam:
		shortcuts = []string{"e Edit", "d Delete", "b Back"}
	case ScreenBuilder:
		shortcuts = []string{"Space Toggle", "n Save", "/ Search", "Esc Back"}
	case ScreenProfile:
		shortcuts = []string{"↑↓ Navigate", "Enter Select", "b Back"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	rightText := ""
	rightPlainText := ""
	if a.status != "" {
		rightText = statusStyle.Render(a.status) + " "
		rightPlainText = a.status + " "
	}

	leftWidth := lipgloss.Width(leftPlainText)
	rightWidth := lipgloss.Width(rightPlainText)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╰─ and ─╯
	if fillWidth < 0 {
		fillWidth = 0
	}

	fill := strings.Repeat("─", fillWidth)

	footer := "╰─" + leftText + fill + rightText + "─╯"

	return borderStyle.Render(footer)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI
func Run(cfg *config.Config, apiClient *client.Client, catalog *client.Catalog, store *session.Store) error {
	if err := debuglog.Init(session.DefaultConfigDir()); err != nil {
		// A read-only config dir should not prevent the TUI from starting.
		debuglog.Close()
	}
	defer debuglog.Close()

	sess := store.Current()
	if sess.LoggedIn() {
		apiClient.SetToken(sess.Token)
	}

	app := New(cfg, apiClient, catalog, store)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
