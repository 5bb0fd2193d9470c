// ABOUTME: HTTP client for the Pokemon Team Builder backend API
// ABOUTME: One request core with bearer-token attachment and normalized errors

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client is the API client for the team builder backend.
type Client struct {
	baseURL    string
	httpClient *http.Client

	// token is the default credential used when a call omits one.
	// Callers should prefer passing an explicit token.
	token string
}

// New creates a new API client with the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken stores the default bearer token for subsequent calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

// User represents a backend user record.
type User struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Bio      string `json:"bio"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Team represents a backend team record.
type Team struct {
	TeamID   int    `json:"team_id"`
	TeamName string `json:"team_name"`
	UserID   int    `json:"user_id"`
}

// PokemonRef identifies a Pokemon chosen for a team roster.
type PokemonRef struct {
	PokemonID   int    `json:"pokemon_id"`
	PokemonName string `json:"pokemon_name"`
	Nickname    string `json:"nickname,omitempty"`
}

// RosterMember is a positioned roster entry as the backend stores it.
type RosterMember struct {
	PokemonID   int    `json:"pokemon_id"`
	PokemonName string `json:"pokemon_name"`
	Position    int    `json:"position"`
	Nickname    string `json:"nickname"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// RegisterRequest carries signup form data.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// do issues one request and decodes the response into out (when non-nil).
// Every failure, transport or server-reported, returns an *APIError.
func (c *Client) do(ctx context.Context, method, endpoint string, body any, token string, out any) error {
	if token == "" {
		token = c.token
	}

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(ctx, c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Messages: []string{fmt.Sprintf("invalid response from backend: %v", err)}}
	}
	return nil
}

// Login calls POST auth/token and returns the issued credentials.
func (c *Client) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	var resp AuthResponse
	payload := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "auth/token", payload, "", &resp); err != nil {
		return nil, err
	}
	if resp.Username == "" {
		resp.Username = username
	}
	return &resp, nil
}

// Register calls POST auth/register. The response token logs the new user in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "auth/register", req, "", &resp); err != nil {
		return nil, err
	}
	if resp.Username == "" {
		resp.Username = req.Username
	}
	return &resp, nil
}

// GetUser calls GET users/{username}.
func (c *Client) GetUser(ctx context.Context, username, token string) (*User, error) {
	var resp struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "users/"+url.PathEscape(username), nil, token, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// GetUsers calls GET users/ and returns all users.
func (c *Client) GetUsers(ctx context.Context, token string) ([]User, error) {
	var resp struct {
		Users []User `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "users/", nil, token, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// FilterUsers calls GET users?username= for server-side partial matching.
func (c *Client) FilterUsers(ctx context.Context, username, token string) ([]User, error) {
	var resp struct {
		Users []User `json:"users"`
	}
	endpoint := "users?username=" + url.QueryEscape(username)
	if err := c.do(ctx, http.MethodGet, endpoint, nil, token, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// UserPatch carries updatable user fields.
type UserPatch struct {
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Email    string `json:"email,omitempty"`
	Bio      string `json:"bio,omitempty"`
	IsAdmin  *bool  `json:"isAdmin,omitempty"`
}

// PatchUser calls PATCH users/{username}.
func (c *Client) PatchUser(ctx context.Context, username string, patch UserPatch, token string) (*User, error) {
	var resp struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPatch, "users/"+url.PathEscape(username), patch, token, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// DeleteUser calls DELETE users/{username}.
func (c *Client) DeleteUser(ctx context.Context, username, token string) error {
	return c.do(ctx, http.MethodDelete, "users/"+url.PathEscape(username), nil, token, nil)
}

// GetAllTeams calls GET teams/.
func (c *Client) GetAllTeams(ctx context.Context) ([]Team, error) {
	var teams []Team
	if err := c.do(ctx, http.MethodGet, "teams/", nil, "", &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// GetTeamByID calls GET teams/{id}.
func (c *Client) GetTeamByID(ctx context.Context, id int) (*Team, error) {
	var team Team
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("teams/%d", id), nil, "", &team); err != nil {
		return nil, err
	}
	return &team, nil
}

// CreateTeam calls POST teams to create an empty team owned by userID.
func (c *Client) CreateTeam(ctx context.Context, name string, userID int, token string) (*Team, error) {
	var resp struct {
		Team Team `json:"team"`
	}
	payload := map[string]any{"team_name": name, "user_id": userID}
	if err := c.do(ctx, http.MethodPost, "teams", payload, token, &resp); err != nil {
		return nil, err
	}
	return &resp.Team, nil
}

// PatchTeam calls PATCH teams/{id} to rename a team.
func (c *Client) PatchTeam(ctx context.Context, id int, name, token string) (*Team, error) {
	var team Team
	payload := map[string]string{"team_name": name}
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("teams/%d", id), payload, token, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

// DeleteTeam calls DELETE teams/{id}.
func (c *Client) DeleteTeam(ctx context.Context, id int, token string) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("teams/%d", id), nil, token, nil)
}

// rosterPayload is the body for roster create/update calls. Positions are
// assigned 1..k from the order of the given refs.
type rosterPayload struct {
	UserID  int            `json:"user_id"`
	TeamID  int            `json:"team_id"`
	Pokemon []RosterMember `json:"pokemon"`
}

func newRosterPayload(teamID, userID int, pokemon []PokemonRef) rosterPayload {
	members := make([]RosterMember, len(pokemon))
	for i, ref := range pokemon {
		members[i] = RosterMember{
			PokemonID:   ref.PokemonID,
			PokemonName: ref.PokemonName,
			Position:    i + 1,
			Nickname:    ref.Nickname,
		}
	}
	return rosterPayload{UserID: userID, TeamID: teamID, Pokemon: members}
}

// AddPokemonToTeam calls POST pokemon-teams/{id} to populate a new roster.
func (c *Client) AddPokemonToTeam(ctx context.Context, teamID, userID int, pokemon []PokemonRef, token string) error {
	payload := newRosterPayload(teamID, userID, pokemon)
	return c.do(ctx, http.MethodPost, fmt.Sprintf("pokemon-teams/%d", teamID), payload, token, nil)
}

// EditPokemonInTeam calls PATCH pokemon-teams/{id} to replace a roster.
func (c *Client) EditPokemonInTeam(ctx context.Context, teamID, userID int, pokemon []PokemonRef, token string) error {
	payload := newRosterPayload(teamID, userID, pokemon)
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("pokemon-teams/%d", teamID), payload, token, nil)
}

// GetTeamRoster calls GET pokemon-teams/{id} and returns the positioned roster.
func (c *Client) GetTeamRoster(ctx context.Context, teamID int) ([]RosterMember, error) {
	var roster []RosterMember
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("pokemon-teams/%d", teamID), nil, "", &roster); err != nil {
		return nil, err
	}
	return roster, nil
}

// GetMyTeams calls GET my-teams/ for the teams owned by the token's user.
func (c *Client) GetMyTeams(ctx context.Context, token string) ([]Team, error) {
	var teams []Team
	if err := c.do(ctx, http.MethodGet, "my-teams/", nil, token, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// GetProfileTeams calls GET teams/user/{id} for the teams owned by a user.
func (c *Client) GetProfileTeams(ctx context.Context, userID int) ([]Team, error) {
	var teams []Team
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("teams/user/%d", userID), nil, "", &teams); err != nil {
		return nil, err
	}
	return teams, nil
}
