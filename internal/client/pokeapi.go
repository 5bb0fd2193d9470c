// ABOUTME: Client for the public Pokemon catalog API
// ABOUTME: Annotates catalog entries with stable pokemon_id and pokemon_name fields

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Catalog is the client for the public Pokemon catalog API.
type Catalog struct {
	baseURL    string
	httpClient *http.Client
}

// NewCatalog creates a catalog client with the given base URL.
func NewCatalog(baseURL string) *Catalog {
	return &Catalog{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Pokemon is a catalog entry annotated with the stable id and name the
// backend roster format expects. The catalog's native record carries only
// name and a detail URL; the numeric id is derived from that URL.
type Pokemon struct {
	PokemonID   int    `json:"pokemon_id"`
	PokemonName string `json:"pokemon_name"`
	DetailURL   string `json:"url"`
}

type catalogPage struct {
	Results []struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"results"`
}

// ListPokemon calls GET /pokemon?offset=&limit= and annotates the results.
func (c *Catalog) ListPokemon(ctx context.Context, offset, limit int) ([]Pokemon, error) {
	endpoint := fmt.Sprintf("%s/pokemon?offset=%d&limit=%d", c.baseURL, offset, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(ctx, c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Messages:   []string{fmt.Sprintf("catalog returned status %d", resp.StatusCode)},
		}
	}

	var page catalogPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, &APIError{Messages: []string{fmt.Sprintf("invalid response from catalog: %v", err)}}
	}

	pokemon := make([]Pokemon, 0, len(page.Results))
	for _, entry := range page.Results {
		id, err := idFromDetailURL(entry.URL)
		if err != nil {
			// Entries without a parseable id cannot join a roster; skip them.
			continue
		}
		pokemon = append(pokemon, Pokemon{
			PokemonID:   id,
			PokemonName: entry.Name,
			DetailURL:   entry.URL,
		})
	}
	return pokemon, nil
}

type spriteDetail struct {
	Sprites struct {
		FrontDefault string `json:"front_default"`
	} `json:"sprites"`
}

// SpriteByURL fetches a catalog detail record and returns its front sprite URL.
func (c *Catalog) SpriteByURL(ctx context.Context, detailURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, detailURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", transportError(ctx, detailURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{
			StatusCode: resp.StatusCode,
			Messages:   []string{fmt.Sprintf("catalog returned status %d", resp.StatusCode)},
		}
	}

	var detail spriteDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return "", &APIError{Messages: []string{fmt.Sprintf("invalid response from catalog: %v", err)}}
	}
	return detail.Sprites.FrontDefault, nil
}

// SpriteURL returns the static sprite location for a Pokemon id.
func SpriteURL(pokemonID int) string {
	return fmt.Sprintf("https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/%d.png", pokemonID)
}

// idFromDetailURL extracts the numeric id from a catalog detail URL such as
// https://pokeapi.co/api/v2/pokemon/35/
func idFromDetailURL(detailURL string) (int, error) {
	trimmed := strings.TrimRight(detailURL, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return 0, fmt.Errorf("no id segment in %q", detailURL)
	}
	id, err := strconv.Atoi(trimmed[idx+1:])
	if err != nil {
		return 0, fmt.Errorf("invalid id segment in %q", detailURL)
	}
	return id, nil
}
