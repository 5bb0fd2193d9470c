// ABOUTME: Search overlay for the list loader
// ABOUTME: Replaces the paginated accumulator with a filtered snapshot

package list

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// SearchRequest snapshots one search fetch.
type SearchRequest struct {
	Gen   int
	Kind  Kind
	Query string
}

// BeginSearch starts a search for a non-empty query. It returns false for an
// unknown kind and for a blank query, where the caller should Reset and
// refetch from offset 0 instead.
func (l *Loader) BeginSearch(query string) (SearchRequest, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchRequest{}, false
	}
	if !l.state.Kind.valid() {
		l.log.Error("unknown list kind", zap.Int("kind", int(l.state.Kind)))
		return SearchRequest{}, false
	}
	l.gen++
	l.state.IsSearching = true
	l.state.IsLoading = true
	return SearchRequest{
		Gen:   l.gen,
		Kind:  l.state.Kind,
		Query: query,
	}, true
}

// FetchSearch performs the search described by req. Catalog kinds have no
// server-side search, so a bounded slice of the catalog is filtered here;
// users delegate to the backend's partial-match endpoint; teams and my-teams
// filter the full list response by name.
func (l *Loader) FetchSearch(ctx context.Context, req SearchRequest) ([]Row, error) {
	switch req.Kind {
	case KindPokemon, KindNewTeam:
		rows, err := l.fetchers.Pokemon(ctx, 0, l.searchLimit)
		if err != nil {
			return nil, err
		}
		return filterByName(rows, req.Query), nil
	case KindUsers:
		return l.fetchers.FilterUsers(ctx, req.Query)
	case KindTeams:
		rows, err := l.fetchers.Teams(ctx)
		if err != nil {
			return nil, err
		}
		return filterByName(rows, req.Query), nil
	case KindMyTeams:
		rows, err := l.fetchers.MyTeams(ctx)
		if err != nil {
			return nil, err
		}
		return filterByName(rows, req.Query), nil
	default:
		return nil, fmt.Errorf("unknown list kind %d", int(req.Kind))
	}
}

// ApplySearch installs a completed search snapshot, replacing the
// accumulator wholesale. Stale generations are dropped; failures leave the
// previous rows in place.
func (l *Loader) ApplySearch(req SearchRequest, rows []Row, err error) error {
	if req.Gen != l.gen {
		return nil
	}
	l.state.IsLoading = false
	if err != nil {
		return err
	}
	l.state.Rows = rows
	return nil
}

// Search runs the full search contract synchronously. A blank query restores
// the view to its fresh-mount state: empty accumulator, offset 0, searching
// off, first page fetched.
func (l *Loader) Search(ctx context.Context, query string) error {
	req, ok := l.BeginSearch(query)
	if !ok {
		l.Reset(l.state.Kind)
		return l.NextPage(ctx)
	}
	rows, err := l.FetchSearch(ctx, req)
	return l.ApplySearch(req, rows, err)
}

func filterByName(rows []Row, query string) []Row {
	query = strings.ToLower(query)
	matched := make([]Row, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Name), query) {
			matched = append(matched, r)
		}
	}
	return matched
}
