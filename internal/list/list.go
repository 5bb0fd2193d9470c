// ABOUTME: Fetch/paginate engine shared by the list views
// ABOUTME: Accumulates pages with id dedupe, stable id sort, and stale-result guards

package list

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/pokebuild/teambuilder/internal/client"
)

// Row is one display row of any list kind, keyed by the entity's stable id.
type Row struct {
	ID   int
	Name string
}

// Fetchers provides the per-kind data sources. Functions must be safe to call
// from a background goroutine; they never touch loader state.
type Fetchers struct {
	Pokemon     func(ctx context.Context, offset, limit int) ([]Row, error)
	Users       func(ctx context.Context) ([]Row, error)
	FilterUsers func(ctx context.Context, query string) ([]Row, error)
	Teams       func(ctx context.Context) ([]Row, error)
	MyTeams     func(ctx context.Context) ([]Row, error)
}

// ClientFetchers builds Fetchers over the API and catalog clients. The token
// func is consulted at call time so a re-login is picked up without a restart.
func ClientFetchers(api *client.Client, catalog *client.Catalog, token func() string) Fetchers {
	return Fetchers{
		Pokemon: func(ctx context.Context, offset, limit int) ([]Row, error) {
			pokemon, err := catalog.ListPokemon(ctx, offset, limit)
			if err != nil {
				return nil, err
			}
			rows := make([]Row, len(pokemon))
			for i, p := range pokemon {
				rows[i] = Row{ID: p.PokemonID, Name: p.PokemonName}
			}
			return rows, nil
		},
		Users: func(ctx context.Context) ([]Row, error) {
			users, err := api.GetUsers(ctx, token())
			if err != nil {
				return nil, err
			}
			return userRows(users), nil
		},
		FilterUsers: func(ctx context.Context, query string) ([]Row, error) {
			users, err := api.FilterUsers(ctx, query, token())
			if err != nil {
				return nil, err
			}
			return userRows(users), nil
		},
		Teams: func(ctx context.Context) ([]Row, error) {
			teams, err := api.GetAllTeams(ctx)
			if err != nil {
				return nil, err
			}
			return teamRows(teams), nil
		},
		MyTeams: func(ctx context.Context) ([]Row, error) {
			teams, err := api.GetMyTeams(ctx, token())
			if err != nil {
				return nil, err
			}
			return teamRows(teams), nil
		},
	}
}

func userRows(users []client.User) []Row {
	rows := make([]Row, len(users))
	for i, u := range users {
		rows[i] = Row{ID: u.UserID, Name: u.Username}
	}
	return rows
}

func teamRows(teams []client.Team) []Row {
	rows := make([]Row, len(teams))
	for i, t := range teams {
		rows[i] = Row{ID: t.TeamID, Name: t.TeamName}
	}
	return rows
}

// State is the observable list state for one view instance.
type State struct {
	Kind        Kind
	Rows        []Row
	Offset      int
	PageSize    int
	IsLoading   bool
	IsSearching bool
}

// PageRequest snapshots one page fetch. The generation ties the eventual
// result back to the loader state it was started against.
type PageRequest struct {
	Gen    int
	Kind   Kind
	Offset int
	Limit  int
}

// Loader owns State for one list view. Begin/Fetch/Apply split the work so a
// UI can run the fetch in a background command and apply the result on its
// event loop; the convenience methods do all three for synchronous callers.
type Loader struct {
	fetchers    Fetchers
	searchLimit int
	log         *zap.Logger

	state State
	gen   int
}

// NewLoader creates a loader for the given kind.
func NewLoader(kind Kind, fetchers Fetchers, pageSize, searchLimit int, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		fetchers:    fetchers,
		searchLimit: searchLimit,
		log:         log,
		state: State{
			Kind:     kind,
			PageSize: pageSize,
		},
	}
}

// State returns a copy of the current list state.
func (l *Loader) State() State {
	s := l.state
	s.Rows = append([]Row(nil), l.state.Rows...)
	return s
}

// Kind returns the loader's entity kind.
func (l *Loader) Kind() Kind {
	return l.state.Kind
}

// CanLoadMore reports whether a "load more" action is currently available.
// Search results are not paginated.
func (l *Loader) CanLoadMore() bool {
	return !l.state.IsSearching && !l.state.IsLoading
}

// Reset clears the accumulator and switches kind. Stale in-flight results
// are invalidated so cross-kind data never leaks into the new view.
func (l *Loader) Reset(kind Kind) {
	l.gen++
	l.state = State{
		Kind:     kind,
		PageSize: l.state.PageSize,
	}
}

// Begin marks a page fetch for the current offset. An unknown kind is a
// programming error: it is logged and no state changes.
func (l *Loader) Begin() (PageRequest, bool) {
	if !l.state.Kind.valid() {
		l.log.Error("unknown list kind", zap.Int("kind", int(l.state.Kind)))
		return PageRequest{}, false
	}
	l.gen++
	l.state.IsLoading = true
	return PageRequest{
		Gen:    l.gen,
		Kind:   l.state.Kind,
		Offset: l.state.Offset,
		Limit:  l.state.PageSize,
	}, true
}

// BeginMore advances the offset by one page size and begins a fetch.
// Unavailable while a search snapshot is displayed.
func (l *Loader) BeginMore() (PageRequest, bool) {
	if l.state.IsSearching {
		return PageRequest{}, false
	}
	l.state.Offset += l.state.PageSize
	return l.Begin()
}

// FetchPage performs the fetch described by req. It reads no loader state.
func (l *Loader) FetchPage(ctx context.Context, req PageRequest) ([]Row, error) {
	switch req.Kind {
	case KindPokemon, KindNewTeam:
		return l.fetchers.Pokemon(ctx, req.Offset, req.Limit)
	case KindUsers:
		return l.fetchers.Users(ctx)
	case KindTeams:
		return l.fetchers.Teams(ctx)
	case KindMyTeams:
		return l.fetchers.MyTeams(ctx)
	default:
		return nil, fmt.Errorf("unknown list kind %d", int(req.Kind))
	}
}

// Apply merges a completed page fetch. Results from a superseded generation
// are dropped: the view they belong to no longer exists. A failed fetch
// leaves the accumulator unchanged.
func (l *Loader) Apply(req PageRequest, rows []Row, err error) error {
	if req.Gen != l.gen {
		l.log.Debug("dropping stale page result",
			zap.Int("gen", req.Gen), zap.Int("current", l.gen))
		return nil
	}
	l.state.IsLoading = false
	if err != nil {
		return err
	}
	l.state.Rows = merge(l.state.Rows, rows)
	return nil
}

// NextPage fetches and merges the page at the current offset.
func (l *Loader) NextPage(ctx context.Context) error {
	req, ok := l.Begin()
	if !ok {
		return nil
	}
	rows, err := l.FetchPage(ctx, req)
	return l.Apply(req, rows, err)
}

// LoadMore advances the offset and fetches the next page (pure append).
func (l *Loader) LoadMore(ctx context.Context) error {
	req, ok := l.BeginMore()
	if !ok {
		return nil
	}
	rows, err := l.FetchPage(ctx, req)
	return l.Apply(req, rows, err)
}

// merge appends new rows, drops ids already present, and re-sorts the whole
// accumulator ascending by id. The sort is stable so pages arriving out of
// order still produce a deterministic display order.
func merge(existing, incoming []Row) []Row {
	seen := make(map[int]struct{}, len(existing))
	for _, r := range existing {
		seen[r.ID] = struct{}{}
	}
	merged := existing
	for _, r := range incoming {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		merged = append(merged, r)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].ID < merged[j].ID
	})
	return merged
}
