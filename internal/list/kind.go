// ABOUTME: Closed enum of list entity kinds
// ABOUTME: One dispatch point replaces the switch-on-string scattered in list views

package list

// Kind identifies which entity a list view shows.
type Kind int

const (
	KindPokemon Kind = iota
	KindUsers
	KindTeams
	KindMyTeams
	// KindNewTeam browses the catalog like KindPokemon but with selection
	// enabled for team building.
	KindNewTeam
)

// String returns the route-style name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPokemon:
		return "pokemon"
	case KindUsers:
		return "users"
	case KindTeams:
		return "teams"
	case KindMyTeams:
		return "my-teams"
	case KindNewTeam:
		return "new-team"
	default:
		return "unknown"
	}
}

// valid reports whether k is a known kind.
func (k Kind) valid() bool {
	switch k {
	case KindPokemon, KindUsers, KindTeams, KindMyTeams, KindNewTeam:
		return true
	default:
		return false
	}
}

// catalog reports whether k is backed by the Pokemon catalog API.
func (k Kind) catalog() bool {
	return k == KindPokemon || k == KindNewTeam
}
