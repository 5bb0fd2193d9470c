// ABOUTME: Bounded, insertion-ordered selection of Pokemon for team building
// ABOUTME: Membership is keyed by pokemon id, never by object identity

package team

import (
	"errors"

	"github.com/pokebuild/teambuilder/internal/client"
)

// MaxSize is the largest roster a team may have.
const MaxSize = 6

// ErrTeamFull is returned when a toggle would grow the selection past MaxSize.
var ErrTeamFull = errors.New("up to 6 Pokémon may be added")

// ErrEmptySelection is returned when a team is submitted with no Pokemon.
var ErrEmptySelection = errors.New("select at least one Pokémon")

// Selection is the set of Pokemon chosen for a team, in selection order.
// Roster positions follow that order, so no canonical re-sort is needed at
// submit time.
type Selection struct {
	order []client.PokemonRef
	byID  map[int]int // pokemon id -> index into order
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{byID: make(map[int]int)}
}

// Toggle removes ref if a Pokemon with the same id is already selected,
// otherwise adds it. Adding past MaxSize returns ErrTeamFull and leaves the
// selection unchanged.
func (s *Selection) Toggle(ref client.PokemonRef) error {
	if idx, ok := s.byID[ref.PokemonID]; ok {
		s.order = append(s.order[:idx], s.order[idx+1:]...)
		delete(s.byID, ref.PokemonID)
		for i := idx; i < len(s.order); i++ {
			s.byID[s.order[i].PokemonID] = i
		}
		return nil
	}
	if len(s.order) >= MaxSize {
		return ErrTeamFull
	}
	s.byID[ref.PokemonID] = len(s.order)
	s.order = append(s.order, ref)
	return nil
}

// Contains reports whether a Pokemon with the given id is selected.
func (s *Selection) Contains(pokemonID int) bool {
	_, ok := s.byID[pokemonID]
	return ok
}

// Len returns the number of selected Pokemon.
func (s *Selection) Len() int {
	return len(s.order)
}

// Refs returns the selection in insertion order.
func (s *Selection) Refs() []client.PokemonRef {
	return append([]client.PokemonRef(nil), s.order...)
}

// Clear empties the selection. Called after a successful create or edit.
func (s *Selection) Clear() {
	s.order = nil
	s.byID = make(map[int]int)
}
