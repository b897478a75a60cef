// Package board builds the per-round boards of a trivia game from a candidate clue pool.
package board

import "github.com/jason-s-yu/clueboard/internal/models"

// CategoriesPerBoard is the number of categories each round's board must hold.
const CategoriesPerBoard = 6

// RoundSpec describes the structural requirements of one round.
type RoundSpec struct {
	Round models.Round
	// Label is the round name used by the upstream clue pool.
	Label string
	// Values is the value ladder, in presentation order, with no repeats.
	Values []int
	// DailyDoubles is the exact number of special clues the round must contain.
	DailyDoubles int
}

// DefaultRounds returns the reference two-round configuration.
func DefaultRounds() []RoundSpec {
	return []RoundSpec{
		{
			Round:        models.RoundJeopardy,
			Label:        "Jeopardy!",
			Values:       []int{200, 400, 600, 800, 1000},
			DailyDoubles: 1,
		},
		{
			Round:        models.RoundDoubleJeopardy,
			Label:        "Double Jeopardy!",
			Values:       []int{400, 800, 1200, 1600, 2000},
			DailyDoubles: 2,
		},
	}
}

// RoundForLabel returns the round whose upstream label matches.
func RoundForLabel(rounds []RoundSpec, label string) (RoundSpec, bool) {
	for _, r := range rounds {
		if r.Label == label {
			return r, true
		}
	}
	return RoundSpec{}, false
}

// AllValues returns the union of every round's ladder.
func AllValues(rounds []RoundSpec) map[int]struct{} {
	out := make(map[int]struct{})
	for _, r := range rounds {
		for _, v := range r.Values {
			out[v] = struct{}{}
		}
	}
	return out
}
