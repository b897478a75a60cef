package board

import (
	"math/rand/v2"
	"sort"

	"github.com/jason-s-yu/clueboard/internal/models"
)

// Result is one round's constructed board.
type Result struct {
	Round models.Round
	// Categories are in the order they were chosen, which becomes presentation order.
	Categories []string
	// Clues holds len(Categories) * len(spec.Values) clues, grouped by category in
	// Categories order and by value in ladder order within a category.
	Clues        []models.CandidateClue
	DailyDoubles int
}

// Contents returns the durable content of every selected clue, in board order.
func (r *Result) Contents() []models.ClueContent {
	out := make([]models.ClueContent, 0, len(r.Clues))
	for _, c := range r.Clues {
		out = append(out, models.ClueContent{
			Category:    c.Category,
			Round:       r.Round,
			Value:       c.Value,
			Question:    c.Clue,
			Answer:      c.Answer,
			DailyDouble: c.DailyDouble,
		})
	}
	return out
}

// Select builds the board for one round. It picks CategoriesPerBoard categories
// uniformly at random and, for each, one clue per ladder value uniformly at random
// among the clues at that value. The daily double count must match the round exactly.
// There is no retry with a different category subset.
func Select(grouped Grouped, spec RoundSpec, rng *rand.Rand) (*Result, error) {
	if len(grouped) < CategoriesPerBoard {
		return nil, &InsufficientCategoriesError{
			Round:    spec.Round,
			Found:    len(grouped),
			Required: CategoriesPerBoard,
		}
	}

	// map iteration order is random, so sort first to keep a seeded rng reproducible
	available := make([]string, 0, len(grouped))
	for name := range grouped {
		available = append(available, name)
	}
	sort.Strings(available)
	rng.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})
	chosen := available[:CategoriesPerBoard]

	res := &Result{
		Round:      spec.Round,
		Categories: make([]string, 0, CategoriesPerBoard),
		Clues:      make([]models.CandidateClue, 0, CategoriesPerBoard*len(spec.Values)),
	}

	for _, category := range chosen {
		byValue := make(map[int][]models.CandidateClue, len(spec.Values))
		for _, c := range grouped[category] {
			byValue[c.Value] = append(byValue[c.Value], c)
		}

		for _, value := range spec.Values {
			candidates := byValue[value]
			if len(candidates) == 0 {
				return nil, &MissingValueClueError{Round: spec.Round, Category: category, Value: value}
			}
			pick := candidates[rng.IntN(len(candidates))]
			if pick.DailyDouble {
				res.DailyDoubles++
			}
			res.Clues = append(res.Clues, pick)
		}
		res.Categories = append(res.Categories, category)
	}

	if res.DailyDoubles != spec.DailyDoubles {
		return nil, &DailyDoubleCountError{
			Round:    spec.Round,
			Found:    res.DailyDoubles,
			Required: spec.DailyDoubles,
		}
	}
	return res, nil
}
