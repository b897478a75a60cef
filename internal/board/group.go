package board

import "github.com/jason-s-yu/clueboard/internal/models"

// unknownCategory names clues whose upstream category is empty.
const unknownCategory = "Unknown"

// Grouped maps category name to the candidate clues of that category, for one round.
type Grouped map[string][]models.CandidateClue

// Group partitions clues by round and then by category. Clues whose round label
// matches none of the given rounds are dropped. An empty category is rewritten to
// "Unknown" on the clue itself, so it persists and renders under that name.
// Every round in rounds gets an entry in the result, possibly empty.
func Group(clues []models.CandidateClue, rounds []RoundSpec) map[models.Round]Grouped {
	out := make(map[models.Round]Grouped, len(rounds))
	byLabel := make(map[string]models.Round, len(rounds))
	for _, r := range rounds {
		out[r.Round] = Grouped{}
		byLabel[r.Label] = r.Round
	}

	for _, c := range clues {
		round, ok := byLabel[c.Round]
		if !ok {
			continue
		}
		if c.Category == "" {
			c.Category = unknownCategory
		}
		out[round][c.Category] = append(out[round][c.Category], c)
	}
	return out
}
