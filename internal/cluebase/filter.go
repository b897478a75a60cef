package cluebase

import (
	"strings"

	"github.com/jason-s-yu/clueboard/internal/board"
	"github.com/jason-s-yu/clueboard/internal/models"
)

// FilterValid keeps clues with non-blank text and answer, a value on some round's
// ladder, and a round label matching one of rounds.
func FilterValid(clues []models.CandidateClue, rounds []board.RoundSpec) []models.CandidateClue {
	values := board.AllValues(rounds)
	out := make([]models.CandidateClue, 0, len(clues))
	for _, c := range clues {
		if strings.TrimSpace(c.Clue) == "" || strings.TrimSpace(c.Answer) == "" {
			continue
		}
		if _, ok := values[c.Value]; !ok {
			continue
		}
		if _, ok := board.RoundForLabel(rounds, c.Round); !ok {
			continue
		}
		out = append(out, c)
	}
	return out
}
