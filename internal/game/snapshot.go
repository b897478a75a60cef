package game

import (
	"sort"

	"github.com/jason-s-yu/clueboard/internal/board"
	"github.com/jason-s-yu/clueboard/internal/models"
)

// BuildSnapshot reshapes a game and its links into one board per round. Categories
// keep the order in which their first link appears; clues within a category are
// sorted by value ascending. Question and answer text are not exposed.
func BuildSnapshot(game *models.Game, links []models.GameClue, rounds []board.RoundSpec) *models.GameSnapshot {
	snap := &models.GameSnapshot{
		ID:        game.ID,
		State:     game.State,
		Score:     game.Score,
		Boards:    make([]models.BoardView, 0, len(rounds)),
		CreatedAt: game.CreatedAt,
		UpdatedAt: game.UpdatedAt,
	}
	for _, spec := range rounds {
		snap.Boards = append(snap.Boards, buildBoard(spec.Round, links))
	}
	return snap
}

func buildBoard(round models.Round, links []models.GameClue) models.BoardView {
	var order []string
	byCategory := make(map[string][]models.GameClue)
	for _, gc := range links {
		if gc.Clue.Round != round {
			continue
		}
		name := gc.Clue.Category
		if _, seen := byCategory[name]; !seen {
			order = append(order, name)
		}
		byCategory[name] = append(byCategory[name], gc)
	}

	view := models.BoardView{Round: round, Categories: make([]models.CategoryView, 0, len(order))}
	for _, name := range order {
		clues := byCategory[name]
		sort.SliceStable(clues, func(i, j int) bool { return clues[i].Clue.Value < clues[j].Clue.Value })

		cat := models.CategoryView{Name: name, Clues: make([]models.ClueSummary, 0, len(clues))}
		for _, gc := range clues {
			cat.Clues = append(cat.Clues, models.ClueSummary{
				ID:          gc.Clue.ID,
				Category:    gc.Clue.Category,
				Value:       gc.Clue.Value,
				DailyDouble: gc.Clue.DailyDouble,
				State:       gc.State,
			})
		}
		view.Categories = append(view.Categories, cat)
	}
	return view
}
