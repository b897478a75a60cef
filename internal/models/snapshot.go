package models

import (
	"time"

	"github.com/google/uuid"
)

// ClueSummary is the unrevealed view of a clue on a board. Question and answer
// text are deliberately absent.
type ClueSummary struct {
	ID          uuid.UUID `json:"id"`
	Category    string    `json:"category"`
	Value       int       `json:"value"`
	DailyDouble bool      `json:"dailyDouble"`
	State       ClueState `json:"state"`
}

// CategoryView is one board column.
type CategoryView struct {
	Name  string        `json:"name"`
	Clues []ClueSummary `json:"clues"`
}

// BoardView is one round's board.
type BoardView struct {
	Round      Round          `json:"round"`
	Categories []CategoryView `json:"categories"`
}

// GameSnapshot is the caller-facing result of creating or loading a game.
type GameSnapshot struct {
	ID        uuid.UUID   `json:"id"`
	State     GameState   `json:"state"`
	Score     int         `json:"score"`
	Boards    []BoardView `json:"boards"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
