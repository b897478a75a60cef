package models

import (
	"time"

	"github.com/google/uuid"
)

// GameState is the lifecycle state of a game.
type GameState string

const (
	GameStatePending      GameState = "PENDING"
	GameStateActive       GameState = "ACTIVE"
	GameStateFinalPending GameState = "FINAL_PENDING"
	GameStateFinalActive  GameState = "FINAL_ACTIVE"
	GameStateCompleted    GameState = "COMPLETED"
	GameStateAbandoned    GameState = "ABANDONED"
)

// ActiveGameStates are the non-terminal states; a user may hold at most one game in them.
var ActiveGameStates = []GameState{
	GameStatePending,
	GameStateActive,
	GameStateFinalPending,
	GameStateFinalActive,
}

// IsActive reports whether s is non-terminal.
func (s GameState) IsActive() bool {
	for _, a := range ActiveGameStates {
		if s == a {
			return true
		}
	}
	return false
}

// ClueState is the per-game answer state of a linked clue.
type ClueState string

const (
	ClueStateUnanswered ClueState = "UNANSWERED"
	ClueStateCorrect    ClueState = "CORRECT"
	ClueStateIncorrect  ClueState = "INCORRECT"
	ClueStateSkipped    ClueState = "SKIPPED"
)

// Game represents a row in the games table.
type Game struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	State     GameState `json:"state"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GameClue links a game to a durable clue. Clue is populated on reload.
type GameClue struct {
	ID       uuid.UUID `json:"id"`
	GameID   uuid.UUID `json:"game_id"`
	ClueID   uuid.UUID `json:"clue_id"`
	State    ClueState `json:"state"`
	Position int       `json:"position"`
	Clue     Clue      `json:"clue"`
}

// AuditActionGameCreated is the action recorded when a board is constructed.
const AuditActionGameCreated = "GAME_CREATED"

// GameAudit is an append-only record of a board-construction decision.
type GameAudit struct {
	ID        uuid.UUID              `json:"id"`
	GameID    uuid.UUID              `json:"game_id"`
	Action    string                 `json:"action"`
	Details   map[string]interface{} `json:"details"`
	CreatedAt time.Time              `json:"created_at"`
}

// NewGame is everything persisted when a game is created. Clues are in
// presentation order: round by round, category by category, ladder order within
// a category. Their index becomes the link position.
type NewGame struct {
	UserID uuid.UUID
	Clues  []ClueContent
	// AuditDetails is stored verbatim as the GAME_CREATED audit record.
	AuditDetails map[string]interface{}
}

// GameCreatedEvent is published once a game has been committed.
type GameCreatedEvent struct {
	GameID     uuid.UUID          `json:"game_id"`
	UserID     uuid.UUID          `json:"user_id"`
	Categories map[Round][]string `json:"categories"`
	Timestamp  int64              `json:"timestamp"`
}
