package game

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/clueboard/internal/board"
	"github.com/jason-s-yu/clueboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func link(round models.Round, category string, value int, dd bool) models.GameClue {
	id := uuid.New()
	return models.GameClue{
		ID:     uuid.New(),
		ClueID: id,
		State:  models.ClueStateUnanswered,
		Clue: models.Clue{
			ID: id, Category: category, Round: round, Value: value, DailyDouble: dd,
			Question: "secret question", Answer: "secret answer",
		},
	}
}

func TestBuildSnapshot(t *testing.T) {
	now := time.Now()
	g := &models.Game{ID: uuid.New(), State: models.GameStatePending, Score: 0, CreatedAt: now, UpdatedAt: now}
	links := []models.GameClue{
		link(models.RoundJeopardy, "SCIENCE", 600, false),
		link(models.RoundDoubleJeopardy, "OPERA", 2000, true),
		link(models.RoundJeopardy, "HISTORY", 400, false),
		link(models.RoundJeopardy, "SCIENCE", 200, true),
		link(models.RoundJeopardy, "HISTORY", 200, false),
		link(models.RoundDoubleJeopardy, "OPERA", 400, false),
	}

	snap := BuildSnapshot(g, links, board.DefaultRounds())
	assert.Equal(t, g.ID, snap.ID)
	assert.Equal(t, now, snap.CreatedAt)
	require.Len(t, snap.Boards, 2)

	j := snap.Boards[0]
	assert.Equal(t, models.RoundJeopardy, j.Round)
	require.Len(t, j.Categories, 2)
	assert.Equal(t, "SCIENCE", j.Categories[0].Name)
	assert.Equal(t, "HISTORY", j.Categories[1].Name)
	assert.Equal(t, 200, j.Categories[0].Clues[0].Value)
	assert.True(t, j.Categories[0].Clues[0].DailyDouble)
	assert.Equal(t, 600, j.Categories[0].Clues[1].Value)
	assert.Equal(t, []int{200, 400}, []int{j.Categories[1].Clues[0].Value, j.Categories[1].Clues[1].Value})
	assert.Equal(t, links[3].Clue.ID, j.Categories[0].Clues[0].ID)

	dj := snap.Boards[1]
	require.Len(t, dj.Categories, 1)
	assert.Equal(t, 400, dj.Categories[0].Clues[0].Value)
	assert.Equal(t, 2000, dj.Categories[0].Clues[1].Value)
}

func TestBuildSnapshotEmptyRound(t *testing.T) {
	g := &models.Game{ID: uuid.New(), State: models.GameStatePending}
	snap := BuildSnapshot(g, []models.GameClue{link(models.RoundJeopardy, "A", 200, false)}, board.DefaultRounds())

	require.Len(t, snap.Boards, 2)
	assert.NotNil(t, snap.Boards[1].Categories)
	assert.Empty(t, snap.Boards[1].Categories)
}
