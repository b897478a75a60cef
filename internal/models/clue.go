package models

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Round identifies one of the two board phases.
type Round string

const (
	RoundJeopardy       Round = "JEOPARDY"
	RoundDoubleJeopardy Round = "DOUBLE_JEOPARDY"
)

// CandidateClue is a clue as supplied by the external clue pool.
// JSON tags follow the upstream wire format.
type CandidateClue struct {
	ID          string `json:"id,omitempty"`
	Clue        string `json:"clue"`
	Answer      string `json:"answer"`
	Category    string `json:"category"`
	Round       string `json:"round"`
	Value       int    `json:"value"`
	DailyDouble bool   `json:"daily_double"`
}

// Clue is the durable, content-addressed clue record shared across games.
type Clue struct {
	ID          uuid.UUID `json:"id"`
	Category    string    `json:"category"`
	Round       Round     `json:"round"`
	Value       int       `json:"value"`
	Question    string    `json:"question"`
	Answer      string    `json:"answer"`
	DailyDouble bool      `json:"daily_double"`
	CreatedAt   time.Time `json:"created_at"`
}

// ClueContent is the identity tuple of a durable clue.
type ClueContent struct {
	Category    string
	Round       Round
	Value       int
	Question    string
	Answer      string
	DailyDouble bool
}

// Hash returns a hex SHA-256 over the content tuple. Fields are length-prefixed
// so that no two distinct tuples share an encoding.
func (c ClueContent) Hash() string {
	h := sha256.New()
	for _, field := range []string{
		c.Category,
		string(c.Round),
		strconv.Itoa(c.Value),
		c.Question,
		c.Answer,
		strconv.FormatBool(c.DailyDouble),
	} {
		h.Write([]byte(strconv.Itoa(len(field))))
		h.Write([]byte{':'})
		h.Write([]byte(field))
	}
	return hex.EncodeToString(h.Sum(nil))
}
