package cluebase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jason-s-yu/clueboard/internal/apperr"
	"github.com/jason-s-yu/clueboard/internal/board"
	"github.com/jason-s-yu/clueboard/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func TestFetchClues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/clues", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"1","clue":"Largest planet","answer":"Jupiter","category":"SPACE","round":"Jeopardy!","value":200,"daily_double":false},
			{"id":"2","clue":"Red planet","answer":"Mars","category":"SPACE","round":"Double Jeopardy!","value":400,"daily_double":true}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second, quietLogger())
	clues, err := c.FetchClues(context.Background())
	require.NoError(t, err)
	require.Len(t, clues, 2)
	assert.Equal(t, "Jupiter", clues[0].Answer)
	assert.True(t, clues[1].DailyDouble)
	assert.Equal(t, "Double Jeopardy!", clues[1].Round)
}

func TestFetchCluesBadShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second, quietLogger()).FetchClues(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperr.CodeSourceUnavailable, apperr.CodeOf(err))
}

func TestFetchCluesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second, quietLogger()).FetchClues(context.Background())
	assert.Equal(t, apperr.CodeSourceUnavailable, apperr.CodeOf(err))
}

func TestFetchCluesTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	_, err := NewClient(srv.URL, 50*time.Millisecond, quietLogger()).FetchClues(context.Background())
	assert.Equal(t, apperr.CodeSourceUnavailable, apperr.CodeOf(err))
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestFetchCluesContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient(srv.URL, time.Second, quietLogger()).FetchClues(ctx)
	assert.Equal(t, apperr.CodeSourceUnavailable, apperr.CodeOf(err))
}

func TestDecodePool(t *testing.T) {
	clues, err := DecodePool([]byte("  []\n"))
	require.NoError(t, err)
	assert.Empty(t, clues)

	_, err = DecodePool([]byte(`null`))
	assert.Error(t, err)

	_, err = DecodePool([]byte(`[{"value":"two hundred"}]`))
	assert.Error(t, err)
}

func TestFilterValid(t *testing.T) {
	rounds := board.DefaultRounds()
	good := models.CandidateClue{Clue: "q", Answer: "a", Category: "C", Round: "Jeopardy!", Value: 200}

	blankText := good
	blankText.Clue = "   "
	blankAnswer := good
	blankAnswer.Answer = ""
	zeroValue := good
	zeroValue.Value = 0
	offLadder := good
	offLadder.Value = 300
	finalRound := good
	finalRound.Round = "Final Jeopardy!"
	djValue := good
	djValue.Round = "Double Jeopardy!"
	djValue.Value = 2000

	out := FilterValid([]models.CandidateClue{good, blankText, blankAnswer, zeroValue, offLadder, finalRound, djValue}, rounds)
	assert.Equal(t, []models.CandidateClue{good, djValue}, out)
}
