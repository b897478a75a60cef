package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/clueboard/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis is an in-memory stand-in for the handful of commands we use.
type fakeRedis struct {
	values  map[string]string
	ttls    map[string]time.Duration
	lists   map[string][]string
	failGet error
	failSet error
	failPus error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		values: map[string]string{},
		ttls:   map[string]time.Duration{},
		lists:  map[string][]string{},
	}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.failGet != nil {
		return redis.NewStringResult("", f.failGet)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	if f.failSet != nil {
		return redis.NewStatusResult("", f.failSet)
	}
	switch v := value.(type) {
	case []byte:
		f.values[key] = string(v)
	case string:
		f.values[key] = v
	}
	f.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) RPush(_ context.Context, key string, values ...interface{}) *redis.IntCmd {
	if f.failPus != nil {
		return redis.NewIntResult(0, f.failPus)
	}
	for _, v := range values {
		if b, ok := v.([]byte); ok {
			f.lists[key] = append(f.lists[key], string(b))
		}
	}
	return redis.NewIntResult(int64(len(f.lists[key])), nil)
}

type countingSource struct {
	calls int
	clues []models.CandidateClue
	err   error
}

func (s *countingSource) FetchClues(context.Context) ([]models.CandidateClue, error) {
	s.calls++
	return s.clues, s.err
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

var samplePool = []models.CandidateClue{
	{Clue: "Largest planet", Answer: "Jupiter", Category: "SPACE", Round: "Jeopardy!", Value: 200},
}

func TestCachedSourceMissThenHit(t *testing.T) {
	rdb := newFakeRedis()
	src := &countingSource{clues: samplePool}
	cs := NewCachedSource(src, rdb, time.Minute, quietLogger())

	first, err := cs.FetchClues(context.Background())
	require.NoError(t, err)
	assert.Equal(t, samplePool, first)
	assert.Equal(t, time.Minute, rdb.ttls[CluePoolKey])

	second, err := cs.FetchClues(context.Background())
	require.NoError(t, err)
	assert.Equal(t, samplePool, second)
	assert.Equal(t, 1, src.calls)
}

func TestCachedSourceRedisDown(t *testing.T) {
	rdb := newFakeRedis()
	rdb.failGet = errors.New("connection refused")
	rdb.failSet = errors.New("connection refused")
	src := &countingSource{clues: samplePool}
	cs := NewCachedSource(src, rdb, time.Minute, quietLogger())

	for i := 0; i < 2; i++ {
		clues, err := cs.FetchClues(context.Background())
		require.NoError(t, err)
		assert.Equal(t, samplePool, clues)
	}
	assert.Equal(t, 2, src.calls)
}

func TestCachedSourceCorruptEntry(t *testing.T) {
	rdb := newFakeRedis()
	rdb.values[CluePoolKey] = "{not json"
	src := &countingSource{clues: samplePool}

	clues, err := NewCachedSource(src, rdb, time.Minute, quietLogger()).FetchClues(context.Background())
	require.NoError(t, err)
	assert.Equal(t, samplePool, clues)
	assert.Equal(t, 1, src.calls)
}

func TestCachedSourceDoesNotCacheFailures(t *testing.T) {
	rdb := newFakeRedis()
	src := &countingSource{err: errors.New("upstream down")}

	_, err := NewCachedSource(src, rdb, time.Minute, quietLogger()).FetchClues(context.Background())
	assert.Error(t, err)
	assert.NotContains(t, rdb.values, CluePoolKey)
}

func TestCachedSourceDisabled(t *testing.T) {
	rdb := newFakeRedis()
	src := &countingSource{clues: samplePool}
	cs := NewCachedSource(src, rdb, 0, quietLogger())

	_, _ = cs.FetchClues(context.Background())
	_, _ = cs.FetchClues(context.Background())
	assert.Equal(t, 2, src.calls)
	assert.Empty(t, rdb.values)
}

func TestPublishGameCreated(t *testing.T) {
	rdb := newFakeRedis()
	p := NewPublisher(rdb, "")

	ev := models.GameCreatedEvent{
		GameID:     uuid.New(),
		UserID:     uuid.New(),
		Categories: map[models.Round][]string{models.RoundJeopardy: {"SPACE"}},
		Timestamp:  time.Now().UnixMilli(),
	}
	require.NoError(t, p.PublishGameCreated(context.Background(), ev))
	require.Len(t, rdb.lists[DefaultQueueName], 1)

	var got models.GameCreatedEvent
	require.NoError(t, json.Unmarshal([]byte(rdb.lists[DefaultQueueName][0]), &got))
	assert.Equal(t, ev.GameID, got.GameID)
	assert.Equal(t, []string{"SPACE"}, got.Categories[models.RoundJeopardy])
}

func TestPublishGameCreatedFailure(t *testing.T) {
	rdb := newFakeRedis()
	rdb.failPus = errors.New("READONLY")
	err := NewPublisher(rdb, "events").PublishGameCreated(context.Background(), models.GameCreatedEvent{})
	assert.ErrorContains(t, err, "events")
}
