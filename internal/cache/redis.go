// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jason-s-yu/clueboard/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// DefaultQueueName is the Redis list receiving game-created events.
const DefaultQueueName = "trivia_game_events"

// CluePoolKey is the Redis key holding the cached clue pool.
const CluePoolKey = "cluebase:pool"

// Connect opens a Redis client and pings it.
func Connect(ctx context.Context, addr string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return rdb, nil
}

// ClueSource is anything that can produce the raw clue pool.
type ClueSource interface {
	FetchClues(ctx context.Context) ([]models.CandidateClue, error)
}

// poolStore is the subset of *redis.Client the pool cache needs.
type poolStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedSource serves the clue pool from Redis when fresh and falls back to the
// wrapped source otherwise. Redis failures are logged and never fail a fetch.
type CachedSource struct {
	next   ClueSource
	rdb    poolStore
	ttl    time.Duration
	logger *logrus.Logger
}

// NewCachedSource wraps next. A ttl of zero disables caching.
func NewCachedSource(next ClueSource, rdb poolStore, ttl time.Duration, logger *logrus.Logger) *CachedSource {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &CachedSource{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

// FetchClues implements ClueSource.
func (c *CachedSource) FetchClues(ctx context.Context) ([]models.CandidateClue, error) {
	if c.ttl <= 0 || c.rdb == nil {
		return c.next.FetchClues(ctx)
	}

	if clues, ok := c.load(ctx); ok {
		return clues, nil
	}

	clues, err := c.next.FetchClues(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, clues)
	return clues, nil
}

func (c *CachedSource) load(ctx context.Context) ([]models.CandidateClue, bool) {
	raw, err := c.rdb.Get(ctx, CluePoolKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.logger.WithError(err).Warn("clue pool cache read failed")
		return nil, false
	}
	var clues []models.CandidateClue
	if err := json.Unmarshal(raw, &clues); err != nil {
		c.logger.WithError(err).Warn("discarding undecodable cached clue pool")
		return nil, false
	}
	return clues, true
}

func (c *CachedSource) store(ctx context.Context, clues []models.CandidateClue) {
	data, err := json.Marshal(clues)
	if err != nil {
		c.logger.WithError(err).Warn("failed to marshal clue pool for cache")
		return
	}
	if err := c.rdb.Set(ctx, CluePoolKey, data, c.ttl).Err(); err != nil {
		c.logger.WithError(err).Warn("clue pool cache write failed")
	}
}

// queuePusher is the subset of *redis.Client the publisher needs.
type queuePusher interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// Publisher pushes game events onto a Redis list for downstream consumers.
type Publisher struct {
	rdb   queuePusher
	queue string
}

// NewPublisher builds a Publisher for queue, defaulting to DefaultQueueName.
func NewPublisher(rdb queuePusher, queue string) *Publisher {
	if queue == "" {
		queue = DefaultQueueName
	}
	return &Publisher{rdb: rdb, queue: queue}
}

// PublishGameCreated serializes the event and RPUSHes it to the queue.
func (p *Publisher) PublishGameCreated(ctx context.Context, ev models.GameCreatedEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal GameCreatedEvent: %w", err)
	}
	if err := p.rdb.RPush(ctx, p.queue, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list '%s': %w", p.queue, err)
	}
	return nil
}
