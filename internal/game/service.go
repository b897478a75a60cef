// internal/game/service.go
package game

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/clueboard/internal/apperr"
	"github.com/jason-s-yu/clueboard/internal/board"
	"github.com/jason-s-yu/clueboard/internal/cluebase"
	"github.com/jason-s-yu/clueboard/internal/models"
	"github.com/sirupsen/logrus"
)

// Store is the persistence the service depends on.
type Store interface {
	HasActiveGame(ctx context.Context, userID uuid.UUID) (bool, error)
	CreateGame(ctx context.Context, ng models.NewGame) (*models.Game, error)
	LoadGame(ctx context.Context, gameID uuid.UUID) (*models.Game, []models.GameClue, error)
}

// ClueSource supplies the raw candidate pool.
type ClueSource interface {
	FetchClues(ctx context.Context) ([]models.CandidateClue, error)
}

// EventPublisher receives a notification after each committed game.
type EventPublisher interface {
	PublishGameCreated(ctx context.Context, ev models.GameCreatedEvent) error
}

// Service creates and loads single-player games.
type Service struct {
	store  Store
	source ClueSource
	logger *logrus.Logger

	// Rounds is the board configuration, in presentation order.
	Rounds []board.RoundSpec

	// FetchTimeout bounds the clue pool fetch.
	FetchTimeout time.Duration

	// NewRand returns the randomness for one request. Tests replace it with a seeded source.
	NewRand func() *rand.Rand

	// Events is optional; when nil no events are published.
	Events EventPublisher
}

// NewService wires a Service with the reference round configuration.
func NewService(store Store, source ClueSource, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		store:        store,
		source:       source,
		logger:       logger,
		Rounds:       board.DefaultRounds(),
		FetchTimeout: cluebase.DefaultTimeout,
		NewRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
}

// CreateGame runs guard, fetch, per-round selection, persistence and reload, in
// that order. Every failure carries an apperr code.
func (s *Service) CreateGame(ctx context.Context, userID uuid.UUID) (*models.GameSnapshot, error) {
	entry := s.logger.WithField("user_id", userID)

	snap, err := s.createGame(ctx, userID, entry)
	if err != nil {
		code := apperr.CodeOf(err)
		if code == apperr.CodeInternal {
			entry.WithError(err).Error("unexpected error creating game")
		} else {
			entry.WithError(err).WithField("code", code).Warn("game creation rejected")
		}
		return nil, err
	}
	return snap, nil
}

func (s *Service) createGame(ctx context.Context, userID uuid.UUID, entry *logrus.Entry) (*models.GameSnapshot, error) {
	if err := s.ensureNoActiveGame(ctx, userID); err != nil {
		return nil, err
	}

	pool, err := s.fetchPool(ctx)
	if err != nil {
		return nil, err
	}
	valid := cluebase.FilterValid(pool, s.Rounds)
	grouped := board.Group(valid, s.Rounds)
	entry.WithFields(logrus.Fields{"pool": len(pool), "valid": len(valid)}).Debug("clue pool filtered")

	rng := s.NewRand()
	boards := make([]*board.Result, 0, len(s.Rounds))
	for _, spec := range s.Rounds {
		res, err := board.Select(grouped[spec.Round], spec, rng)
		if err != nil {
			return nil, err
		}
		boards = append(boards, res)
	}

	var contents []models.ClueContent
	for _, b := range boards {
		contents = append(contents, b.Contents()...)
	}
	game, err := s.store.CreateGame(ctx, models.NewGame{
		UserID:       userID,
		Clues:        contents,
		AuditDetails: auditDetails(boards),
	})
	if err != nil {
		if apperr.Is(err, apperr.CodeActiveGameConflict) {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.CodeInternal, err, "failed to persist game")
	}

	fields := logrus.Fields{"game_id": game.ID}
	for _, b := range boards {
		key := roundKey(b.Round)
		fields[key+"_categories"] = b.Categories
		fields[key+"_daily_doubles"] = b.DailyDoubles
	}
	entry.WithFields(fields).Info("game created")

	snap, err := s.loadSnapshot(ctx, game.ID)
	if err != nil {
		return nil, err
	}
	s.publishCreated(ctx, game, boards, entry)
	return snap, nil
}

// GetGame reloads a game owned by userID. Games owned by others are reported as not found.
func (s *Service) GetGame(ctx context.Context, userID, gameID uuid.UUID) (*models.GameSnapshot, error) {
	game, links, err := s.store.LoadGame(ctx, gameID)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.CodeInternal, err, "failed to load game")
	}
	if game.UserID != userID {
		return nil, apperr.New(apperr.CodeNotFound, "game %s not found", gameID)
	}
	return BuildSnapshot(game, links, s.Rounds), nil
}

func (s *Service) ensureNoActiveGame(ctx context.Context, userID uuid.UUID) error {
	active, err := s.store.HasActiveGame(ctx, userID)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, err, "failed to check for active game")
	}
	if active {
		return apperr.New(apperr.CodeActiveGameConflict,
			"User already has an active game. Please complete or abandon the existing game.")
	}
	return nil
}

func (s *Service) fetchPool(ctx context.Context) ([]models.CandidateClue, error) {
	timeout := s.FetchTimeout
	if timeout <= 0 {
		timeout = cluebase.DefaultTimeout
	}
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pool, err := s.source.FetchClues(fetchCtx)
	if err != nil {
		if apperr.Is(err, apperr.CodeSourceUnavailable) {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.CodeSourceUnavailable, err,
			"Cluebase API is currently unavailable. Please try again later.")
	}
	return pool, nil
}

func (s *Service) loadSnapshot(ctx context.Context, gameID uuid.UUID) (*models.GameSnapshot, error) {
	game, links, err := s.store.LoadGame(ctx, gameID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err, "failed to reload game after creation")
	}
	return BuildSnapshot(game, links, s.Rounds), nil
}

func (s *Service) publishCreated(ctx context.Context, game *models.Game, boards []*board.Result, entry *logrus.Entry) {
	if s.Events == nil {
		return
	}
	ev := models.GameCreatedEvent{
		GameID:     game.ID,
		UserID:     game.UserID,
		Categories: make(map[models.Round][]string, len(boards)),
		Timestamp:  game.CreatedAt.UnixMilli(),
	}
	for _, b := range boards {
		ev.Categories[b.Round] = b.Categories
	}
	if err := s.Events.PublishGameCreated(ctx, ev); err != nil {
		entry.WithError(err).WithField("game_id", game.ID).Warn("failed to publish game created event")
	}
}

// auditDetails records the chosen categories and daily double count of each round,
// e.g. jeopardyCategories and doubleJeopardyDailyDoubles.
func auditDetails(boards []*board.Result) map[string]interface{} {
	details := make(map[string]interface{}, 2*len(boards))
	for _, b := range boards {
		key := roundKey(b.Round)
		details[key+"Categories"] = b.Categories
		details[key+"DailyDoubles"] = b.DailyDoubles
	}
	return details
}

// roundKey turns DOUBLE_JEOPARDY into doubleJeopardy.
func roundKey(r models.Round) string {
	parts := strings.Split(strings.ToLower(string(r)), "_")
	var b strings.Builder
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i == 0 {
			b.WriteString(p)
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}
