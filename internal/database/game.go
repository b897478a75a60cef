// internal/database/game.go
package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jason-s-yu/clueboard/internal/apperr"
	"github.com/jason-s-yu/clueboard/internal/models"
)

const (
	uniqueViolation       = "23505"
	activeGameConstraint  = "games_one_active_per_user"
	errActiveGameConflict = "User already has an active game. Please complete or abandon the existing game."
)

// Store is the Postgres-backed game store.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wraps an open pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func activeStateNames() []string {
	out := make([]string, len(models.ActiveGameStates))
	for i, s := range models.ActiveGameStates {
		out[i] = string(s)
	}
	return out
}

// HasActiveGame reports whether userID holds a game in a non-terminal state.
func (s *Store) HasActiveGame(ctx context.Context, userID uuid.UUID) (bool, error) {
	q := `SELECT EXISTS (SELECT 1 FROM games WHERE user_id = $1 AND state = ANY($2))`
	var exists bool
	if err := s.pool.QueryRow(ctx, q, userID, activeStateNames()).Scan(&exists); err != nil {
		return false, fmt.Errorf("check active game: %w", err)
	}
	return exists, nil
}

// CreateGame persists the game, its clues, the links and the audit record in a
// single transaction. A concurrent active game for the same user surfaces as
// ACTIVE_GAME_CONFLICT when the partial unique index rejects the insert.
func (s *Store) CreateGame(ctx context.Context, ng models.NewGame) (*models.Game, error) {
	game := &models.Game{
		ID:     uuid.New(),
		UserID: ng.UserID,
		State:  models.GameStatePending,
		Score:  0,
	}

	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		if err := insertGameTx(ctx, tx, game); err != nil {
			return err
		}

		for position, content := range ng.Clues {
			clueID, err := findOrCreateClueTx(ctx, tx, content)
			if err != nil {
				return fmt.Errorf("find or create clue: %w", err)
			}
			if err := insertGameClueTx(ctx, tx, game.ID, clueID, position); err != nil {
				return fmt.Errorf("link clue: %w", err)
			}
		}

		if err := insertAuditTx(ctx, tx, game.ID, models.AuditActionGameCreated, ng.AuditDetails); err != nil {
			return fmt.Errorf("insert audit: %w", err)
		}
		return nil
	})
	if err != nil {
		if isActiveGameViolation(err) {
			return nil, apperr.Wrap(apperr.CodeActiveGameConflict, err, errActiveGameConflict)
		}
		return nil, fmt.Errorf("tx create game: %w", err)
	}
	return game, nil
}

// LoadGame returns the game with its linked clues in selection order.
func (s *Store) LoadGame(ctx context.Context, gameID uuid.UUID) (*models.Game, []models.GameClue, error) {
	var g models.Game
	q := `
		SELECT id, user_id, state, score, created_at, updated_at
		FROM games
		WHERE id = $1
	`
	err := s.pool.QueryRow(ctx, q, gameID).Scan(
		&g.ID, &g.UserID, &g.State, &g.Score, &g.CreatedAt, &g.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, apperr.New(apperr.CodeNotFound, "game %s not found", gameID)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load game: %w", err)
	}

	lq := `
		SELECT gc.id, gc.game_id, gc.clue_id, gc.state, gc.position,
		       c.id, c.category, c.round, c.value, c.question, c.answer, c.daily_double, c.created_at
		FROM game_clues gc
		JOIN clues c ON c.id = gc.clue_id
		WHERE gc.game_id = $1
		ORDER BY gc.position
	`
	rows, err := s.pool.Query(ctx, lq, gameID)
	if err != nil {
		return nil, nil, fmt.Errorf("load game clues: %w", err)
	}
	defer rows.Close()

	var links []models.GameClue
	for rows.Next() {
		var gc models.GameClue
		if err := rows.Scan(
			&gc.ID, &gc.GameID, &gc.ClueID, &gc.State, &gc.Position,
			&gc.Clue.ID, &gc.Clue.Category, &gc.Clue.Round, &gc.Clue.Value,
			&gc.Clue.Question, &gc.Clue.Answer, &gc.Clue.DailyDouble, &gc.Clue.CreatedAt,
		); err != nil {
			return nil, nil, fmt.Errorf("scan game clue: %w", err)
		}
		links = append(links, gc)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate game clues: %w", err)
	}
	return &g, links, nil
}

func insertGameTx(ctx context.Context, tx pgx.Tx, g *models.Game) error {
	q := `
		INSERT INTO games (id, user_id, state, score)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	return tx.QueryRow(ctx, q, g.ID, g.UserID, g.State, g.Score).Scan(&g.CreatedAt, &g.UpdatedAt)
}

// findOrCreateClueTx resolves content to a durable clue id. The unique
// content_hash makes the insert race-safe: if a concurrent transaction created
// the same content first, ON CONFLICT yields no row and we read theirs.
func findOrCreateClueTx(ctx context.Context, tx pgx.Tx, content models.ClueContent) (uuid.UUID, error) {
	hash := content.Hash()

	var id uuid.UUID
	findQ := `
		SELECT id FROM clues
		WHERE content_hash = $1
		  AND category = $2 AND round = $3 AND value = $4
		  AND question = $5 AND answer = $6 AND daily_double = $7
	`
	err := tx.QueryRow(ctx, findQ, hash,
		content.Category, content.Round, content.Value,
		content.Question, content.Answer, content.DailyDouble,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, err
	}

	insertQ := `
		INSERT INTO clues (id, category, round, value, question, answer, daily_double, content_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (content_hash) DO NOTHING
		RETURNING id
	`
	err = tx.QueryRow(ctx, insertQ, uuid.New(),
		content.Category, content.Round, content.Value,
		content.Question, content.Answer, content.DailyDouble, hash,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, err
	}

	if err := tx.QueryRow(ctx, `SELECT id FROM clues WHERE content_hash = $1`, hash).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("reload conflicting clue: %w", err)
	}
	return id, nil
}

func insertGameClueTx(ctx context.Context, tx pgx.Tx, gameID, clueID uuid.UUID, position int) error {
	q := `
		INSERT INTO game_clues (id, game_id, clue_id, state, position)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := tx.Exec(ctx, q, uuid.New(), gameID, clueID, models.ClueStateUnanswered, position)
	return err
}

func insertAuditTx(ctx context.Context, tx pgx.Tx, gameID uuid.UUID, action string, details map[string]interface{}) error {
	if details == nil {
		details = map[string]interface{}{}
	}
	js, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("marshal audit details: %w", err)
	}
	q := `
		INSERT INTO game_audits (id, game_id, action, details)
		VALUES ($1, $2, $3, $4)
	`
	_, err = tx.Exec(ctx, q, uuid.New(), gameID, action, js)
	return err
}

func isActiveGameViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == uniqueViolation &&
		pgErr.ConstraintName == activeGameConstraint
}
