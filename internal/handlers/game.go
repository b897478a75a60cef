// internal/handlers/game.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jason-s-yu/clueboard/internal/apperr"
	"github.com/jason-s-yu/clueboard/internal/middleware"
)

type errorResponse struct {
	Error   apperr.Code `json:"error"`
	Message string      `json:"message"`
}

// CreateGameHandler handles POST /games. It creates a new game for the
// authenticated user and returns its unrevealed boards.
//
// Responses:
//
//	201 game snapshot
//	409 ACTIVE_GAME_CONFLICT
//	422 INSUFFICIENT_CATEGORIES | MISSING_VALUE_CLUE | DAILY_DOUBLE_COUNT_MISMATCH
//	503 SOURCE_UNAVAILABLE
func (s *APIServer) CreateGameHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		s.writeError(w, apperr.New(apperr.CodeUnauthorized, "missing user"))
		return
	}

	s.Logger.WithField("user_id", userID).Info("creating game")
	snap, err := s.Games.CreateGame(r.Context(), userID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

// GetGameHandler handles GET /games/{id} for the game's owner.
func (s *APIServer) GetGameHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		s.writeError(w, apperr.New(apperr.CodeUnauthorized, "missing user"))
		return
	}
	gameID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, apperr.New(apperr.CodeNotFound, "game not found"))
		return
	}

	snap, err := s.Games.GetGame(r.Context(), userID, gameID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *APIServer) writeError(w http.ResponseWriter, err error) {
	code := apperr.CodeOf(err)
	status := apperr.HTTPStatus(code)
	if status >= http.StatusInternalServerError && code != apperr.CodeSourceUnavailable {
		s.Logger.WithError(err).Error("request failed")
	}
	writeJSON(w, status, errorResponse{Error: code, Message: apperr.PublicMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
