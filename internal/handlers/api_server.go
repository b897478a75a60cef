// internal/handlers/api_server.go
package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/jason-s-yu/clueboard/internal/middleware"
	"github.com/jason-s-yu/clueboard/internal/models"
	"github.com/sirupsen/logrus"
)

// GameService is the game operations exposed over HTTP.
type GameService interface {
	CreateGame(ctx context.Context, userID uuid.UUID) (*models.GameSnapshot, error)
	GetGame(ctx context.Context, userID, gameID uuid.UUID) (*models.GameSnapshot, error)
}

// APIServer holds the dependencies of the HTTP handlers.
type APIServer struct {
	Games  GameService
	Logger *logrus.Logger
}

// NewAPIServer builds an APIServer.
func NewAPIServer(games GameService, logger *logrus.Logger) *APIServer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &APIServer{Games: games, Logger: logger}
}

// Routes mounts every endpoint on a chi router.
func (s *APIServer) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.LogMiddleware(s.Logger))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(s.Logger))
		r.Post("/games", s.CreateGameHandler)
		r.Get("/games/{id}", s.GetGameHandler)
	})
	return r
}
