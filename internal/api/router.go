package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mcoot/shellgame-go/internal/api/events"
	"github.com/mcoot/shellgame-go/internal/api/handler"
	"github.com/mcoot/shellgame-go/internal/api/middleware"
	"github.com/mcoot/shellgame-go/internal/api/response"
	httpmw "github.com/mcoot/shellgame-go/internal/middleware"
	"github.com/mcoot/shellgame-go/internal/services/game"
)

// HealthChecker reports whether a backing service is usable
type HealthChecker interface {
	Ping(ctx context.Context) error
}

const healthTimeout = 2 * time.Second

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger           *slog.Logger
	GameController   *game.Controller
	Events           *events.HubManager
	Health           HealthChecker
	DefaultMaxRounds int
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.DefaultMaxRounds)

	ownerMiddleware := middleware.GameOwner(cfg.GameController)
	loggingMiddleware := httpmw.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	api.HandleFunc("/health", healthHandler(cfg.Health, cfg.Logger)).Methods(http.MethodGet)

	// Anyone may create a game or read its public snapshot
	api.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}", gameHandler.Get).Methods(http.MethodGet)
	if cfg.Events != nil {
		eventsHandler := handler.NewEventsHandler(cfg.GameController, cfg.Events)
		api.HandleFunc("/games/{id}/events", eventsHandler.Stream).Methods(http.MethodGet)
	}

	// Mutations require the owner token issued at creation
	owned := api.PathPrefix("/games/{id}").Subrouter()
	owned.Use(ownerMiddleware)
	owned.HandleFunc("/start", gameHandler.Start).Methods(http.MethodPost)
	owned.HandleFunc("/shuffle", gameHandler.Shuffle).Methods(http.MethodPost)
	owned.HandleFunc("/guess", gameHandler.Guess).Methods(http.MethodPost)
	owned.HandleFunc("/reset", gameHandler.Reset).Methods(http.MethodPost)
	owned.HandleFunc("", gameHandler.Delete).Methods(http.MethodDelete)

	return r
}

// healthHandler answers 503 while the checker fails. A nil checker is
// always healthy.
func healthHandler(checker HealthChecker, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
			defer cancel()
			if err := checker.Ping(ctx); err != nil {
				logger.Warn("health check failed", slog.String("error", err.Error()))
				response.JSON(w, http.StatusServiceUnavailable, response.HealthResponse{Status: response.HealthUnavailable})
				return
			}
		}
		response.OK(w, response.HealthResponse{Status: response.HealthOK})
	}
}
