package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/shellgame-go/internal/api/request"
	"github.com/mcoot/shellgame-go/internal/api/response"
	"github.com/mcoot/shellgame-go/internal/model"
	"github.com/mcoot/shellgame-go/internal/services/game"
)

// GameHandler handles game session endpoints
type GameHandler struct {
	gameController   *game.Controller
	defaultMaxRounds int
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController *game.Controller, defaultMaxRounds int) *GameHandler {
	if defaultMaxRounds == 0 {
		defaultMaxRounds = model.DefaultMaxRounds
	}
	return &GameHandler{
		gameController:   gameController,
		defaultMaxRounds: defaultMaxRounds,
	}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	maxRounds := h.defaultMaxRounds
	if req.MaxRounds != nil {
		maxRounds = *req.MaxRounds
	}

	g, token, err := h.gameController.CreateGame(r.Context(), maxRounds)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, "/api/v1/games/"+string(g.ID), response.CreateGameResponse{
		Game:  response.GameFromModel(g),
		Token: token,
	})
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.GetGame(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.GameFromModel(g))
}

// Start handles POST /api/v1/games/{id}/start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	snap, err := h.gameController.Start(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.SnapshotFromModel(snap))
}

// Shuffle handles POST /api/v1/games/{id}/shuffle
func (h *GameHandler) Shuffle(w http.ResponseWriter, r *http.Request) {
	all := false
	if v := r.URL.Query().Get("all"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			WriteError(w, NewInvalidRequestError("all must be a boolean"))
			return
		}
		all = parsed
	}

	if all {
		snap, applied, err := h.gameController.ShuffleAll(r.Context(), gameID(r))
		if err != nil {
			WriteError(w, err)
			return
		}
		response.OK(w, response.ShuffleResponse{
			State:    response.SnapshotFromModel(snap),
			Shuffles: applied,
		})
		return
	}

	snap, err := h.gameController.Shuffle(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, response.ShuffleResponse{
		State:    response.SnapshotFromModel(snap),
		Shuffles: 1,
	})
}

// Guess handles POST /api/v1/games/{id}/guess
func (h *GameHandler) Guess(w http.ResponseWriter, r *http.Request) {
	var req request.GuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Slot == nil {
		WriteError(w, NewInvalidRequestError("slot is required"))
		return
	}

	id := gameID(r)
	outcome, err := h.gameController.Guess(r.Context(), id, model.Slot(*req.Slot))
	if err != nil {
		WriteError(w, err)
		return
	}

	snap, err := h.gameController.Snapshot(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.GuessResponse{
		Outcome: response.OutcomeFromModel(outcome),
		State:   response.SnapshotFromModel(snap),
	})
}

// Reset handles POST /api/v1/games/{id}/reset
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	snap, err := h.gameController.Reset(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.SnapshotFromModel(snap))
}

// Delete handles DELETE /api/v1/games/{id}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.gameController.DeleteGame(r.Context(), gameID(r)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}
