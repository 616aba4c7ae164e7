package handler

import (
	"net/http"

	"github.com/mcoot/shellgame-go/internal/api/events"
	"github.com/mcoot/shellgame-go/internal/services/game"
)

// EventsHandler streams game changes to watchers
type EventsHandler struct {
	gameController *game.Controller
	hubs           *events.HubManager
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(gameController *game.Controller, hubs *events.HubManager) *EventsHandler {
	return &EventsHandler{
		gameController: gameController,
		hubs:           hubs,
	}
}

// Stream handles GET /api/v1/games/{id}/events.
// The first event carries the current state; later ones follow each change.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)

	if _, err := h.gameController.Snapshot(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	hub, release := h.hubs.Watch(id)
	defer release()

	events.ServeSSE(w, r, hub, func() []byte {
		snap, err := h.gameController.Snapshot(r.Context(), id)
		if err != nil {
			return nil
		}
		data, err := events.StateEvent(snap)
		if err != nil {
			return nil
		}
		return data
	})
}
