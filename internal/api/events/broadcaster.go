package events

import (
	"encoding/json"
	"log/slog"

	"github.com/mcoot/shellgame-go/internal/api/response"
	"github.com/mcoot/shellgame-go/internal/model"
)

// Event names sent to watchers
const (
	EventState   = "state"
	EventDeleted = "deleted"
)

// Broadcaster publishes game changes to the watchers of each game
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "events-broadcaster")),
	}
}

// GameChanged sends the new visible state of a game to its watchers
func (b *Broadcaster) GameChanged(id model.GameID, snapshot model.Snapshot) {
	hub := b.hubManager.GetHub(id)
	if hub == nil {
		return
	}

	data, err := StateEvent(snapshot)
	if err != nil {
		b.logger.Error("failed to encode state event",
			slog.String("game_id", string(id)),
			slog.String("error", err.Error()))
		return
	}
	hub.Broadcast(data)
}

// GameDeleted tells watchers the game is gone and disconnects them
func (b *Broadcaster) GameDeleted(id model.GameID) {
	hub := b.hubManager.GetHub(id)
	if hub == nil {
		return
	}

	hub.BroadcastEvent(EventDeleted, `{"id":"`+string(id)+`"}`)
	b.hubManager.RemoveHub(id)
}

// StateEvent encodes a snapshot as a state event
func StateEvent(snapshot model.Snapshot) ([]byte, error) {
	data, err := json.Marshal(response.SnapshotFromModel(snapshot))
	if err != nil {
		return nil, err
	}
	return formatEvent(EventState, string(data)), nil
}
