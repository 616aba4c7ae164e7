package events

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mcoot/shellgame-go/internal/model"
)

// Hub fans out events to every watcher of a single game
type Hub struct {
	gameID  model.GameID
	clients map[*Client]bool
	mu      sync.RWMutex
	logger  *slog.Logger

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	closeOnce  sync.Once
}

// NewHub creates a new Hub for a game
func NewHub(gameID model.GameID, logger *slog.Logger) *Hub {
	return &Hub{
		gameID:     gameID,
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("game_id", string(gameID))),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	h.logger.Debug("event hub started")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			clientCount := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("event watcher registered", slog.Int("total_clients", clientCount))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				clientCount := len(h.clients)
				h.mu.Unlock()
				h.logger.Info("event watcher unregistered",
					slog.Duration("connection_duration", time.Since(client.connectedAt)),
					slog.Int("total_clients", clientCount))
			} else {
				h.mu.Unlock()
			}

		case message := <-h.broadcast:
			h.deliver(message)

		case <-h.done:
			h.drain()
			h.mu.Lock()
			clientCount := len(h.clients)
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Debug("event hub stopped", slog.Int("disconnected_clients", clientCount))
			return
		}
	}
}

// drain delivers anything queued before the hub was closed
func (h *Hub) drain() {
	for {
		select {
		case message := <-h.broadcast:
			h.deliver(message)
		default:
			return
		}
	}
}

func (h *Hub) deliver(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	dropped := 0
	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		h.logger.Warn("event dropped, watcher buffer full", slog.Int("dropped", dropped))
	}
}

// Register adds a client to the hub. It returns false if the hub is closed.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast sends a message to all clients
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("event broadcast dropped, hub buffer full")
	}
}

// BroadcastEvent sends an event with a name and data
func (h *Hub) BroadcastEvent(eventName, data string) {
	h.Broadcast(formatEvent(eventName, data))
}

// Close shuts down the hub, disconnecting every client
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// formatEvent formats a server-sent event; each data line gets its own prefix
func formatEvent(eventName, data string) []byte {
	var b strings.Builder
	b.WriteString("event: " + eventName + "\n")
	for _, line := range splitLines(data) {
		b.WriteString("data: " + line + "\n")
	}
	b.WriteString("\n")
	return []byte(b.String())
}

// splitLines splits on LF, dropping CRs and a trailing empty line
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// HubManager manages the hubs of all watched games. A hub lives while at
// least one watcher holds it.
type HubManager struct {
	hubs   map[model.GameID]*hubEntry
	mu     sync.Mutex
	logger *slog.Logger
}

type hubEntry struct {
	hub      *Hub
	watchers int
}

// NewHubManager creates a new HubManager
func NewHubManager(logger *slog.Logger) *HubManager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &HubManager{
		hubs:   make(map[model.GameID]*hubEntry),
		logger: logger.With(slog.String("component", "events")),
	}
}

// Watch returns the hub for a game, creating one if needed. The returned
// release func must be called once the watcher is done with the hub.
func (m *HubManager) Watch(gameID model.GameID) (*Hub, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.hubs[gameID]
	if !ok {
		entry = &hubEntry{hub: NewHub(gameID, m.logger)}
		m.hubs[gameID] = entry
		go entry.hub.Run()
	}
	entry.watchers++

	var once sync.Once
	return entry.hub, func() {
		once.Do(func() { m.release(gameID, entry) })
	}
}

func (m *HubManager) release(gameID model.GameID, entry *hubEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry.watchers--
	if entry.watchers > 0 {
		return
	}
	entry.hub.Close()
	// The game may have been removed and watched again under a new hub
	if m.hubs[gameID] == entry {
		delete(m.hubs, gameID)
	}
}

// GetHub returns the hub for a game, or nil if nobody is watching it
func (m *HubManager) GetHub(gameID model.GameID) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry, ok := m.hubs[gameID]; ok {
		return entry.hub
	}
	return nil
}

// RemoveHub closes a game's hub, disconnecting its watchers
func (m *HubManager) RemoveHub(gameID model.GameID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.hubs[gameID]; ok {
		entry.hub.Close()
		delete(m.hubs, gameID)
		m.logger.Debug("event hub removed", slog.String("game_id", string(gameID)))
	}
}

// Len returns the number of live hubs
func (m *HubManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.hubs)
}
