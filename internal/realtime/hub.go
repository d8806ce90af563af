package realtime

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Hub tracks connected WebSocket clients and fans events out to them.
// Clients subscribe to a single article or, with no filter, to everything.
// There is no backlog: clients only see events fired while connected.
type Hub struct {
	log            zerolog.Logger
	allowedOrigins []string

	mu      sync.RWMutex
	clients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	events     chan routedEvent

	done chan struct{}
}

type routedEvent struct {
	articleID string
	event     Event
}

// Verify interface compliance
var _ Broadcaster = (*Hub)(nil)

// NewHub creates a Hub. An empty origin list accepts connections from any
// origin; otherwise upgrade requests must carry an allowed Origin header.
func NewHub(log zerolog.Logger, allowedOrigins []string) *Hub {
	return &Hub{
		log:            log.With().Str("component", "realtime").Logger(),
		allowedOrigins: allowedOrigins,
		clients:        make(map[*Client]struct{}),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		events:         make(chan routedEvent, 64),
		done:           make(chan struct{}),
	}
}

// Run processes registrations and event fan-out until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	h.log.Info().Msg("Realtime hub started")

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			h.mu.Unlock()
			h.log.Debug().
				Str("client_id", client.id).
				Str("article_id", client.articleID).
				Msg("Client connected")
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.log.Debug().Str("client_id", client.id).Msg("Client disconnected")
		case re := <-h.events:
			h.fanOut(re)
		}
	}
}

// Broadcast queues an event for delivery to subscribed clients
func (h *Hub) Broadcast(articleID string, event Event) {
	select {
	case h.events <- routedEvent{articleID: articleID, event: event}:
	case <-h.done:
	}
}

// fanOut delivers an event to every client whose subscription matches.
// Clients with a full send buffer miss the event rather than block the hub.
func (h *Hub) fanOut(re routedEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for client := range h.clients {
		if client.articleID != "" && client.articleID != re.articleID {
			continue
		}
		select {
		case client.send <- re.event:
			delivered++
		default:
			h.log.Warn().Str("client_id", client.id).Msg("Client send buffer full, dropping event")
		}
	}

	h.log.Debug().
		Str("event", re.event.Event).
		Str("article_id", re.articleID).
		Int("delivered", delivered).
		Msg("Event broadcast")
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) shutdown() {
	close(h.done)

	h.mu.Lock()
	for client := range h.clients {
		close(client.send)
		client.conn.Close()
		delete(h.clients, client)
	}
	h.mu.Unlock()

	h.log.Info().Msg("Realtime hub stopped")
}
