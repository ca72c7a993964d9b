package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"netivim/entity"
	"netivim/internal/lib/sl"
)

// Source provides the current school collection.
type Source interface {
	List() []entity.School
}

// Event is a message sent to map clients.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub tracks connected map clients and tells them to redraw when the
// collection changes.
type Hub struct {
	clients    map[*Client]bool
	refresh    chan struct{}
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
	source     Source
	log        *slog.Logger
}

func NewHub(source Source, log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		refresh:    make(chan struct{}, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		source:     source,
		log:        log.With(sl.Module("ws.hub")),
	}
}

// Run is the hub event loop. It returns when ctx is cancelled, after
// disconnecting every client.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		h.mu.Lock()
		for client := range h.clients {
			delete(h.clients, client)
			client.closeSend()
		}
		h.mu.Unlock()
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.log.With(slog.Int("clients", h.Count())).Debug("client connected")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.closeSend()
			}
			h.mu.Unlock()

		case <-h.refresh:
			h.mu.RLock()
			for client := range h.clients {
				client.redraw()
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// SchoolAdded asks every client to redraw; used as an intake listener.
func (h *Hub) SchoolAdded(school entity.School) {
	h.log.With(slog.String("id", school.ID)).Debug("refresh clients")
	select {
	case h.refresh <- struct{}{}:
	default:
		// a refresh is already queued and will pick the school up
	}
}

func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func encode(eventType string, data interface{}) []byte {
	b, _ := json.Marshal(&Event{Type: eventType, Data: data})
	return b
}
