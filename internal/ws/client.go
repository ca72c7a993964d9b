package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"netivim/entity"
	"netivim/internal/catalog"
	"netivim/internal/lib/sl"
	"netivim/internal/mapview"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 4096
	sendBuffer     = 512
)

// Client events.
const (
	EventReady  = "ready"
	EventFilter = "filter"
	EventSelect = "select"
	EventClick  = "click"
)

// Server events.
const (
	EventMarkerAdd    = "marker_add"
	EventMarkerRemove = "marker_remove"
	EventFlyTo        = "fly_to"
	EventPopupOpen    = "popup_open"
	EventSelected     = "selected"
	EventResults      = "results"
	EventError        = "error"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one browser map. It owns its filter state, its selection and
// the adapter that keeps its markers in sync.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	adapter *mapview.Adapter

	mu       sync.Mutex
	criteria catalog.Criteria
	selected string

	// drawMu serialises redraws from the hub and from the read pump so
	// the last one applied always uses the latest criteria.
	drawMu sync.Mutex

	sendMu sync.Mutex
	closed bool

	log *slog.Logger
}

type clientEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type filterData struct {
	// Types nil means every type; an empty list selects nothing.
	Types []string `json:"types"`
	Query string   `json:"query"`
	Grade string   `json:"grade"`
}

type idData struct {
	ID string `json:"id"`
}

type flyToData struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Zoom int     `json:"zoom"`
}

type resultsData struct {
	Count int      `json:"count"`
	Total int      `json:"total"`
	IDs   []string `json:"ids"`
}

func newClient(hub *Hub, conn *websocket.Conn, log *slog.Logger) *Client {
	c := &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		criteria: catalog.DefaultCriteria(),
		log:      log,
	}
	c.adapter = mapview.New(c.selectByClick)
	return c
}

// Canvas implementation: every call becomes one event for the browser.

func (c *Client) AddMarker(m mapview.Marker) {
	c.push(EventMarkerAdd, m)
}

func (c *Client) RemoveMarker(id string) {
	c.push(EventMarkerRemove, idData{ID: id})
}

func (c *Client) FlyTo(lat, lng float64, zoom int) {
	c.push(EventFlyTo, flyToData{Lat: lat, Lng: lng, Zoom: zoom})
}

func (c *Client) OpenPopup(id string) {
	c.push(EventPopupOpen, idData{ID: id})
}

func (c *Client) push(eventType string, data interface{}) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- encode(eventType, data):
	default:
		c.log.Warn("send buffer full, closing connection")
		_ = c.conn.Close()
	}
}

// closeSend is called by the hub when it drops the client.
func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// redraw recomputes the visible schools and lets the adapter diff them.
func (c *Client) redraw() {
	c.drawMu.Lock()
	defer c.drawMu.Unlock()

	c.mu.Lock()
	criteria := c.criteria
	selected := c.selected
	c.mu.Unlock()

	all := c.hub.source.List()
	visible := catalog.Filter(all, criteria)

	ids := make([]string, len(visible))
	for i, s := range visible {
		ids[i] = s.ID
	}
	c.push(EventResults, resultsData{Count: len(visible), Total: len(all), IDs: ids})
	c.adapter.Update(visible, selected)
}

func (c *Client) selectByClick(id string) {
	c.setSelected(id)
}

func (c *Client) setSelected(id string) {
	c.mu.Lock()
	c.selected = id
	c.mu.Unlock()
	c.push(EventSelected, idData{ID: id})
	c.redraw()
}

func (c *Client) handle(raw []byte) {
	var event clientEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		c.log.Warn("failed to parse client ws message", sl.Err(err))
		return
	}

	switch event.Type {
	case EventReady:
		c.adapter.Attach(c)
		c.redraw()

	case EventFilter:
		var data filterData
		if err := json.Unmarshal(event.Data, &data); err != nil {
			c.log.Warn("failed to parse filter data", sl.Err(err))
			return
		}
		criteria, err := data.criteria()
		if err != nil {
			c.push(EventError, err.Error())
			return
		}
		c.mu.Lock()
		c.criteria = criteria
		c.mu.Unlock()
		c.redraw()

	case EventSelect:
		var data idData
		if err := json.Unmarshal(event.Data, &data); err != nil {
			c.log.Warn("failed to parse select data", sl.Err(err))
			return
		}
		c.setSelected(data.ID)

	case EventClick:
		var data idData
		if err := json.Unmarshal(event.Data, &data); err != nil {
			c.log.Warn("failed to parse click data", sl.Err(err))
			return
		}
		c.adapter.Click(data.ID)

	default:
		c.log.With(slog.String("type", event.Type)).Debug("unknown client event")
	}
}

func (d filterData) criteria() (catalog.Criteria, error) {
	types := catalog.AllTypes()
	if d.Types != nil {
		types = catalog.TypeSet{}
		for _, raw := range d.Types {
			t, err := entity.ParseSchoolType(raw)
			if err != nil {
				return catalog.Criteria{}, err
			}
			types[t] = struct{}{}
		}
	}
	grade, err := catalog.ParseGrade(d.Grade)
	if err != nil {
		return catalog.Criteria{}, err
	}
	return catalog.Criteria{Types: types, Query: d.Query, Grade: grade}, nil
}

// readPump pumps messages from the WebSocket connection to the client.
// It handles ping/pong keepalive and detects disconnects.
func (c *Client) readPump() {
	defer func() {
		c.hub.leave(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		c.handle(message)
	}
}

// writePump pumps messages from the hub to the WebSocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWs upgrades a map client connection. The adapter stays detached
// until the browser reports its map is ready.
func ServeWs(hub *Hub, log *slog.Logger, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("websocket upgrade failed", sl.Err(err))
		return
	}

	client := newClient(hub, conn, log.With(sl.Module("ws.client"), slog.String("remote_addr", r.RemoteAddr)))
	if !hub.join(client) {
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
