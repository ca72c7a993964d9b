package ws

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"netivim/entity"
)

type memSource struct {
	mu      sync.Mutex
	schools []entity.School
}

func (s *memSource) List() []entity.School {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.School, len(s.schools))
	copy(out, s.schools)
	return out
}

func (s *memSource) add(school entity.School) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schools = append(s.schools, school)
}

type receivedEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func readEvents(t *testing.T, conn *websocket.Conn, n int) []receivedEvent {
	t.Helper()
	events := make([]receivedEvent, 0, n)
	for len(events) < n {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var e receivedEvent
		require.NoError(t, conn.ReadJSON(&e))
		events = append(events, e)
	}
	return events
}

func types(events []receivedEvent) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Type
	}
	return out
}

func markerID(t *testing.T, e receivedEvent) string {
	t.Helper()
	var d struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(e.Data, &d))
	return d.ID
}

func send(t *testing.T, conn *websocket.Conn, eventType string, data interface{}) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": eventType, "data": data}))
}

func TestMapFeed(t *testing.T) {
	defer goleak.VerifyNone(t)

	source := &memSource{schools: []entity.School{
		{ID: "a", Name: "נפתלי", Type: entity.TypeForest, City: "יבניאל", Lat: 32.7, Lng: 35.5, Grades: "א-ו"},
		{ID: "b", Name: "דמוקרטי חדרה", Type: entity.TypeDemo, City: "חדרה", Lat: 32.4, Lng: 34.9, Grades: "א-יב"},
		{ID: "c", Name: "זומר", Type: entity.TypeAnthro, City: "רמת גן", Lat: 32.0, Lng: 34.8, Grades: "א-ח"},
	}}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := NewHub(source, log)

	ctx, cancel := context.WithCancel(context.Background())
	hubDone := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(hubDone)
	}()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, log, w, r)
	}))

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)

	// nothing is drawn before the map reports ready
	send(t, conn, EventReady, nil)
	events := readEvents(t, conn, 4)
	assert.Equal(t, []string{EventResults, EventMarkerAdd, EventMarkerAdd, EventMarkerAdd}, types(events))
	assert.Equal(t, "a", markerID(t, events[1]))
	assert.Equal(t, "c", markerID(t, events[3]))

	send(t, conn, EventFilter, map[string]interface{}{"types": []string{"forest"}})
	events = readEvents(t, conn, 3)
	assert.Equal(t, EventResults, events[0].Type)
	assert.ElementsMatch(t, []string{"b", "c"}, []string{markerID(t, events[1]), markerID(t, events[2])})
	assert.Equal(t, EventMarkerRemove, events[1].Type)

	source.add(entity.School{ID: "d", Name: "יער", Type: entity.TypeForest, City: "פרדס חנה", Lat: 32.47, Lng: 34.97, Grades: "א-ו"})
	hub.SchoolAdded(entity.School{ID: "d"})
	events = readEvents(t, conn, 2)
	assert.Equal(t, []string{EventResults, EventMarkerAdd}, types(events))
	assert.Equal(t, "d", markerID(t, events[1]))

	send(t, conn, EventClick, map[string]string{"id": "d"})
	events = readEvents(t, conn, 4)
	assert.Equal(t, []string{EventSelected, EventResults, EventFlyTo, EventPopupOpen}, types(events))
	assert.Equal(t, "d", markerID(t, events[3]))

	assert.Equal(t, 1, hub.Count())

	require.NoError(t, conn.Close())
	cancel()
	<-hubDone
	srv.Close()
}

func TestFilterData_Criteria(t *testing.T) {
	c, err := filterData{}.criteria()
	require.NoError(t, err)
	assert.Len(t, c.Types, len(entity.AllSchoolTypes()))

	c, err = filterData{Types: []string{}}.criteria()
	require.NoError(t, err)
	assert.Empty(t, c.Types)

	_, err = filterData{Types: []string{"nope"}}.criteria()
	assert.Error(t, err)

	_, err = filterData{Grade: "nope"}.criteria()
	assert.Error(t, err)
}
