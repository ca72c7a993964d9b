package advisor

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"netivim/internal/lib/sl"
)

// Manager keeps open sessions; idle ones expire after ttl.
type Manager struct {
	generator Generator
	observer  Observer
	timeout   time.Duration
	sessions  *cache.Cache
	log       *slog.Logger
}

func NewManager(generator Generator, ttl, timeout time.Duration, log *slog.Logger) *Manager {
	m := &Manager{
		generator: generator,
		timeout:   timeout,
		sessions:  cache.New(ttl, ttl/2+time.Second),
		log:       log.With(sl.Module("advisor")),
	}
	m.sessions.OnEvicted(func(id string, v interface{}) {
		if s, ok := v.(*Session); ok {
			s.Close()
		}
	})
	return m
}

func (m *Manager) SetObserver(o Observer) {
	m.observer = o
}

func (m *Manager) Open() *Session {
	s := NewSession(uuid.NewString(), m.generator, m.timeout, m.log)
	s.SetObserver(m.observer)
	m.sessions.SetDefault(s.ID(), s)
	m.log.With(slog.String("session", s.ID())).Debug("session opened")
	return s
}

// Get returns an open session and extends its lifetime.
func (m *Manager) Get(id string) (*Session, bool) {
	v, found := m.sessions.Get(id)
	if !found {
		return nil, false
	}
	s := v.(*Session)
	m.sessions.SetDefault(id, s)
	return s, true
}

func (m *Manager) Close(id string) bool {
	if _, found := m.sessions.Get(id); !found {
		return false
	}
	// Delete runs OnEvicted, which closes the session
	m.sessions.Delete(id)
	m.log.With(slog.String("session", id)).Debug("session closed")
	return true
}
