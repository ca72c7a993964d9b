package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"netivim/entity"
	"netivim/internal/lib/sl"
)

// Key is the fixed storage key of the persisted collection.
const Key = "netivim_schools"

const saveTimeout = 10 * time.Second

// ErrNotFound is returned by a Persister when no blob has been stored yet.
var ErrNotFound = errors.New("schools blob not found")

// Persister stores the whole collection as one opaque blob.
type Persister interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, blob []byte) error
}

// Observer is told about failed writes; used for metrics.
type Observer interface {
	PersistFailed()
}

// Store owns the School collection.
type Store struct {
	mu       sync.RWMutex
	schools  []entity.School
	ids      map[string]struct{}
	persist  Persister
	observer Observer
	newID    func() string
	log      *slog.Logger
}

func New(persist Persister, log *slog.Logger) *Store {
	return &Store{
		ids:     make(map[string]struct{}),
		persist: persist,
		newID:   uuid.NewString,
		log:     log.With(sl.Module("store")),
	}
}

func (s *Store) SetObserver(o Observer) {
	s.observer = o
}

// Load reads the persisted collection. When nothing is stored yet the seed
// is installed and persisted, and firstRun is true.
func (s *Store) Load(ctx context.Context) ([]entity.School, bool, error) {
	blob, err := s.persist.Load(ctx)
	firstRun := false

	var schools []entity.School
	switch {
	case errors.Is(err, ErrNotFound):
		schools = Seed()
		firstRun = true
	case err != nil:
		return nil, false, fmt.Errorf("load schools: %w", err)
	default:
		if err = json.Unmarshal(blob, &schools); err != nil {
			return nil, false, fmt.Errorf("decode schools: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.schools = schools
	s.ids = make(map[string]struct{}, len(schools))
	for _, school := range schools {
		s.ids[school.ID] = struct{}{}
	}
	if firstRun {
		s.save(ctx)
	}

	s.log.With(
		slog.Int("count", len(schools)),
		slog.Bool("first_run", firstRun),
	).Info("schools loaded")

	return s.snapshot(), firstRun, nil
}

// Add assigns a fresh id, appends the school and persists the collection.
func (s *Store) Add(ctx context.Context, draft entity.SchoolDraft) entity.School {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	for s.has(id) {
		id = s.newID()
	}
	school := entity.NewSchool(id, draft)
	s.schools = append(s.schools, school)
	s.ids[id] = struct{}{}

	s.save(ctx)
	return school
}

func (s *Store) List() []entity.School {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

func (s *Store) Get(id string) (entity.School, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, school := range s.schools {
		if school.ID == id {
			return school, true
		}
	}
	return entity.School{}, false
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.schools)
}

func (s *Store) has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Store) snapshot() []entity.School {
	out := make([]entity.School, len(s.schools))
	copy(out, s.schools)
	return out
}

// save must be called with mu held. Failures are logged and otherwise
// ignored; the in-memory collection stays authoritative. A committed add
// is written even when the caller has gone away.
func (s *Store) save(ctx context.Context) {
	if len(s.schools) == 0 {
		return
	}
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()

	blob, err := json.Marshal(s.schools)
	if err == nil {
		err = s.persist.Save(saveCtx, blob)
	}
	if err != nil {
		s.log.With(slog.Int("count", len(s.schools))).Error("persist schools", sl.Err(err))
		if s.observer != nil {
			s.observer.PersistFailed()
		}
	}
}
