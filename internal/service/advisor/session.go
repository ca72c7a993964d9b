package advisor

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"netivim/entity"
	"netivim/internal/lib/sl"
)

const (
	MsgServiceError = "שגיאה בחיבור לשרת ה-AI."
	MsgEmptyReply   = "לא הצלחתי לעבד את התשובה."
)

var (
	ErrBusy   = errors.New("a message is already being answered")
	ErrClosed = errors.New("advisor session closed")
	ErrEmpty  = errors.New("empty message")
)

// Outcomes reported to the Observer.
const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

// Prompt is one request to the text generator.
type Prompt struct {
	System  string
	History []entity.ChatMessage
	Text    string
}

type Generator interface {
	Generate(ctx context.Context, prompt Prompt) (entity.AdvisorReply, error)
}

type Observer interface {
	AdvisorReply(outcome string, duration time.Duration)
}

// Session is one advisor conversation. At most one Send runs at a time.
type Session struct {
	id        string
	generator Generator
	observer  Observer
	timeout   time.Duration

	mu         sync.Mutex
	transcript []entity.ChatMessage
	sources    []entity.Source
	inFlight   bool
	closed     bool

	log *slog.Logger
}

func NewSession(id string, generator Generator, timeout time.Duration, log *slog.Logger) *Session {
	return &Session{
		id:        id,
		generator: generator,
		timeout:   timeout,
		log:       log.With(sl.Module("advisor.session"), slog.String("session", id)),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) SetObserver(o Observer) {
	s.observer = o
}

// Send appends the user turn at once, asks the generator and appends the
// reply. Generator failures become a fixed model turn, so a successful
// call always leaves exactly one user and one model turn behind.
func (s *Session) Send(ctx context.Context, text string, visible []entity.School) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmpty
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return "", ErrClosed
	}
	if s.inFlight {
		s.mu.Unlock()
		return "", ErrBusy
	}
	s.inFlight = true
	history := make([]entity.ChatMessage, len(s.transcript))
	copy(history, s.transcript)
	s.transcript = append(s.transcript, entity.ChatMessage{Role: entity.RoleUser, Content: text})
	s.mu.Unlock()

	prompt := Prompt{
		System:  SystemInstruction(visible),
		History: history,
		Text:    text,
	}

	// the request outlives a closed client; only the timeout stops it
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	t := time.Now()
	reply, err := s.generator.Generate(callCtx, prompt)
	duration := time.Since(t)

	answer := strings.TrimSpace(reply.Text)
	outcome := OutcomeOK
	switch {
	case err != nil:
		s.log.With(slog.Duration("duration", duration)).Error("generate reply", sl.Err(err))
		answer = MsgServiceError
		reply.Sources = nil
		outcome = OutcomeError
	case answer == "":
		s.log.Warn("empty reply")
		answer = MsgEmptyReply
		outcome = OutcomeEmpty
	default:
		s.log.With(
			slog.Int("reply_length", len(answer)),
			slog.Int("sources", len(reply.Sources)),
			slog.Duration("duration", duration),
		).Debug("reply")
	}
	if s.observer != nil {
		s.observer.AdvisorReply(outcome, duration)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	if s.closed {
		return "", ErrClosed
	}
	s.transcript = append(s.transcript, entity.ChatMessage{Role: entity.RoleModel, Content: answer})
	s.sources = reply.Sources
	return answer, nil
}

// Transcript returns a copy of the conversation so far.
func (s *Session) Transcript() []entity.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.ChatMessage, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Sources returns the grounding citations of the last reply.
func (s *Session) Sources() []entity.Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Source, len(s.sources))
	copy(out, s.sources)
	return out
}

func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Close discards the transcript. A reply still in flight is dropped.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.transcript = nil
	s.sources = nil
}
