package core

import (
	"context"
	"log/slog"

	"netivim/entity"
	"netivim/internal/catalog"
	"netivim/internal/service/advisor"
)

type Conversation struct {
	ID         string               `json:"id"`
	Transcript []entity.ChatMessage `json:"transcript"`
	Sources    []entity.Source      `json:"sources,omitempty"`
	Pending    bool                 `json:"pending"`
}

type AdvisorAnswer struct {
	Reply string `json:"reply"`
	Conversation
}

func conversation(s *advisor.Session) Conversation {
	return Conversation{
		ID:         s.ID(),
		Transcript: s.Transcript(),
		Sources:    s.Sources(),
		Pending:    s.Pending(),
	}
}

func (c *Core) OpenAdvisor() (Conversation, error) {
	if c.advisor == nil {
		return Conversation{}, ErrNotAvailable
	}
	s := c.advisor.Open()
	return conversation(s), nil
}

// AdvisorConversation returns nil when the session does not exist.
func (c *Core) AdvisorConversation(id string) (*Conversation, error) {
	if c.advisor == nil {
		return nil, ErrNotAvailable
	}
	s, ok := c.advisor.Get(id)
	if !ok {
		return nil, nil
	}
	conv := conversation(s)
	return &conv, nil
}

// AskAdvisor sends one user turn; the schools matching criteria are the
// context the advisor sees.
func (c *Core) AskAdvisor(ctx context.Context, id, text string, criteria catalog.Criteria) (*AdvisorAnswer, error) {
	if c.advisor == nil || c.repo == nil {
		return nil, ErrNotAvailable
	}
	s, ok := c.advisor.Get(id)
	if !ok {
		return nil, nil
	}
	visible := catalog.Filter(c.repo.List(), criteria)

	reply, err := s.Send(ctx, text, visible)
	if err != nil {
		c.log.With(slog.String("session", id)).Debug("advisor send rejected", slog.String("reason", err.Error()))
		return nil, err
	}
	return &AdvisorAnswer{Reply: reply, Conversation: conversation(s)}, nil
}

func (c *Core) CloseAdvisor(id string) (bool, error) {
	if c.advisor == nil {
		return false, ErrNotAvailable
	}
	return c.advisor.Close(id), nil
}
