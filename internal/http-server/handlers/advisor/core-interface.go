package advisor

import (
	"context"

	"netivim/impl/core"
	"netivim/internal/catalog"
)

type Core interface {
	OpenAdvisor() (core.Conversation, error)
	AdvisorConversation(id string) (*core.Conversation, error)
	AskAdvisor(ctx context.Context, id, text string, criteria catalog.Criteria) (*core.AdvisorAnswer, error)
	CloseAdvisor(id string) (bool, error)
}
