package gpt

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/sashabaranov/go-openai"

	"netivim/entity"
	"netivim/internal/lib/sl"
	"netivim/internal/service/advisor"
)

// citation markers some models leave in the text
var citations = regexp.MustCompile(`【\d+:\d+†[^】]+】`)

type Overseer struct {
	client *openai.Client
	model  string
	log    *slog.Logger
}

func NewOverseer(apiKey, model string, logger *slog.Logger) *Overseer {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Overseer{
		client: openai.NewClient(apiKey),
		model:  model,
		log:    logger.With(sl.Module("overseer"), slog.String("model", model)),
	}
}

func (o *Overseer) Generate(ctx context.Context, prompt advisor.Prompt) (entity.AdvisorReply, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    o.model,
		Messages: messages(prompt),
	})
	if err != nil {
		return entity.AdvisorReply{}, fmt.Errorf("error creating completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return entity.AdvisorReply{}, fmt.Errorf("no choices returned")
	}

	o.log.With(
		slog.Int("prompt_tokens", resp.Usage.PromptTokens),
		slog.Int("completion_tokens", resp.Usage.CompletionTokens),
	).Debug("chat completion")

	text := citations.ReplaceAllString(resp.Choices[0].Message.Content, "")
	return entity.AdvisorReply{Text: text}, nil
}

func messages(prompt advisor.Prompt) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, 0, len(prompt.History)+2)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: prompt.System,
	})
	for _, m := range prompt.History {
		role := openai.ChatMessageRoleUser
		if m.Role == entity.RoleModel {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt.Text,
	})
}
