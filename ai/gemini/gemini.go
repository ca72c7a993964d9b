package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"netivim/entity"
	"netivim/internal/lib/sl"
	"netivim/internal/service/advisor"
)

const defaultModel = "gemini-2.5-flash"

// Advisor answers advisor prompts with Gemini, optionally grounded with
// Google Search.
type Advisor struct {
	client   *genai.Client
	model    string
	grounded bool
	log      *slog.Logger
}

func New(ctx context.Context, apiKey, model string, grounded bool, log *slog.Logger) (*Advisor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = defaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Advisor{
		client:   client,
		model:    model,
		grounded: grounded,
		log:      log.With(sl.Module("gemini"), slog.String("model", model)),
	}, nil
}

func (a *Advisor) Generate(ctx context.Context, prompt advisor.Prompt) (entity.AdvisorReply, error) {
	resp, err := a.client.Models.GenerateContent(ctx, a.model, contents(prompt), a.config(prompt))
	if err != nil {
		return entity.AdvisorReply{}, fmt.Errorf("gemini generate: %w", err)
	}
	return reply(resp), nil
}

func (a *Advisor) config(prompt advisor.Prompt) *genai.GenerateContentConfig {
	conf := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(prompt.System, genai.RoleUser),
	}
	if a.grounded {
		conf.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	return conf
}

func contents(prompt advisor.Prompt) []*genai.Content {
	out := make([]*genai.Content, 0, len(prompt.History)+1)
	for _, m := range prompt.History {
		role := genai.Role(genai.RoleUser)
		if m.Role == entity.RoleModel {
			role = genai.RoleModel
		}
		out = append(out, genai.NewContentFromText(m.Content, role))
	}
	return append(out, genai.NewContentFromText(prompt.Text, genai.RoleUser))
}

func reply(resp *genai.GenerateContentResponse) entity.AdvisorReply {
	if resp == nil {
		return entity.AdvisorReply{}
	}
	r := entity.AdvisorReply{Text: resp.Text()}
	if len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return r
	}
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		r.Sources = append(r.Sources, entity.Source{Title: chunk.Web.Title, URI: chunk.Web.URI})
	}
	return r
}
