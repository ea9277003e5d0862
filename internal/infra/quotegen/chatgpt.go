package quotegen

import (
	"context"
	"fmt"
	"strings"

	"github.com/yanqian/agemaster/internal/domain/enrichment"
	"github.com/yanqian/agemaster/internal/infra/llm/chatgpt"
)

const systemPrompt = "You write short, warm quotes about time and aging."

// ChatGPT adapts the ChatGPT client to the enrichment generator contract.
type ChatGPT struct {
	client      *chatgpt.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewChatGPT constructs the adapter.
func NewChatGPT(client *chatgpt.Client, model string, temperature float32, maxTokens int) *ChatGPT {
	return &ChatGPT{client: client, model: model, temperature: temperature, maxTokens: maxTokens}
}

// Generate sends a single-turn completion.
func (g *ChatGPT) Generate(ctx context.Context, prompt string) (enrichment.GeneratedText, error) {
	resp, err := g.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
		Messages: []chatgpt.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return enrichment.GeneratedText{}, classify(err, chatgpt.IsRateLimited(err))
	}
	model := resp.Model
	if model == "" {
		model = g.model
	}
	return enrichment.GeneratedText{Text: strings.TrimSpace(resp.Content()), Model: model}, nil
}

// classify wraps quota failures with enrichment.ErrQuotaExceeded so the
// throttle can tell them apart from transient errors.
func classify(err error, rateLimited bool) error {
	if rateLimited || looksLikeQuota(err.Error()) {
		return fmt.Errorf("%w: %v", enrichment.ErrQuotaExceeded, err)
	}
	return err
}

func looksLikeQuota(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "429") ||
		strings.Contains(lower, "quota") ||
		strings.Contains(lower, "resource_exhausted")
}

var _ enrichment.Generator = (*ChatGPT)(nil)
