package quotegen

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/yanqian/agemaster/internal/domain/enrichment"
)

const defaultGeminiModel = "gemini-1.5-flash"

// ContentModels is the slice of the genai client the Gemini generator uses.
type ContentModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini generates quotes with Google's Gemini API.
type Gemini struct {
	models      ContentModels
	model       string
	temperature float32
}

// NewGeminiClient creates a genai client for the Gemini API.
func NewGeminiClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return client, nil
}

// NewGemini constructs the generator over the client's models service.
func NewGemini(models ContentModels, model string, temperature float32) *Gemini {
	if strings.TrimSpace(model) == "" {
		model = defaultGeminiModel
	}
	return &Gemini{models: models, model: model, temperature: temperature}
}

// Generate implements enrichment.Generator.
func (g *Gemini) Generate(ctx context.Context, prompt string) (enrichment.GeneratedText, error) {
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.temperature),
	})
	if err != nil {
		return enrichment.GeneratedText{}, classify(err, isGeminiQuota(err))
	}
	if resp == nil {
		return enrichment.GeneratedText{}, errors.New("gemini returned no response")
	}
	return enrichment.GeneratedText{Text: strings.TrimSpace(resp.Text()), Model: g.model}, nil
}

func isGeminiQuota(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED"
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code == http.StatusTooManyRequests || apiErrPtr.Status == "RESOURCE_EXHAUSTED"
	}
	return false
}

var _ enrichment.Generator = (*Gemini)(nil)
