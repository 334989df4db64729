package planner

import (
	"context"
	"fmt"

	generativeAI "github.com/FACorreiaa/go-genai-sdk/lib"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

// GeminiGenerator calls a fixed Gemini model through the genai client.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) GenerateResponse(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "GenerateContent", trace.WithAttributes(
		attribute.Int("prompt.length", len(prompt)),
		attribute.String("model", g.model),
	))
	defer span.End()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to generate content")
		return nil, err
	}
	span.SetStatus(codes.Ok, "Content generated")
	return resp, nil
}

// NewContentGenerator picks the LLM backend. Without a key it returns
// models.ErrMissingAPIKey; with no explicit model it uses the chat client's
// default model.
func NewContentGenerator(ctx context.Context, apiKey, model string) (ContentGenerator, error) {
	if apiKey == "" {
		return nil, models.ErrMissingAPIKey
	}
	if model == "" {
		client, err := generativeAI.NewLLMChatClient(ctx, apiKey)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	g, err := NewGeminiGenerator(ctx, apiKey, model)
	if err != nil {
		return nil, err
	}
	return g, nil
}
