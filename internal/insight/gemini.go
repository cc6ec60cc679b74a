package insight

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-3-flash-preview"

// Generator удаленный генератор текста
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator генератор поверх Google Gen AI SDK
type GeminiGenerator struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGeminiGenerator создает клиента. Ключ обязателен.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiGenerator{client: client, model: model, temperature: 0.8}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.temperature),
		ThinkingConfig: &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr[int32](0),
		},
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

// Name модель, которую использует генератор
func (g *GeminiGenerator) Name() string {
	return "genai:" + g.model
}

// DisabledGenerator используется, когда ключ не задан: все вызовы падают без сети
type DisabledGenerator struct{}

var ErrNoAPIKey = errors.New("API 키가 설정되지 않아 분석을 수행할 수 없습니다")

func (DisabledGenerator) Generate(context.Context, string) (string, error) {
	return "", ErrNoAPIKey
}
