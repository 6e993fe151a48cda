package utils

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiGenerationClient generates itineraries through Google's Gemini models.
type GeminiGenerationClient struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerationClient(apiKey, model string) (*GeminiGenerationClient, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerationClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiGenerationClient) GenerateItinerary(ctx context.Context, answers json.RawMessage, prompt string) (string, error) {
	m := c.client.GenerativeModel(c.model)
	m.SetTemperature(0.3)
	m.SetTopP(0.5)
	m.SetTopK(20)

	instruction := fmt.Sprintf(
		"You are a travel planner. Build a detailed day-by-day itinerary from the "+
			"traveler's answers below. Respond in markdown only, no preamble.\n\n%s",
		prompt,
	)

	resp, err := m.GenerateContent(ctx, genai.Text(instruction))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: no content")
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}
