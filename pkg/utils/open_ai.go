package utils

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIGenerationClient generates itineraries directly through the OpenAI
// chat API instead of the hosted cloud function.
type OpenAIGenerationClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIGenerationClient(apiKey, model string) *OpenAIGenerationClient {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIGenerationClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *OpenAIGenerationClient) GenerateItinerary(ctx context.Context, answers json.RawMessage, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You are a travel planner. Build a detailed day-by-day itinerary " +
					"from the traveler's answers. Respond in markdown only.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
