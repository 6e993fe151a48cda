package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// The upstream cloud function is a fixed constant, not configuration.
const remoteGenerationURL = "https://us-central1-ai-planner-backend-qwerty.cloudfunctions.net/gen_itinerary_chat"

// RemoteGenerationClient posts the prompt to the hosted generation function
// and consumes only result.response from the reply.
type RemoteGenerationClient struct {
	httpClient *http.Client
	url        string
}

func NewRemoteGenerationClient() *RemoteGenerationClient {
	return &RemoteGenerationClient{
		httpClient: http.DefaultClient,
		url:        remoteGenerationURL,
	}
}

type remotePromptRequest struct {
	Data remotePromptData `json:"data"`
}

type remotePromptData struct {
	Answers json.RawMessage `json:"answers"`
	Prompt  string          `json:"prompt"`
	History []interface{}   `json:"history"`
}

type remotePromptResponse struct {
	Result struct {
		Response string `json:"response"`
	} `json:"result"`
}

func (c *RemoteGenerationClient) GenerateItinerary(ctx context.Context, answers json.RawMessage, prompt string) (string, error) {
	body, err := json.Marshal(remotePromptRequest{
		Data: remotePromptData{
			Answers: answers,
			Prompt:  prompt,
			History: []interface{}{},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation endpoint returned %d", resp.StatusCode)
	}

	var parsed remotePromptResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	return parsed.Result.Response, nil
}
