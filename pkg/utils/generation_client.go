package utils

import (
	"context"
	"encoding/json"
)

// GenerationClientInterface is one outbound itinerary generation call.
// Answers arrive pre-serialized in the wire shape (string / number / array /
// {startDate,endDate} per question). Implementations do not retry; every
// failure is terminal for that one request.
type GenerationClientInterface interface {
	GenerateItinerary(ctx context.Context, answers json.RawMessage, prompt string) (string, error)
}
