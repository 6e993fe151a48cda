package response_models

import (
	"voyago/internal/models/catalog_models"
)

// SessionState is the planner wizard's full view model: where the visitor
// is, what they have answered, and the latest itinerary markdown.
type SessionState struct {
	SessionID   string                   `json:"session_id"`
	StepIndex   int                      `json:"step_index"`
	HighestStep int                      `json:"highest_step"`
	TotalSteps  int                      `json:"total_steps"`
	Progress    int                      `json:"progress"`
	Question    *catalog_models.Question `json:"question,omitempty"`
	CanProceed  bool                     `json:"can_proceed"`
	Answers     catalog_models.AnswerMap `json:"answers"`
	Markdown    string                   `json:"markdown"`
	Generating  bool                     `json:"generating"`
	IsComplete  bool                     `json:"is_complete"`

	// Resolved picker bounds for the current question when it is a date
	// range; relative configs like "today" and "start_date + 1" are already
	// applied.
	StartDateMin string `json:"start_date_min,omitempty"`
	EndDateMin   string `json:"end_date_min,omitempty"`
}

type GenerationResult struct {
	SessionID string `json:"session_id"`
	Markdown  string `json:"markdown"`
}

type SavedItineraryList struct {
	Items []catalog_models.SavedItinerary `json:"items"`
}
