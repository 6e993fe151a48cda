package request_models

// AnswerRequest applies one typed mutation to a session's answer map.
// Op is one of: set, set_number, toggle, set_start, set_end.
type AnswerRequest struct {
	QuestionID string   `json:"question_id"`
	Op         string   `json:"op"`
	Value      string   `json:"value,omitempty"`
	Number     *float64 `json:"number,omitempty"`
}

const (
	AnswerOpSet       = "set"
	AnswerOpSetNumber = "set_number"
	AnswerOpToggle    = "toggle"
	AnswerOpSetStart  = "set_start"
	AnswerOpSetEnd    = "set_end"
)

type JumpRequest struct {
	Step int `json:"step"`
}

type SaveItineraryRequest struct {
	Name string `json:"name,omitempty"`
}
