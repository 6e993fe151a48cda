package catalog_models

// SavedItinerary is one named snapshot of a planning session: the answers
// that produced it plus the generated markdown. Ids are short random strings;
// a collision simply overwrites the earlier record.
type SavedItinerary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt int64     `json:"createdAt"`
	Answers   AnswerMap `json:"answers"`
	Markdown  string    `json:"markdown"`
}
