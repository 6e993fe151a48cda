package catalog_models

// QuestionType tells the planner which input widget a question expects and
// which answer shape is legal for it.
type QuestionType string

const (
	QuestionTypeText         QuestionType = "text"
	QuestionTypeNumber       QuestionType = "number"
	QuestionTypeSingleSelect QuestionType = "single-select"
	QuestionTypeMultiSelect  QuestionType = "multi-select"
	QuestionTypeDate         QuestionType = "date"
	QuestionTypeDateRange    QuestionType = "date-range"
)

type QuestionOption struct {
	ID                string `json:"id"`
	Label             string `json:"label"`
	Value             string `json:"value"`
	AnswerDescription string `json:"answerDescription,omitempty"`
}

// DateFieldConfig configures one end of a date-range question.
// Min is an ISO date, "today", or "start_date + 1".
type DateFieldConfig struct {
	Placeholder string `json:"placeholder,omitempty"`
	Min         string `json:"min,omitempty"`
}

type Question struct {
	ID              string           `json:"id"`
	Type            QuestionType     `json:"type"`
	Title           string           `json:"title"`
	Description     string           `json:"description,omitempty"`
	Required        bool             `json:"required"`
	AnswerTemplate  string           `json:"answerTemplate"`
	SkipDescription string           `json:"skipDescription,omitempty"`
	Placeholder     string           `json:"placeholder,omitempty"`
	Min             *float64         `json:"min,omitempty"`
	Max             *float64         `json:"max,omitempty"`
	Step            *float64         `json:"step,omitempty"`
	MaxSelections   int              `json:"maxSelections,omitempty"`
	Options         []QuestionOption `json:"options,omitempty"`
	StartDate       *DateFieldConfig `json:"startDate,omitempty"`
	EndDate         *DateFieldConfig `json:"endDate,omitempty"`
}

// OptionByValue returns the option whose value matches, or nil.
// Option values are unique within a question.
func (q *Question) OptionByValue(value string) *QuestionOption {
	for i := range q.Options {
		if q.Options[i].Value == value {
			return &q.Options[i]
		}
	}
	return nil
}

// Catalog is the ordered question list driving the wizard. It is fetched once
// per process and treated as immutable afterwards.
type Catalog []Question

func (c Catalog) FindByID(id string) *Question {
	for i := range c {
		if c[i].ID == id {
			return &c[i]
		}
	}
	return nil
}
