package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"voyago/internal/models/catalog_models"
)

func plannerCatalog() catalog_models.Catalog {
	return catalog_models.Catalog{
		{
			ID:             "destination_city",
			Type:           catalog_models.QuestionTypeText,
			Required:       true,
			AnswerTemplate: "Destination: {destination_city}",
		},
		{
			ID:             "budget",
			Type:           catalog_models.QuestionTypeSingleSelect,
			AnswerTemplate: "Budget: {budget}",
			Options: []catalog_models.QuestionOption{
				{ID: "b1", Label: "Shoestring", Value: "low", AnswerDescription: "a tight budget"},
				{ID: "b2", Label: "Mid-range", Value: "mid"},
			},
		},
		{
			ID:             "interests",
			Type:           catalog_models.QuestionTypeMultiSelect,
			AnswerTemplate: "Interested in: {interests}",
			Options: []catalog_models.QuestionOption{
				{ID: "i1", Label: "Food", Value: "food"},
				{ID: "i2", Label: "Museums", Value: "museums", AnswerDescription: "art and history museums"},
			},
		},
		{
			ID:   "travel_time_days",
			Type: catalog_models.QuestionTypeNumber,
		},
	}
}

func TestRenderAnswersSubstitutesTemplate(t *testing.T) {
	svc := NewPromptService()
	catalog := catalog_models.Catalog{
		{
			ID:             "destination_city",
			Type:           catalog_models.QuestionTypeText,
			Required:       true,
			AnswerTemplate: "Destination: {destination_city}",
		},
	}
	answers := make(catalog_models.AnswerMap).SetText("destination_city", "Rome")

	rendered := svc.RenderAnswers(answers, catalog)
	assert.Equal(t, map[string]string{"destination_city": "Destination: Rome"}, rendered)
}

func TestRenderAnswersOptionDisplayValues(t *testing.T) {
	svc := NewPromptService()
	catalog := plannerCatalog()

	answers := make(catalog_models.AnswerMap).SetText("budget", "low")
	rendered := svc.RenderAnswers(answers, catalog)
	assert.Equal(t, "Budget: a tight budget", rendered["budget"],
		"answerDescription beats the label")

	answers = make(catalog_models.AnswerMap).SetText("budget", "mid")
	rendered = svc.RenderAnswers(answers, catalog)
	assert.Equal(t, "Budget: Mid-range", rendered["budget"])

	answers = make(catalog_models.AnswerMap).SetText("budget", "luxury")
	rendered = svc.RenderAnswers(answers, catalog)
	assert.Equal(t, "Budget: luxury", rendered["budget"],
		"unknown option values fall back to the raw answer")
}

func TestRenderAnswersMultiSelectJoins(t *testing.T) {
	svc := NewPromptService()
	catalog := plannerCatalog()

	answers := make(catalog_models.AnswerMap)
	answers = answers.ToggleMulti("interests", "food", 0)
	answers = answers.ToggleMulti("interests", "museums", 0)

	rendered := svc.RenderAnswers(answers, catalog)
	assert.Equal(t, "Interested in: Food, art and history museums", rendered["interests"])
}

func TestUnknownPlaceholderDegradesToRawAnswer(t *testing.T) {
	svc := NewPromptService()
	catalog := catalog_models.Catalog{
		{
			ID:             "destination_city",
			Type:           catalog_models.QuestionTypeText,
			AnswerTemplate: "Going to {destination_city} with {companions}",
		},
	}

	answers := make(catalog_models.AnswerMap).
		SetText("destination_city", "Lisbon").
		SetText("companions", "two friends")
	rendered := svc.RenderAnswers(answers, catalog)
	assert.Equal(t, "Going to Lisbon with two friends", rendered["destination_city"])

	// An unanswered unknown id substitutes empty, never fails.
	answers = make(catalog_models.AnswerMap).SetText("destination_city", "Lisbon")
	rendered = svc.RenderAnswers(answers, catalog)
	assert.Equal(t, "Going to Lisbon with ", rendered["destination_city"])
}

func TestBuildPromptFollowsCatalogOrder(t *testing.T) {
	svc := NewPromptService()
	catalog := plannerCatalog()

	// Answers accumulated in reverse order of the catalog.
	answers := make(catalog_models.AnswerMap)
	answers = answers.SetNumber("travel_time_days", 4)
	answers = answers.ToggleMulti("interests", "food", 0)
	answers = answers.SetText("destination_city", "Rome")

	prompt := svc.BuildPrompt(answers, catalog)
	assert.Equal(t,
		"Destination: Rome\nInterested in: Food\n4",
		prompt,
		"catalog order wins, untemplated answers pass through raw")
}

func TestBuildPromptIsDeterministic(t *testing.T) {
	svc := NewPromptService()
	catalog := plannerCatalog()

	forward := make(catalog_models.AnswerMap).
		SetText("destination_city", "Rome").
		SetText("budget", "low").
		SetText("additionalComments", "window seats please")
	backward := make(catalog_models.AnswerMap).
		SetText("additionalComments", "window seats please").
		SetText("budget", "low").
		SetText("destination_city", "Rome")

	first := svc.BuildPrompt(forward, catalog)
	assert.Equal(t, first, svc.BuildPrompt(forward, catalog))
	assert.Equal(t, first, svc.BuildPrompt(backward, catalog),
		"insertion order must not leak into the prompt")
	assert.Contains(t, first, "window seats please",
		"answers outside the catalog still reach the prompt")
}
