package services

import (
	"regexp"
	"sort"
	"strings"

	"voyago/internal/models/catalog_models"
)

// PromptServiceInterface turns an answer snapshot into the prompt sent to the
// generation endpoint. Both methods are pure: identical inputs always give
// identical output regardless of the order answers were accumulated in.
type PromptServiceInterface interface {
	RenderAnswers(answers catalog_models.AnswerMap, catalog catalog_models.Catalog) map[string]string
	BuildPrompt(answers catalog_models.AnswerMap, catalog catalog_models.Catalog) string
}

type PromptService struct{}

func NewPromptService() PromptServiceInterface {
	return &PromptService{}
}

var placeholderPattern = regexp.MustCompile(`\{([^{}]*)\}`)

// displayValue resolves what an answer reads as inside a template. Select
// answers go through the option lookup: answerDescription beats label beats
// the raw stored value. Everything else is stringified directly.
func displayValue(q *catalog_models.Question, v catalog_models.AnswerValue) string {
	switch q.Type {
	case catalog_models.QuestionTypeSingleSelect:
		if opt := q.OptionByValue(v.Text); opt != nil {
			if opt.AnswerDescription != "" {
				return opt.AnswerDescription
			}
			if opt.Label != "" {
				return opt.Label
			}
		}
		return v.String()
	case catalog_models.QuestionTypeMultiSelect:
		parts := make([]string, 0, len(v.Multi))
		for _, sel := range v.Multi {
			part := sel
			if opt := q.OptionByValue(sel); opt != nil {
				switch {
				case opt.AnswerDescription != "":
					part = opt.AnswerDescription
				case opt.Label != "":
					part = opt.Label
				}
			}
			parts = append(parts, part)
		}
		return strings.Join(parts, ", ")
	default:
		return v.String()
	}
}

// fillTemplate substitutes every {placeholder} in a single pass. Placeholders
// naming an unknown question degrade to the raw answer for that id, or empty
// string when nothing was answered; a template never fails to render.
func fillTemplate(template string, answers catalog_models.AnswerMap, catalog catalog_models.Catalog) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		key := match[1 : len(match)-1]
		q := catalog.FindByID(key)
		if q == nil {
			if v, ok := answers[key]; ok {
				return v.String()
			}
			return ""
		}
		return displayValue(q, answers[key])
	})
}

// RenderAnswers maps every answered, templated question id to its rendered
// template text.
func (p *PromptService) RenderAnswers(answers catalog_models.AnswerMap, catalog catalog_models.Catalog) map[string]string {
	rendered := make(map[string]string)
	for i := range catalog {
		q := &catalog[i]
		if q.AnswerTemplate == "" {
			continue
		}
		if _, ok := answers[q.ID]; !ok {
			continue
		}
		rendered[q.ID] = fillTemplate(q.AnswerTemplate, answers, catalog)
	}
	return rendered
}

// BuildPrompt joins the rendered values with newlines in catalog order.
// Answers without a template pass through raw; answers whose id is not in
// the catalog at all trail the prompt in sorted id order so the output stays
// deterministic.
func (p *PromptService) BuildPrompt(answers catalog_models.AnswerMap, catalog catalog_models.Catalog) string {
	rendered := p.RenderAnswers(answers, catalog)

	known := make(map[string]bool, len(catalog))
	var parts []string
	for i := range catalog {
		q := &catalog[i]
		known[q.ID] = true
		v, ok := answers[q.ID]
		if !ok {
			continue
		}
		if text, ok := rendered[q.ID]; ok {
			parts = append(parts, text)
			continue
		}
		parts = append(parts, v.String())
	}

	var extras []string
	for id := range answers {
		if !known[id] {
			extras = append(extras, id)
		}
	}
	sort.Strings(extras)
	for _, id := range extras {
		parts = append(parts, answers[id].String())
	}

	return strings.Join(parts, "\n")
}
