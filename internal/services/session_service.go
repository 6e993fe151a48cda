package services

import (
	"context"
	"math"
	"time"

	"voyago/internal/models/catalog_models"
	"voyago/internal/models/request_models"
	"voyago/internal/models/response_models"
	mem "voyago/pkg/memcache"
	"voyago/pkg/utils"
)

// SessionServiceInterface drives the wizard: one question at a time, answers
// applied copy-on-write, forward movement gated on required answers, and
// backward-then-forward jumps bounded by the highest step reached.
type SessionServiceInterface interface {
	Start(ctx context.Context) (*response_models.SessionState, error)
	GetState(ctx context.Context, sessionID string) (*response_models.SessionState, error)
	SubmitAnswer(ctx context.Context, sessionID string, req request_models.AnswerRequest) (*response_models.SessionState, error)
	Next(ctx context.Context, sessionID string) (*response_models.SessionState, error)
	Skip(ctx context.Context, sessionID string) (*response_models.SessionState, error)
	Prev(ctx context.Context, sessionID string) (*response_models.SessionState, error)
	JumpTo(ctx context.Context, sessionID string, step int) (*response_models.SessionState, error)
	Reset(ctx context.Context, sessionID string) (*response_models.SessionState, error)
}

type SessionService struct {
	catalogService    CatalogServiceInterface
	generationService GenerationServiceInterface
	sessions          mem.SessionStore
}

func NewSessionService(
	catalogService CatalogServiceInterface,
	generationService GenerationServiceInterface,
	sessions mem.SessionStore,
) SessionServiceInterface {
	return &SessionService{
		catalogService:    catalogService,
		generationService: generationService,
		sessions:          sessions,
	}
}

func (s *SessionService) Start(ctx context.Context) (*response_models.SessionState, error) {
	session := s.sessions.Create()
	catalog, _ := s.catalogService.Get(ctx)
	return buildSessionState(session, catalog), nil
}

func (s *SessionService) GetState(ctx context.Context, sessionID string) (*response_models.SessionState, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	catalog, _ := s.catalogService.Get(ctx)
	return buildSessionState(session, catalog), nil
}

// SubmitAnswer routes one edit to the answer-store operation matching the
// question's declared type and kicks the debounced regeneration.
func (s *SessionService) SubmitAnswer(ctx context.Context, sessionID string, req request_models.AnswerRequest) (*response_models.SessionState, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	catalog, err := s.catalogService.Get(ctx)
	if err != nil {
		return nil, err
	}

	q := catalog.FindByID(req.QuestionID)
	if q == nil {
		return nil, utils.ErrQuestionNotFound
	}

	answers := session.Answers()
	next, err := applyAnswerOp(answers, q, req)
	if err != nil {
		return nil, err
	}
	session.SetAnswers(next)

	s.generationService.Debounce(sessionID)
	return buildSessionState(session, catalog), nil
}

func applyAnswerOp(answers catalog_models.AnswerMap, q *catalog_models.Question, req request_models.AnswerRequest) (catalog_models.AnswerMap, error) {
	switch req.Op {
	case request_models.AnswerOpSet:
		switch q.Type {
		case catalog_models.QuestionTypeText, catalog_models.QuestionTypeDate, catalog_models.QuestionTypeSingleSelect:
			return answers.SetText(q.ID, req.Value), nil
		}
	case request_models.AnswerOpSetNumber:
		if q.Type == catalog_models.QuestionTypeNumber && req.Number != nil {
			return answers.SetNumber(q.ID, *req.Number), nil
		}
	case request_models.AnswerOpToggle:
		if q.Type == catalog_models.QuestionTypeMultiSelect {
			return answers.ToggleMulti(q.ID, req.Value, q.MaxSelections), nil
		}
	case request_models.AnswerOpSetStart:
		if q.Type == catalog_models.QuestionTypeDateRange {
			return answers.SetDateRangeStart(q.ID, req.Value), nil
		}
	case request_models.AnswerOpSetEnd:
		if q.Type == catalog_models.QuestionTypeDateRange {
			return answers.SetDateRangeEnd(q.ID, req.Value), nil
		}
	}
	return nil, utils.ErrInvalidAnswerOp
}

// Next confirms the current step. A required question without a valid answer
// blocks the transition; otherwise a regeneration fires and the cursor
// advances (staying put at the last step).
func (s *SessionService) Next(ctx context.Context, sessionID string) (*response_models.SessionState, error) {
	return s.advance(ctx, sessionID, false)
}

// Skip advances unconditionally; optional questions only.
func (s *SessionService) Skip(ctx context.Context, sessionID string) (*response_models.SessionState, error) {
	return s.advance(ctx, sessionID, true)
}

func (s *SessionService) advance(ctx context.Context, sessionID string, skip bool) (*response_models.SessionState, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	catalog, err := s.catalogService.Get(ctx)
	if err != nil {
		return nil, err
	}

	idx, _ := session.Step()
	if !skip && idx < len(catalog) {
		q := &catalog[idx]
		if q.Required && !session.Answers().IsAnswered(q.ID) {
			return nil, utils.ErrAnswerRequired
		}
	}

	s.generationService.GenerateAsync(sessionID)
	session.Advance(len(catalog))
	return buildSessionState(session, catalog), nil
}

func (s *SessionService) Prev(ctx context.Context, sessionID string) (*response_models.SessionState, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	session.Back()
	catalog, _ := s.catalogService.Get(ctx)
	return buildSessionState(session, catalog), nil
}

// JumpTo moves within visited steps; past highest-reached it leaves the
// cursor untouched. Indices outside the catalog are rejected outright.
func (s *SessionService) JumpTo(ctx context.Context, sessionID string, step int) (*response_models.SessionState, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	catalog, err := s.catalogService.Get(ctx)
	if err != nil {
		return nil, err
	}
	if step < 0 || step >= len(catalog) {
		return nil, utils.ErrStepOutOfRange
	}
	session.Jump(step)
	return buildSessionState(session, catalog), nil
}

func (s *SessionService) Reset(ctx context.Context, sessionID string) (*response_models.SessionState, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	session.ResetState()
	catalog, _ := s.catalogService.Get(ctx)
	return buildSessionState(session, catalog), nil
}

// buildSessionState assembles the wizard view model. Progress is one-based
// over the catalog length, with a divisor of 1 when the catalog is empty or
// still loading.
func buildSessionState(session *mem.PlannerSession, catalog catalog_models.Catalog) *response_models.SessionState {
	idx, highest := session.Step()
	answers := session.Answers()
	markdown, generating := session.Markdown()

	total := len(catalog)
	divisor := total
	if divisor == 0 {
		divisor = 1
	}
	progress := int(math.Round(100 * float64(idx+1) / float64(divisor)))

	var question *catalog_models.Question
	if idx < total {
		question = &catalog[idx]
	}

	canProceed := question != nil && (!question.Required || answers.IsAnswered(question.ID))

	var startMin, endMin string
	if question != nil && question.Type == catalog_models.QuestionTypeDateRange {
		var chosenStart string
		if v, ok := answers[question.ID]; ok && v.Kind == catalog_models.AnswerKindDateRange {
			chosenStart = v.Range.StartDate
		}
		now := time.Now()
		if question.StartDate != nil {
			startMin = utils.ResolveMinDate(question.StartDate.Min, "", now)
		}
		if question.EndDate != nil {
			endMin = utils.ResolveMinDate(question.EndDate.Min, chosenStart, now)
		}
	}

	return &response_models.SessionState{
		SessionID:    session.ID(),
		StepIndex:    idx,
		HighestStep:  highest,
		TotalSteps:   total,
		Progress:     progress,
		Question:     question,
		CanProceed:   canProceed,
		Answers:      answers,
		Markdown:     markdown,
		Generating:   generating,
		IsComplete:   total > 0 && idx == total-1 && canProceed,
		StartDateMin: startMin,
		EndDateMin:   endMin,
	}
}
