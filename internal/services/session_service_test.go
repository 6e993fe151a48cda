package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"voyago/internal/models/catalog_models"
	"voyago/internal/models/request_models"
	mem "voyago/pkg/memcache"
	"voyago/pkg/utils"
)

// MockCatalogService is a mock type for the CatalogServiceInterface
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Load(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCatalogService) Get(ctx context.Context) (catalog_models.Catalog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(catalog_models.Catalog), args.Error(1)
}

// MockGenerationService is a mock type for the GenerationServiceInterface
type MockGenerationService struct {
	mock.Mock
}

func (m *MockGenerationService) Generate(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func (m *MockGenerationService) GenerateAsync(sessionID string) {
	m.Called(sessionID)
}

func (m *MockGenerationService) Debounce(sessionID string) {
	m.Called(sessionID)
}

func wizardCatalog() catalog_models.Catalog {
	return catalog_models.Catalog{
		{ID: "destination_city", Type: catalog_models.QuestionTypeText, Required: true,
			AnswerTemplate: "Destination: {destination_city}"},
		{ID: "travel_dates", Type: catalog_models.QuestionTypeDateRange},
		{ID: "travel_time_days", Type: catalog_models.QuestionTypeNumber},
		{ID: "interests", Type: catalog_models.QuestionTypeMultiSelect, MaxSelections: 2,
			Options: []catalog_models.QuestionOption{
				{ID: "i1", Label: "Food", Value: "food"},
				{ID: "i2", Label: "Museums", Value: "museums"},
				{ID: "i3", Label: "Hiking", Value: "hiking"},
			}},
		{ID: "additionalComments", Type: catalog_models.QuestionTypeText},
	}
}

func newSessionFixture(t *testing.T) (SessionServiceInterface, *MockGenerationService, mem.SessionStore) {
	t.Helper()

	catalogSvc := new(MockCatalogService)
	catalogSvc.On("Get", mock.Anything).Return(wizardCatalog(), nil)

	generationSvc := new(MockGenerationService)
	generationSvc.On("GenerateAsync", mock.Anything).Return().Maybe()
	generationSvc.On("Debounce", mock.Anything).Return().Maybe()

	store := mem.NewPlannerSessions(0)
	return NewSessionService(catalogSvc, generationSvc, store), generationSvc, store
}

func TestStartReportsOneBasedProgress(t *testing.T) {
	svc, _, _ := newSessionFixture(t)

	state, err := svc.Start(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, state.StepIndex)
	assert.Equal(t, 5, state.TotalSteps)
	assert.Equal(t, 20, state.Progress)
	assert.Equal(t, "destination_city", state.Question.ID)
	assert.False(t, state.CanProceed, "required question with no answer")
}

func TestNextBlockedOnRequiredQuestion(t *testing.T) {
	svc, generationSvc, _ := newSessionFixture(t)
	state, _ := svc.Start(context.Background())

	_, err := svc.Next(context.Background(), state.SessionID)
	assert.ErrorIs(t, err, utils.ErrAnswerRequired)
	generationSvc.AssertNotCalled(t, "GenerateAsync", state.SessionID)

	// Once answered, the same transition goes through and fires a generation.
	_, err = svc.SubmitAnswer(context.Background(), state.SessionID, request_models.AnswerRequest{
		QuestionID: "destination_city",
		Op:         request_models.AnswerOpSet,
		Value:      "Rome",
	})
	assert.NoError(t, err)

	next, err := svc.Next(context.Background(), state.SessionID)
	assert.NoError(t, err)
	assert.Equal(t, 1, next.StepIndex)
	assert.Equal(t, 1, next.HighestStep)
	generationSvc.AssertCalled(t, "GenerateAsync", state.SessionID)
}

func TestSkipAdvancesWithoutGating(t *testing.T) {
	svc, _, _ := newSessionFixture(t)
	state, _ := svc.Start(context.Background())

	next, err := svc.Skip(context.Background(), state.SessionID)
	assert.NoError(t, err)
	assert.Equal(t, 1, next.StepIndex)
	assert.Equal(t, 40, next.Progress)
}

func TestJumpPastHighestReachedIsNoOp(t *testing.T) {
	svc, _, _ := newSessionFixture(t)
	state, _ := svc.Start(context.Background())
	ctx := context.Background()

	// Visit steps 1 and 2, then walk back to 0.
	_, _ = svc.Skip(ctx, state.SessionID)
	_, _ = svc.Skip(ctx, state.SessionID)
	_, _ = svc.Prev(ctx, state.SessionID)
	back, _ := svc.Prev(ctx, state.SessionID)
	assert.Equal(t, 0, back.StepIndex)
	assert.Equal(t, 2, back.HighestStep)

	after, err := svc.JumpTo(ctx, state.SessionID, 3)
	assert.NoError(t, err)
	assert.Equal(t, 0, after.StepIndex, "jumping past highest-reached must not move the cursor")

	visited, err := svc.JumpTo(ctx, state.SessionID, 2)
	assert.NoError(t, err)
	assert.Equal(t, 2, visited.StepIndex)
}

func TestJumpOutsideCatalogRejected(t *testing.T) {
	svc, _, _ := newSessionFixture(t)
	state, _ := svc.Start(context.Background())

	_, err := svc.JumpTo(context.Background(), state.SessionID, 7)
	assert.ErrorIs(t, err, utils.ErrStepOutOfRange)
}

func TestResetClearsEverything(t *testing.T) {
	svc, _, _ := newSessionFixture(t)
	state, _ := svc.Start(context.Background())
	ctx := context.Background()

	_, _ = svc.SubmitAnswer(ctx, state.SessionID, request_models.AnswerRequest{
		QuestionID: "destination_city",
		Op:         request_models.AnswerOpSet,
		Value:      "Rome",
	})
	_, _ = svc.Next(ctx, state.SessionID)

	reset, err := svc.Reset(ctx, state.SessionID)
	assert.NoError(t, err)
	assert.Equal(t, 0, reset.StepIndex)
	assert.Equal(t, 0, reset.HighestStep)
	assert.Empty(t, reset.Answers)
	assert.Empty(t, reset.Markdown)
	assert.Equal(t, 20, reset.Progress)
}

func TestSubmitAnswerRoutesByQuestionType(t *testing.T) {
	svc, generationSvc, _ := newSessionFixture(t)
	state, _ := svc.Start(context.Background())
	ctx := context.Background()

	st, err := svc.SubmitAnswer(ctx, state.SessionID, request_models.AnswerRequest{
		QuestionID: "interests",
		Op:         request_models.AnswerOpToggle,
		Value:      "food",
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"food"}, st.Answers["interests"].Multi)
	generationSvc.AssertCalled(t, "Debounce", state.SessionID)

	_, _ = svc.SubmitAnswer(ctx, state.SessionID, request_models.AnswerRequest{
		QuestionID: "travel_dates", Op: request_models.AnswerOpSetStart, Value: "2024-01-01"})
	st, err = svc.SubmitAnswer(ctx, state.SessionID, request_models.AnswerRequest{
		QuestionID: "travel_dates", Op: request_models.AnswerOpSetEnd, Value: "2024-01-05"})
	assert.NoError(t, err)
	assert.Equal(t, float64(5), st.Answers["travel_time_days"].Number)
}

func TestSubmitAnswerRejectsMismatchedOp(t *testing.T) {
	svc, _, _ := newSessionFixture(t)
	state, _ := svc.Start(context.Background())

	_, err := svc.SubmitAnswer(context.Background(), state.SessionID, request_models.AnswerRequest{
		QuestionID: "destination_city",
		Op:         request_models.AnswerOpToggle,
		Value:      "food",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidAnswerOp)

	_, err = svc.SubmitAnswer(context.Background(), state.SessionID, request_models.AnswerRequest{
		QuestionID: "unknown_question",
		Op:         request_models.AnswerOpSet,
		Value:      "x",
	})
	assert.ErrorIs(t, err, utils.ErrQuestionNotFound)
}

func TestCatalogNotReadyBlocksAnswering(t *testing.T) {
	catalogSvc := new(MockCatalogService)
	catalogSvc.On("Get", mock.Anything).Return(nil, utils.ErrCatalogNotReady)

	generationSvc := new(MockGenerationService)
	store := mem.NewPlannerSessions(0)
	svc := NewSessionService(catalogSvc, generationSvc, store)

	state, err := svc.Start(context.Background())
	assert.NoError(t, err, "a session can start while the catalog is loading")
	assert.Nil(t, state.Question)
	assert.Equal(t, 0, state.TotalSteps)

	_, err = svc.SubmitAnswer(context.Background(), state.SessionID, request_models.AnswerRequest{
		QuestionID: "destination_city",
		Op:         request_models.AnswerOpSet,
		Value:      "Rome",
	})
	assert.ErrorIs(t, err, utils.ErrCatalogNotReady)
}

func TestUnknownSessionRejected(t *testing.T) {
	svc, _, _ := newSessionFixture(t)
	_, err := svc.GetState(context.Background(), "nope")
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)
}
