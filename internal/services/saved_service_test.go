package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"voyago/internal/models/catalog_models"
	mem "voyago/pkg/memcache"
	"voyago/pkg/utils"
)

// MockSavedRepository is a mock type for the SavedItineraryRepository interface
type MockSavedRepository struct {
	mock.Mock
}

func (m *MockSavedRepository) List(ctx context.Context) []catalog_models.SavedItinerary {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]catalog_models.SavedItinerary)
}

func (m *MockSavedRepository) Get(ctx context.Context, id string) *catalog_models.SavedItinerary {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*catalog_models.SavedItinerary)
}

func (m *MockSavedRepository) Save(ctx context.Context, item catalog_models.SavedItinerary) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockSavedRepository) Remove(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func savedFixture(t *testing.T) (SavedServiceInterface, *MockSavedRepository, *MockGenerationService, *mem.PlannerSession) {
	t.Helper()

	catalogSvc := new(MockCatalogService)
	catalogSvc.On("Get", mock.Anything).Return(wizardCatalog(), nil)

	generationSvc := new(MockGenerationService)
	repo := new(MockSavedRepository)

	store := mem.NewPlannerSessions(0)
	session := store.Create()

	return NewSavedService(repo, catalogSvc, generationSvc, store), repo, generationSvc, session
}

func TestSaveCurrentGeneratesAndPersists(t *testing.T) {
	svc, repo, generationSvc, session := savedFixture(t)
	session.SetAnswers(session.Answers().SetText("destination_city", "Rome"))

	generationSvc.On("Generate", mock.Anything, session.ID()).Return("# Rome in three days", nil)

	var saved catalog_models.SavedItinerary
	repo.On("Save", mock.Anything, mock.AnythingOfType("catalog_models.SavedItinerary")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(catalog_models.SavedItinerary)
		}).
		Return(nil)

	item, err := svc.SaveCurrent(context.Background(), session.ID(), "")
	assert.NoError(t, err)
	assert.Len(t, item.ID, 7)
	assert.Contains(t, item.Name, "Rome", "default name leads with the destination")
	assert.Equal(t, "# Rome in three days", item.Markdown)
	assert.Equal(t, saved.ID, item.ID)
	assert.Equal(t, "Rome", saved.Answers["destination_city"].Text)
}

func TestSaveCurrentFallsBackToGenericName(t *testing.T) {
	svc, repo, generationSvc, session := savedFixture(t)

	generationSvc.On("Generate", mock.Anything, session.ID()).Return("# Somewhere", nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	item, err := svc.SaveCurrent(context.Background(), session.ID(), "")
	assert.NoError(t, err)
	assert.Contains(t, item.Name, "Your Trip")
}

func TestSaveCurrentPropagatesGenerationFailure(t *testing.T) {
	svc, repo, generationSvc, session := savedFixture(t)

	generationSvc.On("Generate", mock.Anything, session.ID()).Return("", utils.ErrGenerationFailed)

	_, err := svc.SaveCurrent(context.Background(), session.ID(), "")
	assert.ErrorIs(t, err, utils.ErrGenerationFailed)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestLoadIntoSessionReplacesStateWholesale(t *testing.T) {
	svc, repo, _, session := savedFixture(t)

	answers := make(catalog_models.AnswerMap).SetText("destination_city", "Kyoto")
	repo.On("Get", mock.Anything, "abc1234").Return(&catalog_models.SavedItinerary{
		ID:       "abc1234",
		Name:     "Kyoto - trip",
		Answers:  answers,
		Markdown: "# Kyoto",
	})

	state, err := svc.LoadIntoSession(context.Background(), session.ID(), "abc1234")
	assert.NoError(t, err)
	assert.Equal(t, "# Kyoto", state.Markdown)
	assert.Equal(t, "Kyoto", state.Answers["destination_city"].Text)
	assert.Equal(t, len(wizardCatalog())-1, state.StepIndex,
		"loading parks the cursor on the last step")
	assert.Equal(t, state.StepIndex, state.HighestStep,
		"navigation is unlocked across the whole catalog")
}

func TestLoadUnknownItinerary(t *testing.T) {
	svc, repo, _, session := savedFixture(t)
	repo.On("Get", mock.Anything, "missing").Return(nil)

	_, err := svc.LoadIntoSession(context.Background(), session.ID(), "missing")
	assert.ErrorIs(t, err, utils.ErrItineraryNotFound)
}
