package services

import (
	"context"
	"strings"
	"time"

	"voyago/internal/models/catalog_models"
	"voyago/internal/models/response_models"
	"voyago/internal/repositories"
	mem "voyago/pkg/memcache"
	"voyago/pkg/utils"
)

// SavedServiceInterface manages named itinerary snapshots: saving the current
// session (with freshly generated markdown), listing, deleting, and loading a
// snapshot back into a live session.
type SavedServiceInterface interface {
	List(ctx context.Context) []catalog_models.SavedItinerary
	Remove(ctx context.Context, id string) error
	SaveCurrent(ctx context.Context, sessionID, name string) (*catalog_models.SavedItinerary, error)
	LoadIntoSession(ctx context.Context, sessionID, savedID string) (*response_models.SessionState, error)
}

type SavedService struct {
	repo              repositories.SavedItineraryRepository
	catalogService    CatalogServiceInterface
	generationService GenerationServiceInterface
	sessions          mem.SessionStore
}

func NewSavedService(
	repo repositories.SavedItineraryRepository,
	catalogService CatalogServiceInterface,
	generationService GenerationServiceInterface,
	sessions mem.SessionStore,
) SavedServiceInterface {
	return &SavedService{
		repo:              repo,
		catalogService:    catalogService,
		generationService: generationService,
		sessions:          sessions,
	}
}

func (s *SavedService) List(ctx context.Context) []catalog_models.SavedItinerary {
	return s.repo.List(ctx)
}

func (s *SavedService) Remove(ctx context.Context, id string) error {
	return s.repo.Remove(ctx, id)
}

// SaveCurrent generates markdown for the session's answers right now (no
// debounce) and persists the snapshot. The default name leads with the
// destination city when one was answered.
func (s *SavedService) SaveCurrent(ctx context.Context, sessionID, name string) (*catalog_models.SavedItinerary, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, utils.ErrSessionNotFound
	}

	answers := session.Answers()

	markdown, err := s.generationService.Generate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(name) == "" {
		name = defaultItineraryName(answers, time.Now())
	}

	item := catalog_models.SavedItinerary{
		ID:        utils.NewShortID(),
		Name:      name,
		CreatedAt: utils.NowUnixMillis(),
		Answers:   answers,
		Markdown:  markdown,
	}
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}
	return &item, nil
}

// LoadIntoSession replaces the session wholesale with a saved snapshot and
// parks the cursor at the last step so the visitor can navigate freely.
func (s *SavedService) LoadIntoSession(ctx context.Context, sessionID, savedID string) (*response_models.SessionState, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	catalog, err := s.catalogService.Get(ctx)
	if err != nil {
		return nil, err
	}

	item := s.repo.Get(ctx, savedID)
	if item == nil {
		return nil, utils.ErrItineraryNotFound
	}

	answers := item.Answers
	if answers == nil {
		answers = make(catalog_models.AnswerMap)
	}
	session.LoadSnapshot(answers, item.Markdown, len(catalog)-1)
	return buildSessionState(session, catalog), nil
}

func defaultItineraryName(answers catalog_models.AnswerMap, now time.Time) string {
	city := "Your Trip"
	if v, ok := answers["destination_city"]; ok {
		if trimmed := strings.TrimSpace(v.Text); trimmed != "" {
			city = trimmed
		}
	}
	return city + " - " + now.Format("Jan 2, 2006")
}
