package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	mem "voyago/pkg/memcache"
	"voyago/pkg/utils"
)

// GenerationServiceInterface owns the outbound generation pipeline. Rapid
// answer edits funnel through Debounce so only the last snapshot after a
// quiescence window is sent; every request carries a per-session sequence
// number and only the latest one's response is applied to the session.
type GenerationServiceInterface interface {
	Generate(ctx context.Context, sessionID string) (string, error)
	GenerateAsync(sessionID string)
	Debounce(sessionID string)
}

type GenerationService struct {
	catalogService CatalogServiceInterface
	promptService  PromptServiceInterface
	client         utils.GenerationClientInterface
	sessions       mem.SessionStore
	debounceWait   time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewGenerationService(
	catalogService CatalogServiceInterface,
	promptService PromptServiceInterface,
	client utils.GenerationClientInterface,
	sessions mem.SessionStore,
	debounceWait time.Duration,
) GenerationServiceInterface {
	if debounceWait <= 0 {
		debounceWait = time.Second
	}
	return &GenerationService{
		catalogService: catalogService,
		promptService:  promptService,
		client:         client,
		sessions:       sessions,
		debounceWait:   debounceWait,
		timers:         make(map[string]*time.Timer),
	}
}

// Generate renders the prompt from the session's current answers and issues
// one call. No retries and no deadline; a failure is terminal for this one
// request, clears the generating flag and leaves prior markdown in place.
func (g *GenerationService) Generate(ctx context.Context, sessionID string) (string, error) {
	session, ok := g.sessions.Get(sessionID)
	if !ok {
		return "", utils.ErrSessionNotFound
	}
	catalog, err := g.catalogService.Get(ctx)
	if err != nil {
		return "", err
	}

	answers := session.Answers()
	prompt := g.promptService.BuildPrompt(answers, catalog)

	rawAnswers, err := json.Marshal(answers)
	if err != nil {
		return "", err
	}

	seq := session.BeginGeneration()
	log.Printf("Generating itinerary for session %s (seq %d)", sessionID, seq)

	markdown, err := g.client.GenerateItinerary(ctx, rawAnswers, prompt)
	if err != nil {
		log.Printf("Error generating itinerary for session %s: %v", sessionID, err)
		session.FinishGeneration(seq, "", false)
		return "", utils.ErrGenerationFailed
	}

	if !session.FinishGeneration(seq, markdown, true) {
		log.Printf("Discarding superseded generation result for session %s (seq %d)", sessionID, seq)
	}
	return markdown, nil
}

// GenerateAsync fires a generation without blocking the caller; errors are
// already logged inside Generate.
func (g *GenerationService) GenerateAsync(sessionID string) {
	go func() {
		_, _ = g.Generate(context.Background(), sessionID)
	}()
}

// Debounce schedules a generation after the quiescence window, replacing any
// timer already pending for the session so bursts of edits coalesce into one
// call.
func (g *GenerationService) Debounce(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if t, ok := g.timers[sessionID]; ok {
		t.Stop()
	}
	g.timers[sessionID] = time.AfterFunc(g.debounceWait, func() {
		g.mu.Lock()
		delete(g.timers, sessionID)
		g.mu.Unlock()

		_, _ = g.Generate(context.Background(), sessionID)
	})
}
