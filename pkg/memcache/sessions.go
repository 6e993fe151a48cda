package mem

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"voyago/internal/models/catalog_models"
)

// PlannerSession is one visitor's wizard state: the answer snapshot, the step
// cursor with its highest-reached bound, and the latest generated markdown.
// All access goes through methods; the internal lock exists because
// generation results land from async callbacks, not because there is any
// parallel mutation of answers.
type PlannerSession struct {
	id string

	mu          sync.Mutex
	answers     catalog_models.AnswerMap
	stepIndex   int
	highestStep int
	markdown    string
	generating  bool
	seq         uint64
}

func newPlannerSession() *PlannerSession {
	return &PlannerSession{
		id:      uuid.New().String(),
		answers: make(catalog_models.AnswerMap),
	}
}

func (s *PlannerSession) ID() string { return s.id }

func (s *PlannerSession) Answers() catalog_models.AnswerMap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers
}

// SetAnswers swaps in a new copy-on-write snapshot.
func (s *PlannerSession) SetAnswers(m catalog_models.AnswerMap) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers = m
}

func (s *PlannerSession) Step() (index, highest int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stepIndex, s.highestStep
}

// Advance moves the cursor forward one step and raises the highest-reached
// bound. Returns false at the last step.
func (s *PlannerSession) Advance(total int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stepIndex >= total-1 {
		return false
	}
	s.stepIndex++
	if s.stepIndex > s.highestStep {
		s.highestStep = s.stepIndex
	}
	return true
}

func (s *PlannerSession) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stepIndex > 0 {
		s.stepIndex--
	}
}

// Jump moves the cursor only within already-visited territory; anything past
// highest-reached is a no-op.
func (s *PlannerSession) Jump(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i > s.highestStep {
		return false
	}
	s.stepIndex = i
	return true
}

func (s *PlannerSession) ResetState() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers = make(catalog_models.AnswerMap)
	s.stepIndex = 0
	s.highestStep = 0
	s.markdown = ""
	s.generating = false
}

// LoadSnapshot replaces the session wholesale from a saved itinerary and
// unlocks navigation across the full catalog.
func (s *PlannerSession) LoadSnapshot(answers catalog_models.AnswerMap, markdown string, lastStep int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers = answers
	s.markdown = markdown
	if lastStep < 0 {
		lastStep = 0
	}
	s.stepIndex = lastStep
	s.highestStep = lastStep
}

func (s *PlannerSession) Markdown() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markdown, s.generating
}

// BeginGeneration issues the next request sequence number. Only the response
// carrying the latest number is ever applied.
func (s *PlannerSession) BeginGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.generating = true
	return s.seq
}

// FinishGeneration settles one request. A superseded sequence number is
// discarded outright so a late response can never overwrite a newer one.
func (s *PlannerSession) FinishGeneration(seq uint64, markdown string, ok bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		return false
	}
	s.generating = false
	if ok {
		s.markdown = markdown
	}
	return ok
}

type SessionStore interface {
	Create() *PlannerSession
	Get(id string) (*PlannerSession, bool)
	Delete(id string)
}

type entry struct {
	session   *PlannerSession
	expiresAt time.Time
}

type PlannerSessions struct {
	mu   sync.RWMutex
	data map[string]entry
	ttl  time.Duration
}

func NewPlannerSessions(ttl time.Duration) *PlannerSessions {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &PlannerSessions{
		data: make(map[string]entry),
		ttl:  ttl,
	}
}

func (s *PlannerSessions) Create() *PlannerSession {
	session := newPlannerSession()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[session.ID()] = entry{session: session, expiresAt: time.Now().Add(s.ttl)}
	return session
}

// Get refreshes the TTL on touch and drops expired sessions lazily.
func (s *PlannerSessions) Get(id string) (*PlannerSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[id]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		delete(s.data, id)
		return nil, false
	}
	e.expiresAt = time.Now().Add(s.ttl)
	s.data[id] = e
	return e.session, true
}

func (s *PlannerSessions) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
}
