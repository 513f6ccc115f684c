package store

import (
	"sync"
	"time"

	"github.com/malecare/trialbot/domain"
)

// MemoryStore implements SessionStore with an in-process map. Sessions do not
// survive a restart and are not shared across instances.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure MemoryStore implements SessionStore.
var _ SessionStore = (*MemoryStore)(nil)

// UpsertIntake creates the session if absent, replaces its intake wholesale,
// and marks the session INTAKE_COMPLETE. Prior turns are kept.
func (s *MemoryStore) UpsertIntake(userID string, intake domain.PatientIntake) *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &domain.Session{
			UserID:    userID,
			State:     domain.StateNew,
			CreatedAt: now,
		}
		s.sessions[userID] = sess
	}

	sess.Intake = &intake
	sess.State = domain.StateIntakeComplete
	sess.UpdatedAt = now
	return copySession(sess)
}

// Get returns a copy of the session, or domain.ErrSessionNotFound.
func (s *MemoryStore) Get(userID string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return copySession(sess), nil
}

// AppendTurn appends a turn to the session's transcript.
func (s *MemoryStore) AppendTurn(userID string, turn domain.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return domain.ErrSessionNotFound
	}
	sess.Turns = append(sess.Turns, turn)
	sess.UpdatedAt = time.Now()
	return nil
}

// SetState moves the session to the given state.
func (s *MemoryStore) SetState(userID string, state domain.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return domain.ErrSessionNotFound
	}
	sess.State = state
	sess.UpdatedAt = time.Now()
	return nil
}

// Clear removes the session. Idempotent.
func (s *MemoryStore) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// copySession returns a detached copy so callers cannot mutate stored state.
func copySession(sess *domain.Session) *domain.Session {
	out := *sess
	if sess.Intake != nil {
		intake := *sess.Intake
		out.Intake = &intake
	}
	if sess.Turns != nil {
		out.Turns = make([]domain.Turn, len(sess.Turns))
		copy(out.Turns, sess.Turns)
	}
	return &out
}
