package battle

import (
	"sync"

	"github.com/Tohidkhan6332/quizbot/internal/models"
	"github.com/google/uuid"
)

// Store is the in-memory registry of live battle sessions. It owns
// creation, lookup, atomic mutation and disposal; nothing else touches
// the underlying map.
type Store struct {
	sessions map[string]*Session
	mu       sync.RWMutex
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
	}
}

// Create allocates a fresh session in waiting state with the given
// frozen question set and returns it. UUIDs make identifier collisions
// with live sessions a non-concern.
func (s *Store) Create(creatorID int64, creatorName string, questions []models.Question) *Session {
	session := newSession(uuid.NewString(), creatorID, creatorName, questions)

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session
}

// Get looks up a session. The ok result is false when the battle has
// expired, been canceled or already finished; callers turn that into a
// user-facing notice, never an error.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	return session, ok
}

// Mutate applies fn to the session as an indivisible unit. Concurrent
// submissions from both participants serialize here, so a round can
// never double-advance and scores never see partial updates. Returns
// ErrNotFound when the session is gone.
func (s *Store) Mutate(id string, fn func(*Session) error) error {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return ErrNotFound
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	return fn(session)
}

// Delete removes a session and stops its timers. Deleting a missing id
// is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	session, ok := s.sessions[id]
	if ok {
		if session.ExpiryTimer != nil {
			session.ExpiryTimer.Stop()
		}
		if session.AdvanceTimer != nil {
			session.AdvanceTimer.Stop()
		}
		delete(s.sessions, id)
	}
	s.mu.Unlock()
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
