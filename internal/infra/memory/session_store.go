package memory

import (
	"sync"

	"trivia-game-service/internal/game"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]game.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]game.Session),
	}
}

func (s *SessionStore) Put(playerID string, session game.Session) (game.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous, ok := s.sessions[playerID]
	s.sessions[playerID] = session
	return previous, ok
}

func (s *SessionStore) Get(playerID string) (game.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[playerID]
	return session, ok
}

func (s *SessionStore) Delete(playerID string) (game.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[playerID]
	if ok {
		delete(s.sessions, playerID)
	}
	return session, ok
}

func (s *SessionStore) DeleteIf(playerID string, session game.Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.sessions[playerID]; !ok || current != session {
		return false
	}
	delete(s.sessions, playerID)
	return true
}

// Len reports how many players have a game.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
