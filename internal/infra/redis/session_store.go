package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"trivia-game-service/internal/game"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Notes:
//   - Sessions own live countdowns, so they stay in a local map.
//   - Redis holds a liveness marker per player (mode and session ID) so other
//     instances and operators can see who is mid-game.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]game.Session
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]game.Session),
	}
}

func (s *SessionStore) Put(playerID string, session game.Session) (game.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous, ok := s.sessions[playerID]
	s.sessions[playerID] = session
	// best-effort liveness marker
	_ = s.client.HSet(context.Background(), s.key(playerID),
		"session", session.ID(),
		"mode", string(session.Mode()),
	).Err()
	if s.ttl > 0 {
		_ = s.client.Expire(context.Background(), s.key(playerID), s.ttl).Err()
	}
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
	if !ok {
		return nil, false
	}
	delete(s.sessions, playerID)
	_ = s.client.Del(context.Background(), s.key(playerID)).Err()
	return session, true
}

func (s *SessionStore) DeleteIf(playerID string, session game.Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.sessions[playerID]; !ok || current != session {
		return false
	}
	delete(s.sessions, playerID)
	_ = s.client.Del(context.Background(), s.key(playerID)).Err()
	return true
}

func (s *SessionStore) key(playerID string) string {
	return "trivia:session:" + playerID
}
