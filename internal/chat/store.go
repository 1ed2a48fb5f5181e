package chat

import (
	"context"
	"sync"
	"time"
)

// SessionStore persists conversations. Get returns (nil, nil) for an
// unknown session so callers can decide whether to create one.
type SessionStore interface {
	Get(ctx context.Context, id string) (*Session, error)
	Create(ctx context.Context, s *Session) error
	AppendMessage(ctx context.Context, sessionID string, m Message) error
	Update(ctx context.Context, sessionID string, messageCount int, stage Stage) error
	ClearMessages(ctx context.Context, sessionID string) error
	// DeleteExpired removes idle sessions and returns their ids so callers
	// can release per-session state of their own.
	DeleteExpired(ctx context.Context, olderThan time.Duration) ([]string, error)
}

// memoryStore backs tests and DB-less deployments.
type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewMemoryStore() SessionStore {
	return &memoryStore{sessions: make(map[string]*Session)}
}

func (s *memoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *sess
	cp.Messages = append([]Message(nil), sess.Messages...)
	return &cp, nil
}

func (s *memoryStore) Create(ctx context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sess
	cp.Messages = append([]Message(nil), sess.Messages...)
	s.sessions[sess.ID] = &cp
	return nil
}

func (s *memoryStore) AppendMessage(ctx context.Context, sessionID string, m Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[sessionID]; ok {
		sess.Messages = append(sess.Messages, m)
		sess.LastActivity = time.Now()
	}
	return nil
}

func (s *memoryStore) Update(ctx context.Context, sessionID string, messageCount int, stage Stage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[sessionID]; ok {
		sess.MessageCount = messageCount
		if stage != "" {
			sess.Stage = stage
		}
		sess.LastActivity = time.Now()
	}
	return nil
}

func (s *memoryStore) ClearMessages(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[sessionID]; ok {
		sess.Messages = nil
		sess.Stage = StageInitial
	}
	return nil
}

func (s *memoryStore) DeleteExpired(ctx context.Context, olderThan time.Duration) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-olderThan)
	var removed []string
	for id, sess := range s.sessions {
		if sess.LastActivity.Before(cutoff) {
			delete(s.sessions, id)
			removed = append(removed, id)
		}
	}
	return removed, nil
}
