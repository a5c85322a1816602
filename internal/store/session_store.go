package store

import (
	"sync"
	"time"

	"github.com/fadechat/room-broker/internal/domain"
	"github.com/fadechat/room-broker/internal/security"
)

// SessionStore maps session tokens to identities. Sessions are never
// expired by time — they are reaped when their connection leaves or
// disconnects. Rooms are the scarce shared resource; sessions are just the
// cheap accounting for membership.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	newID    security.Generator
}

func NewSessionStore(newID security.Generator) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*domain.Session),
		newID:    newID,
	}
}

// NewID issues a fresh token and reserves it under the write lock, so a
// concurrent Create cannot claim it before Put stores the session. It
// exists as its own step because a room records its creator's session id
// before that session can be stored with the room's code. A reservation
// that will not be filled is released with Delete.
func (s *SessionStore) NewID() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < maxGenAttempts; i++ {
		id := s.newID()
		if _, taken := s.sessions[id]; !taken {
			s.sessions[id] = nil
			return id, nil
		}
	}
	return "", domain.ErrCodeSpaceExhausted
}

// Put fills the reservation made by NewID.
func (s *SessionStore) Put(sess *domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
}

// Create issues an id and stores the session in one step. The
// generate-and-check loop runs under the write lock, same discipline as
// RoomStore.Create.
func (s *SessionStore) Create(username, roomCode string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < maxGenAttempts; i++ {
		id := s.newID()
		if _, taken := s.sessions[id]; taken {
			continue
		}
		sess := &domain.Session{
			ID:       id,
			Username: username,
			RoomCode: roomCode,
			JoinedAt: time.Now(),
		}
		s.sessions[id] = sess
		return sess, nil
	}
	return nil, domain.ErrCodeSpaceExhausted
}

func (s *SessionStore) Get(id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok || sess == nil {
		// nil marks an id issued by NewID but not yet stored
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

// Delete is idempotent; removing an absent id is a no-op.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
