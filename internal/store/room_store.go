// Package store owns the in-memory room and session registries. Nothing here
// survives a restart; the maps are the only source of truth.
package store

import (
	"sync"
	"time"

	"github.com/fadechat/room-broker/internal/domain"
	"github.com/fadechat/room-broker/internal/security"
)

// maxGenAttempts bounds the collision-retry loop for generated identifiers.
// With a 12-char alphanumeric space hitting it means something is deeply
// wrong, but the loop must not spin forever.
const maxGenAttempts = 16

// RoomStore maps room codes to live rooms. The index is guarded by its own
// RWMutex; per-room field mutations are serialized by each Room's mutex, so
// a busy room never stalls operations on an unrelated one.
type RoomStore struct {
	mu      sync.RWMutex
	rooms   map[string]*domain.Room
	newCode security.Generator
}

func NewRoomStore(newCode security.Generator) *RoomStore {
	return &RoomStore{
		rooms:   make(map[string]*domain.Room),
		newCode: newCode,
	}
}

// Create generates a code not currently present in the index and atomically
// inserts a new room under it. The generate-and-check loop runs under the
// write lock so two concurrent creates can never claim the same code.
func (s *RoomStore) Create(creatorID string) (*domain.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < maxGenAttempts; i++ {
		code := s.newCode()
		if _, taken := s.rooms[code]; taken {
			continue
		}
		room := domain.NewRoom(code, creatorID, time.Now())
		s.rooms[code] = room
		return room, nil
	}
	return nil, domain.ErrCodeSpaceExhausted
}

func (s *RoomStore) Get(code string) (*domain.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.rooms[code]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	return room, nil
}

// Delete removes the room from the index. Deleting an absent code is a
// no-op: the reaper and inline zero-participant cleanup race against each
// other by design and the loser must not fail.
func (s *RoomStore) Delete(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, code)
}

// ListExpired returns a point-in-time snapshot of codes eligible for
// eviction: inactive past the threshold, or empty. Only the read lock is
// held, and only for the scan; deletion and notification happen afterwards
// so unrelated joins and sends are never blocked by a sweep.
func (s *RoomStore) ListExpired(now time.Time, threshold time.Duration) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var codes []string
	for code, room := range s.rooms {
		if room.Expired(now, threshold) || room.Empty() {
			codes = append(codes, code)
		}
	}
	return codes
}

func (s *RoomStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}
