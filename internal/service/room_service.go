package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/fadechat/room-broker/internal/domain"
	"github.com/fadechat/room-broker/internal/store"
)

const anonymousName = "Anonymous"

// RoomService backs the HTTP room-creation and room-join adapters.
type RoomService struct {
	rooms     *store.RoomStore
	sessions  *store.SessionStore
	threshold time.Duration
}

func NewRoomService(rooms *store.RoomStore, sessions *store.SessionStore, threshold time.Duration) *RoomService {
	return &RoomService{rooms: rooms, sessions: sessions, threshold: threshold}
}

// CreateRoom creates a room plus the creator's session. The creator's id is
// issued before the room so it can be recorded as the room's creator, then
// stored with the room's code.
func (s *RoomService) CreateRoom(username string) (*domain.Room, *domain.Session, error) {
	username = displayName(username)

	creatorID, err := s.sessions.NewID()
	if err != nil {
		return nil, nil, fmt.Errorf("sessions.NewID: %w", err)
	}
	room, err := s.rooms.Create(creatorID)
	if err != nil {
		s.sessions.Delete(creatorID)
		return nil, nil, fmt.Errorf("rooms.Create: %w", err)
	}
	sess := &domain.Session{
		ID:       creatorID,
		Username: username,
		RoomCode: room.Code(),
		JoinedAt: time.Now(),
	}
	s.sessions.Put(sess)
	return room, sess, nil
}

// JoinRoom validates the room and issues a session for it. An expired room
// is deleted inline and reported as expired, distinct from never existing.
func (s *RoomService) JoinRoom(roomCode, username string) (*domain.Session, error) {
	if err := s.CheckRoom(roomCode); err != nil {
		return nil, err
	}
	sess, err := s.sessions.Create(displayName(username), roomCode)
	if err != nil {
		return nil, fmt.Errorf("sessions.Create: %w", err)
	}
	return sess, nil
}

// CheckRoom reports whether the room exists and is joinable. Backs the
// direct-link adapter's pre-validation.
func (s *RoomService) CheckRoom(roomCode string) error {
	room, err := s.rooms.Get(roomCode)
	if err != nil {
		return err
	}
	if room.Expired(time.Now(), s.threshold) {
		s.rooms.Delete(roomCode)
		return domain.ErrRoomExpired
	}
	return nil
}

func displayName(username string) string {
	if strings.TrimSpace(username) == "" {
		return anonymousName
	}
	return username
}
