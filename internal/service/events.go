package service

import "github.com/fadechat/room-broker/internal/domain"

// Named events pushed to connected clients.
const (
	EventChatHistory = "chat_history" // message replay for the joiner
	EventUserJoined  = "user_joined"  // participant joined
	EventUserLeft    = "user_left"    // participant left or disconnected
	EventNewMessage  = "new_message"  // chat message
	EventRoomClosed  = "room_closed"  // room evicted by the reaper
	EventError       = "error"        // per-event failure, originating connection only
)

// Sender delivers a named event to a single connection. The transport layer
// provides the implementation.
type Sender interface {
	Send(event string, payload any) error
}

// Broadcaster fans events out to every connection attached to a room and
// no others.
type Broadcaster interface {
	Attach(roomCode string, s Sender)
	Detach(roomCode string, s Sender)
	Broadcast(roomCode, event string, payload any)
	// CloseRoom detaches every connection of a room after its final
	// broadcast.
	CloseRoom(roomCode string)
}

type HistoryPayload struct {
	Messages []domain.Message `json:"messages"`
}

type PresencePayload struct {
	Username         string `json:"username"`
	Message          string `json:"message"`
	ParticipantCount int    `json:"participant_count"`
}

type RoomClosedPayload struct {
	Message string `json:"message"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
