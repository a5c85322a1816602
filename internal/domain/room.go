package domain

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Room is the mutable per-room state. All mutations are serialized by the
// room's own mutex so that operations on different rooms never block each
// other. The store-level index is guarded separately.
type Room struct {
	mu sync.Mutex

	code         string
	creatorID    string
	participants map[string]struct{}
	messages     []Message
	createdAt    time.Time
	lastActivity time.Time
}

func NewRoom(code, creatorID string, now time.Time) *Room {
	return &Room{
		code:         code,
		creatorID:    creatorID,
		participants: make(map[string]struct{}),
		createdAt:    now,
		lastActivity: now,
	}
}

func (r *Room) Code() string      { return r.code }
func (r *Room) CreatorID() string { return r.creatorID }

// AddParticipant adds the session to the participant set (adding twice is a
// no-op), touches activity and returns the resulting count.
func (r *Room) AddParticipant(sessionID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.participants[sessionID] = struct{}{}
	r.lastActivity = time.Now()
	return len(r.participants)
}

// RemoveParticipant removes the session if present, touches activity and
// returns the resulting count. Room deletion on count zero is the caller's
// decision; the room has no access to its store.
func (r *Room) RemoveParticipant(sessionID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.participants, sessionID)
	r.lastActivity = time.Now()
	return len(r.participants)
}

// AppendMessage stores the text verbatim with a server-assigned id and
// timestamp and returns the stored record.
func (r *Room) AppendMessage(senderID, username, text string) Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg := Message{
		ID:        uuid.NewString(),
		SenderID:  senderID,
		Username:  username,
		Text:      text,
		Timestamp: time.Now(),
	}
	r.messages = append(r.messages, msg)
	r.lastActivity = msg.Timestamp
	return msg
}

// Messages returns a copy of the log in append order, for history replay.
func (r *Room) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

func (r *Room) ParticipantCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.participants)
}

func (r *Room) Empty() bool {
	return r.ParticipantCount() == 0
}

func (r *Room) CreatedAt() time.Time { return r.createdAt }

func (r *Room) LastActivity() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastActivity
}

// Expired reports whether the room has been inactive longer than the
// threshold. A room exactly at the threshold is not yet expired.
func (r *Room) Expired(now time.Time, threshold time.Duration) bool {
	return now.Sub(r.LastActivity()) > threshold
}
