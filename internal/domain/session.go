package domain

import "time"

// Session is the per-connection identity. It belongs to at most one room;
// the room code is re-checked on every use because the room may be deleted
// concurrently by the reaper or a leave-triggered cleanup.
type Session struct {
	ID       string
	Username string
	RoomCode string
	JoinedAt time.Time
}
