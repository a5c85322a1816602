package service

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fadechat/room-broker/internal/domain"
	"github.com/fadechat/room-broker/internal/store"
)

// EventRouter dispatches inbound connection events to the registries and
// decides which connections receive which notifications. Every per-event
// failure is recovered here and turned into an error event for the
// originating connection only — nothing propagates to other participants
// or to the reaper.
type EventRouter struct {
	rooms     *store.RoomStore
	sessions  *store.SessionStore
	hub       Broadcaster
	threshold time.Duration

	// Explicit conn<->session binding, recorded at join and removed on
	// leave/disconnect. The association is kept both ways so disconnect
	// resolves without scanning the session store.
	mu     sync.Mutex
	byConn map[Sender]string
	bySess map[string]Sender
}

func NewEventRouter(rooms *store.RoomStore, sessions *store.SessionStore, hub Broadcaster, threshold time.Duration) *EventRouter {
	return &EventRouter{
		rooms:     rooms,
		sessions:  sessions,
		hub:       hub,
		threshold: threshold,
		byConn:    make(map[Sender]string),
		bySess:    make(map[string]Sender),
	}
}

// bind records the association both ways. A session rejoining from a new
// connection supersedes its previous one; the old connection's entry is
// evicted here and returned so the caller can detach it, leaving its
// eventual disconnect nothing to act on.
func (r *EventRouter) bind(sessionID string, conn Sender) (superseded Sender) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.bySess[sessionID]; ok && prev != conn {
		delete(r.byConn, prev)
		superseded = prev
	}
	r.byConn[conn] = sessionID
	r.bySess[sessionID] = conn
	return superseded
}

func (r *EventRouter) unbind(sessionID string, conn Sender) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byConn, conn)
	if r.bySess[sessionID] == conn {
		delete(r.bySess, sessionID)
	}
}

// current reports whether conn is the session's live binding. A connection
// the session has rejoined past must not tear the session down.
func (r *EventRouter) current(sessionID string, conn Sender) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bySess[sessionID] == conn
}

func (r *EventRouter) sessionFor(conn Sender) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byConn[conn]
	return id, ok
}

func (r *EventRouter) fail(conn Sender, msg string) {
	_ = conn.Send(EventError, ErrorPayload{Message: msg})
}

// Join attaches the connection to the room's channel, adds the session to
// the participant set, replays history to the joiner and announces the
// join to the room.
func (r *EventRouter) Join(sessionID, roomCode string, conn Sender) {
	sess, err := r.sessions.Get(sessionID)
	if err != nil {
		r.fail(conn, "Invalid session")
		return
	}
	room, err := r.rooms.Get(roomCode)
	if err != nil {
		r.fail(conn, "Room not found")
		return
	}
	if room.Expired(time.Now(), r.threshold) {
		r.fail(conn, "Room has expired")
		return
	}

	if superseded := r.bind(sessionID, conn); superseded != nil {
		r.hub.Detach(roomCode, superseded)
		slog.Info("connection superseded", "room", roomCode, "session", sessionID)
	}
	r.hub.Attach(roomCode, conn)
	count := room.AddParticipant(sessionID)

	if err := conn.Send(EventChatHistory, HistoryPayload{Messages: room.Messages()}); err != nil {
		slog.Warn("history replay failed", "room", roomCode, "session", sessionID, "err", err)
	}
	r.hub.Broadcast(roomCode, EventUserJoined, PresencePayload{
		Username:         sess.Username,
		Message:          fmt.Sprintf("%s joined the chat", sess.Username),
		ParticipantCount: count,
	})
	slog.Info("user joined", "room", roomCode, "username", sess.Username, "participants", count)
}

// Leave detaches the connection, removes the participant, deletes the
// session, and deletes the room inline when it is now empty. Deleting a
// room the reaper already evicted is a no-op.
func (r *EventRouter) Leave(sessionID, roomCode string, conn Sender) {
	r.leave(sessionID, roomCode, conn, "left the chat")
}

func (r *EventRouter) leave(sessionID, roomCode string, conn Sender, verb string) {
	sess, err := r.sessions.Get(sessionID)
	if err != nil {
		r.fail(conn, "Invalid session")
		return
	}
	if !r.current(sessionID, conn) {
		// Superseded connection; the session lives on its replacement.
		r.unbind(sessionID, conn)
		r.hub.Detach(roomCode, conn)
		return
	}

	r.hub.Detach(roomCode, conn)
	r.unbind(sessionID, conn)
	r.sessions.Delete(sessionID)

	room, err := r.rooms.Get(roomCode)
	if err != nil {
		// Room already gone; the session cleanup above is all that's left.
		return
	}
	count := room.RemoveParticipant(sessionID)

	r.hub.Broadcast(roomCode, EventUserLeft, PresencePayload{
		Username:         sess.Username,
		Message:          fmt.Sprintf("%s %s", sess.Username, verb),
		ParticipantCount: count,
	})

	if count == 0 {
		r.rooms.Delete(roomCode)
		r.hub.CloseRoom(roomCode)
		slog.Info("room deleted, no participants", "room", roomCode)
	}
	slog.Info("user left", "room", roomCode, "username", sess.Username, "participants", count)
}

// SendMessage appends to the room's log and relays the stored record to
// every participant, sender included.
func (r *EventRouter) SendMessage(sessionID, roomCode, text string, conn Sender) {
	sess, err := r.sessions.Get(sessionID)
	if err != nil {
		r.fail(conn, "Invalid session")
		return
	}
	room, err := r.rooms.Get(roomCode)
	if err != nil {
		r.fail(conn, "Room not found")
		return
	}
	if room.Expired(time.Now(), r.threshold) {
		r.fail(conn, "Room has expired")
		return
	}

	msg := room.AppendMessage(sessionID, sess.Username, text)
	r.hub.Broadcast(roomCode, EventNewMessage, msg)
}

// Disconnect resolves the connection to its session through the binding
// recorded at join time and then behaves like Leave. Connections that never
// joined have nothing to clean up.
func (r *EventRouter) Disconnect(conn Sender) {
	sessionID, ok := r.sessionFor(conn)
	if !ok {
		return
	}
	sess, err := r.sessions.Get(sessionID)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			slog.Warn("disconnect session lookup failed", "session", sessionID, "err", err)
		}
		r.unbind(sessionID, conn)
		return
	}
	r.leave(sessionID, sess.RoomCode, conn, "disconnected")
}
