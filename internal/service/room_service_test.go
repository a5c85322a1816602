package service

import (
	"errors"
	"testing"
	"time"

	"github.com/fadechat/room-broker/internal/domain"
)

func TestRoomService_CreateRoom(t *testing.T) {
	fx := newRouterFixture(t, 30*time.Minute)

	room, sess, err := fx.roomSvc.CreateRoom("Alice")
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if len(room.Code()) != 12 {
		t.Fatalf("room code length = %d, want 12", len(room.Code()))
	}
	if room.CreatorID() != sess.ID {
		t.Fatalf("creator id %q != session id %q", room.CreatorID(), sess.ID)
	}
	if sess.RoomCode != room.Code() {
		t.Fatalf("session room code %q != room code %q", sess.RoomCode, room.Code())
	}

	stored, err := fx.sessions.Get(sess.ID)
	if err != nil {
		t.Fatalf("session not stored: %v", err)
	}
	if stored.Username != "Alice" {
		t.Fatalf("username = %q, want Alice", stored.Username)
	}
}

func TestRoomService_BlankUsernameDefaultsToAnonymous(t *testing.T) {
	fx := newRouterFixture(t, 30*time.Minute)

	_, sess, err := fx.roomSvc.CreateRoom("   ")
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if sess.Username != "Anonymous" {
		t.Fatalf("username = %q, want Anonymous", sess.Username)
	}
}

func TestRoomService_JoinRoomNotFound(t *testing.T) {
	fx := newRouterFixture(t, 30*time.Minute)

	_, err := fx.roomSvc.JoinRoom("no-such-room", "Bob")
	if !errors.Is(err, domain.ErrRoomNotFound) {
		t.Fatalf("err = %v, want ErrRoomNotFound", err)
	}
}

func TestRoomService_JoinExpiredRoomDeletesInline(t *testing.T) {
	// sub-millisecond threshold so the room expires almost immediately
	fx := newRouterFixture(t, time.Millisecond)

	room, _, err := fx.roomSvc.CreateRoom("Alice")
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	_, err = fx.roomSvc.JoinRoom(room.Code(), "Bob")
	if !errors.Is(err, domain.ErrRoomExpired) {
		t.Fatalf("err = %v, want ErrRoomExpired", err)
	}

	// the expired room was reclaimed on the spot
	if _, err := fx.rooms.Get(room.Code()); !errors.Is(err, domain.ErrRoomNotFound) {
		t.Fatalf("expired room should be deleted inline: %v", err)
	}
}

func TestRoomService_CheckRoom(t *testing.T) {
	fx := newRouterFixture(t, 30*time.Minute)

	room, _, _ := fx.roomSvc.CreateRoom("Alice")
	if err := fx.roomSvc.CheckRoom(room.Code()); err != nil {
		t.Fatalf("CheckRoom on live room: %v", err)
	}
	if err := fx.roomSvc.CheckRoom("missing"); !errors.Is(err, domain.ErrRoomNotFound) {
		t.Fatalf("err = %v, want ErrRoomNotFound", err)
	}
}
