package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/fadechat/room-broker/internal/store"
)

// Reaper periodically evicts rooms that are inactive past the threshold or
// empty. It is the only component allowed to delete a room purely for
// inactivity; zero-participant cleanup also happens inline in the
// EventRouter, and both paths may race — delete is idempotent either way.
type Reaper struct {
	rooms     *store.RoomStore
	hub       Broadcaster
	interval  time.Duration
	threshold time.Duration
}

func NewReaper(rooms *store.RoomStore, hub Broadcaster, interval, threshold time.Duration) *Reaper {
	return &Reaper{
		rooms:     rooms,
		hub:       hub,
		interval:  interval,
		threshold: threshold,
	}
}

// Run sweeps on a fixed period until the context is cancelled.
func (r *Reaper) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.Sweep(time.Now())
		}
	}
}

// Sweep evicts every room the snapshot marks as expired or empty: notify
// the room's channel, delete, detach the channel. A fault in one sweep must
// not kill the loop, so panics are recovered and logged.
func (r *Reaper) Sweep(now time.Time) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("sweep panic recovered", "panic", rec)
		}
	}()

	codes := r.rooms.ListExpired(now, r.threshold)
	for _, code := range codes {
		r.hub.Broadcast(code, EventRoomClosed, RoomClosedPayload{
			Message: "Room has been closed due to inactivity",
		})
		r.rooms.Delete(code)
		r.hub.CloseRoom(code)
		slog.Info("room deleted due to inactivity", "room", code)
	}
	if len(codes) > 0 {
		slog.Debug("sweep finished", "evicted", len(codes))
	}
}
