package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/fadechat/room-broker/internal/domain"
	"github.com/fadechat/room-broker/internal/service"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	roomSvc *service.RoomService
}

func NewHandler(room *service.RoomService) *Handler {
	return &Handler{roomSvc: room}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Success: false, Error: msg})
}

// POST /create-room
func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	room, sess, err := h.roomSvc.CreateRoom(req.Username)
	if err != nil {
		slog.Error("handler.CreateRoom:", slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, CreateRoomResponse{
		Success:   true,
		RoomID:    room.Code(),
		ShareLink: shareLink(r, room.Code()),
		UserID:    sess.ID,
		Username:  sess.Username,
	})
}

// POST /join-room
func (h *Handler) JoinRoom(w http.ResponseWriter, r *http.Request) {
	var req JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	sess, err := h.roomSvc.JoinRoom(req.RoomID, req.Username)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			writeError(w, http.StatusNotFound, "Room not found")
		case errors.Is(err, domain.ErrRoomExpired):
			writeError(w, http.StatusGone, "Room has expired")
		default:
			slog.Error("handler.JoinRoom:", slog.Any("err", err))
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, JoinRoomResponse{
		Success:  true,
		RoomID:   req.RoomID,
		UserID:   sess.ID,
		Username: sess.Username,
	})
}

// GET /chat/{roomCode} — pre-validates the room behind a shared link before
// the client opens the realtime channel.
func (h *Handler) ChatRoom(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "roomCode")

	switch err := h.roomSvc.CheckRoom(code); {
	case err == nil:
		writeJSON(w, http.StatusOK, RoomCheckResponse{RoomID: code})
	case errors.Is(err, domain.ErrRoomNotFound):
		writeError(w, http.StatusNotFound, "Room not found or has expired")
	case errors.Is(err, domain.ErrRoomExpired):
		writeError(w, http.StatusGone, "Room has expired")
	default:
		slog.Error("handler.ChatRoom:", slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// shareLink builds the invite URL from the inbound request. Scheme follows
// the forwarded-protocol header set by the fronting proxy.
func shareLink(r *http.Request, code string) string {
	proto := "http"
	if r.Header.Get("X-Forwarded-Proto") == "https" {
		proto = "https"
	}
	host := r.Host
	if host == "" {
		host = "localhost"
	}
	return fmt.Sprintf("%s://%s/chat/%s", proto, host, code)
}
