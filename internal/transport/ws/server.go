package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/fadechat/room-broker/internal/service"

	"github.com/gorilla/websocket"
)

type Server struct {
	upgrader websocket.Upgrader
	router   *service.EventRouter

	pingEvery time.Duration
}

func NewServer(router *service.EventRouter) *Server {
	return &Server{
		router: router,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pingEvery: 15 * time.Second,
	}
}

// WS endpoint: GET /ws. The client identifies itself per event with the
// session token issued by the create/join adapters.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("ws upgrade failed", "err", err)
		return
	}

	c := newWsConn(conn)
	go s.writeLoop(c)
	s.readLoop(c)

	// Read loop exit means the peer is gone, cleanly or not.
	s.router.Disconnect(c)
	if err := c.Close(); err != nil {
		slog.Debug("ws close failed", "err", err)
	}
}

func (s *Server) readLoop(c *wsConn) {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(1 << 20)
	c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case TypeJoin:
			var p JoinPayload
			if decode(msg.Payload, &p) == nil {
				s.router.Join(p.UserID, p.RoomCode, c)
			}
		case TypeLeave:
			var p LeavePayload
			if decode(msg.Payload, &p) == nil {
				s.router.Leave(p.UserID, p.RoomCode, c)
			}
		case TypeSendMessage:
			var p SendMessagePayload
			if decode(msg.Payload, &p) == nil {
				s.router.SendMessage(p.UserID, p.RoomCode, p.Message, c)
			}
		default:
			// ignore
		}
	}
}

func (s *Server) writeLoop(c *wsConn) {
	ticker := time.NewTicker(s.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
		case <-c.closed:
			return
		}
	}
}

// --- helpers ---

func decode(payload interface{}, dst interface{}) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return json.Unmarshal(b, dst)
}

type wsConn struct {
	conn   *websocket.Conn
	sendMu chan struct{}
	closed chan struct{}
}

func newWsConn(c *websocket.Conn) *wsConn {
	return &wsConn{
		conn:   c,
		sendMu: make(chan struct{}, 1),
		closed: make(chan struct{}),
	}
}

// Send implements service.Sender.
func (c *wsConn) Send(event string, payload any) error {
	c.sendMu <- struct{}{}
	defer func() { <-c.sendMu }()
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))

	return c.conn.WriteJSON(Message{Type: event, Payload: payload})
}

func (c *wsConn) Close() error {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}

	return c.conn.Close()
}
