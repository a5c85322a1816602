package ws

// Inbound event types. Outbound types live in the service package; the
// transport only wraps them into the wire envelope.
const (
	TypeJoin        = "join"
	TypeLeave       = "leave"
	TypeSendMessage = "send_message"
)

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type JoinPayload struct {
	UserID   string `json:"user_id"`
	RoomCode string `json:"room_code"`
}

type LeavePayload struct {
	UserID   string `json:"user_id"`
	RoomCode string `json:"room_code"`
}

type SendMessagePayload struct {
	UserID   string `json:"user_id"`
	RoomCode string `json:"room_code"`
	Message  string `json:"message"`
}
