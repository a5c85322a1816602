package http

type CreateRoomRequest struct {
	Username string `json:"username"`
}

type CreateRoomResponse struct {
	Success   bool   `json:"success"`
	RoomID    string `json:"room_id"`
	ShareLink string `json:"share_link"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
}

type JoinRoomRequest struct {
	RoomID   string `json:"room_id"`
	Username string `json:"username"`
}

type JoinRoomResponse struct {
	Success  bool   `json:"success"`
	RoomID   string `json:"room_id"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

type RoomCheckResponse struct {
	RoomID string `json:"room_id"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
