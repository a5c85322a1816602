package domain

import "time"

type Message struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"user_id"`
	Username  string    `json:"username"`
	Text      string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
