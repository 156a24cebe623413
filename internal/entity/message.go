package entity

import "time"

// MaxMessageLength bounds the text of a single message.
const MaxMessageLength = 140

type Message struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`

	// Author is populated on reads that join the owning user.
	Author *User `json:"author,omitempty"`
}
