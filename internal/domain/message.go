package domain

import "time"

// Message belongs to a match and is only visible to its two members.
type Message struct {
	ID        string     `json:"id" db:"id"`
	MatchID   string     `json:"match_id" db:"match_id"`
	SenderID  string     `json:"sender_id" db:"sender_id"`
	Content   string     `json:"content" db:"content"`
	ReadAt    *time.Time `json:"read_at" db:"read_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// UnreadCount is the number of unread messages in one match.
type UnreadCount struct {
	MatchID string `json:"match_id" db:"match_id"`
	Count   int    `json:"count" db:"count"`
}
