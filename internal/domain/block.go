package domain

import "time"

// Block is one-directional: blocker no longer sees or is seen by blocked.
// Exclusion checks treat it as symmetric.
type Block struct {
	ID        string    `json:"id" db:"id"`
	BlockerID string    `json:"blocker_id" db:"blocker_id"`
	BlockedID string    `json:"blocked_id" db:"blocked_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
