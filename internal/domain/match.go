package domain

import "time"

// Match is the mutual connection materialized from two opposing likes.
// User1ID and User2ID are always stored in canonical order
// (lexicographically smaller id first), which is what deduplicates match
// rows no matter which side's like arrived second.
type Match struct {
	ID          string     `json:"id" db:"id"`
	User1ID     string     `json:"user1_id" db:"user1_id"`
	User2ID     string     `json:"user2_id" db:"user2_id"`
	MatchedAt   time.Time  `json:"matched_at" db:"matched_at"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	UnmatchedBy *string    `json:"unmatched_by" db:"unmatched_by"`
	UnmatchedAt *time.Time `json:"unmatched_at" db:"unmatched_at"`
}

// CanonicalPair orders two user ids lexicographically smallest-first.
func CanonicalPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}

func (m *Match) HasUser(userID string) bool {
	return m.User1ID == userID || m.User2ID == userID
}

func (m *Match) OtherUserID(userID string) (string, bool) {
	switch userID {
	case m.User1ID:
		return m.User2ID, true
	case m.User2ID:
		return m.User1ID, true
	}
	return "", false
}
