package domain

import "time"

// SwipeAction is a one-directional decision about another profile.
type SwipeAction string

const (
	SwipeActionLike SwipeAction = "like"
	SwipeActionPass SwipeAction = "pass"
)

func ValidSwipeAction(a SwipeAction) bool {
	return a == SwipeActionLike || a == SwipeActionPass
}

// Swipe is immutable once recorded. At most one swipe exists per ordered
// (swiper, swiped) pair; a repeat attempt is a conflict, not an update.
type Swipe struct {
	ID        string      `json:"id" db:"id"`
	SwiperID  string      `json:"swiper_id" db:"swiper_id"`
	SwipedID  string      `json:"swiped_id" db:"swiped_id"`
	Action    SwipeAction `json:"action" db:"action"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}
