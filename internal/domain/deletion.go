package domain

import "time"

// DeletionGracePeriod is how long a user has to change their mind before
// the retention sweep hard-deletes their data.
const DeletionGracePeriod = 30 * 24 * time.Hour

// DeletionRequest schedules a GDPR account deletion. The profile is
// soft-disabled immediately; rows are purged by the retention sweep once
// ScheduledDeletionAt passes.
type DeletionRequest struct {
	ID                  string     `json:"id" db:"id"`
	UserID              string     `json:"user_id" db:"user_id"`
	RequestedAt         time.Time  `json:"requested_at" db:"requested_at"`
	ScheduledDeletionAt time.Time  `json:"scheduled_deletion_at" db:"scheduled_deletion_at"`
	CompletedAt         *time.Time `json:"completed_at" db:"completed_at"`
	CancelledAt         *time.Time `json:"cancelled_at" db:"cancelled_at"`
}

// Pending reports whether the request is still actionable.
func (d *DeletionRequest) Pending() bool {
	return d.CompletedAt == nil && d.CancelledAt == nil
}
