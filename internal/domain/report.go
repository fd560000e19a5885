package domain

import "time"

// ReportStatus is the moderation lifecycle of a report.
type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusReviewing ReportStatus = "reviewing"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusDismissed ReportStatus = "dismissed"
)

func ValidReportStatus(s ReportStatus) bool {
	switch s {
	case ReportStatusPending, ReportStatusReviewing, ReportStatusResolved, ReportStatusDismissed:
		return true
	}
	return false
}

type Report struct {
	ID          string       `json:"id" db:"id"`
	ReporterID  string       `json:"reporter_id" db:"reporter_id"`
	ReportedID  string       `json:"reported_id" db:"reported_id"`
	Category    string       `json:"category" db:"category"`
	Description *string      `json:"description" db:"description"`
	Status      ReportStatus `json:"status" db:"status"`
	AdminNotes  *string      `json:"admin_notes" db:"admin_notes"`
	ResolvedBy  *string      `json:"resolved_by" db:"resolved_by"`
	ResolvedAt  *time.Time   `json:"resolved_at" db:"resolved_at"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
}

// AdminStats is the aggregate snapshot shown on the moderation dashboard.
type AdminStats struct {
	TotalUsers     int `json:"total_users" db:"total_users"`
	ActiveUsers    int `json:"active_users" db:"active_users"`
	BannedUsers    int `json:"banned_users" db:"banned_users"`
	PendingReports int `json:"pending_reports" db:"pending_reports"`
	TotalMatches   int `json:"total_matches" db:"total_matches"`
	TotalMessages  int `json:"total_messages" db:"total_messages"`
}
