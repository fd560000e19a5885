package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gamermatch/gamermatch-backend/internal/domain"
	"github.com/gamermatch/gamermatch-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Insert(ctx context.Context, report *domain.Report) error {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	if report.Status == "" {
		report.Status = domain.ReportStatusPending
	}
	query := `
		INSERT INTO reports (id, reporter_id, reported_id, category, description, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query,
		report.ID, report.ReporterID, report.ReportedID,
		report.Category, report.Description, report.Status,
	).Scan(&report.CreatedAt)
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	var report domain.Report
	query := `
		SELECT id, reporter_id, reported_id, category, description, status,
		       admin_notes, resolved_by, resolved_at, created_at
		FROM reports WHERE id = $1
	`
	err := r.db.GetContext(ctx, &report, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) ListPending(ctx context.Context, limit, offset int) ([]*domain.Report, error) {
	var reports []*domain.Report
	query := `
		SELECT id, reporter_id, reported_id, category, description, status,
		       admin_notes, resolved_by, resolved_at, created_at
		FROM reports WHERE status = 'pending'
		ORDER BY created_at ASC
		LIMIT $1 OFFSET $2
	`
	err := r.db.SelectContext(ctx, &reports, query, limit, offset)
	return reports, err
}

func (r *reportRepository) UpdateStatus(ctx context.Context, id string, status domain.ReportStatus, notes *string, resolvedBy string, at time.Time) error {
	query := `
		UPDATE reports
		SET status = $2, admin_notes = $3, resolved_by = $4, resolved_at = $5
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id, status, notes, resolvedBy, at)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}

func (r *reportRepository) ListByReporter(ctx context.Context, reporterID string) ([]*domain.Report, error) {
	var reports []*domain.Report
	query := `
		SELECT id, reporter_id, reported_id, category, description, status,
		       admin_notes, resolved_by, resolved_at, created_at
		FROM reports WHERE reporter_id = $1
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &reports, query, reporterID)
	return reports, err
}

func (r *reportRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM reports WHERE reporter_id = $1 OR reported_id = $1`, userID)
	return err
}

type adminRepository struct {
	db *sqlx.DB
}

func NewAdminRepository(db *sqlx.DB) repository.AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) IsAdmin(ctx context.Context, userID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM admin_users WHERE user_id = $1)`
	err := r.db.GetContext(ctx, &exists, query, userID)
	return exists, err
}

func (r *adminRepository) GetStats(ctx context.Context) (*domain.AdminStats, error) {
	var stats domain.AdminStats
	query := `
		SELECT
			(SELECT COUNT(*) FROM profiles)                              AS total_users,
			(SELECT COUNT(*) FROM profiles WHERE is_active = TRUE)       AS active_users,
			(SELECT COUNT(*) FROM profiles WHERE is_banned = TRUE)       AS banned_users,
			(SELECT COUNT(*) FROM reports WHERE status = 'pending')      AS pending_reports,
			(SELECT COUNT(*) FROM matches WHERE is_active = TRUE)        AS total_matches,
			(SELECT COUNT(*) FROM messages)                              AS total_messages
	`
	err := r.db.GetContext(ctx, &stats, query)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
