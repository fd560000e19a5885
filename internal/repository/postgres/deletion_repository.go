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

type deletionRepository struct {
	db *sqlx.DB
}

func NewDeletionRepository(db *sqlx.DB) repository.DeletionRepository {
	return &deletionRepository{db: db}
}

func (r *deletionRepository) Insert(ctx context.Context, req *domain.DeletionRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	query := `
		INSERT INTO deletion_requests (id, user_id, requested_at, scheduled_deletion_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, req.ID, req.UserID, req.RequestedAt, req.ScheduledDeletionAt)
	return err
}

func (r *deletionRepository) GetPendingByUser(ctx context.Context, userID string) (*domain.DeletionRequest, error) {
	var req domain.DeletionRequest
	query := `
		SELECT id, user_id, requested_at, scheduled_deletion_at, completed_at, cancelled_at
		FROM deletion_requests
		WHERE user_id = $1 AND completed_at IS NULL AND cancelled_at IS NULL
		ORDER BY requested_at DESC LIMIT 1
	`
	err := r.db.GetContext(ctx, &req, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDeletionNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *deletionRepository) Cancel(ctx context.Context, id string, at time.Time) error {
	return r.stamp(ctx, id, "cancelled_at", at)
}

func (r *deletionRepository) Complete(ctx context.Context, id string, at time.Time) error {
	return r.stamp(ctx, id, "completed_at", at)
}

func (r *deletionRepository) stamp(ctx context.Context, id, column string, at time.Time) error {
	query := `
		UPDATE deletion_requests SET ` + column + ` = $2
		WHERE id = $1 AND completed_at IS NULL AND cancelled_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, id, at)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrDeletionNotFound
	}
	return nil
}

func (r *deletionRepository) ListDue(ctx context.Context, now time.Time) ([]*domain.DeletionRequest, error) {
	var reqs []*domain.DeletionRequest
	query := `
		SELECT id, user_id, requested_at, scheduled_deletion_at, completed_at, cancelled_at
		FROM deletion_requests
		WHERE completed_at IS NULL AND cancelled_at IS NULL
		  AND scheduled_deletion_at <= $1
		ORDER BY scheduled_deletion_at ASC
	`
	err := r.db.SelectContext(ctx, &reqs, query, now)
	return reqs, err
}
