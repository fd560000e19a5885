package postgres

import (
	"context"

	"github.com/gamermatch/gamermatch-backend/internal/domain"
	"github.com/gamermatch/gamermatch-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type blockRepository struct {
	db *sqlx.DB
}

func NewBlockRepository(db *sqlx.DB) repository.BlockRepository {
	return &blockRepository{db: db}
}

func (r *blockRepository) Create(ctx context.Context, block *domain.Block) error {
	if block.ID == "" {
		block.ID = uuid.NewString()
	}
	query := `
		INSERT INTO blocks (id, blocker_id, blocked_id)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, block.ID, block.BlockerID, block.BlockedID).
		Scan(&block.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrAlreadyBlocked
	}
	return err
}

func (r *blockRepository) Delete(ctx context.Context, blockerID, blockedID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM blocks WHERE blocker_id = $1 AND blocked_id = $2`, blockerID, blockedID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrBlockNotFound
	}
	return nil
}

func (r *blockRepository) IsBlocked(ctx context.Context, userA, userB string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM blocks
			WHERE (blocker_id = $1 AND blocked_id = $2)
			   OR (blocker_id = $2 AND blocked_id = $1)
		)
	`
	err := r.db.GetContext(ctx, &exists, query, userA, userB)
	return exists, err
}

func (r *blockRepository) ListByBlocker(ctx context.Context, blockerID string) ([]*domain.Block, error) {
	var blocks []*domain.Block
	query := `
		SELECT id, blocker_id, blocked_id, created_at
		FROM blocks WHERE blocker_id = $1
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &blocks, query, blockerID)
	return blocks, err
}

func (r *blockRepository) BlockedIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	query := `
		SELECT blocked_id FROM blocks WHERE blocker_id = $1
		UNION
		SELECT blocker_id FROM blocks WHERE blocked_id = $1
	`
	err := r.db.SelectContext(ctx, &ids, query, userID)
	return ids, err
}

func (r *blockRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM blocks WHERE blocker_id = $1 OR blocked_id = $1`, userID)
	return err
}
