package repository

import (
	"context"

	"github.com/gamermatch/gamermatch-backend/internal/domain"
)

type BlockRepository interface {
	// Create inserts a block row; a duplicate (blocker, blocked) pair
	// returns domain.ErrAlreadyBlocked.
	Create(ctx context.Context, block *domain.Block) error
	Delete(ctx context.Context, blockerID, blockedID string) error
	// IsBlocked reports whether either direction of a block exists.
	IsBlocked(ctx context.Context, userA, userB string) (bool, error)
	ListByBlocker(ctx context.Context, blockerID string) ([]*domain.Block, error)
	// BlockedIDs returns every id involved in a block with userID, in
	// either direction. Used for discovery exclusion.
	BlockedIDs(ctx context.Context, userID string) ([]string, error)
	DeleteByUser(ctx context.Context, userID string) error
}
