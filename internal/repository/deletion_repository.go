package repository

import (
	"context"
	"time"

	"github.com/gamermatch/gamermatch-backend/internal/domain"
)

type DeletionRepository interface {
	Insert(ctx context.Context, req *domain.DeletionRequest) error
	GetPendingByUser(ctx context.Context, userID string) (*domain.DeletionRequest, error)
	Cancel(ctx context.Context, id string, at time.Time) error
	Complete(ctx context.Context, id string, at time.Time) error
	// ListDue returns pending requests whose scheduled deletion time has
	// passed. Consumed by the retention sweep.
	ListDue(ctx context.Context, now time.Time) ([]*domain.DeletionRequest, error)
}
