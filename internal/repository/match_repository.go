package repository

import (
	"context"
	"time"

	"github.com/gamermatch/gamermatch-backend/internal/domain"
)

type MatchRepository interface {
	// UpsertIfAbsent creates or re-activates the match for the canonical
	// pair of the two ids, in either order. It relies on the uniqueness
	// constraint on (user1_id, user2_id) so that two concurrent opposing
	// likes converge on a single row; the second caller observes
	// created=false rather than an error.
	UpsertIfAbsent(ctx context.Context, userA, userB string) (*domain.Match, bool, error)
	GetByID(ctx context.Context, id string) (*domain.Match, error)
	GetByUsers(ctx context.Context, userA, userB string) (*domain.Match, error)
	ListActive(ctx context.Context, userID string) ([]*domain.Match, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Match, error)
	// Deactivate unmatches the canonical pair, recording who did it and when.
	Deactivate(ctx context.Context, userA, userB, actorID string, at time.Time) error
	DeactivateAllForUser(ctx context.Context, userID, actorID string, at time.Time) error
	DeleteByUser(ctx context.Context, userID string) error
}
