package repository

import (
	"context"

	"github.com/gamermatch/gamermatch-backend/internal/domain"
)

type SwipeRepository interface {
	// Insert records a swipe. A repeat for the same ordered pair returns
	// domain.ErrDuplicateSwipe; swipes are never updated or upserted.
	Insert(ctx context.Context, swipe *domain.Swipe) error
	ExistsLike(ctx context.Context, swiperID, swipedID string) (bool, error)
	// SwipedIDs returns every id the swiper has decided on, either action.
	SwipedIDs(ctx context.Context, swiperID string) ([]string, error)
	ListBySwiper(ctx context.Context, swiperID string) ([]*domain.Swipe, error)
	// MutualLikePairs returns canonical (user1, user2) pairs with opposing
	// like swipes but no match row. Feeds the reconciliation sweep.
	MutualLikePairs(ctx context.Context) ([][2]string, error)
	DeleteByUser(ctx context.Context, userID string) error
}
