package postgres

import (
	"context"

	"github.com/gamermatch/gamermatch-backend/internal/domain"
	"github.com/gamermatch/gamermatch-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type swipeRepository struct {
	db *sqlx.DB
}

func NewSwipeRepository(db *sqlx.DB) repository.SwipeRepository {
	return &swipeRepository{db: db}
}

func (r *swipeRepository) Insert(ctx context.Context, swipe *domain.Swipe) error {
	if swipe.ID == "" {
		swipe.ID = uuid.NewString()
	}
	query := `
		INSERT INTO swipes (id, swiper_id, swiped_id, action)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, swipe.ID, swipe.SwiperID, swipe.SwipedID, swipe.Action).
		Scan(&swipe.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateSwipe
	}
	return err
}

func (r *swipeRepository) ExistsLike(ctx context.Context, swiperID, swipedID string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM swipes
			WHERE swiper_id = $1 AND swiped_id = $2 AND action = 'like'
		)
	`
	err := r.db.GetContext(ctx, &exists, query, swiperID, swipedID)
	return exists, err
}

func (r *swipeRepository) SwipedIDs(ctx context.Context, swiperID string) ([]string, error) {
	var ids []string
	query := `SELECT swiped_id FROM swipes WHERE swiper_id = $1`
	err := r.db.SelectContext(ctx, &ids, query, swiperID)
	return ids, err
}

func (r *swipeRepository) ListBySwiper(ctx context.Context, swiperID string) ([]*domain.Swipe, error) {
	var swipes []*domain.Swipe
	query := `
		SELECT id, swiper_id, swiped_id, action, created_at
		FROM swipes WHERE swiper_id = $1
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &swipes, query, swiperID)
	return swipes, err
}

func (r *swipeRepository) MutualLikePairs(ctx context.Context) ([][2]string, error) {
	// Canonical ordering via s1.swiper_id < s1.swiped_id so each mutual
	// pair appears exactly once. Pairs with any match row are skipped,
	// active or not: an unmatched pair must not be resurrected by the
	// reconciliation sweep.
	query := `
		SELECT s1.swiper_id, s1.swiped_id
		FROM swipes s1
		JOIN swipes s2
		  ON s2.swiper_id = s1.swiped_id AND s2.swiped_id = s1.swiper_id
		WHERE s1.action = 'like' AND s2.action = 'like'
		  AND s1.swiper_id < s1.swiped_id
		  AND NOT EXISTS (
			SELECT 1 FROM matches m
			WHERE m.user1_id = s1.swiper_id AND m.user2_id = s1.swiped_id
		  )
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pairs [][2]string
	for rows.Next() {
		var a, b string
		if err := rows.Scan(&a, &b); err != nil {
			return nil, err
		}
		pairs = append(pairs, [2]string{a, b})
	}
	return pairs, rows.Err()
}

func (r *swipeRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM swipes WHERE swiper_id = $1 OR swiped_id = $1`, userID)
	return err
}
