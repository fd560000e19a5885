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

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) UpsertIfAbsent(ctx context.Context, userA, userB string) (*domain.Match, bool, error) {
	user1, user2 := domain.CanonicalPair(userA, userB)

	// The unique constraint on (user1_id, user2_id) makes this safe under
	// concurrent execution from both directions: one insert wins, the
	// other takes the conflict branch and observes the existing row.
	// xmax = 0 distinguishes a fresh insert from a conflict update.
	query := `
		INSERT INTO matches (id, user1_id, user2_id, is_active)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (user1_id, user2_id) DO UPDATE
		SET is_active = TRUE,
		    unmatched_by = NULL,
		    unmatched_at = NULL,
		    matched_at = CASE WHEN matches.is_active THEN matches.matched_at ELSE CURRENT_TIMESTAMP END
		RETURNING id, user1_id, user2_id, matched_at, is_active, unmatched_by, unmatched_at, (xmax = 0)
	`
	var match domain.Match
	var created bool
	err := r.db.QueryRowContext(ctx, query, uuid.NewString(), user1, user2).Scan(
		&match.ID, &match.User1ID, &match.User2ID, &match.MatchedAt,
		&match.IsActive, &match.UnmatchedBy, &match.UnmatchedAt, &created,
	)
	if err != nil {
		return nil, false, err
	}
	return &match, created, nil
}

func (r *matchRepository) GetByID(ctx context.Context, id string) (*domain.Match, error) {
	var match domain.Match
	query := `
		SELECT id, user1_id, user2_id, matched_at, is_active, unmatched_by, unmatched_at
		FROM matches WHERE id = $1
	`
	err := r.db.GetContext(ctx, &match, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) GetByUsers(ctx context.Context, userA, userB string) (*domain.Match, error) {
	user1, user2 := domain.CanonicalPair(userA, userB)

	var match domain.Match
	query := `
		SELECT id, user1_id, user2_id, matched_at, is_active, unmatched_by, unmatched_at
		FROM matches WHERE user1_id = $1 AND user2_id = $2
	`
	err := r.db.GetContext(ctx, &match, query, user1, user2)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) ListActive(ctx context.Context, userID string) ([]*domain.Match, error) {
	var matches []*domain.Match
	query := `
		SELECT id, user1_id, user2_id, matched_at, is_active, unmatched_by, unmatched_at
		FROM matches
		WHERE (user1_id = $1 OR user2_id = $1) AND is_active = TRUE
		ORDER BY matched_at DESC
	`
	err := r.db.SelectContext(ctx, &matches, query, userID)
	return matches, err
}

func (r *matchRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Match, error) {
	var matches []*domain.Match
	query := `
		SELECT id, user1_id, user2_id, matched_at, is_active, unmatched_by, unmatched_at
		FROM matches
		WHERE user1_id = $1 OR user2_id = $1
		ORDER BY matched_at DESC
	`
	err := r.db.SelectContext(ctx, &matches, query, userID)
	return matches, err
}

func (r *matchRepository) Deactivate(ctx context.Context, userA, userB, actorID string, at time.Time) error {
	user1, user2 := domain.CanonicalPair(userA, userB)

	query := `
		UPDATE matches
		SET is_active = FALSE, unmatched_by = $3, unmatched_at = $4
		WHERE user1_id = $1 AND user2_id = $2 AND is_active = TRUE
	`
	_, err := r.db.ExecContext(ctx, query, user1, user2, actorID, at)
	return err
}

func (r *matchRepository) DeactivateAllForUser(ctx context.Context, userID, actorID string, at time.Time) error {
	query := `
		UPDATE matches
		SET is_active = FALSE, unmatched_by = $2, unmatched_at = $3
		WHERE (user1_id = $1 OR user2_id = $1) AND is_active = TRUE
	`
	_, err := r.db.ExecContext(ctx, query, userID, actorID, at)
	return err
}

func (r *matchRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM matches WHERE user1_id = $1 OR user2_id = $1`, userID)
	return err
}
