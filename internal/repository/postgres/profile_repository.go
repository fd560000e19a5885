package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gamermatch/gamermatch-backend/internal/domain"
	"github.com/gamermatch/gamermatch-backend/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const profileColumns = `
	id, display_name, date_of_birth, pronouns, region, bio,
	platforms, favorite_genres, top_games, playstyle, voice_chat,
	typical_play_times, photo_urls, is_active, is_banned,
	onboarding_completed, last_active_at, created_at, updated_at
`

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (
			id, display_name, date_of_birth, pronouns, region, bio,
			platforms, favorite_genres, top_games, playstyle, voice_chat,
			typical_play_times, photo_urls, onboarding_completed
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING is_active, is_banned, last_active_at, created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.ID, profile.DisplayName, profile.DateOfBirth, profile.Pronouns,
		profile.Region, profile.Bio, pq.Array(profile.Platforms),
		pq.Array(profile.FavoriteGenres), pq.Array(profile.TopGames),
		profile.Playstyle, profile.VoiceChat, pq.Array(profile.TypicalPlayTimes),
		pq.Array(profile.PhotoURLs), profile.OnboardingCompleted,
	).Scan(&profile.IsActive, &profile.IsBanned, &profile.LastActiveAt, &profile.CreatedAt, &profile.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.ErrProfileAlreadyExists
	}
	return err
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	profile, err := scanProfile(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET display_name = $1, pronouns = $2, region = $3, bio = $4,
		    platforms = $5, favorite_genres = $6, top_games = $7,
		    playstyle = $8, voice_chat = $9, typical_play_times = $10,
		    photo_urls = $11, onboarding_completed = $12,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $13
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.DisplayName, profile.Pronouns, profile.Region, profile.Bio,
		pq.Array(profile.Platforms), pq.Array(profile.FavoriteGenres),
		pq.Array(profile.TopGames), profile.Playstyle, profile.VoiceChat,
		pq.Array(profile.TypicalPlayTimes), pq.Array(profile.PhotoURLs),
		profile.OnboardingCompleted, profile.ID,
	).Scan(&profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProfileNotFound
	}
	return err
}

func (r *profileRepository) QueryCandidates(ctx context.Context, viewerID string, excludeIDs []string) ([]*domain.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE id <> $1
		  AND is_active = TRUE
		  AND is_banned = FALSE
		  AND onboarding_completed = TRUE
	`
	args := []interface{}{viewerID}
	if len(excludeIDs) > 0 {
		query += ` AND id <> ALL($2)`
		args = append(args, pq.Array(excludeIDs))
	}
	query += ` ORDER BY last_active_at DESC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

func (r *profileRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.setFlag(ctx, id, "is_active", active)
}

func (r *profileRepository) SetBanned(ctx context.Context, id string, banned bool) error {
	return r.setFlag(ctx, id, "is_banned", banned)
}

func (r *profileRepository) setFlag(ctx context.Context, id, column string, value bool) error {
	query := fmt.Sprintf(`UPDATE profiles SET %s = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`, column)
	result, err := r.db.ExecContext(ctx, query, value, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) TouchLastActive(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET last_active_at = CURRENT_TIMESTAMP WHERE id = $1`, id)
	return err
}

func (r *profileRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanProfile scans one profile row; pq.Array is required for the text[]
// columns, sqlx struct scanning does not handle them.
func scanProfile(row rowScanner) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(
		&p.ID, &p.DisplayName, &p.DateOfBirth, &p.Pronouns, &p.Region, &p.Bio,
		pq.Array(&p.Platforms), pq.Array(&p.FavoriteGenres), pq.Array(&p.TopGames),
		&p.Playstyle, &p.VoiceChat, pq.Array(&p.TypicalPlayTimes),
		pq.Array(&p.PhotoURLs), &p.IsActive, &p.IsBanned,
		&p.OnboardingCompleted, &p.LastActiveAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
