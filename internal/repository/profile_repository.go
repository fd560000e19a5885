package repository

import (
	"context"

	"github.com/gamermatch/gamermatch-backend/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	// QueryCandidates returns active, unbanned, fully onboarded profiles
	// excluding the viewer and every id in excludeIDs. Attribute filtering
	// and scoring happen in the discovery usecase, not here.
	QueryCandidates(ctx context.Context, viewerID string, excludeIDs []string) ([]*domain.Profile, error)
	SetActive(ctx context.Context, id string, active bool) error
	SetBanned(ctx context.Context, id string, banned bool) error
	TouchLastActive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
