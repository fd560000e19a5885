package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gamermatch/gamermatch-backend/internal/domain"
	"github.com/gamermatch/gamermatch-backend/internal/repository"
)

const maxTopGameLength = 60

type UseCase struct {
	profileRepo repository.ProfileRepository
	blockRepo   repository.BlockRepository
}

func NewUseCase(profileRepo repository.ProfileRepository, blockRepo repository.BlockRepository) *UseCase {
	return &UseCase{profileRepo: profileRepo, blockRepo: blockRepo}
}

// CreateProfileRequest completes onboarding in one submission.
type CreateProfileRequest struct {
	DisplayName      string           `json:"display_name" binding:"required"`
	DateOfBirth      time.Time        `json:"date_of_birth" binding:"required"`
	Pronouns         *string          `json:"pronouns"`
	Region           string           `json:"region" binding:"required,region"`
	Bio              *string          `json:"bio"`
	Platforms        []string         `json:"platforms" binding:"required,dive,platform"`
	FavoriteGenres   []string         `json:"favorite_genres" binding:"required,dive,genre"`
	TopGames         []string         `json:"top_games" binding:"required"`
	Playstyle        domain.Playstyle `json:"playstyle" binding:"required,playstyle"`
	VoiceChat        bool             `json:"voice_chat"`
	TypicalPlayTimes []string         `json:"typical_play_times" binding:"omitempty,dive,playtime"`
	PhotoURLs        []string         `json:"photo_urls"`
}

// CompleteOnboarding creates the profile with onboarding marked done.
func (uc *UseCase) CompleteOnboarding(ctx context.Context, userID string, req *CreateProfileRequest) (*domain.Profile, error) {
	if err := validateProfileFields(req); err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		ID:                  userID,
		DisplayName:         strings.TrimSpace(req.DisplayName),
		DateOfBirth:         req.DateOfBirth,
		Pronouns:            req.Pronouns,
		Region:              req.Region,
		Bio:                 req.Bio,
		Platforms:           req.Platforms,
		FavoriteGenres:      req.FavoriteGenres,
		TopGames:            req.TopGames,
		Playstyle:           req.Playstyle,
		VoiceChat:           req.VoiceChat,
		TypicalPlayTimes:    req.TypicalPlayTimes,
		PhotoURLs:           req.PhotoURLs,
		OnboardingCompleted: true,
	}
	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (uc *UseCase) GetMyProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return uc.profileRepo.GetByID(ctx, userID)
}

// GetProfileByID returns another user's profile if it is eligible for
// viewing and no block exists in either direction. A hidden profile is
// indistinguishable from a missing one.
func (uc *UseCase) GetProfileByID(ctx context.Context, viewerID, targetID string) (*domain.Profile, error) {
	profile, err := uc.profileRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if viewerID != targetID {
		if !profile.Eligible() {
			return nil, domain.ErrProfileNotFound
		}
		blocked, err := uc.blockRepo.IsBlocked(ctx, viewerID, targetID)
		if err != nil {
			return nil, fmt.Errorf("failed to check blocks: %w", err)
		}
		if blocked {
			return nil, domain.ErrProfileNotFound
		}
	}
	return profile, nil
}

// UpdateProfileRequest mutates the owning user's profile. Date of birth
// is immutable after onboarding.
type UpdateProfileRequest struct {
	DisplayName      string           `json:"display_name" binding:"required"`
	Pronouns         *string          `json:"pronouns"`
	Region           string           `json:"region" binding:"required,region"`
	Bio              *string          `json:"bio"`
	Platforms        []string         `json:"platforms" binding:"required,dive,platform"`
	FavoriteGenres   []string         `json:"favorite_genres" binding:"required,dive,genre"`
	TopGames         []string         `json:"top_games" binding:"required"`
	Playstyle        domain.Playstyle `json:"playstyle" binding:"required,playstyle"`
	VoiceChat        bool             `json:"voice_chat"`
	TypicalPlayTimes []string         `json:"typical_play_times"`
	PhotoURLs        []string         `json:"photo_urls"`
}

func (uc *UseCase) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*domain.Profile, error) {
	profile, err := uc.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	create := &CreateProfileRequest{
		DisplayName:      req.DisplayName,
		DateOfBirth:      profile.DateOfBirth,
		Pronouns:         req.Pronouns,
		Region:           req.Region,
		Bio:              req.Bio,
		Platforms:        req.Platforms,
		FavoriteGenres:   req.FavoriteGenres,
		TopGames:         req.TopGames,
		Playstyle:        req.Playstyle,
		VoiceChat:        req.VoiceChat,
		TypicalPlayTimes: req.TypicalPlayTimes,
		PhotoURLs:        req.PhotoURLs,
	}
	if err := validateProfileFields(create); err != nil {
		return nil, err
	}

	profile.DisplayName = strings.TrimSpace(req.DisplayName)
	profile.Pronouns = req.Pronouns
	profile.Region = req.Region
	profile.Bio = req.Bio
	profile.Platforms = req.Platforms
	profile.FavoriteGenres = req.FavoriteGenres
	profile.TopGames = req.TopGames
	profile.Playstyle = req.Playstyle
	profile.VoiceChat = req.VoiceChat
	profile.TypicalPlayTimes = req.TypicalPlayTimes
	profile.PhotoURLs = req.PhotoURLs

	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// TouchLastActive bumps the activity timestamp used as discovery
// tiebreak. Failures are ignored by callers; it is best-effort.
func (uc *UseCase) TouchLastActive(ctx context.Context, userID string) error {
	return uc.profileRepo.TouchLastActive(ctx, userID)
}

func validateProfileFields(req *CreateProfileRequest) error {
	name := strings.TrimSpace(req.DisplayName)
	if len(name) < domain.MinDisplayNameLength || len(name) > domain.MaxDisplayNameLength {
		return fmt.Errorf("%w: display name must be %d-%d characters",
			domain.ErrInvalidInput, domain.MinDisplayNameLength, domain.MaxDisplayNameLength)
	}

	age := (&domain.Profile{DateOfBirth: req.DateOfBirth}).Age(time.Now())
	if age < domain.MinAge {
		return fmt.Errorf("%w: must be at least %d years old", domain.ErrInvalidInput, domain.MinAge)
	}

	if req.Pronouns != nil && !domain.ValidPronouns(*req.Pronouns) {
		return fmt.Errorf("%w: unknown pronouns", domain.ErrInvalidInput)
	}
	if !domain.ValidRegion(req.Region) {
		return fmt.Errorf("%w: unknown region", domain.ErrInvalidInput)
	}
	if req.Bio != nil && len(*req.Bio) > domain.MaxBioLength {
		return fmt.Errorf("%w: bio exceeds %d characters", domain.ErrInvalidInput, domain.MaxBioLength)
	}

	if len(req.Platforms) == 0 {
		return fmt.Errorf("%w: at least one platform required", domain.ErrInvalidInput)
	}
	for _, p := range req.Platforms {
		if !domain.ValidPlatform(p) {
			return fmt.Errorf("%w: unknown platform %q", domain.ErrInvalidInput, p)
		}
	}

	if len(req.FavoriteGenres) == 0 || len(req.FavoriteGenres) > domain.MaxGenres {
		return fmt.Errorf("%w: 1-%d favorite genres required", domain.ErrInvalidInput, domain.MaxGenres)
	}
	for _, g := range req.FavoriteGenres {
		if !domain.ValidGenre(g) {
			return fmt.Errorf("%w: unknown genre %q", domain.ErrInvalidInput, g)
		}
	}

	if len(req.TopGames) == 0 || len(req.TopGames) > domain.MaxTopGames {
		return fmt.Errorf("%w: 1-%d top games required", domain.ErrInvalidInput, domain.MaxTopGames)
	}
	for _, g := range req.TopGames {
		if strings.TrimSpace(g) == "" || len(g) > maxTopGameLength {
			return fmt.Errorf("%w: top game names must be 1-%d characters", domain.ErrInvalidInput, maxTopGameLength)
		}
	}

	if !domain.ValidPlaystyle(req.Playstyle) {
		return fmt.Errorf("%w: unknown playstyle %q", domain.ErrInvalidInput, req.Playstyle)
	}
	for _, t := range req.TypicalPlayTimes {
		if !domain.ValidPlayTime(t) {
			return fmt.Errorf("%w: unknown play time %q", domain.ErrInvalidInput, t)
		}
	}
	if len(req.PhotoURLs) > domain.MaxPhotos {
		return fmt.Errorf("%w: at most %d photos", domain.ErrInvalidInput, domain.MaxPhotos)
	}
	return nil
}
