package swipe

import (
	"context"
	"fmt"
	"time"

	"github.com/gamermatch/gamermatch-backend/internal/domain"
	"github.com/gamermatch/gamermatch-backend/internal/repository"
	"github.com/rs/zerolog"
)

type UseCase struct {
	swipeRepo   repository.SwipeRepository
	matchRepo   repository.MatchRepository
	profileRepo repository.ProfileRepository
	blockRepo   repository.BlockRepository
	limiter     repository.RateLimiter
	log         zerolog.Logger
}

func NewUseCase(
	swipeRepo repository.SwipeRepository,
	matchRepo repository.MatchRepository,
	profileRepo repository.ProfileRepository,
	blockRepo repository.BlockRepository,
	limiter repository.RateLimiter,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		swipeRepo:   swipeRepo,
		matchRepo:   matchRepo,
		profileRepo: profileRepo,
		blockRepo:   blockRepo,
		limiter:     limiter,
		log:         log,
	}
}

// SwipeRequest is one like/pass decision.
type SwipeRequest struct {
	SwipedID string             `json:"swiped_id" binding:"required"`
	Action   domain.SwipeAction `json:"action" binding:"required,swipe_action"`
}

// SwipeResponse reports whether the swipe was recorded and whether it
// completed a mutual match.
type SwipeResponse struct {
	Created        bool            `json:"created"`
	IsMatch        bool            `json:"is_match"`
	Match          *domain.Match   `json:"match,omitempty"`
	MatchedProfile *domain.Profile `json:"matched_profile,omitempty"`
}

// RecordSwipe inserts the swipe and, for a like, adjudicates match
// creation. The swipe row is the source of truth: if match
// materialization fails after a successful insert the swipe stays and
// the reconciliation sweep re-derives the match later.
func (uc *UseCase) RecordSwipe(ctx context.Context, swiperID string, req *SwipeRequest) (*SwipeResponse, error) {
	if !domain.ValidSwipeAction(req.Action) {
		return nil, fmt.Errorf("%w: action %q", domain.ErrInvalidInput, req.Action)
	}
	if swiperID == req.SwipedID {
		return nil, domain.ErrCannotSwipeSelf
	}

	if uc.limiter != nil {
		allowed, err := uc.limiter.Allow(ctx, "swipe:"+swiperID, domain.MaxSwipesPerHour, time.Hour)
		if err != nil {
			uc.log.Warn().Err(err).Msg("swipe rate limit check failed, allowing")
		} else if !allowed {
			return nil, domain.ErrRateLimited
		}
	}

	target, err := uc.profileRepo.GetByID(ctx, req.SwipedID)
	if err != nil {
		return nil, err
	}
	if !target.Eligible() {
		return nil, domain.ErrProfileNotEligible
	}

	blocked, err := uc.blockRepo.IsBlocked(ctx, swiperID, req.SwipedID)
	if err != nil {
		return nil, fmt.Errorf("failed to check blocks: %w", err)
	}
	if blocked {
		// A blocked pair can never produce a match, stale opposing likes
		// included.
		return nil, domain.ErrProfileNotEligible
	}

	swipe := &domain.Swipe{
		SwiperID: swiperID,
		SwipedID: req.SwipedID,
		Action:   req.Action,
	}
	if err := uc.swipeRepo.Insert(ctx, swipe); err != nil {
		// ErrDuplicateSwipe passes through: the pair is already decided,
		// the caller surfaces it as a benign state.
		return nil, err
	}
	_ = uc.profileRepo.TouchLastActive(ctx, swiperID)

	response := &SwipeResponse{Created: true}
	if req.Action != domain.SwipeActionLike {
		return response, nil
	}

	reverseLike, err := uc.swipeRepo.ExistsLike(ctx, req.SwipedID, swiperID)
	if err != nil {
		uc.log.Error().Err(err).
			Str("swiper_id", swiperID).
			Str("swiped_id", req.SwipedID).
			Msg("mutual like check failed after swipe insert")
		return response, nil
	}
	if !reverseLike {
		return response, nil
	}

	match, created, err := uc.matchRepo.UpsertIfAbsent(ctx, swiperID, req.SwipedID)
	if err != nil {
		uc.log.Error().Err(err).
			Str("swiper_id", swiperID).
			Str("swiped_id", req.SwipedID).
			Msg("match creation failed, swipe kept for reconciliation")
		return response, nil
	}

	// Whether this request created the row or lost the race and observed
	// it, the user sees a match.
	response.IsMatch = true
	response.Match = match
	response.MatchedProfile = target
	if created {
		uc.log.Info().
			Str("match_id", match.ID).
			Str("user1_id", match.User1ID).
			Str("user2_id", match.User2ID).
			Msg("match created")
	}
	return response, nil
}
