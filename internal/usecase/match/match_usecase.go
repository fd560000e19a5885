package match

import (
	"context"
	"fmt"
	"time"

	"github.com/gamermatch/gamermatch-backend/internal/domain"
	"github.com/gamermatch/gamermatch-backend/internal/infrastructure/genai"
	"github.com/gamermatch/gamermatch-backend/internal/repository"
	"github.com/rs/zerolog"
)

type UseCase struct {
	matchRepo   repository.MatchRepository
	profileRepo repository.ProfileRepository
	blockRepo   repository.BlockRepository
	swipeRepo   repository.SwipeRepository
	genaiClient *genai.Client
	log         zerolog.Logger
}

func NewUseCase(
	matchRepo repository.MatchRepository,
	profileRepo repository.ProfileRepository,
	blockRepo repository.BlockRepository,
	swipeRepo repository.SwipeRepository,
	genaiClient *genai.Client,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		matchRepo:   matchRepo,
		profileRepo: profileRepo,
		blockRepo:   blockRepo,
		swipeRepo:   swipeRepo,
		genaiClient: genaiClient,
		log:         log,
	}
}

// MatchResponse pairs a match with the other member's profile.
type MatchResponse struct {
	ID        string          `json:"id"`
	MatchedAt time.Time       `json:"matched_at"`
	Profile   *domain.Profile `json:"profile"`
}

// GetMatches returns the user's active matches, newest first, with the
// other member's profile attached. Matches whose other profile has gone
// missing are skipped rather than failing the whole list.
func (uc *UseCase) GetMatches(ctx context.Context, userID string) ([]*MatchResponse, error) {
	matches, err := uc.matchRepo.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	responses := make([]*MatchResponse, 0, len(matches))
	for _, m := range matches {
		otherID, ok := m.OtherUserID(userID)
		if !ok {
			continue
		}
		profile, err := uc.profileRepo.GetByID(ctx, otherID)
		if err != nil {
			continue
		}
		responses = append(responses, &MatchResponse{
			ID:        m.ID,
			MatchedAt: m.MatchedAt,
			Profile:   profile,
		})
	}
	return responses, nil
}

// Unmatch deactivates the match for whichever member asks. The row is
// kept with unmatch metadata, never deleted.
func (uc *UseCase) Unmatch(ctx context.Context, matchID, userID string) error {
	m, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return err
	}
	if !m.HasUser(userID) {
		return domain.ErrNotMatchMember
	}
	return uc.matchRepo.Deactivate(ctx, m.User1ID, m.User2ID, userID, time.Now())
}

// SuggestIcebreakers generates chat openers from the two matched
// profiles' shared games and genres. Degrades to static suggestions when
// the generative client is unavailable.
func (uc *UseCase) SuggestIcebreakers(ctx context.Context, matchID, userID string) ([]string, error) {
	m, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !m.HasUser(userID) {
		return nil, domain.ErrNotMatchMember
	}
	otherID, _ := m.OtherUserID(userID)

	mine, err := uc.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	theirs, err := uc.profileRepo.GetByID(ctx, otherID)
	if err != nil {
		return nil, err
	}

	if uc.genaiClient == nil {
		return genai.FallbackIcebreakers(mine, theirs), nil
	}
	return uc.genaiClient.SuggestIcebreakers(ctx, mine, theirs)
}

// Reconcile re-derives matches from mutual like swipes that lack an
// active match row, skipping blocked pairs. Idempotent; safe to run on a
// schedule. Returns how many matches were materialized.
func (uc *UseCase) Reconcile(ctx context.Context) (int, error) {
	pairs, err := uc.swipeRepo.MutualLikePairs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list mutual likes: %w", err)
	}

	created := 0
	for _, pair := range pairs {
		blocked, err := uc.blockRepo.IsBlocked(ctx, pair[0], pair[1])
		if err != nil {
			uc.log.Warn().Err(err).
				Str("user1_id", pair[0]).
				Str("user2_id", pair[1]).
				Msg("reconcile block check failed, skipping pair")
			continue
		}
		if blocked {
			continue
		}
		_, wasCreated, err := uc.matchRepo.UpsertIfAbsent(ctx, pair[0], pair[1])
		if err != nil {
			uc.log.Warn().Err(err).
				Str("user1_id", pair[0]).
				Str("user2_id", pair[1]).
				Msg("reconcile match upsert failed")
			continue
		}
		if wasCreated {
			created++
		}
	}
	if created > 0 {
		uc.log.Info().Int("created", created).Msg("reconciled missing matches")
	}
	return created, nil
}
