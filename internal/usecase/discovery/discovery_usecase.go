package discovery

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/gamermatch/gamermatch-backend/internal/domain"
	"github.com/gamermatch/gamermatch-backend/internal/repository"
)

// Score weights. Overlap terms sum over the whole intersection, uncapped.
const (
	scorePerSharedPlatform = 2
	scorePerSharedGenre    = 1
	scorePlaystyleMatch    = 3
	scoreVoiceChatMatch    = 2
)

type UseCase struct {
	profileRepo repository.ProfileRepository
	swipeRepo   repository.SwipeRepository
	blockRepo   repository.BlockRepository
}

func NewUseCase(
	profileRepo repository.ProfileRepository,
	swipeRepo repository.SwipeRepository,
	blockRepo repository.BlockRepository,
) *UseCase {
	return &UseCase{
		profileRepo: profileRepo,
		swipeRepo:   swipeRepo,
		blockRepo:   blockRepo,
	}
}

// Filters narrow the candidate pool. Empty slices and nil pointers mean
// "don't filter on this attribute"; set filters are AND-combined.
type Filters struct {
	Platforms []string          `json:"platforms"`
	Genres    []string          `json:"genres"`
	Playstyle *domain.Playstyle `json:"playstyle"`
	VoiceChat *bool             `json:"voice_chat"`
	Regions   []string          `json:"regions"`
}

// Validate rejects unknown enum values before any persistence call.
func (f *Filters) Validate() error {
	if f == nil {
		return nil
	}
	for _, p := range f.Platforms {
		if !domain.ValidPlatform(p) {
			return fmt.Errorf("%w: platform %q", domain.ErrInvalidFilter, p)
		}
	}
	for _, g := range f.Genres {
		if !domain.ValidGenre(g) {
			return fmt.Errorf("%w: genre %q", domain.ErrInvalidFilter, g)
		}
	}
	if f.Playstyle != nil && !domain.ValidPlaystyle(*f.Playstyle) {
		return fmt.Errorf("%w: playstyle %q", domain.ErrInvalidFilter, *f.Playstyle)
	}
	for _, r := range f.Regions {
		if !domain.ValidRegion(r) {
			return fmt.Errorf("%w: region %q", domain.ErrInvalidFilter, r)
		}
	}
	return nil
}

// Candidate is one discovery result.
type Candidate struct {
	Profile            *domain.Profile `json:"profile"`
	Age                int             `json:"age"`
	CompatibilityScore int             `json:"compatibility_score"`
}

// GetCandidates returns the viewer's ranked discovery page. Pagination is
// plain offset over the ranked pool; pages stay consistent only while the
// pool is unchanged between calls.
func (uc *UseCase) GetCandidates(ctx context.Context, viewerID string, filters *Filters, limit, offset int) ([]*Candidate, error) {
	if err := filters.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = domain.DiscoveryPageSize
	}
	if offset < 0 {
		offset = 0
	}

	viewer, err := uc.profileRepo.GetByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if !viewer.Eligible() {
		return nil, domain.ErrProfileNotEligible
	}

	// Browsing counts as activity; recency feeds the ranking tiebreak.
	_ = uc.profileRepo.TouchLastActive(ctx, viewerID)

	swipedIDs, err := uc.swipeRepo.SwipedIDs(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load swipe history: %w", err)
	}
	blockedIDs, err := uc.blockRepo.BlockedIDs(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load blocks: %w", err)
	}

	excludeIDs := make([]string, 0, len(swipedIDs)+len(blockedIDs))
	excludeIDs = append(excludeIDs, swipedIDs...)
	excludeIDs = append(excludeIDs, blockedIDs...)

	pool, err := uc.profileRepo.QueryCandidates(ctx, viewerID, excludeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}

	ranked := RankCandidates(viewer, pool, filters)

	if offset >= len(ranked) {
		return []*Candidate{}, nil
	}
	end := offset + limit
	if end > len(ranked) {
		end = len(ranked)
	}

	now := time.Now()
	page := make([]*Candidate, 0, end-offset)
	for _, rc := range ranked[offset:end] {
		page = append(page, &Candidate{
			Profile:            rc.Profile,
			Age:                rc.Profile.Age(now),
			CompatibilityScore: rc.Score,
		})
	}
	return page, nil
}

// Ranked pairs a candidate profile with its compatibility score.
type Ranked struct {
	Profile *domain.Profile
	Score   int
}

// RankCandidates filters the pool, scores each survivor against the
// viewer and sorts by score descending. Ties break on last_active_at
// descending then id ascending, so ordering is deterministic and stable
// within a page. Candidates that are ineligible, or equal to the viewer,
// are dropped regardless of filters; swiped and blocked ids are expected
// to be excluded from the pool already, but are dropped here too if a
// caller passes them in.
func RankCandidates(viewer *domain.Profile, pool []*domain.Profile, filters *Filters) []*Ranked {
	ranked := make([]*Ranked, 0, len(pool))
	for _, candidate := range pool {
		if candidate.ID == viewer.ID || !candidate.Eligible() {
			continue
		}
		if !MatchesFilters(candidate, filters) {
			continue
		}
		ranked = append(ranked, &Ranked{
			Profile: candidate,
			Score:   CompatibilityScore(viewer, candidate),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if !ranked[i].Profile.LastActiveAt.Equal(ranked[j].Profile.LastActiveAt) {
			return ranked[i].Profile.LastActiveAt.After(ranked[j].Profile.LastActiveAt)
		}
		return ranked[i].Profile.ID < ranked[j].Profile.ID
	})
	return ranked
}

// MatchesFilters applies the caller-supplied predicate, AND-combined.
func MatchesFilters(candidate *domain.Profile, filters *Filters) bool {
	if filters == nil {
		return true
	}
	if len(filters.Platforms) > 0 && !intersects(candidate.Platforms, filters.Platforms) {
		return false
	}
	if len(filters.Genres) > 0 && !intersects(candidate.FavoriteGenres, filters.Genres) {
		return false
	}
	if filters.Playstyle != nil && candidate.Playstyle != *filters.Playstyle {
		return false
	}
	if filters.VoiceChat != nil && candidate.VoiceChat != *filters.VoiceChat {
		return false
	}
	if len(filters.Regions) > 0 && !contains(filters.Regions, candidate.Region) {
		return false
	}
	return true
}

// CompatibilityScore is the integer ranking signal between two profiles:
// +2 per shared platform, +1 per shared favorite genre, +3 for equal
// playstyle, +2 for equal voice-chat preference. Non-negative, uncapped.
func CompatibilityScore(viewer, candidate *domain.Profile) int {
	score := sharedCount(viewer.Platforms, candidate.Platforms) * scorePerSharedPlatform
	score += sharedCount(viewer.FavoriteGenres, candidate.FavoriteGenres) * scorePerSharedGenre
	if viewer.Playstyle == candidate.Playstyle {
		score += scorePlaystyleMatch
	}
	if viewer.VoiceChat == candidate.VoiceChat {
		score += scoreVoiceChatMatch
	}
	return score
}

func sharedCount(a, b []string) int {
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	n := 0
	for _, v := range b {
		if _, ok := set[v]; ok {
			n++
			delete(set, v) // duplicates in b count once
		}
	}
	return n
}

func intersects(a, b []string) bool {
	for _, v := range b {
		for _, w := range a {
			if v == w {
				return true
			}
		}
	}
	return false
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
