package swipe

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamermatch/gamermatch-backend/internal/domain"
)

type memSwipeRepo struct {
	mu     sync.Mutex
	swipes map[[2]string]domain.SwipeAction
}

func newMemSwipeRepo() *memSwipeRepo {
	return &memSwipeRepo{swipes: make(map[[2]string]domain.SwipeAction)}
}

func (m *memSwipeRepo) Insert(ctx context.Context, s *domain.Swipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]string{s.SwiperID, s.SwipedID}
	if _, ok := m.swipes[key]; ok {
		return domain.ErrDuplicateSwipe
	}
	m.swipes[key] = s.Action
	s.ID = uuid.NewString()
	s.CreatedAt = time.Now()
	return nil
}

func (m *memSwipeRepo) ExistsLike(ctx context.Context, swiperID, swipedID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.swipes[[2]string{swiperID, swipedID}] == domain.SwipeActionLike, nil
}

func (m *memSwipeRepo) SwipedIDs(ctx context.Context, swiperID string) ([]string, error) {
	return nil, nil
}
func (m *memSwipeRepo) ListBySwiper(ctx context.Context, swiperID string) ([]*domain.Swipe, error) {
	return nil, nil
}
func (m *memSwipeRepo) MutualLikePairs(ctx context.Context) ([][2]string, error) { return nil, nil }
func (m *memSwipeRepo) DeleteByUser(ctx context.Context, userID string) error    { return nil }

type memMatchRepo struct {
	mu      sync.Mutex
	matches map[[2]string]*domain.Match
}

func newMemMatchRepo() *memMatchRepo {
	return &memMatchRepo{matches: make(map[[2]string]*domain.Match)}
}

func (m *memMatchRepo) UpsertIfAbsent(ctx context.Context, userA, userB string) (*domain.Match, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u1, u2 := domain.CanonicalPair(userA, userB)
	key := [2]string{u1, u2}
	if existing, ok := m.matches[key]; ok {
		existing.IsActive = true
		return existing, false, nil
	}
	match := &domain.Match{
		ID:        uuid.NewString(),
		User1ID:   u1,
		User2ID:   u2,
		MatchedAt: time.Now(),
		IsActive:  true,
	}
	m.matches[key] = match
	return match, true, nil
}

func (m *memMatchRepo) GetByID(ctx context.Context, id string) (*domain.Match, error) {
	return nil, domain.ErrMatchNotFound
}
func (m *memMatchRepo) GetByUsers(ctx context.Context, userA, userB string) (*domain.Match, error) {
	return nil, domain.ErrMatchNotFound
}
func (m *memMatchRepo) ListActive(ctx context.Context, userID string) ([]*domain.Match, error) {
	return nil, nil
}
func (m *memMatchRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Match, error) {
	return nil, nil
}
func (m *memMatchRepo) Deactivate(ctx context.Context, userA, userB, actorID string, at time.Time) error {
	return nil
}
func (m *memMatchRepo) DeactivateAllForUser(ctx context.Context, userID, actorID string, at time.Time) error {
	return nil
}
func (m *memMatchRepo) DeleteByUser(ctx context.Context, userID string) error { return nil }

type memProfileRepo struct {
	profiles map[string]*domain.Profile
}

func (m *memProfileRepo) Create(ctx context.Context, p *domain.Profile) error { return nil }
func (m *memProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}
func (m *memProfileRepo) Update(ctx context.Context, p *domain.Profile) error { return nil }
func (m *memProfileRepo) QueryCandidates(ctx context.Context, viewerID string, excludeIDs []string) ([]*domain.Profile, error) {
	return nil, nil
}
func (m *memProfileRepo) SetActive(ctx context.Context, id string, active bool) error { return nil }
func (m *memProfileRepo) SetBanned(ctx context.Context, id string, banned bool) error { return nil }
func (m *memProfileRepo) TouchLastActive(ctx context.Context, id string) error        { return nil }
func (m *memProfileRepo) Delete(ctx context.Context, id string) error                 { return nil }

type memBlockRepo struct {
	pairs map[[2]string]bool
}

func (m *memBlockRepo) Create(ctx context.Context, b *domain.Block) error             { return nil }
func (m *memBlockRepo) Delete(ctx context.Context, blockerID, blockedID string) error { return nil }
func (m *memBlockRepo) IsBlocked(ctx context.Context, a, b string) (bool, error) {
	return m.pairs[[2]string{a, b}] || m.pairs[[2]string{b, a}], nil
}
func (m *memBlockRepo) ListByBlocker(ctx context.Context, blockerID string) ([]*domain.Block, error) {
	return nil, nil
}
func (m *memBlockRepo) BlockedIDs(ctx context.Context, userID string) ([]string, error) {
	return nil, nil
}
func (m *memBlockRepo) DeleteByUser(ctx context.Context, userID string) error { return nil }

type memLimiter struct {
	mu     sync.Mutex
	counts map[string]int
}

func (m *memLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = make(map[string]int)
	}
	m.counts[key]++
	return m.counts[key] <= limit, nil
}

func eligible(id string) *domain.Profile {
	return &domain.Profile{
		ID:                  id,
		IsActive:            true,
		OnboardingCompleted: true,
	}
}

type fixture struct {
	uc       *UseCase
	swipes   *memSwipeRepo
	matches  *memMatchRepo
	profiles *memProfileRepo
	blocks   *memBlockRepo
}

func newFixture(ids ...string) *fixture {
	profiles := &memProfileRepo{profiles: make(map[string]*domain.Profile)}
	for _, id := range ids {
		profiles.profiles[id] = eligible(id)
	}
	f := &fixture{
		swipes:   newMemSwipeRepo(),
		matches:  newMemMatchRepo(),
		profiles: profiles,
		blocks:   &memBlockRepo{pairs: make(map[[2]string]bool)},
	}
	f.uc = NewUseCase(f.swipes, f.matches, f.profiles, f.blocks, nil, zerolog.Nop())
	return f
}

func TestRecordSwipeRejectsSelf(t *testing.T) {
	f := newFixture("a")
	_, err := f.uc.RecordSwipe(context.Background(), "a", &SwipeRequest{SwipedID: "a", Action: domain.SwipeActionLike})
	assert.ErrorIs(t, err, domain.ErrCannotSwipeSelf)
}

func TestRecordSwipeRejectsUnknownAction(t *testing.T) {
	f := newFixture("a", "b")
	_, err := f.uc.RecordSwipe(context.Background(), "a", &SwipeRequest{SwipedID: "b", Action: "superlike"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordSwipeDuplicateConflicts(t *testing.T) {
	f := newFixture("a", "b")
	ctx := context.Background()

	first, err := f.uc.RecordSwipe(ctx, "a", &SwipeRequest{SwipedID: "b", Action: domain.SwipeActionPass})
	require.NoError(t, err)
	assert.True(t, first.Created)

	// Same pair again, even with the opposite action.
	_, err = f.uc.RecordSwipe(ctx, "a", &SwipeRequest{SwipedID: "b", Action: domain.SwipeActionLike})
	assert.ErrorIs(t, err, domain.ErrDuplicateSwipe)
}

func TestRecordSwipePassNeverMatches(t *testing.T) {
	f := newFixture("a", "b")
	ctx := context.Background()

	_, err := f.uc.RecordSwipe(ctx, "b", &SwipeRequest{SwipedID: "a", Action: domain.SwipeActionLike})
	require.NoError(t, err)

	resp, err := f.uc.RecordSwipe(ctx, "a", &SwipeRequest{SwipedID: "b", Action: domain.SwipeActionPass})
	require.NoError(t, err)
	assert.True(t, resp.Created)
	assert.False(t, resp.IsMatch)
	assert.Empty(t, f.matches.matches)
}

func TestRecordSwipeMutualLikeCreatesMatch(t *testing.T) {
	f := newFixture("a", "b")
	ctx := context.Background()

	first, err := f.uc.RecordSwipe(ctx, "a", &SwipeRequest{SwipedID: "b", Action: domain.SwipeActionLike})
	require.NoError(t, err)
	assert.False(t, first.IsMatch, "one-sided like must not match")

	second, err := f.uc.RecordSwipe(ctx, "b", &SwipeRequest{SwipedID: "a", Action: domain.SwipeActionLike})
	require.NoError(t, err)
	assert.True(t, second.IsMatch)
	require.NotNil(t, second.Match)
	assert.Equal(t, "a", second.Match.User1ID)
	assert.Equal(t, "b", second.Match.User2ID)
	require.NotNil(t, second.MatchedProfile)
	assert.Equal(t, "a", second.MatchedProfile.ID)
	assert.Len(t, f.matches.matches, 1)
}

func TestRecordSwipeBlockedPair(t *testing.T) {
	f := newFixture("a", "b")
	f.blocks.pairs[[2]string{"b", "a"}] = true

	_, err := f.uc.RecordSwipe(context.Background(), "a", &SwipeRequest{SwipedID: "b", Action: domain.SwipeActionLike})
	assert.ErrorIs(t, err, domain.ErrProfileNotEligible)
}

func TestRecordSwipeIneligibleTarget(t *testing.T) {
	f := newFixture("a", "b")
	f.profiles.profiles["b"].IsBanned = true

	_, err := f.uc.RecordSwipe(context.Background(), "a", &SwipeRequest{SwipedID: "b", Action: domain.SwipeActionLike})
	assert.ErrorIs(t, err, domain.ErrProfileNotEligible)
}

func TestRecordSwipeRateLimited(t *testing.T) {
	f := newFixture("a", "b", "c")
	limiter := &memLimiter{counts: map[string]int{"swipe:a": domain.MaxSwipesPerHour - 1}}
	f.uc = NewUseCase(f.swipes, f.matches, f.profiles, f.blocks, limiter, zerolog.Nop())
	ctx := context.Background()

	_, err := f.uc.RecordSwipe(ctx, "a", &SwipeRequest{SwipedID: "b", Action: domain.SwipeActionPass})
	require.NoError(t, err)

	_, err = f.uc.RecordSwipe(ctx, "a", &SwipeRequest{SwipedID: "c", Action: domain.SwipeActionPass})
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

// Two opposing likes racing each other must converge on one match row
// with both sides reporting the match.
func TestRecordSwipeConcurrentOpposingLikes(t *testing.T) {
	f := newFixture("a", "b")
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]*SwipeResponse, 2)
	errs := make([]error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		results[0], errs[0] = f.uc.RecordSwipe(ctx, "a", &SwipeRequest{SwipedID: "b", Action: domain.SwipeActionLike})
	}()
	go func() {
		defer wg.Done()
		results[1], errs[1] = f.uc.RecordSwipe(ctx, "b", &SwipeRequest{SwipedID: "a", Action: domain.SwipeActionLike})
	}()
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Len(t, f.matches.matches, 1, "exactly one match row for the pair")

	matched := 0
	for _, r := range results {
		if r.IsMatch {
			matched++
			assert.Equal(t, "a", r.Match.User1ID)
			assert.Equal(t, "b", r.Match.User2ID)
		}
	}
	// Depending on interleaving at least the later like sees the match;
	// when both reach the upsert both report it.
	assert.GreaterOrEqual(t, matched, 1)
}
