package moderation

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamermatch/gamermatch-backend/internal/domain"
)

type fakeBlockRepo struct {
	rows map[[2]string]*domain.Block
}

func newFakeBlockRepo() *fakeBlockRepo {
	return &fakeBlockRepo{rows: make(map[[2]string]*domain.Block)}
}

func (f *fakeBlockRepo) Create(ctx context.Context, b *domain.Block) error {
	key := [2]string{b.BlockerID, b.BlockedID}
	if _, ok := f.rows[key]; ok {
		return domain.ErrAlreadyBlocked
	}
	b.CreatedAt = time.Now()
	f.rows[key] = b
	return nil
}

func (f *fakeBlockRepo) Delete(ctx context.Context, blockerID, blockedID string) error {
	delete(f.rows, [2]string{blockerID, blockedID})
	return nil
}

func (f *fakeBlockRepo) IsBlocked(ctx context.Context, a, b string) (bool, error) {
	_, x := f.rows[[2]string{a, b}]
	_, y := f.rows[[2]string{b, a}]
	return x || y, nil
}

func (f *fakeBlockRepo) ListByBlocker(ctx context.Context, blockerID string) ([]*domain.Block, error) {
	var out []*domain.Block
	for _, b := range f.rows {
		if b.BlockerID == blockerID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBlockRepo) BlockedIDs(ctx context.Context, userID string) ([]string, error) {
	return nil, nil
}
func (f *fakeBlockRepo) DeleteByUser(ctx context.Context, userID string) error { return nil }

type fakeMatchRepo struct {
	deactivations [][2]string
}

func (f *fakeMatchRepo) UpsertIfAbsent(ctx context.Context, a, b string) (*domain.Match, bool, error) {
	return nil, false, nil
}
func (f *fakeMatchRepo) GetByID(ctx context.Context, id string) (*domain.Match, error) {
	return nil, domain.ErrMatchNotFound
}
func (f *fakeMatchRepo) GetByUsers(ctx context.Context, a, b string) (*domain.Match, error) {
	return nil, domain.ErrMatchNotFound
}
func (f *fakeMatchRepo) ListActive(ctx context.Context, userID string) ([]*domain.Match, error) {
	return nil, nil
}
func (f *fakeMatchRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Match, error) {
	return nil, nil
}

func (f *fakeMatchRepo) Deactivate(ctx context.Context, userA, userB, actorID string, at time.Time) error {
	u1, u2 := domain.CanonicalPair(userA, userB)
	f.deactivations = append(f.deactivations, [2]string{u1, u2})
	return nil
}

func (f *fakeMatchRepo) DeactivateAllForUser(ctx context.Context, userID, actorID string, at time.Time) error {
	return nil
}
func (f *fakeMatchRepo) DeleteByUser(ctx context.Context, userID string) error { return nil }

type fakeReportRepo struct {
	reports []*domain.Report
}

func (f *fakeReportRepo) Insert(ctx context.Context, r *domain.Report) error {
	f.reports = append(f.reports, r)
	return nil
}
func (f *fakeReportRepo) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	return nil, domain.ErrReportNotFound
}
func (f *fakeReportRepo) ListPending(ctx context.Context, limit, offset int) ([]*domain.Report, error) {
	return nil, nil
}
func (f *fakeReportRepo) UpdateStatus(ctx context.Context, id string, status domain.ReportStatus, notes *string, resolvedBy string, at time.Time) error {
	return nil
}
func (f *fakeReportRepo) ListByReporter(ctx context.Context, reporterID string) ([]*domain.Report, error) {
	return nil, nil
}
func (f *fakeReportRepo) DeleteByUser(ctx context.Context, userID string) error { return nil }

type fakeProfileRepo struct {
	profiles map[string]*domain.Profile
}

func (f *fakeProfileRepo) Create(ctx context.Context, p *domain.Profile) error { return nil }
func (f *fakeProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}
func (f *fakeProfileRepo) Update(ctx context.Context, p *domain.Profile) error { return nil }
func (f *fakeProfileRepo) QueryCandidates(ctx context.Context, viewerID string, excludeIDs []string) ([]*domain.Profile, error) {
	return nil, nil
}
func (f *fakeProfileRepo) SetActive(ctx context.Context, id string, active bool) error { return nil }
func (f *fakeProfileRepo) SetBanned(ctx context.Context, id string, banned bool) error { return nil }
func (f *fakeProfileRepo) TouchLastActive(ctx context.Context, id string) error        { return nil }
func (f *fakeProfileRepo) Delete(ctx context.Context, id string) error                 { return nil }

type fakeLimiter struct {
	counts map[string]int
}

func (f *fakeLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if f.counts == nil {
		f.counts = make(map[string]int)
	}
	f.counts[key]++
	return f.counts[key] <= limit, nil
}

type fixture struct {
	uc      *UseCase
	blocks  *fakeBlockRepo
	matches *fakeMatchRepo
	reports *fakeReportRepo
	limiter *fakeLimiter
}

func newFixture() *fixture {
	f := &fixture{
		blocks:  newFakeBlockRepo(),
		matches: &fakeMatchRepo{},
		reports: &fakeReportRepo{},
		limiter: &fakeLimiter{},
	}
	profiles := &fakeProfileRepo{profiles: map[string]*domain.Profile{
		"blocked-user": {ID: "blocked-user", DisplayName: "Blocked"},
	}}
	f.uc = NewUseCase(f.blocks, f.matches, f.reports, profiles, f.limiter, zerolog.Nop())
	return f
}

func TestBlockUserRejectsSelf(t *testing.T) {
	f := newFixture()
	err := f.uc.BlockUser(context.Background(), "me", "me")
	assert.ErrorIs(t, err, domain.ErrCannotBlockSelf)
	assert.Empty(t, f.matches.deactivations)
}

func TestBlockUserDeactivatesMatch(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.uc.BlockUser(context.Background(), "bob", "alice"))
	require.Len(t, f.matches.deactivations, 1)
	assert.Equal(t, [2]string{"alice", "bob"}, f.matches.deactivations[0])
}

func TestRepeatBlockIsIdempotentButStillDeactivates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	require.NoError(t, f.uc.BlockUser(ctx, "alice", "bob"))
	require.NoError(t, f.uc.BlockUser(ctx, "alice", "bob"))
	assert.Len(t, f.blocks.rows, 1)
	assert.Len(t, f.matches.deactivations, 2)
}

func TestGetBlockedUsersSkipsMissingProfiles(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	require.NoError(t, f.uc.BlockUser(ctx, "alice", "blocked-user"))
	require.NoError(t, f.uc.BlockUser(ctx, "alice", "ghost"))

	list, err := f.uc.GetBlockedUsers(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "blocked-user", list[0].Profile.ID)
}

func TestReportUserRejectsSelf(t *testing.T) {
	f := newFixture()
	_, err := f.uc.ReportUser(context.Background(), "me", &ReportRequest{
		ReportedID: "me",
		Category:   "harassment",
	})
	assert.ErrorIs(t, err, domain.ErrCannotReportSelf)
}

func TestReportUserRejectsUnknownCategory(t *testing.T) {
	f := newFixture()
	_, err := f.uc.ReportUser(context.Background(), "alice", &ReportRequest{
		ReportedID: "bob",
		Category:   "vibes",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
	assert.Empty(t, f.reports.reports)
}

func TestReportUserTrimsDescription(t *testing.T) {
	f := newFixture()
	report, err := f.uc.ReportUser(context.Background(), "alice", &ReportRequest{
		ReportedID:  "bob",
		Category:    "spam",
		Description: "  keeps linking a shop  ",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusPending, report.Status)
	require.NotNil(t, report.Description)
	assert.Equal(t, "keeps linking a shop", *report.Description)

	report, err = f.uc.ReportUser(context.Background(), "alice", &ReportRequest{
		ReportedID: "carol",
		Category:   "spam",
	})
	require.NoError(t, err)
	assert.Nil(t, report.Description)
}

func TestReportUserRateLimited(t *testing.T) {
	f := newFixture()
	f.limiter.counts = map[string]int{"report:alice": domain.MaxReportsPerDay}

	_, err := f.uc.ReportUser(context.Background(), "alice", &ReportRequest{
		ReportedID: "bob",
		Category:   "spam",
	})
	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.Empty(t, f.reports.reports)
}
