package gdpr

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamermatch/gamermatch-backend/internal/domain"
)

// recorder tracks which per-user purge steps ran, shared by the data
// repo fakes below.
type recorder struct {
	deleted map[string][]string
}

func newRecorder() *recorder {
	return &recorder{deleted: make(map[string][]string)}
}

func (r *recorder) record(userID, what string) {
	r.deleted[userID] = append(r.deleted[userID], what)
}

type fakeUserRepo struct{ rec *recorder }

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error { return nil }
func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	f.rec.record(id, "user")
	return nil
}

type fakeSessionRepo struct{ rec *recorder }

func (f *fakeSessionRepo) Create(ctx context.Context, s *domain.Session) error { return nil }
func (f *fakeSessionRepo) GetByRefreshToken(ctx context.Context, token string) (*domain.Session, error) {
	return nil, domain.ErrSessionNotFound
}
func (f *fakeSessionRepo) Delete(ctx context.Context, id string) error { return nil }
func (f *fakeSessionRepo) DeleteByUser(ctx context.Context, userID string) error {
	f.rec.record(userID, "sessions")
	return nil
}

type fakeProfileRepo struct {
	rec    *recorder
	active map[string]bool
}

func (f *fakeProfileRepo) Create(ctx context.Context, p *domain.Profile) error { return nil }
func (f *fakeProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	if active, ok := f.active[id]; ok {
		return &domain.Profile{ID: id, IsActive: active}, nil
	}
	return nil, domain.ErrProfileNotFound
}
func (f *fakeProfileRepo) Update(ctx context.Context, p *domain.Profile) error { return nil }
func (f *fakeProfileRepo) QueryCandidates(ctx context.Context, viewerID string, excludeIDs []string) ([]*domain.Profile, error) {
	return nil, nil
}
func (f *fakeProfileRepo) SetActive(ctx context.Context, id string, active bool) error {
	f.active[id] = active
	return nil
}
func (f *fakeProfileRepo) SetBanned(ctx context.Context, id string, banned bool) error { return nil }
func (f *fakeProfileRepo) TouchLastActive(ctx context.Context, id string) error        { return nil }
func (f *fakeProfileRepo) Delete(ctx context.Context, id string) error {
	f.rec.record(id, "profile")
	delete(f.active, id)
	return nil
}

type fakeSwipeRepo struct{ rec *recorder }

func (f *fakeSwipeRepo) Insert(ctx context.Context, s *domain.Swipe) error { return nil }
func (f *fakeSwipeRepo) ExistsLike(ctx context.Context, a, b string) (bool, error) {
	return false, nil
}
func (f *fakeSwipeRepo) SwipedIDs(ctx context.Context, swiperID string) ([]string, error) {
	return nil, nil
}
func (f *fakeSwipeRepo) ListBySwiper(ctx context.Context, swiperID string) ([]*domain.Swipe, error) {
	return []*domain.Swipe{{SwiperID: swiperID, SwipedID: "someone", Action: domain.SwipeActionLike}}, nil
}
func (f *fakeSwipeRepo) MutualLikePairs(ctx context.Context) ([][2]string, error) { return nil, nil }
func (f *fakeSwipeRepo) DeleteByUser(ctx context.Context, userID string) error {
	f.rec.record(userID, "swipes")
	return nil
}

type fakeMatchRepo struct {
	rec            *recorder
	deactivatedAll []string
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
func (f *fakeMatchRepo) Deactivate(ctx context.Context, a, b, actorID string, at time.Time) error {
	return nil
}
func (f *fakeMatchRepo) DeactivateAllForUser(ctx context.Context, userID, actorID string, at time.Time) error {
	f.deactivatedAll = append(f.deactivatedAll, userID)
	return nil
}
func (f *fakeMatchRepo) DeleteByUser(ctx context.Context, userID string) error {
	f.rec.record(userID, "matches")
	return nil
}

type fakeMessageRepo struct{ rec *recorder }

func (f *fakeMessageRepo) Insert(ctx context.Context, m *domain.Message) error { return nil }
func (f *fakeMessageRepo) ListByMatch(ctx context.Context, matchID string, before *time.Time, limit int) ([]*domain.Message, error) {
	return nil, nil
}
func (f *fakeMessageRepo) MarkRead(ctx context.Context, matchID, readerID string) error { return nil }
func (f *fakeMessageRepo) UnreadCounts(ctx context.Context, userID string) ([]*domain.UnreadCount, error) {
	return nil, nil
}
func (f *fakeMessageRepo) LastByMatch(ctx context.Context, matchID string) (*domain.Message, error) {
	return nil, nil
}
func (f *fakeMessageRepo) ListBySender(ctx context.Context, senderID string) ([]*domain.Message, error) {
	return nil, nil
}
func (f *fakeMessageRepo) DeleteByUser(ctx context.Context, userID string) error {
	f.rec.record(userID, "messages")
	return nil
}

type fakeBlockRepo struct{ rec *recorder }

func (f *fakeBlockRepo) Create(ctx context.Context, b *domain.Block) error             { return nil }
func (f *fakeBlockRepo) Delete(ctx context.Context, blockerID, blockedID string) error { return nil }
func (f *fakeBlockRepo) IsBlocked(ctx context.Context, a, b string) (bool, error) {
	return false, nil
}
func (f *fakeBlockRepo) ListByBlocker(ctx context.Context, blockerID string) ([]*domain.Block, error) {
	return nil, nil
}
func (f *fakeBlockRepo) BlockedIDs(ctx context.Context, userID string) ([]string, error) {
	return nil, nil
}
func (f *fakeBlockRepo) DeleteByUser(ctx context.Context, userID string) error {
	f.rec.record(userID, "blocks")
	return nil
}

type fakeReportRepo struct{ rec *recorder }

func (f *fakeReportRepo) Insert(ctx context.Context, r *domain.Report) error { return nil }
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
func (f *fakeReportRepo) DeleteByUser(ctx context.Context, userID string) error {
	f.rec.record(userID, "reports")
	return nil
}

type memDeletionRepo struct {
	requests map[string]*domain.DeletionRequest
}

func (m *memDeletionRepo) Insert(ctx context.Context, req *domain.DeletionRequest) error {
	req.ID = uuid.NewString()
	m.requests[req.ID] = req
	return nil
}

func (m *memDeletionRepo) GetPendingByUser(ctx context.Context, userID string) (*domain.DeletionRequest, error) {
	for _, req := range m.requests {
		if req.UserID == userID && req.Pending() {
			return req, nil
		}
	}
	return nil, domain.ErrDeletionNotFound
}

func (m *memDeletionRepo) Cancel(ctx context.Context, id string, at time.Time) error {
	req, ok := m.requests[id]
	if !ok {
		return domain.ErrDeletionNotFound
	}
	req.CancelledAt = &at
	return nil
}

func (m *memDeletionRepo) Complete(ctx context.Context, id string, at time.Time) error {
	req, ok := m.requests[id]
	if !ok {
		return domain.ErrDeletionNotFound
	}
	req.CompletedAt = &at
	return nil
}

func (m *memDeletionRepo) ListDue(ctx context.Context, now time.Time) ([]*domain.DeletionRequest, error) {
	var due []*domain.DeletionRequest
	for _, req := range m.requests {
		if req.Pending() && !req.ScheduledDeletionAt.After(now) {
			due = append(due, req)
		}
	}
	return due, nil
}

type fixture struct {
	uc        *UseCase
	rec       *recorder
	profiles  *fakeProfileRepo
	matches   *fakeMatchRepo
	deletions *memDeletionRepo
}

func newFixture(activeUsers ...string) *fixture {
	rec := newRecorder()
	f := &fixture{
		rec:       rec,
		profiles:  &fakeProfileRepo{rec: rec, active: make(map[string]bool)},
		matches:   &fakeMatchRepo{rec: rec},
		deletions: &memDeletionRepo{requests: make(map[string]*domain.DeletionRequest)},
	}
	for _, id := range activeUsers {
		f.profiles.active[id] = true
	}
	f.uc = NewUseCase(
		&fakeUserRepo{rec: rec},
		&fakeSessionRepo{rec: rec},
		f.profiles,
		&fakeSwipeRepo{rec: rec},
		f.matches,
		&fakeMessageRepo{rec: rec},
		&fakeBlockRepo{rec: rec},
		&fakeReportRepo{rec: rec},
		f.deletions,
		zerolog.Nop(),
	)
	return f
}

func TestExportDataIncludesOwnedRows(t *testing.T) {
	f := newFixture("alice")

	export, err := f.uc.ExportData(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", export.UserID)
	require.NotNil(t, export.Profile)
	assert.Len(t, export.Swipes, 1)
	assert.WithinDuration(t, time.Now(), export.ExportDate, time.Minute)
}

func TestRequestDeletionSoftDisables(t *testing.T) {
	f := newFixture("alice")

	req, err := f.uc.RequestDeletion(context.Background(), "alice")
	require.NoError(t, err)
	assert.WithinDuration(t, req.RequestedAt.Add(domain.DeletionGracePeriod), req.ScheduledDeletionAt, time.Second)

	assert.False(t, f.profiles.active["alice"])
	assert.Contains(t, f.matches.deactivatedAll, "alice")
	assert.Contains(t, f.rec.deleted["alice"], "sessions")
}

func TestRequestDeletionAlreadyPending(t *testing.T) {
	f := newFixture("alice")
	ctx := context.Background()

	_, err := f.uc.RequestDeletion(ctx, "alice")
	require.NoError(t, err)

	_, err = f.uc.RequestDeletion(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrDeletionPending)
}

func TestCancelDeletionReactivatesProfile(t *testing.T) {
	f := newFixture("alice")
	ctx := context.Background()

	_, err := f.uc.RequestDeletion(ctx, "alice")
	require.NoError(t, err)
	require.False(t, f.profiles.active["alice"])

	require.NoError(t, f.uc.CancelDeletion(ctx, "alice"))
	assert.True(t, f.profiles.active["alice"])

	status, err := f.uc.GetDeletionStatus(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, status.HasPendingRequest)

	// A new request can be filed after cancelling.
	_, err = f.uc.RequestDeletion(ctx, "alice")
	assert.NoError(t, err)
}

func TestCancelDeletionWithoutRequest(t *testing.T) {
	f := newFixture("alice")
	err := f.uc.CancelDeletion(context.Background(), "alice")
	assert.ErrorIs(t, err, domain.ErrDeletionNotFound)
}

func TestGetDeletionStatusPending(t *testing.T) {
	f := newFixture("alice")
	ctx := context.Background()

	_, err := f.uc.RequestDeletion(ctx, "alice")
	require.NoError(t, err)

	status, err := f.uc.GetDeletionStatus(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, status.HasPendingRequest)
	require.NotNil(t, status.ScheduledDeletionAt)
	assert.InDelta(t, int(domain.DeletionGracePeriod.Hours()/24), status.DaysRemaining, 1)
}

func TestPurgeDueDeletesEverything(t *testing.T) {
	f := newFixture("alice", "bob")
	ctx := context.Background()

	_, err := f.uc.RequestDeletion(ctx, "alice")
	require.NoError(t, err)
	_, err = f.uc.RequestDeletion(ctx, "bob")
	require.NoError(t, err)

	// Only alice's grace period has passed.
	past := time.Now().Add(domain.DeletionGracePeriod + time.Hour)
	for _, req := range f.deletions.requests {
		if req.UserID == "bob" {
			req.ScheduledDeletionAt = past.Add(48 * time.Hour)
		}
	}

	purged, err := f.uc.PurgeDue(ctx, past)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	assert.Equal(t,
		[]string{"sessions", "messages", "matches", "swipes", "blocks", "reports", "sessions", "profile", "user"},
		f.rec.deleted["alice"],
	)
	assert.NotContains(t, f.rec.deleted["bob"], "user")

	// Completed requests are not purged again.
	purged, err = f.uc.PurgeDue(ctx, past)
	require.NoError(t, err)
	assert.Zero(t, purged)
}
