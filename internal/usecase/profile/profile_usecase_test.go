package profile

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamermatch/gamermatch-backend/internal/domain"
)

type memProfileRepo struct {
	profiles map[string]*domain.Profile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: make(map[string]*domain.Profile)}
}

func (m *memProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	if _, ok := m.profiles[p.ID]; ok {
		return domain.ErrProfileAlreadyExists
	}
	p.IsActive = true
	p.CreatedAt = time.Now()
	m.profiles[p.ID] = p
	return nil
}

func (m *memProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (m *memProfileRepo) Update(ctx context.Context, p *domain.Profile) error {
	if _, ok := m.profiles[p.ID]; !ok {
		return domain.ErrProfileNotFound
	}
	m.profiles[p.ID] = p
	return nil
}

func (m *memProfileRepo) QueryCandidates(ctx context.Context, viewerID string, excludeIDs []string) ([]*domain.Profile, error) {
	return nil, nil
}
func (m *memProfileRepo) SetActive(ctx context.Context, id string, active bool) error { return nil }
func (m *memProfileRepo) SetBanned(ctx context.Context, id string, banned bool) error { return nil }
func (m *memProfileRepo) TouchLastActive(ctx context.Context, id string) error        { return nil }
func (m *memProfileRepo) Delete(ctx context.Context, id string) error                 { return nil }

type stubBlockRepo struct {
	blocked map[[2]string]bool
}

func (s *stubBlockRepo) Create(ctx context.Context, b *domain.Block) error             { return nil }
func (s *stubBlockRepo) Delete(ctx context.Context, blockerID, blockedID string) error { return nil }
func (s *stubBlockRepo) IsBlocked(ctx context.Context, a, b string) (bool, error) {
	return s.blocked[[2]string{a, b}] || s.blocked[[2]string{b, a}], nil
}
func (s *stubBlockRepo) ListByBlocker(ctx context.Context, blockerID string) ([]*domain.Block, error) {
	return nil, nil
}
func (s *stubBlockRepo) BlockedIDs(ctx context.Context, userID string) ([]string, error) {
	return nil, nil
}
func (s *stubBlockRepo) DeleteByUser(ctx context.Context, userID string) error { return nil }

func validRequest() *CreateProfileRequest {
	return &CreateProfileRequest{
		DisplayName:    "NightOwl",
		DateOfBirth:    time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC),
		Region:         "EU - West",
		Platforms:      []string{"PC"},
		FavoriteGenres: []string{"RPG", "Indie"},
		TopGames:       []string{"Hades II"},
		Playstyle:      domain.PlaystyleCasual,
	}
}

func newProfileFixture() (*UseCase, *memProfileRepo, *stubBlockRepo) {
	profiles := newMemProfileRepo()
	blocks := &stubBlockRepo{blocked: make(map[[2]string]bool)}
	return NewUseCase(profiles, blocks), profiles, blocks
}

func TestCompleteOnboarding(t *testing.T) {
	uc, _, _ := newProfileFixture()

	p, err := uc.CompleteOnboarding(context.Background(), "alice", validRequest())
	require.NoError(t, err)
	assert.Equal(t, "alice", p.ID)
	assert.True(t, p.OnboardingCompleted)
	assert.True(t, p.Eligible())
}

func TestCompleteOnboardingTwice(t *testing.T) {
	uc, _, _ := newProfileFixture()
	ctx := context.Background()

	_, err := uc.CompleteOnboarding(ctx, "alice", validRequest())
	require.NoError(t, err)

	_, err = uc.CompleteOnboarding(ctx, "alice", validRequest())
	assert.ErrorIs(t, err, domain.ErrProfileAlreadyExists)
}

func TestCompleteOnboardingValidation(t *testing.T) {
	uc, _, _ := newProfileFixture()
	ctx := context.Background()

	longBio := strings.Repeat("x", domain.MaxBioLength+1)
	badPronouns := "xe/xir"

	cases := []struct {
		name   string
		mutate func(*CreateProfileRequest)
	}{
		{"short name", func(r *CreateProfileRequest) { r.DisplayName = "x" }},
		{"long name", func(r *CreateProfileRequest) { r.DisplayName = strings.Repeat("a", domain.MaxDisplayNameLength+1) }},
		{"underage", func(r *CreateProfileRequest) { r.DateOfBirth = time.Now().AddDate(-domain.MinAge, 0, 1) }},
		{"unknown region", func(r *CreateProfileRequest) { r.Region = "Atlantis" }},
		{"unknown pronouns", func(r *CreateProfileRequest) { r.Pronouns = &badPronouns }},
		{"bio too long", func(r *CreateProfileRequest) { r.Bio = &longBio }},
		{"no platforms", func(r *CreateProfileRequest) { r.Platforms = nil }},
		{"unknown platform", func(r *CreateProfileRequest) { r.Platforms = []string{"Dreamcast"} }},
		{"too many genres", func(r *CreateProfileRequest) {
			r.FavoriteGenres = []string{"FPS", "RPG", "MOBA", "Horror", "Indie", "Sports"}
		}},
		{"too many games", func(r *CreateProfileRequest) { r.TopGames = []string{"a", "b", "c", "d"} }},
		{"blank game", func(r *CreateProfileRequest) { r.TopGames = []string{"  "} }},
		{"unknown playstyle", func(r *CreateProfileRequest) { r.Playstyle = "sweaty" }},
		{"unknown play time", func(r *CreateProfileRequest) { r.TypicalPlayTimes = []string{"Dawn"} }},
		{"too many photos", func(r *CreateProfileRequest) {
			r.PhotoURLs = make([]string, domain.MaxPhotos+1)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(req)
			_, err := uc.CompleteOnboarding(ctx, "alice", req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestGetProfileByIDHiddenAcrossBlocks(t *testing.T) {
	uc, _, blocks := newProfileFixture()
	ctx := context.Background()

	_, err := uc.CompleteOnboarding(ctx, "bob", validRequest())
	require.NoError(t, err)

	p, err := uc.GetProfileByID(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", p.ID)

	blocks.blocked[[2]string{"bob", "alice"}] = true
	_, err = uc.GetProfileByID(ctx, "alice", "bob")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound, "block direction does not matter")
}

func TestGetProfileByIDHidesIneligible(t *testing.T) {
	uc, profiles, _ := newProfileFixture()
	ctx := context.Background()

	_, err := uc.CompleteOnboarding(ctx, "bob", validRequest())
	require.NoError(t, err)
	profiles.profiles["bob"].IsBanned = true

	_, err = uc.GetProfileByID(ctx, "alice", "bob")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	// Owners can always see their own profile.
	p, err := uc.GetProfileByID(ctx, "bob", "bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", p.ID)
}

func TestUpdateProfileKeepsDateOfBirth(t *testing.T) {
	uc, _, _ := newProfileFixture()
	ctx := context.Background()

	created, err := uc.CompleteOnboarding(ctx, "alice", validRequest())
	require.NoError(t, err)
	dob := created.DateOfBirth

	updated, err := uc.UpdateProfile(ctx, "alice", &UpdateProfileRequest{
		DisplayName:    "DayOwl",
		Region:         "UK",
		Platforms:      []string{"PC", "Xbox"},
		FavoriteGenres: []string{"FPS"},
		TopGames:       []string{"Halo Infinite"},
		Playstyle:      domain.PlaystyleCompetitive,
		VoiceChat:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, "DayOwl", updated.DisplayName)
	assert.Equal(t, dob, updated.DateOfBirth)
	assert.True(t, updated.VoiceChat)
}

func TestUpdateProfileUnknown(t *testing.T) {
	uc, _, _ := newProfileFixture()

	_, err := uc.UpdateProfile(context.Background(), "ghost", &UpdateProfileRequest{
		DisplayName:    "Ghost",
		Region:         "UK",
		Platforms:      []string{"PC"},
		FavoriteGenres: []string{"FPS"},
		TopGames:       []string{"Halo Infinite"},
		Playstyle:      domain.PlaystyleCasual,
	})
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}
