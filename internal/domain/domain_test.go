package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalPair(t *testing.T) {
	a, b := CanonicalPair("bob", "alice")
	assert.Equal(t, "alice", a)
	assert.Equal(t, "bob", b)

	a, b = CanonicalPair("alice", "bob")
	assert.Equal(t, "alice", a)
	assert.Equal(t, "bob", b)
}

func TestMatchMembership(t *testing.T) {
	m := &Match{User1ID: "alice", User2ID: "bob"}

	assert.True(t, m.HasUser("alice"))
	assert.True(t, m.HasUser("bob"))
	assert.False(t, m.HasUser("carol"))

	other, ok := m.OtherUserID("alice")
	assert.True(t, ok)
	assert.Equal(t, "bob", other)

	other, ok = m.OtherUserID("bob")
	assert.True(t, ok)
	assert.Equal(t, "alice", other)

	_, ok = m.OtherUserID("carol")
	assert.False(t, ok)
}

func TestProfileAge(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	p := &Profile{DateOfBirth: time.Date(2000, 8, 15, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, 26, p.Age(now), "birthday today counts the new year")

	p = &Profile{DateOfBirth: time.Date(2000, 8, 16, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, 25, p.Age(now), "birthday tomorrow has not happened yet")

	p = &Profile{DateOfBirth: time.Date(2008, 1, 1, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, 18, p.Age(now))
}

func TestProfileAgeAcrossLeapYears(t *testing.T) {
	// 2000 is a leap year, 2001 is not; year-day arithmetic would count
	// this birthday as not yet reached.
	p := &Profile{DateOfBirth: time.Date(2000, 3, 1, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, 1, p.Age(time.Date(2001, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, p.Age(time.Date(2001, 2, 28, 0, 0, 0, 0, time.UTC)))

	// Evaluated in a leap year, with the extra day before the birthday.
	assert.Equal(t, 24, p.Age(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 23, p.Age(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))

	// Feb 29 birthday rolls over on Mar 1 in common years.
	leapling := &Profile{DateOfBirth: time.Date(2004, 2, 29, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, 20, leapling.Age(time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 21, leapling.Age(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
}

func TestProfileEligible(t *testing.T) {
	p := &Profile{IsActive: true, OnboardingCompleted: true}
	assert.True(t, p.Eligible())

	for _, tc := range []struct {
		name   string
		mutate func(*Profile)
	}{
		{"inactive", func(p *Profile) { p.IsActive = false }},
		{"banned", func(p *Profile) { p.IsBanned = true }},
		{"onboarding incomplete", func(p *Profile) { p.OnboardingCompleted = false }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := &Profile{IsActive: true, OnboardingCompleted: true}
			tc.mutate(p)
			assert.False(t, p.Eligible())
		})
	}
}

func TestValidSwipeAction(t *testing.T) {
	assert.True(t, ValidSwipeAction(SwipeActionLike))
	assert.True(t, ValidSwipeAction(SwipeActionPass))
	assert.False(t, ValidSwipeAction("superlike"))
	assert.False(t, ValidSwipeAction(""))
}

func TestDeletionRequestPending(t *testing.T) {
	now := time.Now()

	req := &DeletionRequest{}
	assert.True(t, req.Pending())

	req = &DeletionRequest{CancelledAt: &now}
	assert.False(t, req.Pending())

	req = &DeletionRequest{CompletedAt: &now}
	assert.False(t, req.Pending())
}

func TestEnumValidators(t *testing.T) {
	assert.True(t, ValidPlatform("PC"))
	assert.False(t, ValidPlatform("Dreamcast"))

	assert.True(t, ValidGenre("RPG"))
	assert.False(t, ValidGenre("Dating Sim Adjacent"))

	assert.True(t, ValidPlaystyle(PlaystyleCasual))
	assert.True(t, ValidPlaystyle(PlaystyleCompetitive))
	assert.True(t, ValidPlaystyle(PlaystyleBoth))
	assert.False(t, ValidPlaystyle("sweaty"))

	assert.True(t, ValidReportCategory("fake_profile"))
	assert.False(t, ValidReportCategory("vibes"))
}
