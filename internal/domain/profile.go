package domain

import "time"

// Profile is a user's gaming dating identity. The id matches the owning
// user's id. Age is always derived from DateOfBirth, never stored.
type Profile struct {
	ID                  string    `json:"id" db:"id"`
	DisplayName         string    `json:"display_name" db:"display_name"`
	DateOfBirth         time.Time `json:"date_of_birth" db:"date_of_birth"`
	Pronouns            *string   `json:"pronouns" db:"pronouns"`
	Region              string    `json:"region" db:"region"`
	Bio                 *string   `json:"bio" db:"bio"`
	Platforms           []string  `json:"platforms" db:"platforms"`
	FavoriteGenres      []string  `json:"favorite_genres" db:"favorite_genres"`
	TopGames            []string  `json:"top_games" db:"top_games"`
	Playstyle           Playstyle `json:"playstyle" db:"playstyle"`
	VoiceChat           bool      `json:"voice_chat" db:"voice_chat"`
	TypicalPlayTimes    []string  `json:"typical_play_times" db:"typical_play_times"`
	PhotoURLs           []string  `json:"photo_urls" db:"photo_urls"`
	IsActive            bool      `json:"is_active" db:"is_active"`
	IsBanned            bool      `json:"is_banned" db:"is_banned"`
	OnboardingCompleted bool      `json:"onboarding_completed" db:"onboarding_completed"`
	LastActiveAt        time.Time `json:"last_active_at" db:"last_active_at"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}

// Age returns the profile owner's age in full years at the given time.
// Month and day are compared directly; year-day arithmetic would drift
// by one across leap years.
func (p *Profile) Age(now time.Time) int {
	age := now.Year() - p.DateOfBirth.Year()
	nm, nd := now.Month(), now.Day()
	bm, bd := p.DateOfBirth.Month(), p.DateOfBirth.Day()
	if nm < bm || (nm == bm && nd < bd) {
		age--
	}
	return age
}

// Eligible reports whether the profile may appear in discovery or be
// swiped on. Blocks live in their own ledger and are checked separately.
func (p *Profile) Eligible() bool {
	return p.IsActive && !p.IsBanned && p.OnboardingCompleted
}
