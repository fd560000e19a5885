package domain

import "errors"

var (
	// Auth
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
	ErrUnauthorized       = errors.New("unauthorized")

	// Profiles
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists")
	// ErrProfileNotEligible covers inactive, banned and onboarding-incomplete
	// profiles as well as profiles hidden across a block.
	ErrProfileNotEligible = errors.New("profile not eligible")

	// Discovery
	ErrInvalidFilter = errors.New("invalid discovery filter")

	// Swipes & matches
	ErrCannotSwipeSelf = errors.New("cannot swipe yourself")
	ErrDuplicateSwipe  = errors.New("pair already decided")
	ErrMatchNotFound   = errors.New("match not found")
	ErrNotMatchMember  = errors.New("not a member of this match")

	// Chat
	ErrMessageEmpty   = errors.New("message is empty")
	ErrMessageTooLong = errors.New("message too long")

	// Moderation
	ErrAlreadyBlocked   = errors.New("user already blocked")
	ErrBlockNotFound    = errors.New("block not found")
	ErrReportNotFound   = errors.New("report not found")
	ErrInvalidCategory  = errors.New("invalid report category")
	ErrCannotBlockSelf  = errors.New("cannot block yourself")
	ErrCannotReportSelf = errors.New("cannot report yourself")

	// Rate limiting
	ErrRateLimited = errors.New("rate limit exceeded")

	// GDPR
	ErrDeletionPending  = errors.New("deletion request already pending")
	ErrDeletionNotFound = errors.New("no pending deletion request")

	// Validation
	ErrInvalidInput = errors.New("invalid input")
)
