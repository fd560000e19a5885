package gdpr

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gamermatch/gamermatch-backend/internal/domain"
	"github.com/gamermatch/gamermatch-backend/internal/repository"
	"github.com/rs/zerolog"
)

type UseCase struct {
	userRepo     repository.UserRepository
	sessionRepo  repository.SessionRepository
	profileRepo  repository.ProfileRepository
	swipeRepo    repository.SwipeRepository
	matchRepo    repository.MatchRepository
	messageRepo  repository.MessageRepository
	blockRepo    repository.BlockRepository
	reportRepo   repository.ReportRepository
	deletionRepo repository.DeletionRepository
	log          zerolog.Logger
}

func NewUseCase(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	profileRepo repository.ProfileRepository,
	swipeRepo repository.SwipeRepository,
	matchRepo repository.MatchRepository,
	messageRepo repository.MessageRepository,
	blockRepo repository.BlockRepository,
	reportRepo repository.ReportRepository,
	deletionRepo repository.DeletionRepository,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		profileRepo:  profileRepo,
		swipeRepo:    swipeRepo,
		matchRepo:    matchRepo,
		messageRepo:  messageRepo,
		blockRepo:    blockRepo,
		reportRepo:   reportRepo,
		deletionRepo: deletionRepo,
		log:          log,
	}
}

// UserDataExport is the full GDPR data export for one user.
type UserDataExport struct {
	ExportDate   time.Time         `json:"export_date"`
	UserID       string            `json:"user_id"`
	Profile      *domain.Profile   `json:"profile"`
	Swipes       []*domain.Swipe   `json:"swipes"`
	Matches      []*domain.Match   `json:"matches"`
	MessagesSent []*domain.Message `json:"messages_sent"`
	Blocks       []*domain.Block   `json:"blocks"`
	ReportsMade  []*domain.Report  `json:"reports_made"`
}

// ExportData collects everything the user owns into one document.
func (uc *UseCase) ExportData(ctx context.Context, userID string) (*UserDataExport, error) {
	profile, err := uc.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	swipes, err := uc.swipeRepo.ListBySwiper(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to export swipes: %w", err)
	}
	matches, err := uc.matchRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to export matches: %w", err)
	}
	messages, err := uc.messageRepo.ListBySender(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to export messages: %w", err)
	}
	blocks, err := uc.blockRepo.ListByBlocker(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to export blocks: %w", err)
	}
	reports, err := uc.reportRepo.ListByReporter(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to export reports: %w", err)
	}

	return &UserDataExport{
		ExportDate:   time.Now().UTC(),
		UserID:       userID,
		Profile:      profile,
		Swipes:       swipes,
		Matches:      matches,
		MessagesSent: messages,
		Blocks:       blocks,
		ReportsMade:  reports,
	}, nil
}

// RequestDeletion soft-disables the profile, deactivates every match and
// schedules the hard delete after the grace period.
func (uc *UseCase) RequestDeletion(ctx context.Context, userID string) (*domain.DeletionRequest, error) {
	if existing, err := uc.deletionRepo.GetPendingByUser(ctx, userID); err == nil && existing != nil {
		return nil, domain.ErrDeletionPending
	} else if err != nil && !errors.Is(err, domain.ErrDeletionNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	req := &domain.DeletionRequest{
		UserID:              userID,
		RequestedAt:         now,
		ScheduledDeletionAt: now.Add(domain.DeletionGracePeriod),
	}
	if err := uc.deletionRepo.Insert(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create deletion request: %w", err)
	}

	if err := uc.profileRepo.SetActive(ctx, userID, false); err != nil {
		return nil, fmt.Errorf("failed to deactivate profile: %w", err)
	}
	if err := uc.matchRepo.DeactivateAllForUser(ctx, userID, userID, now); err != nil {
		return nil, fmt.Errorf("failed to deactivate matches: %w", err)
	}
	if err := uc.sessionRepo.DeleteByUser(ctx, userID); err != nil {
		uc.log.Warn().Err(err).Str("user_id", userID).Msg("failed to revoke sessions on deletion request")
	}
	return req, nil
}

// CancelDeletion reverses a pending request and re-enables the profile.
// Matches stay deactivated; the other side already saw them disappear.
func (uc *UseCase) CancelDeletion(ctx context.Context, userID string) error {
	req, err := uc.deletionRepo.GetPendingByUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := uc.deletionRepo.Cancel(ctx, req.ID, time.Now().UTC()); err != nil {
		return err
	}
	return uc.profileRepo.SetActive(ctx, userID, true)
}

// DeletionStatus is the user-facing view of a pending request.
type DeletionStatus struct {
	HasPendingRequest   bool       `json:"has_pending_request"`
	RequestedAt         *time.Time `json:"requested_at,omitempty"`
	ScheduledDeletionAt *time.Time `json:"scheduled_deletion_at,omitempty"`
	DaysRemaining       int        `json:"days_remaining,omitempty"`
}

func (uc *UseCase) GetDeletionStatus(ctx context.Context, userID string) (*DeletionStatus, error) {
	req, err := uc.deletionRepo.GetPendingByUser(ctx, userID)
	if errors.Is(err, domain.ErrDeletionNotFound) {
		return &DeletionStatus{}, nil
	}
	if err != nil {
		return nil, err
	}

	days := int(time.Until(req.ScheduledDeletionAt).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return &DeletionStatus{
		HasPendingRequest:   true,
		RequestedAt:         &req.RequestedAt,
		ScheduledDeletionAt: &req.ScheduledDeletionAt,
		DaysRemaining:       days,
	}, nil
}

// PurgeDue completes deletion requests whose grace period has passed,
// removing every row the user owns. Runs from the retention sweep; each
// step is idempotent so a failed run can simply repeat.
func (uc *UseCase) PurgeDue(ctx context.Context, now time.Time) (int, error) {
	due, err := uc.deletionRepo.ListDue(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to list due deletions: %w", err)
	}

	purged := 0
	for _, req := range due {
		if err := uc.purgeUser(ctx, req.UserID); err != nil {
			uc.log.Error().Err(err).Str("user_id", req.UserID).Msg("purge failed, will retry next sweep")
			continue
		}
		if err := uc.deletionRepo.Complete(ctx, req.ID, now); err != nil {
			uc.log.Error().Err(err).Str("user_id", req.UserID).Msg("failed to mark deletion complete")
			continue
		}
		purged++
		uc.log.Info().Str("user_id", req.UserID).Msg("account purged")
	}
	return purged, nil
}

func (uc *UseCase) purgeUser(ctx context.Context, userID string) error {
	if err := uc.messageRepo.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("messages: %w", err)
	}
	if err := uc.matchRepo.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("matches: %w", err)
	}
	if err := uc.swipeRepo.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("swipes: %w", err)
	}
	if err := uc.blockRepo.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("blocks: %w", err)
	}
	if err := uc.reportRepo.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("reports: %w", err)
	}
	if err := uc.sessionRepo.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("sessions: %w", err)
	}
	if err := uc.profileRepo.Delete(ctx, userID); err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return fmt.Errorf("profile: %w", err)
	}
	if err := uc.userRepo.Delete(ctx, userID); err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("user: %w", err)
	}
	return nil
}
