package moderation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gamermatch/gamermatch-backend/internal/domain"
	"github.com/gamermatch/gamermatch-backend/internal/repository"
	"github.com/rs/zerolog"
)

type UseCase struct {
	blockRepo   repository.BlockRepository
	matchRepo   repository.MatchRepository
	reportRepo  repository.ReportRepository
	profileRepo repository.ProfileRepository
	limiter     repository.RateLimiter
	log         zerolog.Logger
}

func NewUseCase(
	blockRepo repository.BlockRepository,
	matchRepo repository.MatchRepository,
	reportRepo repository.ReportRepository,
	profileRepo repository.ProfileRepository,
	limiter repository.RateLimiter,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		blockRepo:   blockRepo,
		matchRepo:   matchRepo,
		reportRepo:  reportRepo,
		profileRepo: profileRepo,
		limiter:     limiter,
		log:         log,
	}
}

// BlockUser records the block and deactivates any active match between
// the pair as one logical operation. A repeat block is an idempotent
// no-op for the caller.
func (uc *UseCase) BlockUser(ctx context.Context, blockerID, blockedID string) error {
	if blockerID == blockedID {
		return domain.ErrCannotBlockSelf
	}

	block := &domain.Block{BlockerID: blockerID, BlockedID: blockedID}
	err := uc.blockRepo.Create(ctx, block)
	if err != nil && !errors.Is(err, domain.ErrAlreadyBlocked) {
		return fmt.Errorf("failed to create block: %w", err)
	}

	// Deactivate even on a repeat block: the match may have been
	// re-derived between the first block attempt and now.
	if err := uc.matchRepo.Deactivate(ctx, blockerID, blockedID, blockerID, time.Now()); err != nil {
		uc.log.Error().Err(err).
			Str("blocker_id", blockerID).
			Str("blocked_id", blockedID).
			Msg("failed to deactivate match on block")
		return fmt.Errorf("failed to deactivate match: %w", err)
	}
	return nil
}

func (uc *UseCase) UnblockUser(ctx context.Context, blockerID, blockedID string) error {
	return uc.blockRepo.Delete(ctx, blockerID, blockedID)
}

// BlockedUser is one row of the blocked list.
type BlockedUser struct {
	BlockID   string          `json:"block_id"`
	CreatedAt time.Time       `json:"created_at"`
	Profile   *domain.Profile `json:"profile"`
}

func (uc *UseCase) GetBlockedUsers(ctx context.Context, blockerID string) ([]*BlockedUser, error) {
	blocks, err := uc.blockRepo.ListByBlocker(ctx, blockerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list blocks: %w", err)
	}

	result := make([]*BlockedUser, 0, len(blocks))
	for _, b := range blocks {
		profile, err := uc.profileRepo.GetByID(ctx, b.BlockedID)
		if err != nil {
			continue
		}
		result = append(result, &BlockedUser{
			BlockID:   b.ID,
			CreatedAt: b.CreatedAt,
			Profile:   profile,
		})
	}
	return result, nil
}

// ReportRequest files a report against another user.
type ReportRequest struct {
	ReportedID  string `json:"reported_id" binding:"required"`
	Category    string `json:"category" binding:"required,report_category"`
	Description string `json:"description"`
}

func (uc *UseCase) ReportUser(ctx context.Context, reporterID string, req *ReportRequest) (*domain.Report, error) {
	if reporterID == req.ReportedID {
		return nil, domain.ErrCannotReportSelf
	}
	if !domain.ValidReportCategory(req.Category) {
		return nil, domain.ErrInvalidCategory
	}

	if uc.limiter != nil {
		allowed, err := uc.limiter.Allow(ctx, "report:"+reporterID, domain.MaxReportsPerDay, 24*time.Hour)
		if err != nil {
			uc.log.Warn().Err(err).Msg("report rate limit check failed, allowing")
		} else if !allowed {
			return nil, domain.ErrRateLimited
		}
	}

	report := &domain.Report{
		ReporterID: reporterID,
		ReportedID: req.ReportedID,
		Category:   req.Category,
		Status:     domain.ReportStatusPending,
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		report.Description = &desc
	}
	if err := uc.reportRepo.Insert(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return report, nil
}
