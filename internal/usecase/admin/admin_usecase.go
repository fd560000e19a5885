package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/gamermatch/gamermatch-backend/internal/domain"
	"github.com/gamermatch/gamermatch-backend/internal/repository"
	"github.com/rs/zerolog"
)

type UseCase struct {
	adminRepo   repository.AdminRepository
	reportRepo  repository.ReportRepository
	profileRepo repository.ProfileRepository
	matchRepo   repository.MatchRepository
	log         zerolog.Logger
}

func NewUseCase(
	adminRepo repository.AdminRepository,
	reportRepo repository.ReportRepository,
	profileRepo repository.ProfileRepository,
	matchRepo repository.MatchRepository,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		adminRepo:   adminRepo,
		reportRepo:  reportRepo,
		profileRepo: profileRepo,
		matchRepo:   matchRepo,
		log:         log,
	}
}

func (uc *UseCase) IsAdmin(ctx context.Context, userID string) (bool, error) {
	return uc.adminRepo.IsAdmin(ctx, userID)
}

func (uc *UseCase) GetStats(ctx context.Context) (*domain.AdminStats, error) {
	return uc.adminRepo.GetStats(ctx)
}

// PendingReport enriches a report with both involved profiles.
type PendingReport struct {
	Report   *domain.Report  `json:"report"`
	Reporter *domain.Profile `json:"reporter"`
	Reported *domain.Profile `json:"reported"`
}

func (uc *UseCase) GetPendingReports(ctx context.Context, limit, offset int) ([]*PendingReport, error) {
	if limit <= 0 {
		limit = 50
	}
	reports, err := uc.reportRepo.ListPending(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	result := make([]*PendingReport, 0, len(reports))
	for _, r := range reports {
		pr := &PendingReport{Report: r}
		if p, err := uc.profileRepo.GetByID(ctx, r.ReporterID); err == nil {
			pr.Reporter = p
		}
		if p, err := uc.profileRepo.GetByID(ctx, r.ReportedID); err == nil {
			pr.Reported = p
		}
		result = append(result, pr)
	}
	return result, nil
}

// ResolveReportRequest closes out a report.
type ResolveReportRequest struct {
	Status     domain.ReportStatus `json:"status" binding:"required"`
	AdminNotes *string             `json:"admin_notes"`
}

func (uc *UseCase) ResolveReport(ctx context.Context, adminID, reportID string, req *ResolveReportRequest) error {
	if !domain.ValidReportStatus(req.Status) || req.Status == domain.ReportStatusPending {
		return fmt.Errorf("%w: status %q", domain.ErrInvalidInput, req.Status)
	}
	return uc.reportRepo.UpdateStatus(ctx, reportID, req.Status, req.AdminNotes, adminID, time.Now())
}

// BanUser bans the profile and cuts every active match, so the banned
// account disappears from discovery, matches and chat at once.
func (uc *UseCase) BanUser(ctx context.Context, adminID, userID string) error {
	if err := uc.profileRepo.SetBanned(ctx, userID, true); err != nil {
		return err
	}
	if err := uc.matchRepo.DeactivateAllForUser(ctx, userID, adminID, time.Now()); err != nil {
		return fmt.Errorf("failed to deactivate matches: %w", err)
	}
	uc.log.Info().Str("user_id", userID).Str("admin_id", adminID).Msg("user banned")
	return nil
}

func (uc *UseCase) UnbanUser(ctx context.Context, adminID, userID string) error {
	if err := uc.profileRepo.SetBanned(ctx, userID, false); err != nil {
		return err
	}
	uc.log.Info().Str("user_id", userID).Str("admin_id", adminID).Msg("user unbanned")
	return nil
}
