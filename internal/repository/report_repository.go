package repository

import (
	"context"
	"time"

	"github.com/gamermatch/gamermatch-backend/internal/domain"
)

type ReportRepository interface {
	Insert(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id string) (*domain.Report, error)
	ListPending(ctx context.Context, limit, offset int) ([]*domain.Report, error)
	UpdateStatus(ctx context.Context, id string, status domain.ReportStatus, notes *string, resolvedBy string, at time.Time) error
	ListByReporter(ctx context.Context, reporterID string) ([]*domain.Report, error)
	DeleteByUser(ctx context.Context, userID string) error
}

type AdminRepository interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
	GetStats(ctx context.Context) (*domain.AdminStats, error)
}
