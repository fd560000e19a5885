package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/gamermatch/gamermatch-backend/internal/config"
	"github.com/gamermatch/gamermatch-backend/internal/usecase/gdpr"
	"github.com/gamermatch/gamermatch-backend/internal/usecase/match"
)

// Scheduler runs the periodic background sweeps: match reconciliation and
// deletion-request purging.
type Scheduler struct {
	cron    *cron.Cron
	matchUC *match.UseCase
	gdprUC  *gdpr.UseCase
	log     zerolog.Logger
}

func NewScheduler(cfg *config.JobsConfig, matchUC *match.UseCase, gdprUC *gdpr.UseCase, log zerolog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(),
		matchUC: matchUC,
		gdprUC:  gdprUC,
		log:     log,
	}

	if cfg.ReconcileSpec != "" {
		if _, err := s.cron.AddFunc(cfg.ReconcileSpec, s.runReconcile); err != nil {
			return nil, err
		}
	}
	if cfg.RetentionSpec != "" {
		if _, err := s.cron.AddFunc(cfg.RetentionSpec, s.runRetention); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) runReconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	created, err := s.matchUC.Reconcile(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("match reconciliation sweep failed")
		return
	}
	s.log.Info().Int("created", created).Msg("match reconciliation sweep completed")
}

func (s *Scheduler) runRetention() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	purged, err := s.gdprUC.PurgeDue(ctx, time.Now().UTC())
	if err != nil {
		s.log.Error().Err(err).Msg("retention purge sweep failed")
		return
	}
	s.log.Info().Int("purged", purged).Msg("retention purge sweep completed")
}
