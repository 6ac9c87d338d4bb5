package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// retentionCutoff reports false when retention is disabled.
func (s *Scheduler) retentionCutoff(ctx context.Context) (time.Time, bool) {
	retentionDays := s.cfg.RunRetentionDays
	if retentionDays <= 0 {
		return time.Time{}, false
	}
	return s.clock.Now(ctx).AddDate(0, 0, -retentionDays), true
}

func (s *Scheduler) PurgeCommissionRunsJob(ctx context.Context) error {
	cutoff, ok := s.retentionCutoff(ctx)
	if !ok {
		s.log.Debug("commission run retention disabled", zap.Int("days", s.cfg.RunRetentionDays))
		return nil
	}

	run := s.startJobRun(ctx, "purge_commission_runs")
	defer s.finishJobRun(ctx, run)

	deleted, err := s.commissionSvc.PurgeRuns(ctx, cutoff)
	if err != nil {
		return err
	}
	run.AddProcessed(int(deleted))
	if deleted > 0 {
		s.log.Info("commission runs purged", zap.Time("cutoff", cutoff), zap.Int64("deleted", deleted))
	}
	return nil
}

func (s *Scheduler) PurgeLedgerUploadsJob(ctx context.Context) error {
	cutoff, ok := s.retentionCutoff(ctx)
	if !ok {
		s.log.Debug("ledger upload retention disabled", zap.Int("days", s.cfg.RunRetentionDays))
		return nil
	}

	run := s.startJobRun(ctx, "purge_ledger_uploads")
	defer s.finishJobRun(ctx, run)

	deleted, err := s.ledgerSvc.PurgeUploads(ctx, cutoff)
	if err != nil {
		return err
	}
	run.AddProcessed(int(deleted))
	if deleted > 0 {
		s.log.Info("ledger uploads purged", zap.Time("cutoff", cutoff), zap.Int64("deleted", deleted))
	}
	return nil
}
