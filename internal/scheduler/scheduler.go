// Package scheduler runs the periodic housekeeping jobs: retention of
// commission runs and ledger upload metadata.
package scheduler

import (
	"context"
	"time"

	"github.com/railzwaylabs/commissions/internal/clock"
	commissiondomain "github.com/railzwaylabs/commissions/internal/commission/domain"
	"github.com/railzwaylabs/commissions/internal/config"
	ledgerdomain "github.com/railzwaylabs/commissions/internal/ledger/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const defaultInterval = time.Hour

type Params struct {
	fx.In

	Cfg           config.Config
	Log           *zap.Logger
	Clock         clock.Clock
	CommissionSvc commissiondomain.Service
	LedgerSvc     ledgerdomain.Service
}

type Scheduler struct {
	cfg           config.SchedulerConfig
	log           *zap.Logger
	clock         clock.Clock
	commissionSvc commissiondomain.Service
	ledgerSvc     ledgerdomain.Service
}

func New(p Params) *Scheduler {
	return &Scheduler{
		cfg:           p.Cfg.Scheduler,
		log:           p.Log.Named("scheduler"),
		clock:         p.Clock,
		commissionSvc: p.CommissionSvc,
		ledgerSvc:     p.LedgerSvc,
	}
}

type job struct {
	name string
	run  func(ctx context.Context) error
}

func (s *Scheduler) jobs() []job {
	return []job{
		{name: "purge_commission_runs", run: s.PurgeCommissionRunsJob},
		{name: "purge_ledger_uploads", run: s.PurgeLedgerUploadsJob},
	}
}

// RunOnce executes every job a single time. A failing job does not stop the
// following ones; the first error is returned.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	var firstErr error
	for _, j := range s.jobs() {
		if err := j.run(ctx); err != nil {
			s.log.Error("scheduler job failed", zap.String("job", j.name), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// RunForever runs every job immediately and then once per interval until
// the context is cancelled.
func (s *Scheduler) RunForever(ctx context.Context) {
	interval := s.cfg.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	s.log.Info("scheduler started", zap.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		_ = s.RunOnce(ctx)
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
		}
	}
}
