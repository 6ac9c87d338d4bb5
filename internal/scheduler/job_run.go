package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// jobRun tracks one execution of a job for logging.
type jobRun struct {
	name      string
	startedAt time.Time
	processed int
}

func (r *jobRun) AddProcessed(n int) {
	r.processed += n
}

func (s *Scheduler) startJobRun(ctx context.Context, name string) *jobRun {
	run := &jobRun{name: name, startedAt: s.clock.Now(ctx)}
	s.log.Debug("scheduler job started", zap.String("job", name))
	return run
}

func (s *Scheduler) finishJobRun(ctx context.Context, run *jobRun) {
	s.log.Info("scheduler job finished",
		zap.String("job", run.name),
		zap.Int("processed", run.processed),
		zap.Duration("elapsed", s.clock.Now(ctx).Sub(run.startedAt)),
	)
}
