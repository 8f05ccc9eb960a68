package audit

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single scheduled run.
const DefaultTimeout = 2 * time.Minute

// Scheduler runs the Auditor on a cron schedule (seconds precision).
type Scheduler struct {
	cron     *cron.Cron
	auditor  *Auditor
	schedule string
	timeout  time.Duration
	logger   *zap.Logger
}

// NewScheduler creates a Scheduler; schedule uses six fields, e.g. "0 */30 * * * *".
// A run still in progress when the next one fires makes the next one skip.
func NewScheduler(auditor *Auditor, schedule string, logger *zap.Logger) *Scheduler {
	c := cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	return &Scheduler{
		cron:     c,
		auditor:  auditor,
		schedule: schedule,
		timeout:  DefaultTimeout,
		logger:   logger,
	}
}

// Start registers the audit job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runOnce); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("audit scheduler started", zap.String("cron", s.schedule))
	return nil
}

// Stop stops the loop and waits for a running audit to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("audit scheduler stopped")
}

func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	if _, err := s.auditor.Run(ctx); err != nil {
		s.logger.Error("audit run failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
	}
}
