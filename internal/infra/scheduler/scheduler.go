package scheduler

import (
	"context"
	"time"

	"daily_quran_service/internal/app" // For DailyDispatcher interface

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DispatchScheduler triggers the daily dispatch job at a fixed wall-clock time
// in a fixed timezone. A trigger that arrives while the previous run is still
// in progress is skipped, never run in parallel with it, and a panicking job
// is recovered so it cannot terminate the host process.
type DispatchScheduler struct {
	cronEngine *cron.Cron
	dispatcher app.DailyDispatcher
	logger     *logrus.Logger
	cronSpec   string
}

func NewDispatchScheduler(
	dispatcher app.DailyDispatcher,
	logger *logrus.Logger,
	cronSpec string, // e.g. "0 8 * * *" (08:00 daily)
	loc *time.Location,
) *DispatchScheduler {
	cronLog := cron.PrintfLogger(logger)
	return &DispatchScheduler{
		cronEngine: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.SkipIfStillRunning(cronLog), cron.Recover(cronLog)),
		),
		dispatcher: dispatcher,
		logger:     logger,
		cronSpec:   cronSpec,
	}
}

func (s *DispatchScheduler) Start() {
	s.logger.Info("Starting dispatch scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		s.logger.Info("Cron job triggered for daily verse dispatch.")
		if _, err := s.dispatcher.RunDailyDispatch(context.Background()); err != nil {
			// Caught here so a failed run never prevents future triggers.
			s.logger.WithError(err).Error("Daily verse dispatch run failed")
		}
	})
	if err != nil {
		s.logger.Fatalf("FATAL: Could not add daily dispatch cron job: %v", err)
	}

	s.cronEngine.Start()
	s.logger.Infof("Dispatch scheduler started with spec %q in %s.", s.cronSpec, s.cronEngine.Location())
}

func (s *DispatchScheduler) Stop() {
	s.logger.Info("Stopping dispatch scheduler...")
	ctx := s.cronEngine.Stop() // Stops new triggers, waits for a running job.
	<-ctx.Done()               // Wait for graceful shutdown
	s.logger.Info("Dispatch scheduler gracefully stopped.")
}
