// internal/app/dispatch_service.go
package app

import (
	"context"
	"fmt"
	"time"

	"daily_quran_service/internal/domain/mail"
	"daily_quran_service/internal/domain/subscriber"
	"daily_quran_service/internal/domain/verse"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// DailyDispatcher defines the operation the scheduler triggers once per day.
type DailyDispatcher interface {
	RunDailyDispatch(ctx context.Context) (DispatchRun, error)
}

// DispatchRun summarizes one scheduled invocation. It exists only for the
// duration of the run and is discarded after logging.
type DispatchRun struct {
	Verse     *verse.Verse
	Attempted int
	Succeeded int
	Failed    int
}

// DispatchService orchestrates the daily verse delivery: load active
// subscribers, pick one verse for the run, send to each subscriber
// sequentially, aggregate results.
type DispatchService struct {
	subs      subscriber.Repository
	verses    verse.Provider
	sender    mail.Sender
	logger    *logrus.Logger
	clientURL string
	limiter   *rate.Limiter // nil when pacing is disabled
}

func NewDispatchService(
	subs subscriber.Repository,
	verses verse.Provider,
	sender mail.Sender,
	logger *logrus.Logger,
	clientURL string,
	sendDelay time.Duration,
) *DispatchService {
	s := &DispatchService{
		subs:      subs,
		verses:    verses,
		sender:    sender,
		logger:    logger,
		clientURL: clientURL,
	}
	if sendDelay > 0 {
		s.limiter = rate.NewLimiter(rate.Every(sendDelay), 1)
	}
	return s
}

// RunDailyDispatch executes one dispatch run. A missing verse or an empty
// recipient list terminates the run with zero counts; only a persistence
// failure is reported as an error. One subscriber's send failure never aborts
// or skips the remaining subscribers.
func (s *DispatchService) RunDailyDispatch(ctx context.Context) (DispatchRun, error) {
	var run DispatchRun
	s.logger.Info("Starting daily verse dispatch run...")

	recipients, err := s.subs.ListActiveWithEmail(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load subscribers for dispatch")
		return run, fmt.Errorf("failed to load subscribers: %w", err)
	}
	if len(recipients) == 0 {
		s.logger.Info("No active subscribers with email addresses. Nothing to dispatch.")
		return run, nil
	}

	v, err := s.verses.Random(ctx)
	if err != nil {
		// Expected, recoverable outcome: the next scheduled run tries again.
		s.logger.WithError(err).Error("Failed to fetch verse data. Skipping this dispatch run.")
		return run, nil
	}
	run.Verse = v
	s.logger.Infof("Sending verse %s to %d subscribers", v.Reference(), len(recipients))

	now := time.Now()
	for i, sub := range recipients {
		if s.limiter != nil && i > 0 {
			if err := s.limiter.Wait(ctx); err != nil {
				s.logger.WithError(err).Warn("Send pacing interrupted")
			}
		}

		run.Attempted++
		payload := ComposeDailyVerse(v, sub, now, s.clientURL)
		if err := s.sender.Send(ctx, payload); err != nil {
			run.Failed++
			s.logger.WithError(err).WithField("email", payload.ToEmail).Error("Failed to send daily verse")
			continue
		}
		run.Succeeded++
		s.logger.WithField("email", payload.ToEmail).Debug("Daily verse sent")
	}

	s.logger.Infof("Daily verse dispatch completed for %s: %d sent, %d failed", v.Reference(), run.Succeeded, run.Failed)
	return run, nil
}
