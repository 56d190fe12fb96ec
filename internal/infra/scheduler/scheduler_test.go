package scheduler

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"daily_quran_service/internal/app"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// blockingDispatcher tracks concurrent executions and blocks until released.
type blockingDispatcher struct {
	started    chan struct{}
	release    chan struct{}
	inFlight   atomic.Int32
	maxFlight  atomic.Int32
	executions atomic.Int32
}

func newBlockingDispatcher() *blockingDispatcher {
	return &blockingDispatcher{
		started: make(chan struct{}, 16),
		release: make(chan struct{}),
	}
}

func (d *blockingDispatcher) RunDailyDispatch(_ context.Context) (app.DispatchRun, error) {
	cur := d.inFlight.Add(1)
	defer d.inFlight.Add(-1)
	for {
		max := d.maxFlight.Load()
		if cur <= max || d.maxFlight.CompareAndSwap(max, cur) {
			break
		}
	}
	d.executions.Add(1)
	d.started <- struct{}{}
	<-d.release
	return app.DispatchRun{}, nil
}

type panickingDispatcher struct{}

func (panickingDispatcher) RunDailyDispatch(_ context.Context) (app.DispatchRun, error) {
	panic("dispatch blew up")
}

// triggerJob fires the scheduler's wrapped cron job the way a cron tick would.
func triggerJob(t *testing.T, s *DispatchScheduler) func() {
	t.Helper()
	entries := s.cronEngine.Entries()
	require.Len(t, entries, 1)
	return entries[0].WrappedJob.Run
}

func TestScheduler_SkipsOverlappingRuns(t *testing.T) {
	d := newBlockingDispatcher()
	s := NewDispatchScheduler(d, testLogger(), "0 8 * * *", time.UTC)
	s.Start()

	run := triggerJob(t, s)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		run()
	}()
	<-d.started // First trigger is now in flight.

	// A second trigger arriving during the window must be skipped, not queued
	// and not run in parallel.
	run()
	assert.Equal(t, int32(1), d.executions.Load())
	assert.Equal(t, int32(1), d.maxFlight.Load())

	close(d.release)
	wg.Wait()
	assert.Equal(t, int32(1), d.executions.Load())

	s.Stop()
}

func TestScheduler_RunsAgainAfterCompletion(t *testing.T) {
	d := newBlockingDispatcher()
	close(d.release) // Runs complete immediately.
	s := NewDispatchScheduler(d, testLogger(), "0 8 * * *", time.UTC)
	s.Start()

	run := triggerJob(t, s)
	run()
	<-d.started
	run()
	<-d.started

	assert.Equal(t, int32(2), d.executions.Load())
	s.Stop()
}

func TestScheduler_RecoversFromPanickingJob(t *testing.T) {
	s := NewDispatchScheduler(panickingDispatcher{}, testLogger(), "0 8 * * *", time.UTC)
	s.Start()

	run := triggerJob(t, s)
	assert.NotPanics(t, run, "a job panic must never escape to the host process")

	// The scheduler stays usable for future triggers.
	assert.NotPanics(t, run)
	s.Stop()
}

func TestScheduler_RejectsInvalidCronSpec(t *testing.T) {
	log := testLogger()
	log.ExitFunc = func(int) { panic("fatal") }
	s := NewDispatchScheduler(panickingDispatcher{}, log, "not a cron spec", time.UTC)

	assert.Panics(t, func() { s.Start() })
}
