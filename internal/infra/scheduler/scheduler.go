package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// CycleRunner runs one poll cycle to completion.
type CycleRunner interface {
	RunCycle(ctx context.Context)
}

// PollScheduler triggers poll cycles on a fixed interval. SkipIfStillRunning
// keeps at most one cycle in flight, so the PollService state stays under a
// single cycle's exclusive ownership.
type PollScheduler struct {
	cronEngine  *cron.Cron
	pollService CycleRunner
	logger      *logrus.Logger
	interval    time.Duration
}

func NewPollScheduler(
	pollService CycleRunner,
	logger *logrus.Logger,
	interval time.Duration, // e.g. 600s, the review API poll period
) *PollScheduler {
	return &PollScheduler{
		cronEngine:  cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		pollService: pollService,
		logger:      logger,
		interval:    interval,
	}
}

func (s *PollScheduler) Start() {
	s.logger.Info("Starting poll scheduler...")

	spec := fmt.Sprintf("@every %s", s.interval)
	_, err := s.cronEngine.AddFunc(spec, s.runCycle)
	if err != nil {
		s.logger.Fatalf("Could not add poll cron job: %v", err)
	}

	// Cron fires only after the first interval elapses; poll once up front so
	// pending updates are reported at startup rather than ten minutes in.
	s.runCycle()

	s.cronEngine.Start()
	s.logger.Infof("Poll scheduler started. Interval: %s", s.interval)
}

func (s *PollScheduler) runCycle() {
	// A cycle that outlives the poll interval is cancelled rather than piling
	// up behind the next one.
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()
	s.pollService.RunCycle(ctx)
}

func (s *PollScheduler) Stop() {
	s.logger.Info("Stopping poll scheduler...")
	ctx := s.cronEngine.Stop() // Stops scheduling new cycles, waits for a running one.
	<-ctx.Done()
	s.logger.Info("Poll scheduler gracefully stopped.")
}
