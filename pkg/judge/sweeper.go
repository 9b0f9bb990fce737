package judge

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper runs CachedJudge.Sweep on a cron schedule. Seconds-granularity
// schedules are accepted because the default TTL is short; the standard
// five-field form and descriptors like "@every 1m" work too.
type Sweeper struct {
	cache    *CachedJudge
	schedule string
	cron     *cron.Cron
	mu       sync.Mutex
	logger   *slog.Logger
	running  bool
}

// NewSweeper creates a sweeper for the given cache. The schedule is a cron
// expression; an empty schedule disables the sweeper.
func NewSweeper(cache *CachedJudge, schedule string) *Sweeper {
	return &Sweeper{
		cache:    cache,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "judge.sweeper"),
	}
}

// Start begins scheduled sweeping. It returns immediately; sweeps run on the
// cron's background goroutine until the context is cancelled or Stop is
// called. An empty schedule is a no-op.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("sweep schedule not configured, skipping sweeper")
		return nil
	}

	_, err := s.cron.AddFunc(s.schedule, s.runSweep)
	if err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("cache sweeper started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

func (s *Sweeper) runSweep() {
	evicted := s.cache.Sweep()
	if evicted > 0 {
		s.logger.Info("scheduled cache sweep completed", "evicted", evicted)
	}
}

// Stop stops the scheduler and waits for an in-flight sweep to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.running = false
		s.logger.Info("cache sweeper stopped")
	}
}

// IsRunning returns true while the sweeper is scheduled.
func (s *Sweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// NextRun returns the next scheduled sweep time, or nil when not running.
func (s *Sweeper) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}
