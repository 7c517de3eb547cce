// Package job provides background job schedulers.
package job

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"contractor-directory/internal/app/service"
	"contractor-directory/pkg/locker"
)

// WarmScheduler periodically primes the search cache with the first
// directory page, with distributed locking so only one instance warms
// at a time.
type WarmScheduler struct {
	directory *service.DirectoryService
	interval  time.Duration
	timeout   time.Duration
	logger    *zap.Logger
	locker    locker.DistributedLocker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// WarmConfig holds warm scheduler configuration.
type WarmConfig struct {
	Interval  time.Duration
	Timeout   time.Duration
	OnStartup bool
}

// NewWarmScheduler creates a new WarmScheduler with distributed locking
// support.
func NewWarmScheduler(
	directory *service.DirectoryService,
	cfg WarmConfig,
	logger *zap.Logger,
	locker locker.DistributedLocker,
) *WarmScheduler {
	return &WarmScheduler{
		directory: directory,
		interval:  cfg.Interval,
		timeout:   cfg.Timeout,
		logger:    logger,
		locker:    locker,
	}
}

// Start begins the background warm job.
func (s *WarmScheduler) Start(runOnStartup bool) {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("starting warm scheduler",
		zap.Duration("interval", s.interval),
		zap.Bool("run_on_startup", runOnStartup),
	)

	s.wg.Add(1)
	go s.run(runOnStartup)
}

// Stop gracefully stops the scheduler.
func (s *WarmScheduler) Stop() {
	s.logger.Info("stopping warm scheduler")
	s.cancel()
	s.wg.Wait()
	s.logger.Info("warm scheduler stopped")
}

// run is the main loop of the scheduler.
func (s *WarmScheduler) run(runOnStartup bool) {
	defer s.wg.Done()

	if runOnStartup {
		s.executeWarm()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.executeWarm()
		}
	}
}

// executeWarm performs a warm operation with distributed locking and
// timeout.
//
// Locking behavior:
//   - Lock TTL = interval duration (cooldown model, not timeout)
//   - Success: Lock held for full interval to prevent duplicate warms
//   - Failure: Lock released immediately to allow retry by another instance
func (s *WarmScheduler) executeWarm() {
	const lockKey = "warm:scheduler:lock"

	acquired, err := s.locker.Acquire(s.ctx, lockKey, s.interval)
	if err != nil {
		s.logger.Error("failed to acquire distributed lock", zap.Error(err))

		return
	}
	if !acquired {
		s.logger.Debug("another instance is warming the cache, skipping execution")

		return
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	count, err := s.directory.Warm(ctx)
	if err != nil {
		// Release the lock so another instance can retry right away.
		if releaseErr := s.locker.Release(s.ctx, lockKey); releaseErr != nil {
			s.logger.Error("failed to release lock after warm error", zap.Error(releaseErr))
		}
		s.logger.Warn("cache warm failed, lock released for retry", zap.Error(err))

		return
	}

	// Lock expires naturally after the interval (cooldown period).
	s.logger.Info("cache warm completed, lock held for cooldown",
		zap.Int("count", count),
		zap.Duration("cooldown", s.interval),
	)
}
