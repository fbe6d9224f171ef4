package service

import (
	"os"
	"sync"
	"time"

	"pdf-toolbox/internal/domain"
)

// TimedCleanupScheduler deletes artifacts after a delay, independent of the
// request that created them. Timers live for the process lifetime only; no
// schedule survives a restart. Implements domain.CleanupScheduler.
type TimedCleanupScheduler struct {
	logger domain.Logger
	after  func(time.Duration) <-chan time.Time
	wg     sync.WaitGroup
}

// NewCleanupScheduler creates a scheduler backed by wall-clock timers.
func NewCleanupScheduler(logger domain.Logger) *TimedCleanupScheduler {
	return newCleanupScheduler(logger, time.After)
}

// newCleanupScheduler lets tests inject a controllable clock.
func newCleanupScheduler(logger domain.Logger, after func(time.Duration) <-chan time.Time) *TimedCleanupScheduler {
	return &TimedCleanupScheduler{
		logger: logger,
		after:  after,
	}
}

// ScheduleDelete removes the file or directory at path after delay.
// Fire-and-forget: deletion failures are logged, never escalated.
func (s *TimedCleanupScheduler) ScheduleDelete(path string, delay time.Duration) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		<-s.after(delay)
		s.remove(path)
	}()
	s.logger.Debug("Scheduled deletion", "path", path, "delay", delay)
}

func (s *TimedCleanupScheduler) remove(path string) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		// Already gone; someone else cleaned up first.
		return
	}
	if err != nil {
		s.logger.Warn("Scheduled deletion could not stat target", "path", path, "error", err)
		return
	}
	if info.IsDir() {
		err = os.RemoveAll(path)
	} else {
		err = os.Remove(path)
	}
	if err != nil {
		s.logger.Warn("Scheduled deletion failed", "path", path, "error", err)
		return
	}
	s.logger.Info("Removed expired artifact", "path", path)
}
