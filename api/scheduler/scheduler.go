// Package scheduler runs the periodic reminder sweep and the midnight
// day-reset for the reminder engine.
package scheduler

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/medlove-app/medlove-api/databases"
	"github.com/medlove-app/medlove-api/reminder"
)

// Scheduler handles the periodic reminder sweep and the midnight reset
type Scheduler struct {
	cron       *cron.Cron
	engine     *reminder.Engine
	LockDB     databases.SchedulerLockDatabase
	instanceID string
	sweepSpec  string
	location   *time.Location

	mu         sync.Mutex
	resetTimer *time.Timer
	stopped    bool
}

// NewScheduler creates a new scheduler instance
func NewScheduler(engine *reminder.Engine, lockDB databases.SchedulerLockDatabase, sweepSpec string, location *time.Location) *Scheduler {
	// Generate a unique instance ID for this pod
	instanceID := os.Getenv("DYNO") // Heroku sets this to "web.1", "web.2", etc.
	if instanceID == "" {
		instanceID = fmt.Sprintf("instance-%d", time.Now().UnixNano())
	}
	if location == nil {
		location = time.UTC
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(location)),
		engine:     engine,
		LockDB:     lockDB,
		instanceID: instanceID,
		sweepSpec:  sweepSpec,
		location:   location,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// Rebuild the dedup ledger so a restart does not resend today's reminders
	if err := s.engine.Restore(ctx, time.Now()); err != nil {
		zap.S().Errorw("failed to restore reminder ledger", "error", err)
	}

	// Sweep for due medications every 5 minutes by default
	_, err := s.cron.AddFunc(s.sweepSpec, s.sweep)
	if err != nil {
		zap.S().Errorw("failed to register reminder sweep job", "error", err)
	}

	s.cron.Start()
	s.scheduleMidnightReset()
	zap.S().Infow("Reminder scheduler started", "instance", s.instanceID, "sweepSpec", s.sweepSpec)
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	if s.resetTimer != nil {
		s.resetTimer.Stop()
	}
	s.mu.Unlock()

	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Reminder scheduler stopped")
}

// sweep runs one reminder pass across all users and medications
func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Try to acquire distributed lock (10 minute TTL)
	acquired, err := s.LockDB.TryAcquireLock(ctx, "reminder_sweep", s.instanceID, 10*time.Minute)
	if err != nil {
		zap.S().Errorw("failed to acquire lock for reminder sweep", "error", err)
		return
	}
	if !acquired {
		zap.S().Debug("Reminder sweep already running on another instance, skipping")
		return
	}
	defer s.LockDB.ReleaseLock(ctx, "reminder_sweep", s.instanceID)

	if err := s.engine.OnTick(ctx, time.Now()); err != nil {
		zap.S().Errorw("reminder sweep failed", "error", err)
	}
}

// scheduleMidnightReset arms a one-shot timer for the next local midnight.
// The duration is recomputed on every firing so DST transitions and clock
// drift never accumulate.
func (s *Scheduler) scheduleMidnightReset() {
	now := time.Now().In(s.location)
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location).AddDate(0, 0, 1)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.resetTimer = time.AfterFunc(next.Sub(now), s.runMidnightReset)
	zap.S().Infow("Scheduled midnight reset", "at", next)
}

func (s *Scheduler) runMidnightReset() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	acquired, err := s.LockDB.TryAcquireLock(ctx, "midnight_reset", s.instanceID, 10*time.Minute)
	if err != nil {
		zap.S().Errorw("failed to acquire lock for midnight reset", "error", err)
	} else if acquired {
		if err := s.engine.ResetDay(ctx, time.Now()); err != nil {
			zap.S().Errorw("midnight reset failed", "error", err)
		}
		s.LockDB.ReleaseLock(ctx, "midnight_reset", s.instanceID)
	} else {
		zap.S().Debug("Midnight reset already running on another instance, skipping")
	}

	s.scheduleMidnightReset()
}
