// Package scheduler recomputes the roster tables on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/run-expectancy/internal/metrics"
)

// JobFunc is one scheduled recomputation.
type JobFunc func(ctx context.Context) error

// RunStatus describes the most recent job execution.
type RunStatus struct {
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Err       string        `json:"error,omitempty"`
}

// OK reports whether the run succeeded.
func (r RunStatus) OK() bool {
	return r.Err == ""
}

// Scheduler manages scheduled roster runs
type Scheduler struct {
	cron            *cron.Cron
	logger          *logrus.Logger
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	lastRun         *RunStatus
	gracefulTimeout time.Duration
}

// NewScheduler creates a new scheduler. Overlapping executions of the same
// job are skipped.
func NewScheduler(logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.PanicLevel)
	}
	cronLogger := cron.PrintfLogger(logger)
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		logger:          logger,
		jobIDs:          make([]cron.EntryID, 0),
		gracefulTimeout: 30 * time.Second,
	}
}

// ScheduleRosterRun schedules job on cronExpression. Each execution gets
// its own context bounded by timeout.
func (s *Scheduler) ScheduleRosterRun(cronExpression string, timeout time.Duration, job JobFunc) (cron.EntryID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return 0, fmt.Errorf("cannot schedule job while scheduler is running")
	}
	if job == nil {
		return 0, fmt.Errorf("job is required")
	}
	if timeout <= 0 {
		timeout = 4 * time.Hour
	}

	entryID, err := s.cron.AddFunc(cronExpression, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		_ = s.RunNow(ctx, job)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", cronExpression).Info("Scheduled roster run")
	return entryID, nil
}

// RunNow executes job immediately and records its outcome.
func (s *Scheduler) RunNow(ctx context.Context, job JobFunc) error {
	status := RunStatus{StartedAt: time.Now().UTC()}
	s.logger.Info("Starting scheduled roster run")

	err := job(ctx)
	status.Duration = time.Since(status.StartedAt)
	if err != nil {
		status.Err = err.Error()
		metrics.RecordScheduledRun("failure")
		s.logger.WithError(err).Error("Scheduled roster run failed")
	} else {
		metrics.RecordScheduledRun("success")
		s.logger.WithField("duration", status.Duration).Info("Scheduled roster run completed")
	}

	s.mu.Lock()
	s.lastRun = &status
	s.mu.Unlock()
	return err
}

// LastRun returns the most recent run status, if any.
func (s *Scheduler) LastRun() (RunStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastRun == nil {
		return RunStatus{}, false
	}
	return *s.lastRun, true
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")
	return nil
}

// Stop waits for running jobs up to the graceful timeout
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-time.After(s.gracefulTimeout):
		return fmt.Errorf("scheduler did not stop within %s", s.gracefulTimeout)
	}
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() && (nextRun.IsZero() || entry.Next.Before(nextRun)) {
			nextRun = entry.Next
		}
	}
	return nextRun
}
