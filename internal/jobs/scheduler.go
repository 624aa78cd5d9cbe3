// Package jobs runs the scheduled maintenance work of the offer API,
// currently the retention sweep over generated offer documents.
package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is a named unit of scheduled maintenance work.
type Job interface {
	Name() string
	Run()
}

// Scheduler drives the registered maintenance jobs on cron schedules.
type Scheduler struct {
	cron    *cron.Cron
	logger  *zap.Logger
	mu      sync.Mutex
	entries map[string]cron.EntryID
}

func NewScheduler(logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds(), cron.WithChain(
			cron.SkipIfStillRunning(cron.DefaultLogger),
			cron.Recover(cron.DefaultLogger),
		)),
		logger:  logger,
		entries: make(map[string]cron.EntryID),
	}
}

// Start begins running the registered jobs.
func (s *Scheduler) Start() {
	s.logger.Info("starting maintenance scheduler")
	s.cron.Start()
}

// Stop stops the scheduler. The returned context is done once any
// in-flight sweep has completed.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("stopping maintenance scheduler")
	return s.cron.Stop()
}

// Schedule registers a job under its name on the given cron expression.
// The expression uses the 6-field format with a leading seconds field,
// e.g. "0 30 3 * * *" for 03:30 every night; "@daily"-style descriptors
// also work. Registering the same job name twice is an error.
func (s *Scheduler) Schedule(job Job, cronExpr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := job.Name()
	if _, exists := s.entries[name]; exists {
		return fmt.Errorf("job %s is already scheduled", name)
	}

	entryID, err := s.cron.AddFunc(cronExpr, func() {
		start := time.Now()
		s.logger.Info("maintenance job starting", zap.String("job", name))
		job.Run()
		s.logger.Info("maintenance job finished",
			zap.String("job", name),
			zap.Duration("took", time.Since(start)))
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", name, err)
	}

	s.entries[name] = entryID
	s.logger.Info("maintenance job scheduled",
		zap.String("job", name),
		zap.String("cron_expr", cronExpr))

	return nil
}
