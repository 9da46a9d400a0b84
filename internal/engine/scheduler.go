package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/vitam-chat/internal/metrics"
)

const (
	jobSessionSweep  = "session_sweep"
	jobExchangePurge = "exchange_purge"

	purgeTimeout = 2 * time.Minute
)

// Scheduler runs the session sweep and exchange log purge on a schedule.
type Scheduler struct {
	cron    *cron.Cron
	engine  *Engine
	idleTTL time.Duration
	log     *slog.Logger

	sweepEntryID cron.EntryID
	purgeEntryID cron.EntryID
}

// NewScheduler creates a Scheduler. A zero purgeInterval leaves the purge
// job out, which is what callers pass when the exchange log is disabled.
func NewScheduler(
	eng *Engine,
	sweepInterval time.Duration,
	idleTTL time.Duration,
	purgeInterval time.Duration,
	log *slog.Logger,
) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:    c,
		engine:  eng,
		idleTTL: idleTTL,
		log:     log,
	}

	id, err := c.AddFunc("@every "+sweepInterval.String(), s.runSessionSweep)
	if err != nil {
		return nil, err
	}
	s.sweepEntryID = id

	if purgeInterval > 0 {
		id, err := c.AddFunc("@every "+purgeInterval.String(), s.runExchangePurge)
		if err != nil {
			return nil, err
		}
		s.purgeEntryID = id
	}

	return s, nil
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
	s.SyncNextRunTimestamps()
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// SyncNextRunTimestamps publishes the next run time of each job.
func (s *Scheduler) SyncNextRunTimestamps() {
	if e := s.cron.Entry(s.sweepEntryID); !e.Next.IsZero() {
		metrics.SchedulerNextRunTimestamp.WithLabelValues(jobSessionSweep).Set(float64(e.Next.Unix()))
	}
	if s.purgeEntryID == 0 {
		return
	}
	if e := s.cron.Entry(s.purgeEntryID); !e.Next.IsZero() {
		metrics.SchedulerNextRunTimestamp.WithLabelValues(jobExchangePurge).Set(float64(e.Next.Unix()))
	}
}

// runJob runs fn with a timeout and records its outcome.
func (s *Scheduler) runJob(
	ctx context.Context,
	name string,
	timeout time.Duration,
	fn func(ctx context.Context) error,
) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := fn(ctx)

	status := "succeeded"
	if err != nil {
		status = "failed"
		s.log.Error("scheduled job failed", "job", name, "error", err)
	} else {
		s.log.Debug("scheduled job finished", "job", name, "duration", time.Since(start))
	}
	metrics.SchedulerJobRunsTotal.WithLabelValues(name, status).Inc()
	s.SyncNextRunTimestamps()
	return err
}

func (s *Scheduler) runSessionSweep() {
	_ = s.runJob(context.Background(), jobSessionSweep, time.Minute, func(_ context.Context) error {
		s.engine.SweepSessions(s.idleTTL)
		return nil
	})
}

func (s *Scheduler) runExchangePurge() {
	_ = s.runJob(context.Background(), jobExchangePurge, purgeTimeout, func(ctx context.Context) error {
		n, err := s.engine.PurgeExchanges(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			s.log.Info("exchange log purged", "rows", n)
		}
		return nil
	})
}
