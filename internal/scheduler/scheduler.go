// Package scheduler runs the background maintenance jobs of the server:
// purging expired cache entries and pre-loading the default dashboard window.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/guttosm/b3dash/internal/logger"
)

// Purger drops expired entries and reports how many were removed.
type Purger interface {
	Purge() int
}

// WarmFunc fetches data ahead of user requests so that they hit the cache.
type WarmFunc func(ctx context.Context) error

// Scheduler wraps a cron runner with the cache jobs.
type Scheduler struct {
	cron    *cron.Cron
	ctx     context.Context
	store   Purger
	warm    WarmFunc
	timeout time.Duration
	log     zerolog.Logger
}

// New builds a scheduler. warm may be nil.
func New(ctx context.Context, store Purger, warm WarmFunc) *Scheduler {
	log := logger.L().With().Str("component", "scheduler").Logger()
	cl := cronLogger{log: log}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		ctx:     ctx,
		store:   store,
		warm:    warm,
		timeout: 2 * time.Minute,
		log:     log,
	}
}

// Register adds the purge and warm-up jobs. An empty spec disables that job.
// Specs use the standard five-field cron syntax or descriptors such as "@every 10m".
func (s *Scheduler) Register(purgeSpec, warmSpec string) error {
	if purgeSpec != "" {
		if _, err := s.cron.AddFunc(purgeSpec, func() { s.PurgeNow() }); err != nil {
			return fmt.Errorf("register purge job: %w", err)
		}
	}
	if warmSpec != "" && s.warm != nil {
		if _, err := s.cron.AddFunc(warmSpec, s.WarmNow); err != nil {
			return fmt.Errorf("register warm-up job: %w", err)
		}
	}
	return nil
}

// Jobs returns the number of registered jobs.
func (s *Scheduler) Jobs() int { return len(s.cron.Entries()) }

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Int("jobs", s.Jobs()).Msg("scheduler started")
}

// Stop halts the scheduler and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
		s.log.Info().Msg("scheduler stopped")
	case <-ctx.Done():
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

// PurgeNow removes expired cache entries.
func (s *Scheduler) PurgeNow() int {
	n := s.store.Purge()
	s.log.Debug().Int("purged", n).Msg("cache purge")
	return n
}

// WarmNow runs the warm-up once, bounded by the scheduler timeout.
func (s *Scheduler) WarmNow() {
	if s.warm == nil {
		return
	}
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.warm(ctx); err != nil {
		s.log.Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("cache warm-up failed")
		return
	}
	s.log.Info().Dur("elapsed", time.Since(start)).Msg("cache warm-up done")
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
