package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

const DefaultHousekeepingSchedule = "@every 1h"

// HousekeepingService periodically deletes expired sessions, invites and
// mailed tokens. Expired sessions are also dropped lazily when presented, so
// the sweep only bounds table growth.
type HousekeepingService struct {
	Deps
	Logger   *slog.Logger
	Schedule string // cron spec, e.g. "@every 30m" or "0 3 * * *"

	cron    *cron.Cron
	initial sync.WaitGroup // the sweep Start runs outside the cron
}

// SweepReport counts the rows one sweep removed.
type SweepReport struct {
	Sessions int64 `json:"sessions"`
	Invites  int64 `json:"invites"`
	Tokens   int64 `json:"tokens"`
}

// Start schedules the sweep and runs one immediately. It does not block.
func (s *HousekeepingService) Start() error {
	spec := s.Schedule
	if spec == "" {
		spec = DefaultHousekeepingSchedule
	}

	s.cron = cron.New(cron.WithLocation(time.UTC))
	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		return fmt.Errorf("housekeeping schedule %q: %w", spec, err)
	}
	s.cron.Start()

	s.initial.Go(s.tick)
	s.logger().Info("housekeeping service started", slog.String("schedule", spec))
	return nil
}

// Stop waits for a running sweep to finish, including the one Start kicked
// off.
func (s *HousekeepingService) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.initial.Wait()
	s.logger().Info("housekeeping service stopped")
}

func (s *HousekeepingService) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	_, _ = s.Sweep(ctx)
}

// Sweep runs one cleanup pass. Each table is swept independently; the
// first error is returned after all three were attempted.
func (s *HousekeepingService) Sweep(ctx context.Context) (SweepReport, error) {
	log := s.logger()
	now := s.now()

	var (
		rep      SweepReport
		firstErr error
	)
	sweep := func(kind string, fn func(context.Context, time.Time) (int64, error), n *int64) {
		deleted, err := fn(ctx, now)
		if err != nil {
			log.Error("housekeeping sweep failed", slog.String("kind", kind), slog.Any("error", err))
			if firstErr == nil {
				firstErr = err
			}
			return
		}
		*n = deleted
		s.Metrics.ObserveSwept(kind, deleted)
	}

	sweep("sessions", s.Store.Sessions().DeleteExpired, &rep.Sessions)
	sweep("invites", s.Store.Invites().DeleteExpired, &rep.Invites)
	sweep("tokens", s.Store.UserTokens().DeleteExpired, &rep.Tokens)

	log.Info("housekeeping sweep completed",
		slog.Int64("sessions", rep.Sessions),
		slog.Int64("invites", rep.Invites),
		slog.Int64("tokens", rep.Tokens),
	)
	return rep, firstErr
}

func (s *HousekeepingService) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
