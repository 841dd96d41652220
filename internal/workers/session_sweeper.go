// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-student-registry/internal/logger"
)

// ExpiredSessionsSweeper is the part of the auth service the sweeper needs.
type ExpiredSessionsSweeper interface {
	SweepExpiredSessions(ctx context.Context, maxAge time.Duration) (int64, error)
}

// SessionSweeper periodically deletes sessions older than maxAge.
// A failed sweep is logged and retried on the next tick.
type SessionSweeper struct {
	sweeper  ExpiredSessionsSweeper
	interval time.Duration
	maxAge   time.Duration

	logger *logger.Logger
	wg     sync.WaitGroup
}

func NewSessionSweeper(sweeper ExpiredSessionsSweeper, interval, maxAge time.Duration, logger *logger.Logger) *SessionSweeper {
	return &SessionSweeper{
		sweeper:  sweeper,
		interval: interval,
		maxAge:   maxAge,
		logger:   logger,
	}
}

// Run sweeps once immediately and then every interval until ctx is done.
func (s *SessionSweeper) Run(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop(ctx)
	}()
}

func (s *SessionSweeper) Wait() {
	s.wg.Wait()
}

func (s *SessionSweeper) loop(ctx context.Context) {
	s.logger.Info().
		Str("func", "SessionSweeper.loop").
		Dur("interval", s.interval).
		Dur("max_age", s.maxAge).
		Msg("session sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Str("func", "SessionSweeper.loop").Msg("session sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *SessionSweeper) sweep(ctx context.Context) {
	removed, err := s.sweeper.SweepExpiredSessions(ctx, s.maxAge)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Err(err).Str("func", "SessionSweeper.sweep").Msg("sweep of expired sessions failed")
		return
	}

	if removed > 0 {
		s.logger.Info().Str("func", "SessionSweeper.sweep").Int64("removed", removed).Msg("expired sessions removed")
	}
}
