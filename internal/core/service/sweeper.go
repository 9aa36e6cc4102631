package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/openpolls/polling-api/internal/api/metrics"
	"github.com/openpolls/polling-api/internal/core/ports"
)

const defaultSweepInterval = 5 * time.Minute

// Sweeper periodically removes expired session rows. Expiry is already
// enforced at authentication time; the sweep only keeps the table from
// accumulating dead rows.
type Sweeper struct {
	sessions ports.SessionService
	interval time.Duration
	log      zerolog.Logger
}

// NewSweeper creates a Sweeper. If interval <= 0, defaultSweepInterval is used.
func NewSweeper(sessions ports.SessionService, interval time.Duration, log zerolog.Logger) *Sweeper {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &Sweeper{sessions: sessions, interval: interval, log: log}
}

// Start launches the sweep loop in its own goroutine. The loop stops when
// ctx is cancelled. One sweep runs immediately so a restart clears backlog
// without waiting a full interval.
func (s *Sweeper) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Sweeper) run(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	n, err := s.sessions.SweepExpired(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("session sweep failed")
		return
	}
	metrics.SessionsSweptTotal.Add(float64(n))
}
