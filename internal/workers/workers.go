package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-sched/internal/config"
	"github.com/MKhiriev/go-sched/internal/limiter"
	"github.com/MKhiriev/go-sched/internal/logger"
)

type Workers struct {
	workers []Worker
}

// NewWorkers returns the background workers of the server.
func NewWorkers(cfg config.Workers, loginLimiter *limiter.Limiter, log *logger.Logger) *Workers {
	return &Workers{workers: []Worker{
		NewLimiterSweeper(loginLimiter, cfg.LimiterSweepInterval, log),
	}}
}

func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}

// LimiterSweeper periodically forgets rate limiter clients that have been
// idle for longer than the sweep interval.
type LimiterSweeper struct {
	limiter  *limiter.Limiter
	interval time.Duration
	logger   *logger.Logger
}

func NewLimiterSweeper(l *limiter.Limiter, interval time.Duration, log *logger.Logger) *LimiterSweeper {
	return &LimiterSweeper{limiter: l, interval: interval, logger: log}
}

func (s *LimiterSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				s.logger.Debug().Msg("limiter sweeper stopped")
				return
			case <-ticker.C:
				if removed := s.limiter.Sweep(s.interval); removed > 0 {
					s.logger.Debug().Int("removed", removed).Msg("idle rate limiter clients dropped")
				}
			}
		}
	}()
}
