package rate_limit_sweep

import (
	"context"
	"time"

	"deliveryhub/internal/pkg/middlewares/rate_limiter"
	"deliveryhub/pkg/logger"
)

type Sweeper interface {
	Sweep() int
	Len() int
}

// RateLimitSweep выбрасывает восстановившиеся корзины rate limiter,
// чтобы карта клиентов не росла бесконечно.
type RateLimitSweep struct {
	log      logger.Logger
	limiter  Sweeper
	interval time.Duration
}

func NewRateLimitSweep(log logger.Logger, limiter Sweeper, interval time.Duration) *RateLimitSweep {
	return &RateLimitSweep{
		log:      log,
		limiter:  limiter,
		interval: interval,
	}
}

func (s *RateLimitSweep) TTL() time.Duration {
	return s.interval
}

func (s *RateLimitSweep) Do(_ context.Context) error {
	removed := s.limiter.Sweep()
	active := s.limiter.Len()
	rate_limiter.TrackedClients.Set(float64(active))

	if removed > 0 {
		s.log.With(
			logger.NewField("removed", removed),
			logger.NewField("active", active),
		).Info("rate limiter sweep")
	}
	return nil
}

func (s *RateLimitSweep) Info() string {
	return "rate limiter sweep"
}
