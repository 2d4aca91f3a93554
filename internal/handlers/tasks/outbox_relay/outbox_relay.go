package outbox_relay

import (
	"context"
	"time"

	"deliveryhub/internal/service/events"
	"deliveryhub/pkg/logger"
)

type Relayer interface {
	Relay(ctx context.Context) (events.Result, error)
}

type OutboxRelay struct {
	log      logger.Logger
	relayer  Relayer
	interval time.Duration
}

func NewOutboxRelay(log logger.Logger, relayer Relayer, interval time.Duration) *OutboxRelay {
	return &OutboxRelay{
		log:      log,
		relayer:  relayer,
		interval: interval,
	}
}

func (o *OutboxRelay) TTL() time.Duration {
	return o.interval
}

func (o *OutboxRelay) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, o.interval)
	defer cancel()

	result, err := o.relayer.Relay(ctxWithTimeout)
	if err != nil {
		return err
	}

	if result.Failed > 0 {
		o.log.With(
			logger.NewField("published", result.Published),
			logger.NewField("pending", result.Pending),
			logger.NewField("reason", result.FailureReason),
		).Warn("outbox relay stopped on publish failure")
		return nil
	}

	if result.Published > 0 {
		o.log.With(
			logger.NewField("published", result.Published),
			logger.NewField("pending", result.Pending),
		).Info("outbox relay")
	}
	return nil
}

func (o *OutboxRelay) Info() string {
	return "outbox relay"
}
