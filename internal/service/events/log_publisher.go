package events

import (
	"context"

	"deliveryhub/internal/entities"
	"deliveryhub/pkg/logger"
)

// LogPublisher пишет события в лог. Используется, когда Kafka выключена.
type LogPublisher struct {
	log logger.Logger
}

func NewLogPublisher(log logger.Logger) *LogPublisher {
	return &LogPublisher{
		log: log.With(logger.NewField("publisher", "log")),
	}
}

func (p *LogPublisher) Publish(_ context.Context, event entities.DeliveryEvent) error {
	p.log.Info("delivery event",
		logger.NewField("event_id", event.ID),
		logger.NewField("event_type", event.Type.String()),
		logger.NewField("delivery_id", event.DeliveryID),
		logger.NewField("actor_id", event.ActorID),
		logger.NewField("status", event.Status.String()),
		logger.NewField("occurred_at", event.OccurredAt),
	)
	return nil
}
