package delivery_stats

import (
	"context"
	"time"

	"deliveryhub/internal/entities"
	"deliveryhub/internal/pkg/metrics"
	"deliveryhub/pkg/logger"
)

type Service interface {
	StatusCounts(ctx context.Context) (map[entities.DeliveryStatus]int64, error)
}

type DeliveryStats struct {
	log      logger.Logger
	service  Service
	interval time.Duration
}

func NewDeliveryStats(log logger.Logger, service Service, interval time.Duration) *DeliveryStats {
	return &DeliveryStats{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (d *DeliveryStats) TTL() time.Duration {
	return d.interval
}

func (d *DeliveryStats) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, d.interval)
	defer cancel()

	counts, err := d.service.StatusCounts(ctxWithTimeout)
	if err != nil {
		return err
	}

	for status, count := range counts {
		metrics.DeliveriesByStatus.WithLabelValues(status.String()).Set(float64(count))
	}
	return nil
}

func (d *DeliveryStats) Info() string {
	return "delivery stats"
}
