//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"deliveryhub/internal/handlers/tasks/delivery_stats"
	"deliveryhub/internal/handlers/tasks/outbox_relay"
	"deliveryhub/internal/handlers/tasks/rate_limit_sweep"
	"deliveryhub/internal/pkg/config"
	deliveryService "deliveryhub/internal/service/delivery"
	"deliveryhub/internal/service/events"
	"deliveryhub/pkg/logger"
	"deliveryhub/pkg/token_bucket"

	"github.com/google/wire"
)

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	store *Store,
	cfg *config.Config,
) (*Application, func(), error) {
	wire.Build(
		wire.FieldsOf(new(*Store), "Deliveries", "Events", "Outbox", "TxManager"),

		provideTransitionPolicy,
		provideServiceDelivery,
		provideVerifier,
		provideRateLimiter,

		providePublisher,
		provideRelay,

		provideOutboxRelayTask,
		provideDeliveryStatsTask,
		provideRateLimitSweepTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceDelivery), new(*deliveryService.Delivery)),
		wire.Bind(new(delivery_stats.Service), new(*deliveryService.Delivery)),
		wire.Bind(new(outbox_relay.Relayer), new(*events.Relay)),
		wire.Bind(new(rate_limit_sweep.Sweeper), new(*token_bucket.Keyed)),
	)
	return nil, nil, nil
}
