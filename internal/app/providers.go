package app

import (
	"context"
	"fmt"

	"deliveryhub/internal/handlers/rest/deliveries_available_get"
	"deliveryhub/internal/handlers/rest/deliveries_history_get"
	"deliveryhub/internal/handlers/rest/delivery_accept_post"
	"deliveryhub/internal/handlers/rest/delivery_create_post"
	"deliveryhub/internal/handlers/rest/delivery_delete"
	"deliveryhub/internal/handlers/rest/delivery_get"
	"deliveryhub/internal/handlers/rest/delivery_status_patch"
	"deliveryhub/internal/handlers/rest/delivery_transporter_status_patch"
	"deliveryhub/internal/handlers/tasks/delivery_stats"
	"deliveryhub/internal/handlers/tasks/outbox_relay"
	"deliveryhub/internal/handlers/tasks/rate_limit_sweep"
	"deliveryhub/internal/pkg/config"
	"deliveryhub/internal/pkg/identity"
	"deliveryhub/internal/pkg/kafka"
	deliveryService "deliveryhub/internal/service/delivery"
	"deliveryhub/internal/service/events"
	"deliveryhub/pkg/background"
	"deliveryhub/pkg/logger"
	"deliveryhub/pkg/token_bucket"
)

type Application struct {
	ServiceDelivery   ServiceDelivery
	Verifier          *identity.JWTVerifier
	RateLimiter       *token_bucket.Keyed
	BackgroundWorkers *background.Worker
}

type ServiceDelivery interface {
	delivery_create_post.Service
	deliveries_history_get.Service
	delivery_get.Service
	delivery_status_patch.Service
	delivery_delete.Service
	deliveries_available_get.Service
	delivery_accept_post.Service
	delivery_transporter_status_patch.Service
}

func provideTransitionPolicy(cfg *config.Config) (deliveryService.TransitionPolicy, error) {
	return deliveryService.ParseTransitionPolicy(cfg.Delivery.TransitionPolicy)
}

func provideServiceDelivery(
	repository deliveryService.Repository,
	eventRecorder deliveryService.EventRecorder,
	txManager deliveryService.TxManager,
	policy deliveryService.TransitionPolicy,
) *deliveryService.Delivery {
	return deliveryService.New(
		repository,
		eventRecorder,
		txManager,
		policy,
	)
}

func provideVerifier(cfg *config.Config) (*identity.JWTVerifier, error) {
	return identity.NewJWTVerifier(cfg.Auth)
}

func provideRateLimiter(cfg *config.Config) *token_bucket.Keyed {
	return token_bucket.NewKeyed(cfg.Server.RateLimiterQPS, float64(cfg.Server.RateLimiterBurst))
}

// providePublisher выбирает Kafka или публикацию в лог, если Kafka выключена.
func providePublisher(ctx context.Context, log logger.Logger, cfg *config.Config) (events.Publisher, func(), error) {
	if !cfg.Kafka.Enabled {
		log.Warn("kafka disabled, delivery events are written to log")
		return events.NewLogPublisher(log), func() {}, nil
	}

	producer, err := kafka.NewProducer(ctx, log, &cfg.Kafka)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}

	return producer, func() {
		if err := producer.Close(); err != nil {
			log.Error("failed to close kafka producer", logger.NewField("error", err))
		}
	}, nil
}

func provideRelay(
	outbox events.Outbox,
	publisher events.Publisher,
	txManager deliveryService.TxManager,
	cfg *config.Config,
) *events.Relay {
	return events.New(outbox, publisher, txManager, cfg.Tasks.OutboxRelayBatch)
}

func provideOutboxRelayTask(log logger.Logger, relayer outbox_relay.Relayer, cfg *config.Config) *outbox_relay.OutboxRelay {
	return outbox_relay.NewOutboxRelay(log, relayer, cfg.Tasks.OutboxRelayInterval)
}

func provideDeliveryStatsTask(log logger.Logger, service delivery_stats.Service, cfg *config.Config) *delivery_stats.DeliveryStats {
	return delivery_stats.NewDeliveryStats(log, service, cfg.Tasks.DeliveryStatsInterval)
}

func provideRateLimitSweepTask(log logger.Logger, limiter rate_limit_sweep.Sweeper, cfg *config.Config) *rate_limit_sweep.RateLimitSweep {
	return rate_limit_sweep.NewRateLimitSweep(log, limiter, cfg.Tasks.RateLimitSweepInterval)
}

func provideTaskList(
	outboxRelayTask *outbox_relay.OutboxRelay,
	deliveryStatsTask *delivery_stats.DeliveryStats,
	rateLimitSweepTask *rate_limit_sweep.RateLimitSweep,
) []background.Task {
	return []background.Task{
		outboxRelayTask,
		deliveryStatsTask,
		rateLimitSweepTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
