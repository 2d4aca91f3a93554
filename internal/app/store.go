package app

import (
	"context"
	"fmt"

	"deliveryhub/internal/handlers/rest/healthcheck_head"
	"deliveryhub/internal/pkg/config"
	"deliveryhub/internal/pkg/postgres"
	deliveryRepo "deliveryhub/internal/repository/delivery"
	"deliveryhub/internal/repository/memory"
	outboxRepo "deliveryhub/internal/repository/outbox"
	deliveryService "deliveryhub/internal/service/delivery"
	"deliveryhub/internal/service/events"
	"deliveryhub/pkg/logger"
	"deliveryhub/pkg/querier"
	"deliveryhub/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store - хранилище доставок и outbox, выбранное через STORE_DRIVER.
type Store struct {
	Deliveries deliveryService.Repository
	Events     deliveryService.EventRecorder
	Outbox     events.Outbox
	TxManager  deliveryService.TxManager
	Pinger     healthcheck_head.Pinger
}

func NewStore(ctx context.Context, log logger.Logger, cfg *config.Config) (*Store, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		log.Warn("using in-memory store, data is lost on restart")
		return NewMemoryStore(memory.New()), func() {}, nil
	case config.StoreDriverPostgres:
		pool, err := postgres.NewConnPool(ctx, log, &cfg.Store.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("database: %w", err)
		}

		if cfg.Store.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, log, pool); err != nil {
				pool.Close()
				return nil, nil, fmt.Errorf("migrations: %w", err)
			}
		}
		return NewPostgresStore(pool, pgxv5.DefaultCtxGetter), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func NewPostgresStore(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *Store {
	q := querier.New(pool, getter)
	outbox := outboxRepo.New(q)

	return &Store{
		Deliveries: deliveryRepo.New(q),
		Events:     outbox,
		Outbox:     outbox,
		TxManager:  tx.New(pool),
		Pinger:     pool,
	}
}

func NewMemoryStore(store *memory.Store) *Store {
	outbox := memory.NewOutbox(store)

	return &Store{
		Deliveries: memory.NewDeliveries(store),
		Events:     outbox,
		Outbox:     outbox,
		TxManager:  store,
		Pinger:     store,
	}
}
