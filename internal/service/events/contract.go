//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=events_test
package events

import (
	"context"
	"time"

	"deliveryhub/internal/entities"
)

type Outbox interface {
	FetchPending(ctx context.Context, limit int) ([]entities.OutboxMessage, error)
	MarkPublished(ctx context.Context, ids []int64, publishedAt time.Time) error
	MarkFailed(ctx context.Context, id int64, reason string) error
	CountPending(ctx context.Context) (int64, error)
}

type Publisher interface {
	Publish(ctx context.Context, event entities.DeliveryEvent) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
