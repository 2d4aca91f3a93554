//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_test
package delivery

import (
	"context"

	"deliveryhub/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, delivery entities.Delivery) (*entities.Delivery, error)
	GetByID(ctx context.Context, id string) (*entities.Delivery, error)
	// GetByIDForUpdate читает доставку с блокировкой записи до конца текущей транзакции.
	GetByIDForUpdate(ctx context.Context, id string) (*entities.Delivery, error)
	ListByOwner(ctx context.Context, owner entities.OwnerRef) ([]entities.Delivery, error)
	ListByStatus(ctx context.Context, status entities.DeliveryStatus) ([]entities.Delivery, error)

	// Accept и UpdateStatus с заданным Expected - условные записи,
	// при несовпадении условия возвращают ErrConditionNotMet.
	Accept(ctx context.Context, claim entities.Claim) (*entities.Delivery, error)
	UpdateStatus(ctx context.Context, update entities.StatusUpdate) (*entities.Delivery, error)

	CountByStatus(ctx context.Context) (map[entities.DeliveryStatus]int64, error)
}

type EventRecorder interface {
	Record(ctx context.Context, event entities.DeliveryEvent) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
