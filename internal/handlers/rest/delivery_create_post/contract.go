//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_create_post_test
package delivery_create_post

import (
	"context"

	"deliveryhub/internal/entities"
	"deliveryhub/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	Create(ctx context.Context, callerID string, deliveryCreate entities.DeliveryCreate) (*entities.Delivery, error)
}
