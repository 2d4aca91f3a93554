//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_status_patch_test
package delivery_status_patch

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
	UpdateStatus(ctx context.Context, callerID string, id string, status entities.DeliveryStatus) (*entities.Delivery, error)
}
