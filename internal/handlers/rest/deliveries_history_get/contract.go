//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=deliveries_history_get_test
package deliveries_history_get

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
	ListHistory(ctx context.Context, callerID string) ([]entities.Delivery, error)
}
