package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"deliveryhub/internal/entities"
	"deliveryhub/internal/service/delivery"
	"deliveryhub/pkg/logger"
)

const (
	MsgMissingRequiredFields = "Missing required fields"
	MsgInvalidRequestBody    = "Invalid request body"
	MsgForbidden             = "Forbidden"
	MsgNotAssigned           = "You are not the assigned transporter for this delivery"
	MsgNotFound              = "Delivery not found"
	MsgNoLongerAvailable     = "Delivery is no longer available"
	MsgAlreadyAccepted       = "Delivery already accepted by another transporter"
	MsgInvalidTransition     = "Status transition not allowed"
	MsgConcurrentUpdate      = "Delivery was modified by another request. Try again."
	MsgUnauthorized          = "Unauthorized: No token provided"
	MsgInternal              = "Internal server error"
)

var (
	MsgInvalidStatus            = "Invalid status. Must be one of: " + joinStatuses(entities.DeliveryStatuses)
	MsgInvalidTransporterStatus = "Transporters can only set: " + joinStatuses(entities.TransporterStatuses)
)

type Logger interface {
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Message struct {
	Message string `json:"message"`
}

// JSON пишет тело ответа с указанным кодом.
func JSON(w http.ResponseWriter, log Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

func WriteMessage(w http.ResponseWriter, log Logger, status int, message string) {
	JSON(w, log, status, Message{Message: message})
}

// Error переводит ошибку сервиса в HTTP-ответ. Детали неизвестных ошибок
// пишутся в лог и не уходят клиенту.
func Error(w http.ResponseWriter, log Logger, err error) {
	status, message := Classify(err)
	if status == http.StatusInternalServerError {
		log.With(
			logger.NewField("error", err),
		).Error("request failed")
	}
	WriteMessage(w, log, status, message)
}

func Classify(err error) (int, string) {
	switch {
	case errors.Is(err, delivery.ErrMissingRequiredFields):
		return http.StatusBadRequest, MsgMissingRequiredFields
	case errors.Is(err, delivery.ErrInvalidStatus):
		return http.StatusBadRequest, MsgInvalidStatus
	case errors.Is(err, delivery.ErrInvalidTransporterStatus):
		return http.StatusBadRequest, MsgInvalidTransporterStatus
	case errors.Is(err, delivery.ErrForbidden):
		return http.StatusForbidden, MsgForbidden
	case errors.Is(err, delivery.ErrNotAssignedTransporter):
		return http.StatusForbidden, MsgNotAssigned
	case errors.Is(err, delivery.ErrDeliveryNotFound):
		return http.StatusNotFound, MsgNotFound
	case errors.Is(err, delivery.ErrNoLongerAvailable):
		return http.StatusConflict, MsgNoLongerAvailable
	case errors.Is(err, delivery.ErrAlreadyAccepted):
		return http.StatusConflict, MsgAlreadyAccepted
	case errors.Is(err, delivery.ErrInvalidTransition):
		return http.StatusConflict, MsgInvalidTransition
	case errors.Is(err, delivery.ErrConcurrentUpdate):
		return http.StatusConflict, MsgConcurrentUpdate
	default:
		return http.StatusInternalServerError, MsgInternal
	}
}

func joinStatuses(statuses []entities.DeliveryStatus) string {
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}
	return strings.Join(names, ", ")
}
