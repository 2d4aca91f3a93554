package deliveries_available_get

import (
	"net/http"

	"deliveryhub/internal/handlers/rest/dto"
	"deliveryhub/internal/handlers/rest/respond"
)

// Handler отдает доску доступных доставок. Аутентификация здесь не проверяется,
// ее при необходимости навешивает роутер.
type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	deliveries, err := h.service.ListAvailable(r.Context())
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	respond.JSON(w, h.log, http.StatusOK, dto.DeliveriesResponse{
		Deliveries: dto.FromDeliveries(deliveries),
	})
}
