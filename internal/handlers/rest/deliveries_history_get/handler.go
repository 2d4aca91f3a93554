package deliveries_history_get

import (
	"net/http"

	"deliveryhub/internal/handlers/rest/dto"
	"deliveryhub/internal/handlers/rest/respond"
	"deliveryhub/internal/pkg/middlewares/auth"
)

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
	callerID, ok := auth.CallerID(r.Context())
	if !ok {
		respond.WriteMessage(w, h.log, http.StatusUnauthorized, respond.MsgUnauthorized)
		return
	}

	deliveries, err := h.service.ListHistory(r.Context(), callerID)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	respond.JSON(w, h.log, http.StatusOK, dto.DeliveriesResponse{
		Deliveries: dto.FromDeliveries(deliveries),
	})
}
