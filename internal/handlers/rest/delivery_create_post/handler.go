package delivery_create_post

import (
	"encoding/json"
	"net/http"

	"deliveryhub/internal/handlers/rest/dto"
	"deliveryhub/internal/handlers/rest/respond"
	"deliveryhub/internal/pkg/middlewares/auth"
	"deliveryhub/pkg/logger"
)

const msgCreated = "Delivery created successfully"

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

	var deliveryCreateDTO dto.DeliveryCreate
	err := json.NewDecoder(r.Body).Decode(&deliveryCreateDTO)
	if err != nil {
		respond.WriteMessage(w, h.log, http.StatusBadRequest, respond.MsgInvalidRequestBody)
		return
	}

	created, err := h.service.Create(r.Context(), callerID, deliveryCreateDTO.ToEntity())
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	h.log.Info("delivery created",
		logger.NewField("delivery_id", created.ID),
		logger.NewField("user_id", callerID),
	)

	respond.JSON(w, h.log, http.StatusCreated, dto.DeliveryCreateResponse{
		Message:    msgCreated,
		DeliveryID: created.ID,
		Delivery:   dto.FromDelivery(created),
	})
}
