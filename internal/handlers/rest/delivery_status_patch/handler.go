package delivery_status_patch

import (
	"encoding/json"
	"net/http"

	"deliveryhub/internal/entities"
	"deliveryhub/internal/handlers/rest/dto"
	"deliveryhub/internal/handlers/rest/respond"
	"deliveryhub/internal/pkg/middlewares/auth"
	"deliveryhub/pkg/logger"

	"github.com/gorilla/mux"
)

const msgStatusUpdated = "Status updated"

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

	var statusDTO dto.StatusUpdate
	err := json.NewDecoder(r.Body).Decode(&statusDTO)
	if err != nil {
		respond.WriteMessage(w, h.log, http.StatusBadRequest, respond.MsgInvalidRequestBody)
		return
	}

	id := mux.Vars(r)["id"]
	updated, err := h.service.UpdateStatus(r.Context(), callerID, id, entities.DeliveryStatus(statusDTO.Status))
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	h.log.Info("delivery status updated by owner",
		logger.NewField("delivery_id", id),
		logger.NewField("status", updated.Status.String()),
	)

	respond.JSON(w, h.log, http.StatusOK, dto.StatusUpdateResponse{
		Message: msgStatusUpdated,
		Status:  updated.Status.String(),
	})
}
