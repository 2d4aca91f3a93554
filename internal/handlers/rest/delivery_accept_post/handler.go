package delivery_accept_post

import (
	"net/http"

	"deliveryhub/internal/handlers/rest/dto"
	"deliveryhub/internal/handlers/rest/respond"
	"deliveryhub/internal/pkg/middlewares/auth"
	"deliveryhub/pkg/logger"

	"github.com/gorilla/mux"
)

const msgAccepted = "Delivery accepted successfully"

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

	accepted, err := h.service.Accept(r.Context(), callerID, mux.Vars(r)["id"])
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	h.log.Info("delivery accepted",
		logger.NewField("delivery_id", accepted.ID),
		logger.NewField("transporter_id", callerID),
	)

	respond.JSON(w, h.log, http.StatusOK, dto.AcceptResponse{
		Message:    msgAccepted,
		DeliveryID: accepted.ID,
	})
}
