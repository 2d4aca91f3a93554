package delivery_delete

import (
	"net/http"

	"deliveryhub/internal/handlers/rest/respond"
	"deliveryhub/internal/pkg/middlewares/auth"
	"deliveryhub/pkg/logger"

	"github.com/gorilla/mux"
)

const msgCancelled = "Delivery cancelled"

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

	id := mux.Vars(r)["id"]
	_, err := h.service.Cancel(r.Context(), callerID, id)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	h.log.Info("delivery cancelled", logger.NewField("delivery_id", id))

	respond.WriteMessage(w, h.log, http.StatusOK, msgCancelled)
}
