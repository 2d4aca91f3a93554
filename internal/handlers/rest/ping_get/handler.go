package ping_get

import (
	"net/http"

	"deliveryhub/internal/handlers/rest/respond"
)

type Handler struct {
	log handlerLogger
}

func New(log handlerLogger) *Handler {
	handlerLog := log.With()

	return &Handler{
		log: handlerLog,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	respond.WriteMessage(w, h.log, http.StatusOK, "pong")
}
