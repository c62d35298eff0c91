package notification

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Salsabil-210/comhabits/internal/auth"
	"github.com/Salsabil-210/comhabits/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	unreadOnly := r.URL.Query().Get("unread") == "true"
	out, err := h.service.List(r.Context(), unreadOnly)
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, out)
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if err := h.service.MarkRead(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrNoClaims):
		config.WriteError(w, http.StatusUnauthorized, config.CodeUnauthorized, "unauthorized")
	case errors.Is(err, ErrNotificationNotFound):
		config.WriteError(w, http.StatusNotFound, config.CodeNotFound, err.Error())
	default:
		config.WriteServerError(w, err)
	}
}
