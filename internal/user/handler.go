package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Salsabil-210/comhabits/internal/auth"
	"github.com/Salsabil-210/comhabits/internal/config"
)

type Handler struct {
	service UserService
}

func NewHandler(service UserService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetMe(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) UpdateCalendar(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto UpdateCalendarDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body")
		config.WriteError(w, http.StatusBadRequest, config.CodeInvalidRequest, "invalid request body")
		return
	}

	resp, err := h.service.ConnectCalendar(r.Context(), dto)
	if err != nil {
		h.writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrNoClaims):
		config.WriteError(w, http.StatusUnauthorized, config.CodeUnauthorized, "unauthorized")
	case errors.Is(err, ErrUserNotFound):
		config.WriteError(w, http.StatusNotFound, config.CodeNotFound, err.Error())
	case errors.Is(err, ErrMissingAccessToken):
		config.WriteError(w, http.StatusBadRequest, config.CodeInvalidRequest, err.Error())
	default:
		config.WriteServerError(w, err)
	}
}
