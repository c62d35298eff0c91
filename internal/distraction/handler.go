package distraction

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Salsabil-210/comhabits/internal/auth"
	"github.com/Salsabil-210/comhabits/internal/config"
	util "github.com/Salsabil-210/comhabits/internal/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		config.WriteError(w, http.StatusUnauthorized, config.CodeUnauthorized, "unauthorized")
		return
	}

	var dto CreateDistractionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeBodyError(w, r, err)
		return
	}

	response, err := h.service.Create(r.Context(), userID, dto)
	if err != nil {
		writeError(w, err)
		return
	}

	config.JSON(w, http.StatusCreated, response)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		config.WriteError(w, http.StatusUnauthorized, config.CodeUnauthorized, "unauthorized")
		return
	}

	responses, err := h.service.List(r.Context(), userID)
	if err != nil {
		log.WithError(err).Error("Failed to list distractions")
		writeError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, responses)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		config.WriteError(w, http.StatusUnauthorized, config.CodeUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.WriteError(w, http.StatusBadRequest, config.CodeInvalidRequest, "invalid id")
		return
	}

	var dto UpdateDistractionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeBodyError(w, r, err)
		return
	}

	response, err := h.service.Update(r.Context(), id, userID, dto)
	if err != nil {
		writeError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, response)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		config.WriteError(w, http.StatusUnauthorized, config.CodeUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.WriteError(w, http.StatusBadRequest, config.CodeInvalidRequest, "invalid id")
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeBodyError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, util.ErrInvalidDateFormat) {
		config.WriteError(w, http.StatusBadRequest, config.CodeInvalidDateFormat, err.Error())
		return
	}
	config.WithContext(r.Context()).WithError(err).Warn("Invalid request body")
	config.WriteError(w, http.StatusBadRequest, config.CodeInvalidRequest, "invalid request body")
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrDistractionNotFound), errors.Is(err, ErrUnauthorized):
		config.WriteError(w, http.StatusNotFound, config.CodeNotFound, ErrDistractionNotFound.Error())
	case errors.Is(err, ErrFutureDate):
		config.WriteError(w, http.StatusBadRequest, config.CodeFutureDate, err.Error())
	case errors.Is(err, ErrNameRequired), errors.Is(err, ErrNegativeDuration):
		config.WriteError(w, http.StatusBadRequest, config.CodeInvalidRequest, err.Error())
	default:
		config.WriteServerError(w, err)
	}
}
