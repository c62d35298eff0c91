package substitution

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Salsabil-210/comhabits/internal/auth"
	"github.com/Salsabil-210/comhabits/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func userAndID(w http.ResponseWriter, r *http.Request, needID bool) (uuid.UUID, uuid.UUID, bool) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.WithContext(r.Context()).Warn("User not authenticated")
		config.WriteError(w, http.StatusUnauthorized, config.CodeUnauthorized, "unauthorized")
		return uuid.Nil, uuid.Nil, false
	}
	if !needID {
		return userID, uuid.Nil, true
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.WriteError(w, http.StatusBadRequest, config.CodeInvalidRequest, "invalid id")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, id, true
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := userAndID(w, r, false)
	if !ok {
		return
	}

	var dto CreateSubstitutionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.WithContext(r.Context()).WithError(err).Warn("Invalid request body")
		config.WriteError(w, http.StatusBadRequest, config.CodeInvalidRequest, "invalid request body")
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
	userID, _, ok := userAndID(w, r, false)
	if !ok {
		return
	}

	responses, err := h.service.List(r.Context(), userID)
	if err != nil {
		config.WithContext(r.Context()).WithError(err).Error("Failed to list substitutions")
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, responses)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := userAndID(w, r, true)
	if !ok {
		return
	}

	var dto UpdateSubstitutionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.WithContext(r.Context()).WithError(err).Warn("Invalid request body")
		config.WriteError(w, http.StatusBadRequest, config.CodeInvalidRequest, "invalid request body")
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
	userID, id, ok := userAndID(w, r, true)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Log(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := userAndID(w, r, true)
	if !ok {
		return
	}

	response, err := h.service.Log(r.Context(), id, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, response)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSubstitutionNotFound), errors.Is(err, ErrUnauthorized):
		config.WriteError(w, http.StatusNotFound, config.CodeNotFound, ErrSubstitutionNotFound.Error())
	case errors.Is(err, ErrHabitsRequired):
		config.WriteError(w, http.StatusBadRequest, config.CodeInvalidRequest, err.Error())
	default:
		config.WriteServerError(w, err)
	}
}
