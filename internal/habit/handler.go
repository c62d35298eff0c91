package habit

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Salsabil-210/comhabits/internal/auth"
	"github.com/Salsabil-210/comhabits/internal/config"
	"github.com/Salsabil-210/comhabits/internal/schedule"
	util "github.com/Salsabil-210/comhabits/internal/utils"
)

type Handler struct {
	service HabitService
}

func NewHandler(service HabitService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateHabitDTO
	if !decode(w, r, &dto) {
		return
	}

	created, err := h.service.Create(r.Context(), dto)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, created)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	habits, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, habits)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	found, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, found)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var dto UpdateHabitDTO
	if !decode(w, r, &dto) {
		return
	}

	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteOccurrence(w http.ResponseWriter, r *http.Request) {
	date, err := util.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := h.service.DeleteOccurrence(r.Context(), chi.URLParam(r, "id"), date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, updated)
}

func (h *Handler) Track(w http.ResponseWriter, r *http.Request) {
	var dto TrackDTO
	if !decode(w, r, &dto) {
		return
	}

	result, err := h.service.Track(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, result)
}

func (h *Handler) Range(w http.ResponseWriter, r *http.Request) {
	start, err := util.ParseDate(r.URL.Query().Get("start"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	end, err := util.ParseDate(r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	habits, err := h.service.QueryRange(r.Context(), start, end)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, habits)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, stats)
}

func (h *Handler) Share(w http.ResponseWriter, r *http.Request) {
	var dto ShareDTO
	if !decode(w, r, &dto) {
		return
	}

	shared, err := h.service.Share(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, shared)
}

func (h *Handler) Respond(w http.ResponseWriter, r *http.Request) {
	var dto RespondDTO
	if !decode(w, r, &dto) {
		return
	}

	copyHabit, err := h.service.Respond(r.Context(), chi.URLParam(r, "id"), dto.Accept)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if copyHabit == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	config.JSON(w, http.StatusCreated, copyHabit)
}

func (h *Handler) Leave(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Leave(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) TrackParticipant(w http.ResponseWriter, r *http.Request) {
	var dto ParticipantTrackDTO
	if !decode(w, r, &dto) {
		return
	}

	c, err := h.service.TrackParticipant(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, c)
}

func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.service.Progress(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, progress)
}

func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}
		if errors.Is(err, util.ErrInvalidDateFormat) {
			writeError(w, r, err)
			return false
		}
		config.WithContext(r.Context()).WithError(err).Warn("Invalid request body")
		config.WriteError(w, http.StatusBadRequest, config.CodeInvalidRequest, "invalid request body")
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *schedule.ValidationError

	switch {
	case errors.As(err, &ve):
		config.WriteError(w, http.StatusBadRequest, config.CodeScheduleValidation, ve.Reason)
	case errors.Is(err, util.ErrInvalidDateFormat):
		config.WriteError(w, http.StatusBadRequest, config.CodeInvalidDateFormat, err.Error())
	case errors.Is(err, ErrFutureDate):
		config.WriteError(w, http.StatusBadRequest, config.CodeFutureDate, err.Error())
	case errors.Is(err, ErrHabitNotFound), errors.Is(err, ErrOccurrenceNotFound):
		config.WriteError(w, http.StatusNotFound, config.CodeNotFound, err.Error())
	case errors.Is(err, ErrUnauthorized), errors.Is(err, auth.ErrNoClaims):
		config.WriteError(w, http.StatusUnauthorized, config.CodeUnauthorized, "unauthorized")
	case errors.Is(err, ErrNotParticipating):
		config.WriteError(w, http.StatusForbidden, config.CodeForbidden, err.Error())
	case errors.Is(err, ErrAlreadyResponded), errors.Is(err, ErrNotShareable):
		config.WriteError(w, http.StatusConflict, config.CodeConflict, err.Error())
	case errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrInvalidRange),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidCompletion),
		errors.Is(err, ErrNameRequired),
		errors.Is(err, ErrShareWithSelf),
		errors.Is(err, ErrNoParticipants):
		config.WriteError(w, http.StatusBadRequest, config.CodeInvalidRequest, err.Error())
	default:
		config.WithContext(r.Context()).WithError(err).Error("Habit request failed")
		config.WriteServerError(w, err)
	}
}
