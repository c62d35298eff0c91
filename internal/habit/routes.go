package habit

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/stats", h.Stats)
	r.Get("/range", h.Range)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)
		r.Delete("/occurrences/{date}", h.DeleteOccurrence)
		r.Post("/track", h.Track)

		r.Post("/share", h.Share)
		r.Post("/respond", h.Respond)
		r.Post("/leave", h.Leave)
		r.Post("/participants/track", h.TrackParticipant)
		r.Get("/progress", h.Progress)
	})

	return r
}
