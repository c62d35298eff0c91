package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Salsabil-210/comhabits/internal/auth"
	"github.com/Salsabil-210/comhabits/internal/config"
	"github.com/Salsabil-210/comhabits/internal/distraction"
	"github.com/Salsabil-210/comhabits/internal/habit"
	"github.com/Salsabil-210/comhabits/internal/middlewares"
	"github.com/Salsabil-210/comhabits/internal/notification"
	"github.com/Salsabil-210/comhabits/internal/realtime"
	"github.com/Salsabil-210/comhabits/internal/substitution"
	"github.com/Salsabil-210/comhabits/internal/user"
)

type RouterConfig struct {
	UserHandler         *user.Handler
	HabitHandler        *habit.Handler
	NotificationHandler *notification.Handler
	RealtimeHandler     *realtime.Handler
	DistractionHandler  *distraction.Handler
	SubstitutionHandler *substitution.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// The websocket handshake authenticates itself from ?token=.
	r.Get("/ws", cfg.RealtimeHandler.Connect)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/logout", auth.NewHandler().Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/habits", habit.Routes(cfg.HabitHandler))
		r.Mount("/notifications", notification.Routes(cfg.NotificationHandler))
		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/distractions", distraction.Routes(cfg.DistractionHandler))
		r.Mount("/substitutions", substitution.Routes(cfg.SubstitutionHandler))
	})
	return r
}
