package auth

import (
	"net/http"

	"github.com/Salsabil-210/comhabits/internal/config"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Logout expires the jwt cookie. Bearer tokens stay valid until they expire.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sameSite := http.SameSiteNoneMode
	if config.IsDevelopment() {
		sameSite = http.SameSiteLaxMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "jwt",
		Value:    "",
		Path:     "/",
		Domain:   config.Cfg.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   !config.IsDevelopment(),
		SameSite: sameSite,
	})

	config.WithContext(r.Context()).Info("Session cookie cleared")
	config.JSON(w, http.StatusOK, map[string]string{
		"message": "logout successful",
	})
}
