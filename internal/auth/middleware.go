package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/Salsabil-210/comhabits/internal/config"
)

type contextKey string

const userClaimsKey contextKey = "user_claims"

var ErrNoClaims = errors.New("user claims not found in context")

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := config.WithContext(r.Context())

		tokenStr := TokenFromRequest(r)
		if tokenStr == "" {
			config.WriteError(w, http.StatusUnauthorized, config.CodeUnauthorized, "missing token")
			return
		}

		claims, err := ValidateJWT(tokenStr)
		if err != nil {
			log.WithError(err).Warn("Rejected invalid token")
			config.WriteError(w, http.StatusUnauthorized, config.CodeUnauthorized, "invalid token")
			return
		}
		if _, err := uuid.Parse(claims.UserID); err != nil {
			log.WithError(err).Warn("Token carries a malformed user id")
			config.WriteError(w, http.StatusUnauthorized, config.CodeUnauthorized, "invalid token")
			return
		}

		ctx := WithClaims(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TokenFromRequest reads a bearer header, then the jwt cookie.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if strings.HasPrefix(strings.ToLower(h), "bearer ") {
			return strings.TrimSpace(h[len("bearer "):])
		}
	}
	if c, err := r.Cookie("jwt"); err == nil {
		return c.Value
	}
	return ""
}

func WithClaims(ctx context.Context, claims *UserClaims) context.Context {
	ctx = context.WithValue(ctx, userClaimsKey, claims)
	return config.ContextWithUserID(ctx, claims.UserID)
}

func GetUserClaimsFromContext(ctx context.Context) (*UserClaims, error) {
	claims, ok := ctx.Value(userClaimsKey).(*UserClaims)
	if !ok || claims == nil {
		return nil, ErrNoClaims
	}
	return claims, nil
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	claims, err := GetUserClaimsFromContext(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(claims.UserID)
}
