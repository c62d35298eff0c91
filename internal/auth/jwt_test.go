package auth_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Salsabil-210/comhabits/internal/auth"
)

const testSecret = "a-long-and-sufficiently-random-test-secret"
const testRole = "user"

var testUserID = uuid.NewString()

func TestInit(t *testing.T) {
	t.Run("MissingSecret", func(t *testing.T) {
		os.Unsetenv("JWT_SECRET")
		assert.Panics(t, auth.Init)
	})

	t.Run("ValidSecret", func(t *testing.T) {
		os.Setenv("JWT_SECRET", testSecret)
		assert.NotPanics(t, auth.Init)
	})
}

func TestGenerateAndValidateJWT(t *testing.T) {
	os.Setenv("JWT_SECRET", testSecret)
	auth.Init()

	t.Run("ValidToken", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT(testUserID, testRole, 5*time.Minute)
		require.NoError(t, err)

		claims, err := auth.ValidateJWT(tokenStr)
		require.NoError(t, err)
		assert.Equal(t, testUserID, claims.UserID)
		assert.Equal(t, testRole, claims.Role)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT(testUserID, testRole, -time.Minute)
		require.NoError(t, err)

		_, err = auth.ValidateJWT(tokenStr)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("InvalidSignature", func(t *testing.T) {
		forged := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.UserClaims{
			UserID: testUserID,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			},
		})
		tokenStr, err := forged.SignedString([]byte("a-different-secret"))
		require.NoError(t, err)

		_, err = auth.ValidateJWT(tokenStr)
		assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})
}

func TestAuthMiddleware(t *testing.T) {
	os.Setenv("JWT_SECRET", testSecret)
	auth.Init()

	var seen uuid.UUID
	handler := auth.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := auth.UserIDFromContext(r.Context())
		require.NoError(t, err)
		seen = id
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("MissingToken", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/habits", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("BearerToken", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT(testUserID, testRole, time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/habits", nil)
		req.Header.Set("Authorization", "Bearer "+tokenStr)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, testUserID, seen.String())
	})

	t.Run("CookieToken", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT(testUserID, testRole, time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/habits", nil)
		req.AddCookie(&http.Cookie{Name: "jwt", Value: tokenStr})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("NonUUIDSubject", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT("user-123", testRole, time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/habits", nil)
		req.Header.Set("Authorization", "Bearer "+tokenStr)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
