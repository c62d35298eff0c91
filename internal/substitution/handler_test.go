package substitution

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Salsabil-210/comhabits/internal/auth"
	util "github.com/Salsabil-210/comhabits/internal/utils"
)

type memoryRepository struct {
	mu    sync.Mutex
	items map[uuid.UUID]Substitution
}

func (m *memoryRepository) Create(_ context.Context, s *Substitution) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[s.ID] = *s
	return nil
}

func (m *memoryRepository) FindAllByUserID(_ context.Context, userID uuid.UUID) ([]Substitution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Substitution
	for _, s := range m.items {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memoryRepository) FindByID(_ context.Context, id uuid.UUID) (*Substitution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.items[id]
	if !ok {
		return nil, ErrSubstitutionNotFound
	}
	return &s, nil
}

func (m *memoryRepository) Update(ctx context.Context, s *Substitution) error {
	return m.Create(ctx, s)
}

func (m *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

func newRouter(userID uuid.UUID) http.Handler {
	util.SetLocation(time.UTC)
	svc := &service{
		repo: &memoryRepository{items: make(map[uuid.UUID]Substitution)},
		now:  func() time.Time { return time.Date(2025, time.June, 10, 8, 0, 0, 0, time.UTC) },
	}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := auth.WithClaims(req.Context(), &auth.UserClaims{UserID: userID.String()})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Mount("/substitutions", Routes(NewHandler(svc)))
	return r
}

func TestSubstitutionLifecycle(t *testing.T) {
	router := newRouter(uuid.New())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/substitutions", strings.NewReader(`{"badHabit":"Doomscrolling","goodHabit":"Reading"}`)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created Substitution
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Zero(t, created.TimesLogged)
	assert.Nil(t, created.LastLoggedOn)

	for i := 0; i < 2; i++ {
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/substitutions/"+created.ID.String()+"/log", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	var logged Substitution
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&logged))
	assert.Equal(t, 2, logged.TimesLogged)
	require.NotNil(t, logged.LastLoggedOn)
	assert.Equal(t, "2025-06-10", logged.LastLoggedOn.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/substitutions/"+created.ID.String(), nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSubstitutionValidation(t *testing.T) {
	router := newRouter(uuid.New())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/substitutions", strings.NewReader(`{"badHabit":"Snacking"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/substitutions/"+uuid.NewString()+"/log", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/substitutions/bad-id", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
