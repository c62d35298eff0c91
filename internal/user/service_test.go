package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Salsabil-210/comhabits/internal/auth"
)

type memoryRepository struct {
	users map[uuid.UUID]User
}

func (m *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (m *memoryRepository) Upsert(_ context.Context, u *User) error {
	m.users[u.ID] = *u
	return nil
}

func newTestService() (*userService, *memoryRepository) {
	repo := &memoryRepository{users: make(map[uuid.UUID]User)}
	return &userService{
		repo:    repo,
		encrypt: func(s string) (string, error) { return "enc:" + s, nil },
		now:     func() time.Time { return time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC) },
	}, repo
}

func userContext(id uuid.UUID) context.Context {
	return auth.WithClaims(context.Background(), &auth.UserClaims{UserID: id.String(), Role: "user"})
}

func TestConnectCalendar(t *testing.T) {
	svc, repo := newTestService()
	id := uuid.New()
	ctx := userContext(id)

	_, err := svc.GetMe(ctx)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.ConnectCalendar(ctx, UpdateCalendarDTO{})
	assert.ErrorIs(t, err, ErrMissingAccessToken)

	resp, err := svc.ConnectCalendar(ctx, UpdateCalendarDTO{
		Email:        "ana@example.com",
		AccessToken:  "access",
		RefreshToken: "refresh",
	})
	require.NoError(t, err)
	assert.True(t, resp.CalendarConnected)
	assert.Equal(t, "user", resp.Role)

	stored := repo.users[id]
	assert.Equal(t, "enc:access", stored.EncryptedGoogleAccessToken)
	assert.Equal(t, "enc:refresh", stored.EncryptedGoogleRefreshToken)

	me, err := svc.GetMe(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", me.Email)
}

func TestConnectCalendarKeepsRefreshToken(t *testing.T) {
	svc, repo := newTestService()
	id := uuid.New()
	repo.users[id] = User{ID: id, EncryptedGoogleRefreshToken: "enc:old"}

	_, err := svc.ConnectCalendar(userContext(id), UpdateCalendarDTO{AccessToken: "new"})
	require.NoError(t, err)
	assert.Equal(t, "enc:old", repo.users[id].EncryptedGoogleRefreshToken)
	assert.Equal(t, "enc:new", repo.users[id].EncryptedGoogleAccessToken)
}

func TestGetMeRequiresClaims(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.GetMe(context.Background())
	assert.ErrorIs(t, err, auth.ErrNoClaims)
}
