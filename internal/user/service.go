package user

import (
	"context"
	"errors"
	"time"

	"github.com/Salsabil-210/comhabits/internal/auth"
	"github.com/Salsabil-210/comhabits/internal/config"
)

var ErrMissingAccessToken = errors.New("accessToken is required")

type UserService interface {
	GetMe(ctx context.Context) (*UserResponse, error)
	ConnectCalendar(ctx context.Context, dto UpdateCalendarDTO) (*UserResponse, error)
}

type userService struct {
	repo    UserRepository
	encrypt func(string) (string, error)
	now     func() time.Time
}

func NewService(repo UserRepository) UserService {
	return &userService{repo: repo, encrypt: config.Encrypt, now: time.Now}
}

func (s *userService) GetMe(ctx context.Context) (*UserResponse, error) {
	log := config.WithContext(ctx)
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			log.WithError(err).Error("Failed to load user")
		}
		return nil, err
	}

	resp := toResponse(u)
	return &resp, nil
}

// ConnectCalendar stores encrypted Google tokens, creating the user record
// on first contact.
func (s *userService) ConnectCalendar(ctx context.Context, dto UpdateCalendarDTO) (*UserResponse, error) {
	log := config.WithContext(ctx)
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if dto.AccessToken == "" {
		return nil, ErrMissingAccessToken
	}

	u, err := s.repo.GetByID(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		u = &User{ID: userID, Role: claims.Role, CreatedAt: s.now()}
	} else if err != nil {
		log.WithError(err).Error("Failed to load user")
		return nil, err
	}

	if dto.Email != "" {
		u.Email = dto.Email
	}
	if dto.Name != "" {
		u.Name = dto.Name
	}

	access, err := s.encrypt(dto.AccessToken)
	if err != nil {
		log.WithError(err).Error("Failed to encrypt access token")
		return nil, err
	}
	u.EncryptedGoogleAccessToken = access

	if dto.RefreshToken != "" {
		refresh, err := s.encrypt(dto.RefreshToken)
		if err != nil {
			log.WithError(err).Error("Failed to encrypt refresh token")
			return nil, err
		}
		u.EncryptedGoogleRefreshToken = refresh
	}
	u.UpdatedAt = s.now()

	if err := s.repo.Upsert(ctx, u); err != nil {
		log.WithError(err).Error("Failed to save calendar tokens")
		return nil, err
	}

	log.Info("Google Calendar connected")
	resp := toResponse(u)
	return &resp, nil
}
