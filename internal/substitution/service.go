package substitution

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Salsabil-210/comhabits/internal/config"
	util "github.com/Salsabil-210/comhabits/internal/utils"
)

var (
	ErrSubstitutionNotFound = errors.New("substitution not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrHabitsRequired       = errors.New("badHabit and goodHabit are required")
)

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, dto CreateSubstitutionDTO) (*Substitution, error)
	List(ctx context.Context, userID uuid.UUID) ([]Substitution, error)
	Update(ctx context.Context, id uuid.UUID, userID uuid.UUID, dto UpdateSubstitutionDTO) (*Substitution, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	Log(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*Substitution, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, dto CreateSubstitutionDTO) (*Substitution, error) {
	sub := Substitution{
		ID:        uuid.New(),
		UserID:    userID,
		BadHabit:  strings.TrimSpace(dto.BadHabit),
		GoodHabit: strings.TrimSpace(dto.GoodHabit),
		Notes:     dto.Notes,
	}
	if sub.BadHabit == "" || sub.GoodHabit == "" {
		return nil, ErrHabitsRequired
	}

	if err := s.repo.Create(ctx, &sub); err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to create substitution")
		return nil, err
	}

	return &sub, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]Substitution, error) {
	return s.repo.FindAllByUserID(ctx, userID)
}

func (s *service) owned(ctx context.Context, id, userID uuid.UUID) (*Substitution, error) {
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.UserID != userID {
		return nil, ErrUnauthorized
	}
	return sub, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, userID uuid.UUID, dto UpdateSubstitutionDTO) (*Substitution, error) {
	sub, err := s.owned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if dto.BadHabit != nil {
		sub.BadHabit = strings.TrimSpace(*dto.BadHabit)
	}
	if dto.GoodHabit != nil {
		sub.GoodHabit = strings.TrimSpace(*dto.GoodHabit)
	}
	if dto.Notes != nil {
		sub.Notes = *dto.Notes
	}
	if sub.BadHabit == "" || sub.GoodHabit == "" {
		return nil, ErrHabitsRequired
	}

	if err := s.repo.Update(ctx, sub); err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to update substitution")
		return nil, err
	}

	return sub, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	if _, err := s.owned(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Log records that the good habit replaced the bad one today.
func (s *service) Log(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*Substitution, error) {
	sub, err := s.owned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	sub.TimesLogged++
	sub.LastLoggedOn = util.Today(s.now()).Ptr()

	if err := s.repo.Update(ctx, sub); err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to log substitution")
		return nil, err
	}

	config.WithContext(ctx).WithField("substitution_id", sub.ID).Info("Substitution logged")
	return sub, nil
}
