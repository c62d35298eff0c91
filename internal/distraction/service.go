package distraction

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
	ErrDistractionNotFound = errors.New("distraction not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrNameRequired        = errors.New("name is required")
	ErrNegativeDuration    = errors.New("durationMinutes cannot be negative")
	ErrFutureDate          = errors.New("occurredOn cannot be in the future")
)

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, dto CreateDistractionDTO) (*Distraction, error)
	List(ctx context.Context, userID uuid.UUID) ([]Distraction, error)
	Update(ctx context.Context, id uuid.UUID, userID uuid.UUID, dto UpdateDistractionDTO) (*Distraction, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) validate(d *Distraction) error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrNameRequired
	}
	if d.DurationMinutes < 0 {
		return ErrNegativeDuration
	}
	if d.OccurredOn.After(util.Today(s.now())) {
		return ErrFutureDate
	}
	return nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, dto CreateDistractionDTO) (*Distraction, error) {
	occurredOn := util.Today(s.now())
	if dto.OccurredOn != nil && !dto.OccurredOn.IsZero() {
		occurredOn = *dto.OccurredOn
	}

	d := Distraction{
		ID:              uuid.New(),
		UserID:          userID,
		Name:            strings.TrimSpace(dto.Name),
		Description:     dto.Description,
		OccurredOn:      occurredOn,
		DurationMinutes: dto.DurationMinutes,
		Trigger:         dto.Trigger,
	}
	if err := s.validate(&d); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, &d); err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to create distraction")
		return nil, err
	}

	return &d, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]Distraction, error) {
	return s.repo.FindAllByUserID(ctx, userID)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, userID uuid.UUID, dto UpdateDistractionDTO) (*Distraction, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if d.UserID != userID {
		return nil, ErrUnauthorized
	}

	if dto.Name != nil {
		d.Name = strings.TrimSpace(*dto.Name)
	}
	if dto.Description != nil {
		d.Description = *dto.Description
	}
	if dto.OccurredOn != nil && !dto.OccurredOn.IsZero() {
		d.OccurredOn = *dto.OccurredOn
	}
	if dto.DurationMinutes != nil {
		d.DurationMinutes = *dto.DurationMinutes
	}
	if dto.Trigger != nil {
		d.Trigger = *dto.Trigger
	}
	if err := s.validate(d); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, d); err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to update distraction")
		return nil, err
	}

	return d, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if d.UserID != userID {
		return ErrUnauthorized
	}

	return s.repo.Delete(ctx, id)
}
