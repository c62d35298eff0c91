package distraction

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Salsabil-210/comhabits/internal/config"
)

type Repository interface {
	Create(ctx context.Context, d *Distraction) error
	FindAllByUserID(ctx context.Context, userID uuid.UUID) ([]Distraction, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Distraction, error)
	Update(ctx context.Context, d *Distraction) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, d *Distraction) error {
	return config.DBFromContext(ctx, r.db).Create(d).Error
}

func (r *repository) FindAllByUserID(ctx context.Context, userID uuid.UUID) ([]Distraction, error) {
	var out []Distraction
	err := config.DBFromContext(ctx, r.db).
		Where("user_id = ?", userID).
		Order("occurred_on DESC, created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Distraction, error) {
	var d Distraction
	err := config.DBFromContext(ctx, r.db).First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDistractionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) Update(ctx context.Context, d *Distraction) error {
	return config.DBFromContext(ctx, r.db).Save(d).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return config.DBFromContext(ctx, r.db).Delete(&Distraction{}, "id = ?", id).Error
}
