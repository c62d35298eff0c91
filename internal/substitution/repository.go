package substitution

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Salsabil-210/comhabits/internal/config"
)

type Repository interface {
	Create(ctx context.Context, s *Substitution) error
	FindAllByUserID(ctx context.Context, userID uuid.UUID) ([]Substitution, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Substitution, error)
	Update(ctx context.Context, s *Substitution) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s *Substitution) error {
	return config.DBFromContext(ctx, r.db).Create(s).Error
}

func (r *repository) FindAllByUserID(ctx context.Context, userID uuid.UUID) ([]Substitution, error) {
	var out []Substitution
	if err := config.DBFromContext(ctx, r.db).Where("user_id = ?", userID).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Substitution, error) {
	var s Substitution
	err := config.DBFromContext(ctx, r.db).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSubstitutionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) Update(ctx context.Context, s *Substitution) error {
	return config.DBFromContext(ctx, r.db).Save(s).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return config.DBFromContext(ctx, r.db).Delete(&Substitution{}, "id = ?", id).Error
}
