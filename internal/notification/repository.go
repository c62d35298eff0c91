package notification

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Salsabil-210/comhabits/internal/config"
)

var ErrNotificationNotFound = errors.New("notification not found")

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	FindAllByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, id, recipientID uuid.UUID, at time.Time) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return config.DBFromContext(ctx, r.db).Create(n).Error
}

func (r *repository) FindAllByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) ([]Notification, error) {
	var out []Notification
	q := config.DBFromContext(ctx, r.db).Where("recipient_id = ?", recipientID)
	if unreadOnly {
		q = q.Where("read_at IS NULL")
	}
	if err := q.Order("created_at DESC").Limit(200).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) MarkRead(ctx context.Context, id, recipientID uuid.UUID, at time.Time) error {
	res := config.DBFromContext(ctx, r.db).
		Model(&Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("read_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
