package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/Salsabil-210/comhabits/internal/auth"
	"github.com/Salsabil-210/comhabits/internal/config"
	"github.com/Salsabil-210/comhabits/internal/realtime"
)

// Service persists notifications and pushes them to online recipients.
// Record only writes, so it can run inside a transaction; Push is
// called once the write is durable.
type Service interface {
	Record(ctx context.Context, recipientID uuid.UUID, typ Type, payload map[string]any) (*Notification, error)
	Push(ctx context.Context, n *Notification)
	Notify(ctx context.Context, recipientID uuid.UUID, typ Type, payload map[string]any) error
	List(ctx context.Context, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, id string) error
}

type service struct {
	repo Repository
	hub  realtime.Directory
	now  func() time.Time
}

func NewService(repo Repository, hub realtime.Directory) Service {
	return &service{repo: repo, hub: hub, now: time.Now}
}

func (s *service) Record(ctx context.Context, recipientID uuid.UUID, typ Type, payload map[string]any) (*Notification, error) {
	if payload == nil {
		payload = map[string]any{}
	}
	n := &Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		Type:        typ,
		Payload:     datatypes.NewJSONType(payload),
		CreatedAt:   s.now(),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		config.WithContext(ctx).WithError(err).WithFields(logrus.Fields{
			"recipient_id": recipientID,
			"type":         typ,
		}).Error("Failed to record notification")
		return nil, err
	}
	return n, nil
}

func (s *service) Push(ctx context.Context, n *Notification) {
	if n == nil || s.hub == nil {
		return
	}
	delivered := s.hub.Send(n.RecipientID, realtime.Event{
		Type:    "notification",
		Payload: n,
		SentAt:  s.now(),
	})
	config.WithContext(ctx).WithFields(logrus.Fields{
		"recipient_id": n.RecipientID,
		"type":         n.Type,
		"delivered":    delivered,
	}).Debug("Notification pushed")
}

func (s *service) Notify(ctx context.Context, recipientID uuid.UUID, typ Type, payload map[string]any) error {
	n, err := s.Record(ctx, recipientID, typ, payload)
	if err != nil {
		return err
	}
	s.Push(ctx, n)
	return nil
}

func (s *service) List(ctx context.Context, unreadOnly bool) ([]Notification, error) {
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	out, err := s.repo.FindAllByRecipient(ctx, userID, unreadOnly)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list notifications")
		return nil, err
	}
	return out, nil
}

func (s *service) MarkRead(ctx context.Context, id string) error {
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return err
	}
	notificationID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotificationNotFound
	}
	return s.repo.MarkRead(ctx, notificationID, userID, s.now())
}
