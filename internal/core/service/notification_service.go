package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/featherback/featherback-api/internal/core/domain"
	"github.com/featherback/featherback-api/internal/core/ports"
)

// Fanout is the asynchronous delivery hook for freshly created
// notifications. The queue dispatcher satisfies it in production; tests use
// a recording stub. A nil Fanout disables delivery.
type Fanout interface {
	Enqueue(notification domain.Notification)
}

// NotificationService manages a user's notifications and hands new ones to
// the fan-out pipeline.
type NotificationService struct {
	notifications ports.NotificationRepository
	fanout        Fanout
	log           zerolog.Logger
}

func NewNotificationService(notifications ports.NotificationRepository, fanout Fanout, log zerolog.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, fanout: fanout, log: log}
}

func (s *NotificationService) List(ctx context.Context, customerID, userID string) ([]domain.Notification, error) {
	return s.notifications.ListForUser(ctx, customerID, userID)
}

func (s *NotificationService) Create(ctx context.Context, customerID, userID string, in ports.CreateNotificationInput) (*domain.Notification, error) {
	class := in.Class
	if class == "" {
		class = domain.ClassInfo
	}

	created, err := s.notifications.Create(ctx, &domain.Notification{
		CustomerID: customerID,
		UserID:     userID,
		Class:      class,
		Message:    in.Message,
	})
	if err != nil {
		return nil, err
	}

	if s.fanout != nil {
		s.fanout.Enqueue(*created)
	}
	return created, nil
}

func (s *NotificationService) Delete(ctx context.Context, id, customerID, userID string) (*domain.Notification, error) {
	return s.notifications.Delete(ctx, id, customerID, userID)
}
