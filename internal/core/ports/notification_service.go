package ports

import (
	"context"

	"github.com/featherback/featherback-api/internal/core/domain"
)

// CreateNotificationInput is a new notification for the calling user. An
// empty Class defaults to INFO.
type CreateNotificationInput struct {
	Class   domain.NotificationClass
	Message string
}

// NotificationService manages a user's notifications inside their tenant.
type NotificationService interface {
	List(ctx context.Context, customerID, userID string) ([]domain.Notification, error)
	Create(ctx context.Context, customerID, userID string, in CreateNotificationInput) (*domain.Notification, error)
	Delete(ctx context.Context, id, customerID, userID string) (*domain.Notification, error)
}
