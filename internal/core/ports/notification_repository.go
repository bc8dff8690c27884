package ports

import (
	"context"

	"github.com/featherback/featherback-api/internal/core/domain"
)

// NotificationRepository is the persistence boundary for notifications.
// Every operation is scoped to both the tenant and the owning user.
type NotificationRepository interface {
	ListForUser(ctx context.Context, customerID, userID string) ([]domain.Notification, error)
	Create(ctx context.Context, notification *domain.Notification) (*domain.Notification, error)
	Delete(ctx context.Context, id, customerID, userID string) (*domain.Notification, error)
}
