package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/featherback/featherback-api/internal/api/metrics"
	"github.com/featherback/featherback-api/internal/core/domain"
)

// NotificationPublisher pushes freshly persisted notifications onto a
// per-user Redis pub/sub channel so connected clients can react live.
// Channel format: notifications:<customerId>:<userId>
type NotificationPublisher struct {
	client *redis.Client
}

// NewNotificationPublisher creates a NotificationPublisher wrapping the given
// Redis client.
func NewNotificationPublisher(client *redis.Client) *NotificationPublisher {
	return &NotificationPublisher{client: client}
}

// Publish serialises the notification as JSON and publishes it on the owning
// user's channel. Subscriber count is not checked; publishing into an empty
// channel is a no-op on the Redis side.
func (p *NotificationPublisher) Publish(ctx context.Context, n domain.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		metrics.NotificationsPublishedTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("marshal notification: %w", err)
	}

	if err := p.client.Publish(ctx, p.channel(n), payload).Err(); err != nil {
		metrics.NotificationsPublishedTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("publish notification: %w", err)
	}

	metrics.NotificationsPublishedTotal.WithLabelValues("ok").Inc()
	return nil
}

func (p *NotificationPublisher) channel(n domain.Notification) string {
	return fmt.Sprintf("notifications:%s:%s", n.CustomerID, n.UserID)
}
