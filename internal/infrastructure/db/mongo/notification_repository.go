package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/featherback/featherback-api/internal/core/domain"
)

const collectionNotifications = "notifications"

type mongoNotification struct {
	ID         primitive.ObjectID       `bson:"_id,omitempty"`
	CustomerID string                   `bson:"customerId"`
	UserID     string                   `bson:"userId"`
	Class      domain.NotificationClass `bson:"class"`
	Message    string                   `bson:"message"`
	CreatedAt  time.Time                `bson:"createdAt"`
	UpdatedAt  time.Time                `bson:"updatedAt"`
}

func (m *mongoNotification) toDomain() *domain.Notification {
	return &domain.Notification{
		ID:         m.ID.Hex(),
		CustomerID: m.CustomerID,
		UserID:     m.UserID,
		Class:      m.Class,
		Message:    m.Message,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// NotificationRepository persists per-user notifications. Every filter
// includes both the tenant and the owning user.
type NotificationRepository struct {
	col *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{col: db.Collection(collectionNotifications)}
}

// ListForUser returns a user's notifications, newest first.
func (r *NotificationRepository) ListForUser(ctx context.Context, customerID, userID string) ([]domain.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"customerId": customerID, "userId": userID}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	notifications := make([]domain.Notification, 0)
	for cur.Next(ctx) {
		var n mongoNotification
		if err := cur.Decode(&n); err != nil {
			return nil, err
		}
		notifications = append(notifications, *n.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return notifications, nil
}

// Create inserts a new notification document.
func (r *NotificationRepository) Create(ctx context.Context, notification *domain.Notification) (*domain.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := mongoNotification{
		ID:         primitive.NewObjectID(),
		CustomerID: notification.CustomerID,
		UserID:     notification.UserID,
		Class:      notification.Class,
		Message:    notification.Message,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

// Delete removes a notification owned by the given user and returns the
// removed document.
func (r *NotificationRepository) Delete(ctx context.Context, id, customerID, userID string) (*domain.Notification, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotificationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "customerId": customerID, "userId": userID}

	var n mongoNotification
	err = r.col.FindOneAndDelete(ctx, filter).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotificationNotFound
		}
		return nil, err
	}
	return n.toDomain(), nil
}

// EnsureIndexes creates the owner listing index.
func (r *NotificationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "customerId", Value: 1},
			{Key: "userId", Value: 1},
			{Key: "createdAt", Value: -1},
		}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
