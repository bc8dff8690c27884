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
	"github.com/featherback/featherback-api/internal/core/ports"
)

const collectionUsers = "users"

type mongoUser struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	CustomerID string             `bson:"customerId"`
	Login      string             `bson:"login"`
	Name       string             `bson:"name"`
	Password   string             `bson:"password"`
	Admin      bool               `bson:"admin"`
	Root       bool               `bson:"root"`
	Enabled    bool               `bson:"enabled"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

func (m *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:         m.ID.Hex(),
		CustomerID: m.CustomerID,
		Login:      m.Login,
		Name:       m.Name,
		Password:   m.Password,
		Admin:      m.Admin,
		Root:       m.Root,
		Enabled:    m.Enabled,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// UserRepository persists users in the users collection. Ids that are not
// valid ObjectID hex are treated as nonexistent rather than as errors.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

// FindByLogin retrieves a user by login, unscoped. Logins are unique across
// all tenants.
func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u mongoUser
	err := r.col.FindOne(ctx, bson.M{"login": login}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u.toDomain(), nil
}

// FindByID retrieves a user by id without tenant scoping.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u mongoUser
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u.toDomain(), nil
}

// FindInTenant retrieves a user by id within a tenant. A user that exists in
// another tenant is indistinguishable from one that does not exist.
func (r *UserRepository) FindInTenant(ctx context.Context, id, customerID string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u mongoUser
	err = r.col.FindOne(ctx, bson.M{"_id": oid, "customerId": customerID}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u.toDomain(), nil
}

// ListByCustomer returns one page of a tenant's users in insertion order.
func (r *UserRepository) ListByCustomer(ctx context.Context, customerID string, page, limit int) (*ports.UserPage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"customerId": customerID}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	docs := make([]domain.User, 0, limit)
	for cur.Next(ctx) {
		var u mongoUser
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		docs = append(docs, *u.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	pages := int(total) / limit
	if int(total)%limit != 0 || pages == 0 {
		pages++
	}

	return &ports.UserPage{
		Docs:  docs,
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: pages,
	}, nil
}

// Create inserts a new user document. A clashing login surfaces as a
// *domain.DuplicateKeyError.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := mongoUser{
		ID:         primitive.NewObjectID(),
		CustomerID: user.CustomerID,
		Login:      user.Login,
		Name:       user.Name,
		Password:   user.Password,
		Admin:      user.Admin,
		Root:       user.Root,
		Enabled:    user.Enabled,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &domain.DuplicateKeyError{Field: "login"}
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// Update applies a partial update by id without tenant scoping and returns
// the updated document.
func (r *UserRepository) Update(ctx context.Context, id string, update ports.UserUpdate) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findAndUpdate(ctx, bson.M{"_id": oid}, update)
}

// UpdateInTenant applies a partial update by id within a tenant and returns
// the updated document.
func (r *UserRepository) UpdateInTenant(ctx context.Context, id, customerID string, update ports.UserUpdate) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findAndUpdate(ctx, bson.M{"_id": oid, "customerId": customerID}, update)
}

func (r *UserRepository) findAndUpdate(ctx context.Context, filter bson.M, update ports.UserUpdate) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Login != nil {
		set["login"] = *update.Login
	}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Admin != nil {
		set["admin"] = *update.Admin
	}
	if update.Password != nil {
		set["password"] = *update.Password
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var u mongoUser
	err := r.col.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, &domain.DuplicateKeyError{Field: "login"}
		}
		return nil, err
	}
	return u.toDomain(), nil
}

// DeleteInTenant removes a user within a tenant and returns the removed
// document.
func (r *UserRepository) DeleteInTenant(ctx context.Context, id, customerID string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u mongoUser
	err = r.col.FindOneAndDelete(ctx, bson.M{"_id": oid, "customerId": customerID}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u.toDomain(), nil
}

// EnsureIndexes creates the unique login index and the tenant listing index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "login", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "customerId", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
