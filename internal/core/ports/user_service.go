package ports

import (
	"context"

	"github.com/featherback/featherback-api/internal/core/domain"
)

// CreateUserInput is an admin-created user. The password policy is NOT
// applied on this path; only self-service flows enforce it.
type CreateUserInput struct {
	Login    string
	Name     string
	Password string
	Admin    bool
}

// UpdateUserInput is an admin update. An empty Password means "keep the
// current one"; it never overwrites with an empty hash.
type UpdateUserInput struct {
	Login    string
	Name     string
	Admin    bool
	Password string
}

// UserService is tenant-scoped user management. Every method takes the
// caller's customerID from verified claims; ids outside that tenant behave
// as if they do not exist.
type UserService interface {
	List(ctx context.Context, customerID string, page, limit int) (*UserPage, error)
	Create(ctx context.Context, customerID string, in CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, customerID, id string) (*domain.User, error)
	Update(ctx context.Context, customerID, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, customerID, id string) (*domain.User, error)
}
