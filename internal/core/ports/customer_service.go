package ports

import (
	"context"

	"github.com/featherback/featherback-api/internal/core/domain"
)

// CreateCustomerInput is a root-created tenant.
type CreateCustomerInput struct {
	Name  string
	Email string
}

// CustomerService is root-only tenant management. Nothing here is
// tenant-scoped: root bypasses scoping entirely.
type CustomerService interface {
	List(ctx context.Context) ([]domain.Customer, error)
	Create(ctx context.Context, in CreateCustomerInput) (*domain.Customer, error)
	Get(ctx context.Context, id string) (*domain.Customer, error)
	Update(ctx context.Context, id string, in CreateCustomerInput) (*domain.Customer, error)
	// Delete removes the tenant document only; its users are left behind.
	Delete(ctx context.Context, id string) (*domain.Customer, error)
	// ListUsers lets root page through any tenant's users.
	ListUsers(ctx context.Context, customerID string, page, limit int) (*UserPage, error)
}
