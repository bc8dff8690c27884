package ports

import (
	"context"

	"github.com/featherback/featherback-api/internal/core/domain"
)

// CustomerUpdate is a partial update of tenant settings.
type CustomerUpdate struct {
	Name  *string
	Email *string
}

// CustomerRepository is the persistence boundary for tenants. Duplicate
// emails surface as *domain.DuplicateKeyError. Delete does not cascade to
// the tenant's users.
type CustomerRepository interface {
	FindAll(ctx context.Context) ([]domain.Customer, error)
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	Update(ctx context.Context, id string, update CustomerUpdate) (*domain.Customer, error)
	Delete(ctx context.Context, id string) (*domain.Customer, error)
}
