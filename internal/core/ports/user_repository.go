package ports

import (
	"context"

	"github.com/featherback/featherback-api/internal/core/domain"
)

// UserUpdate is a partial update applied with atomic find-and-update
// semantics. Nil fields are left untouched; Password, when set, must already
// be a hash.
type UserUpdate struct {
	Login    *string
	Name     *string
	Admin    *bool
	Password *string
}

// UserPage is one page of users plus paging metadata.
type UserPage struct {
	Docs  []domain.User `json:"docs"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
	Pages int           `json:"pages"`
}

// UserRepository is the persistence boundary for users. Lookups scoped with
// a customerID return domain.ErrUserNotFound for ids that exist in another
// tenant; duplicate logins surface as *domain.DuplicateKeyError.
type UserRepository interface {
	FindByLogin(ctx context.Context, login string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindInTenant(ctx context.Context, id, customerID string) (*domain.User, error)
	ListByCustomer(ctx context.Context, customerID string, page, limit int) (*UserPage, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id string, update UserUpdate) (*domain.User, error)
	UpdateInTenant(ctx context.Context, id, customerID string, update UserUpdate) (*domain.User, error)
	DeleteInTenant(ctx context.Context, id, customerID string) (*domain.User, error)
}
