package ports

import (
	"context"

	"github.com/featherback/featherback-api/internal/core/domain"
)

// ChangePasswordInput mirrors the self-service password form: the current
// password plus the new one typed twice.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword1    string
	NewPassword2    string
}

// SettingsService covers the authenticated user's own settings and, for
// admins, the tenant account settings.
type SettingsService interface {
	// ChangePassword re-checks the current password, enforces the password
	// policy on the new one and stores a fresh hash.
	ChangePassword(ctx context.Context, userID string, in ChangePasswordInput) (*domain.User, error)
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	// UpdateProfile only touches fields a user may edit about themselves.
	UpdateProfile(ctx context.Context, userID, name string) (*domain.User, error)
	GetAccount(ctx context.Context, customerID string) (*domain.Customer, error)
	UpdateAccount(ctx context.Context, customerID string, in CreateCustomerInput) (*domain.Customer, error)
}
