package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/featherback/featherback-api/internal/core/domain"
	"github.com/featherback/featherback-api/internal/core/password"
	"github.com/featherback/featherback-api/internal/core/ports"
)

// SettingsService covers the authenticated user's own settings plus, for
// tenant admins, the Customer account settings.
type SettingsService struct {
	users     ports.UserRepository
	customers ports.CustomerRepository
	hasher    password.Hasher
	log       zerolog.Logger
}

func NewSettingsService(users ports.UserRepository, customers ports.CustomerRepository, hasher password.Hasher, log zerolog.Logger) *SettingsService {
	return &SettingsService{users: users, customers: customers, hasher: hasher, log: log}
}

// ChangePassword is a self-service flow: validate before hash, hash before
// persist, abort on the first failure with nothing written.
func (s *SettingsService) ChangePassword(ctx context.Context, userID string, in ports.ChangePasswordInput) (*domain.User, error) {
	if in.NewPassword1 != in.NewPassword2 {
		return nil, domain.ErrPasswordMismatch
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !s.hasher.Verify(in.CurrentPassword, user.Password) {
		return nil, domain.ErrWrongPassword
	}

	if !domain.ValidPassword(in.NewPassword1) {
		return nil, domain.ErrPasswordPolicy
	}
	hash, err := s.hasher.Hash(in.NewPassword1)
	if err != nil {
		return nil, err
	}

	updated, err := s.users.Update(ctx, userID, ports.UserUpdate{Password: &hash})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", userID).Msg("password changed")
	return updated, nil
}

func (s *SettingsService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// UpdateProfile only touches the display name. Login, role flags and tenant
// membership are not user-editable through this path.
func (s *SettingsService) UpdateProfile(ctx context.Context, userID, name string) (*domain.User, error) {
	return s.users.Update(ctx, userID, ports.UserUpdate{Name: &name})
}

func (s *SettingsService) GetAccount(ctx context.Context, customerID string) (*domain.Customer, error) {
	return s.customers.FindByID(ctx, customerID)
}

func (s *SettingsService) UpdateAccount(ctx context.Context, customerID string, in ports.CreateCustomerInput) (*domain.Customer, error) {
	return s.customers.Update(ctx, customerID, ports.CustomerUpdate{
		Name:  &in.Name,
		Email: &in.Email,
	})
}
