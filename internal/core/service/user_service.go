package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/featherback/featherback-api/internal/core/domain"
	"github.com/featherback/featherback-api/internal/core/password"
	"github.com/featherback/featherback-api/internal/core/ports"
)

// UserService is tenant-scoped user administration. The password policy is
// intentionally NOT applied here: admins may set any password for users in
// their tenant. Only the self-service flows (signup, password change)
// enforce the policy.
type UserService struct {
	users  ports.UserRepository
	hasher password.Hasher
	log    zerolog.Logger
}

func NewUserService(users ports.UserRepository, hasher password.Hasher, log zerolog.Logger) *UserService {
	return &UserService{users: users, hasher: hasher, log: log}
}

func (s *UserService) List(ctx context.Context, customerID string, page, limit int) (*ports.UserPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return s.users.ListByCustomer(ctx, customerID, page, limit)
}

func (s *UserService) Create(ctx context.Context, customerID string, in ports.CreateUserInput) (*domain.User, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, &domain.User{
		CustomerID: customerID,
		Login:      in.Login,
		Name:       in.Name,
		Password:   hash,
		Admin:      in.Admin,
		Enabled:    true,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("customer_id", customerID).Bool("admin", user.Admin).Msg("user created")
	return user, nil
}

func (s *UserService) Get(ctx context.Context, customerID, id string) (*domain.User, error) {
	return s.users.FindInTenant(ctx, id, customerID)
}

// Update applies an admin edit. The password is only replaced when one was
// submitted, so a profile edit can never blank it out.
func (s *UserService) Update(ctx context.Context, customerID, id string, in ports.UpdateUserInput) (*domain.User, error) {
	update := ports.UserUpdate{
		Login: &in.Login,
		Name:  &in.Name,
		Admin: &in.Admin,
	}
	if in.Password != "" {
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return nil, err
		}
		update.Password = &hash
	}

	return s.users.UpdateInTenant(ctx, id, customerID, update)
}

// Delete removes a user from the caller's tenant. Root users get no special
// protection here: an admin of the same tenant can delete them.
func (s *UserService) Delete(ctx context.Context, customerID, id string) (*domain.User, error) {
	user, err := s.users.DeleteInTenant(ctx, id, customerID)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", id).Str("customer_id", customerID).Msg("user deleted")
	return user, nil
}
