package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/featherback/featherback-api/internal/core/domain"
	"github.com/featherback/featherback-api/internal/core/ports"
)

// CustomerService is root-only tenant management.
type CustomerService struct {
	customers ports.CustomerRepository
	users     ports.UserRepository
	log       zerolog.Logger
}

func NewCustomerService(customers ports.CustomerRepository, users ports.UserRepository, log zerolog.Logger) *CustomerService {
	return &CustomerService{customers: customers, users: users, log: log}
}

func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	return s.customers.FindAll(ctx)
}

func (s *CustomerService) Create(ctx context.Context, in ports.CreateCustomerInput) (*domain.Customer, error) {
	customer, err := s.customers.Create(ctx, &domain.Customer{
		Name:  in.Name,
		Email: in.Email,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("customer_id", customer.ID).Msg("customer created")
	return customer, nil
}

func (s *CustomerService) Get(ctx context.Context, id string) (*domain.Customer, error) {
	return s.customers.FindByID(ctx, id)
}

func (s *CustomerService) Update(ctx context.Context, id string, in ports.CreateCustomerInput) (*domain.Customer, error) {
	return s.customers.Update(ctx, id, ports.CustomerUpdate{
		Name:  &in.Name,
		Email: &in.Email,
	})
}

// Delete removes the tenant document. Users belonging to it are not
// cascaded and become orphans.
func (s *CustomerService) Delete(ctx context.Context, id string) (*domain.Customer, error) {
	customer, err := s.customers.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("customer_id", id).Msg("customer deleted")
	return customer, nil
}

func (s *CustomerService) ListUsers(ctx context.Context, customerID string, page, limit int) (*ports.UserPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	// Confirm the tenant exists so an unknown id reads as NotFound rather
	// than an empty page.
	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		return nil, err
	}
	return s.users.ListByCustomer(ctx, customerID, page, limit)
}
