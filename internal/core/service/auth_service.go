package service

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/featherback/featherback-api/internal/api/metrics"
	"github.com/featherback/featherback-api/internal/core/domain"
	"github.com/featherback/featherback-api/internal/core/password"
	"github.com/featherback/featherback-api/internal/core/ports"
	"github.com/featherback/featherback-api/internal/core/token"
)

// AuthService implements login, whoami, signup and impersonation on top of
// the user and customer repositories.
type AuthService struct {
	users     ports.UserRepository
	customers ports.CustomerRepository
	tokens    *token.Service
	hasher    password.Hasher
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, customers ports.CustomerRepository, tokens *token.Service, hasher password.Hasher, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:     users,
		customers: customers,
		tokens:    tokens,
		hasher:    hasher,
		log:       log,
	}
}

// Login resolves Basic-Auth credentials to a signed token.
//
// The disabled check runs before the password comparison, so a disabled
// account answers "disabled" even to a wrong password. Unknown logins and
// wrong passwords share one error to prevent login enumeration. Both
// behaviours are inherited and load-bearing.
func (s *AuthService) Login(ctx context.Context, login, candidate string) (string, error) {
	user, err := s.users.FindByLogin(ctx, login)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}

	if user != nil && !user.Enabled {
		metrics.LoginsTotal.WithLabelValues("disabled").Inc()
		return "", domain.ErrAccountDisabled
	}

	if user == nil || !s.hasher.Verify(candidate, user.Password) {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return "", domain.ErrInvalidCredentials
	}

	signed, err := s.tokens.Sign(token.ForUser(user))
	if err != nil {
		return "", err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.WithLabelValues("login").Inc()
	s.log.Info().Str("user_id", user.ID).Str("customer_id", user.CustomerID).Msg("login succeeded")
	return signed, nil
}

// WhoAmI re-fetches the live user record for a verified claim set.
func (s *AuthService) WhoAmI(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// Signup creates a tenant and its first administrator, then issues a token
// for that user. This is a self-service flow, so the password policy is
// validated before anything is written.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (string, *domain.User, error) {
	if !domain.ValidPassword(in.Password) {
		return "", nil, domain.ErrPasswordPolicy
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	customer, err := s.customers.Create(ctx, &domain.Customer{
		Name:      in.OrganisationName,
		Email:     in.Login,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return "", nil, err
	}

	user, err := s.users.Create(ctx, &domain.User{
		CustomerID: customer.ID,
		Login:      in.Login,
		Name:       in.Name,
		Password:   hash,
		Admin:      true,
		Enabled:    true,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		// The tenant was written but its admin was not; remove it so a
		// retried signup does not hit a duplicate email.
		if _, delErr := s.customers.Delete(ctx, customer.ID); delErr != nil {
			s.log.Error().Err(delErr).Str("customer_id", customer.ID).Msg("orphaned customer after failed signup")
		}
		return "", nil, err
	}

	signed, err := s.tokens.Sign(token.ForUser(user))
	if err != nil {
		return "", nil, err
	}

	metrics.TokensIssuedTotal.WithLabelValues("signup").Inc()
	s.log.Info().Str("user_id", user.ID).Str("customer_id", customer.ID).Msg("tenant signed up")
	return signed, user, nil
}

// Impersonate issues a token for the target user carrying the caller's full
// claim set under impersonatedBy. Nothing is persisted; the audit trail
// lives inside the token itself.
func (s *AuthService) Impersonate(ctx context.Context, caller *token.Claims, targetUserID string) (string, error) {
	if caller == nil || !caller.Root {
		return "", domain.ErrRootRequired
	}

	// Root impersonation is the one user lookup that crosses tenants.
	target, err := s.users.FindByID(ctx, targetUserID)
	if err != nil {
		return "", err
	}

	claims := token.ForUser(target)
	claims.ImpersonatedBy = caller

	signed, err := s.tokens.Sign(claims)
	if err != nil {
		return "", err
	}

	metrics.TokensIssuedTotal.WithLabelValues("impersonation").Inc()
	s.log.Info().
		Str("root_user_id", caller.UserID).
		Str("target_user_id", target.ID).
		Msg("impersonation token issued")
	return signed, nil
}

// hashPassword times bcrypt work; each call runs on the request goroutine,
// so concurrent signups hash in parallel without any global serialisation.
func (s *AuthService) hashPassword(plaintext string) (string, error) {
	timer := prometheus.NewTimer(metrics.PasswordHashDuration)
	defer timer.ObserveDuration()
	return s.hasher.Hash(plaintext)
}
