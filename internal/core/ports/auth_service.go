package ports

import (
	"context"

	"github.com/featherback/featherback-api/internal/core/domain"
	"github.com/featherback/featherback-api/internal/core/token"
)

// SignupInput is the self-service registration payload: it creates a tenant
// and its first administrator in one step.
type SignupInput struct {
	Name             string
	Login            string
	Password         string
	OrganisationName string
}

// AuthService covers login, identity lookup, signup and impersonation.
type AuthService interface {
	// Login exchanges Basic-Auth credentials for a signed token. Unknown
	// logins and wrong passwords fail identically with
	// domain.ErrInvalidCredentials; disabled accounts fail with
	// domain.ErrAccountDisabled before the password is even checked.
	Login(ctx context.Context, login, password string) (string, error)

	// WhoAmI re-fetches the live user record behind a verified claim set.
	WhoAmI(ctx context.Context, userID string) (*domain.User, error)

	// Signup creates a Customer and its first admin User, then returns a
	// token for that user. The password policy applies here.
	Signup(ctx context.Context, in SignupInput) (string, *domain.User, error)

	// Impersonate mints a token for the target user annotated with the
	// caller's full claim set. The caller must carry the root flag; the
	// lookup is not tenant-scoped.
	Impersonate(ctx context.Context, caller *token.Claims, targetUserID string) (string, error)
}
