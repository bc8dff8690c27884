package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/featherback/featherback-api/internal/core/domain"
	"github.com/featherback/featherback-api/internal/core/password"
	"github.com/featherback/featherback-api/internal/core/ports"
	"github.com/featherback/featherback-api/internal/core/token"
)

const (
	testSecret = "1bf6c4701e12565f8ad937db603e49d1"
	testIssuer = "api.featherback.co"
)

// testHasher uses bcrypt's minimum cost so the suite stays fast.
var testHasher = password.New(4)

func newTestTokens() *token.Service {
	return token.NewService(testSecret, testIssuer, 24*time.Hour)
}

func newAuthFixture(t *testing.T) (*AuthService, *stubUserRepo, *stubCustomerRepo) {
	t.Helper()
	users := newStubUserRepo()
	customers := newStubCustomerRepo()
	svc := NewAuthService(users, customers, newTestTokens(), testHasher, zerolog.Nop())
	return svc, users, customers
}

func seedUser(t *testing.T, users *stubUserRepo, u domain.User, plaintext string) *domain.User {
	t.Helper()
	hash, err := testHasher.Hash(plaintext)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u.Password = hash
	created, err := users.Create(context.Background(), &u)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return created
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	seedUser(t, users, domain.User{CustomerID: "c1", Login: "a@b.com", Name: "A", Enabled: true}, "Passw0rd")

	signed, err := svc.Login(context.Background(), "a@b.com", "Passw0rd")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	claims, err := newTestTokens().Verify(signed)
	if err != nil {
		t.Fatalf("token did not verify: %v", err)
	}
	if claims.UserID != "u1" || claims.CustomerID != "c1" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Admin || claims.Root {
		t.Fatalf("expected no role flags, got admin=%v root=%v", claims.Admin, claims.Root)
	}
}

func TestAuthService_Login_DisabledBeforePasswordCheck(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	seedUser(t, users, domain.User{CustomerID: "c1", Login: "a@b.com", Name: "A", Enabled: false}, "Passw0rd")

	// Even the correct password answers "disabled".
	if _, err := svc.Login(context.Background(), "a@b.com", "Passw0rd"); !errors.Is(err, domain.ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
	// And so does a wrong one: the disabled check runs first.
	if _, err := svc.Login(context.Background(), "a@b.com", "nope"); !errors.Is(err, domain.ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled for wrong password too, got %v", err)
	}
}

func TestAuthService_Login_NoEnumeration(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	seedUser(t, users, domain.User{CustomerID: "c1", Login: "a@b.com", Name: "A", Enabled: true}, "Passw0rd")

	_, wrongPwd := svc.Login(context.Background(), "a@b.com", "incorrect")
	_, unknown := svc.Login(context.Background(), "ghost@b.com", "whatever")

	if !errors.Is(wrongPwd, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPwd)
	}
	if !errors.Is(unknown, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown login: expected ErrInvalidCredentials, got %v", unknown)
	}
	if wrongPwd.Error() != unknown.Error() {
		t.Fatalf("wrong password and unknown login must be indistinguishable: %q vs %q", wrongPwd, unknown)
	}
}

func TestAuthService_Signup_CreatesTenantAndAdmin(t *testing.T) {
	svc, users, customers := newAuthFixture(t)

	signed, user, err := svc.Signup(context.Background(), ports.SignupInput{
		Name:             "A",
		Login:            "a@b.com",
		Password:         "Passw0rd",
		OrganisationName: "Acme",
	})
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if !user.Admin || user.Root {
		t.Fatalf("first user must be admin and not root: %+v", user)
	}
	if !user.Enabled {
		t.Fatalf("first user must be enabled")
	}
	if user.Password == "Passw0rd" {
		t.Fatalf("plaintext password was persisted")
	}
	if !testHasher.Verify("Passw0rd", user.Password) {
		t.Fatalf("stored hash does not match the password")
	}

	customer, err := customers.FindByID(context.Background(), user.CustomerID)
	if err != nil {
		t.Fatalf("customer not created: %v", err)
	}
	if customer.Name != "Acme" || customer.Email != "a@b.com" {
		t.Fatalf("unexpected customer: %+v", customer)
	}

	claims, err := newTestTokens().Verify(signed)
	if err != nil {
		t.Fatalf("signup token did not verify: %v", err)
	}
	if claims.UserID != user.ID || claims.CustomerID != customer.ID || !claims.Admin {
		t.Fatalf("unexpected signup claims: %+v", claims)
	}

	if stored, _ := users.FindByID(context.Background(), user.ID); !testHasher.Verify("Passw0rd", stored.Password) {
		t.Fatalf("checkPassword against stored user failed")
	}
}

func TestAuthService_Signup_PasswordPolicy(t *testing.T) {
	svc, users, customers := newAuthFixture(t)

	_, _, err := svc.Signup(context.Background(), ports.SignupInput{
		Name:             "A",
		Login:            "a@b.com",
		Password:         "short",
		OrganisationName: "Acme",
	})
	if !errors.Is(err, domain.ErrPasswordPolicy) {
		t.Fatalf("expected ErrPasswordPolicy, got %v", err)
	}

	// Validation failed before anything was written.
	if len(users.users) != 0 || len(customers.customers) != 0 {
		t.Fatalf("partial write after policy failure")
	}
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	if _, _, err := svc.Signup(context.Background(), ports.SignupInput{
		Name: "A", Login: "a@b.com", Password: "Passw0rd", OrganisationName: "Acme",
	}); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}

	_, _, err := svc.Signup(context.Background(), ports.SignupInput{
		Name: "B", Login: "a@b.com", Password: "Passw0rd", OrganisationName: "Biz",
	})
	if !domain.IsDuplicateKey(err) {
		t.Fatalf("expected DuplicateKeyError, got %v", err)
	}
}

func TestAuthService_Signup_CompensatesOrphanedCustomer(t *testing.T) {
	svc, users, customers := newAuthFixture(t)

	// Same login already exists under another tenant, so the user insert
	// collides while the customer insert (different email) succeeds.
	seedUser(t, users, domain.User{CustomerID: "c9", Login: "a@b.com", Name: "A", Enabled: true}, "Passw0rd")

	_, _, err := svc.Signup(context.Background(), ports.SignupInput{
		Name: "B", Login: "a@b.com", Password: "Passw0rd", OrganisationName: "Biz",
	})
	if !domain.IsDuplicateKey(err) {
		t.Fatalf("expected DuplicateKeyError, got %v", err)
	}
	if len(customers.customers) != 0 {
		t.Fatalf("customer left behind after failed signup")
	}
}

func TestAuthService_Impersonate(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	target := seedUser(t, users, domain.User{CustomerID: "c2", Login: "t@b.com", Name: "T", Admin: true, Enabled: true}, "Passw0rd")

	rootClaims := &token.Claims{UserID: "r1", CustomerID: "c0", Root: true}
	signed, err := svc.Impersonate(context.Background(), rootClaims, target.ID)
	if err != nil {
		t.Fatalf("Impersonate returned error: %v", err)
	}

	claims, err := newTestTokens().Verify(signed)
	if err != nil {
		t.Fatalf("impersonation token did not verify: %v", err)
	}
	if claims.UserID != target.ID || claims.CustomerID != "c2" || !claims.Admin {
		t.Fatalf("unexpected target claims: %+v", claims)
	}
	if claims.ImpersonatedBy == nil || claims.ImpersonatedBy.UserID != "r1" || !claims.ImpersonatedBy.Root {
		t.Fatalf("expected full root claims under impersonatedBy, got %+v", claims.ImpersonatedBy)
	}
}

func TestAuthService_Impersonate_RequiresRoot(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	target := seedUser(t, users, domain.User{CustomerID: "c2", Login: "t@b.com", Name: "T", Enabled: true}, "Passw0rd")

	adminClaims := &token.Claims{UserID: "a1", CustomerID: "c2", Admin: true}
	if _, err := svc.Impersonate(context.Background(), adminClaims, target.ID); !errors.Is(err, domain.ErrRootRequired) {
		t.Fatalf("expected ErrRootRequired, got %v", err)
	}
	if _, err := svc.Impersonate(context.Background(), nil, target.ID); !errors.Is(err, domain.ErrRootRequired) {
		t.Fatalf("expected ErrRootRequired for nil claims, got %v", err)
	}
}

func TestAuthService_Impersonate_TargetNotFound(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	rootClaims := &token.Claims{UserID: "r1", CustomerID: "c0", Root: true}
	if _, err := svc.Impersonate(context.Background(), rootClaims, "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_WhoAmI(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	created := seedUser(t, users, domain.User{CustomerID: "c1", Login: "a@b.com", Name: "A", Enabled: true}, "Passw0rd")

	user, err := svc.WhoAmI(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("WhoAmI returned error: %v", err)
	}
	if user.Login != "a@b.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.WhoAmI(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
