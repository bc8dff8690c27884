package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/featherback/featherback-api/internal/api/middleware"
	"github.com/featherback/featherback-api/internal/core/domain"
	"github.com/featherback/featherback-api/internal/core/ports"
	"github.com/featherback/featherback-api/internal/core/token"
)

type stubAuthService struct {
	loginFn       func(ctx context.Context, login, password string) (string, error)
	whoAmIFn      func(ctx context.Context, userID string) (*domain.User, error)
	signupFn      func(ctx context.Context, in ports.SignupInput) (string, *domain.User, error)
	impersonateFn func(ctx context.Context, caller *token.Claims, targetUserID string) (string, error)
}

func (s *stubAuthService) Login(ctx context.Context, login, password string) (string, error) {
	return s.loginFn(ctx, login, password)
}

func (s *stubAuthService) WhoAmI(ctx context.Context, userID string) (*domain.User, error) {
	return s.whoAmIFn(ctx, userID)
}

func (s *stubAuthService) Signup(ctx context.Context, in ports.SignupInput) (string, *domain.User, error) {
	return s.signupFn(ctx, in)
}

func (s *stubAuthService) Impersonate(ctx context.Context, caller *token.Claims, targetUserID string) (string, error) {
	return s.impersonateFn(ctx, caller, targetUserID)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, login, password string) (string, error) {
			if login != "alice@example.com" || password != "Password1" {
				t.Fatalf("unexpected credentials: %s %s", login, password)
			}
			return "signed-token", nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/login", "")
	c.Set(middleware.UsernameKey, "alice@example.com")
	c.Set(middleware.PasswordKey, "Password1")

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "signed-token" || resp["type"] != "jwt" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Login_MissingCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, login, password string) (string, error) {
			t.Fatalf("should not be called")
			return "", nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/login", "")

	err := h.Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Login_ServiceError(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, login, password string) (string, error) {
			return "", domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/login", "")
	c.Set(middleware.UsernameKey, "alice@example.com")
	c.Set(middleware.PasswordKey, "wrong")

	// Domain errors pass through untouched for the central error handler.
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_WhoAmI_Success(t *testing.T) {
	stub := &stubAuthService{
		whoAmIFn: func(ctx context.Context, userID string) (*domain.User, error) {
			if userID != "u1" {
				t.Fatalf("unexpected user id: %s", userID)
			}
			return &domain.User{ID: "u1", Login: "alice@example.com", Name: "Alice"}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/whoami", "")
	c.Set(middleware.ClaimsKey, &token.Claims{UserID: "u1", CustomerID: "c1"})

	if err := h.WhoAmI(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	data, ok := resp["data"].(map[string]any)
	if !ok || data["login"] != "alice@example.com" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, leaked := data["password"]; leaked {
		t.Fatalf("password must never appear in responses")
	}
}

func TestAuthHandler_WhoAmI_UserGone(t *testing.T) {
	stub := &stubAuthService{
		whoAmIFn: func(ctx context.Context, userID string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/whoami", "")
	c.Set(middleware.ClaimsKey, &token.Claims{UserID: "gone", CustomerID: "c1"})

	// A valid token whose user was deleted reads as 400, not 404.
	err := h.WhoAmI(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if he.Message != "No User exists with that ID" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestAuthHandler_WhoAmI_NoClaims(t *testing.T) {
	stub := &stubAuthService{
		whoAmIFn: func(ctx context.Context, userID string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/whoami", "")

	err := h.WhoAmI(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, in ports.SignupInput) (string, *domain.User, error) {
			if in.Login != "founder@example.com" || in.OrganisationName != "Acme" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return "signup-token", &domain.User{ID: "u1", Admin: true}, nil
		},
	}
	h := NewAuthHandler(stub)

	body := `{"name":"Founder","login":"founder@example.com","password":"Password1","organisationName":"Acme"}`
	c, rec := newTestContext(t, http.MethodPost, "/signup", body)

	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "signup-token" || resp["type"] != "jwt" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Signup_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, in ports.SignupInput) (string, *domain.User, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	h := NewAuthHandler(stub)

	body := `{"name":"Founder","login":"founder@example.com","password":"Password1"}`
	c, _ := newTestContext(t, http.MethodPost, "/signup", body)

	err := h.Signup(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Signup_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, in ports.SignupInput) (string, *domain.User, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/signup", "not-json")

	err := h.Signup(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
