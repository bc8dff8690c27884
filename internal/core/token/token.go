// Package token issues and verifies the compact HS256 JWTs that carry a
// User's identity between requests. Claims are a signed snapshot taken at
// issuance: they are deliberately not re-checked against the live User
// record during verification, so role changes or account disablement do not
// invalidate tokens already in flight before they expire.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/featherback/featherback-api/internal/core/domain"
)

// Claims is the JWT payload shape. Admin and Root are omitted from the
// encoded payload when false. ImpersonatedBy carries the full claim set of
// the root user that minted an impersonation token, one level deep.
type Claims struct {
	jwt.RegisteredClaims
	UserID         string  `json:"id"`
	CustomerID     string  `json:"cid"`
	Admin          bool    `json:"admin,omitempty"`
	Root           bool    `json:"root,omitempty"`
	ImpersonatedBy *Claims `json:"impersonatedBy,omitempty"`
}

// ForUser builds the standard claim set for a user. Role flags are only set
// when true so they stay out of the encoded payload otherwise.
func ForUser(u *domain.User) *Claims {
	return &Claims{
		UserID:     u.ID,
		CustomerID: u.CustomerID,
		Admin:      u.Admin,
		Root:       u.Root,
	}
}

// Service signs and verifies tokens with a process-wide secret, issuer and
// TTL. Rotating the secret invalidates every outstanding token; there is no
// rotation or revocation support.
type Service struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewService constructs a Service. A non-positive ttl falls back to 24h.
func NewService(secret, issuer string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock replaces the time source. Tests use this to force expiry.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Sign produces a compact signed token embedding claims plus the fixed
// issuer, issued-at and expiry. The input claims value is mutated to carry
// the registered fields.
func (s *Service) Sign(claims *Claims) (string, error) {
	issued := s.now().UTC()
	claims.Issuer = s.issuer
	claims.IssuedAt = jwt.NewNumericDate(issued)
	claims.ExpiresAt = jwt.NewNumericDate(issued.Add(s.ttl))

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify validates signature, issuer and expiry. Every failure mode
// (bad signature, wrong issuer, expired, truncated, garbage) collapses into
// domain.ErrInvalidToken: callers must not distinguish sub-reasons.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

// Decode extracts the payload without checking the signature. Useful for
// inspecting an impersonation chain; never trust the result for
// authorization decisions.
func (s *Service) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
