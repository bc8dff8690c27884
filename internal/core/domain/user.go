package domain

import (
	"regexp"
	"time"
)

// User is an authenticated actor belonging to exactly one Customer.
// CustomerID is set at creation and never changes afterwards.
//
// Password always holds a bcrypt hash, never plaintext, and is excluded from
// JSON serialization entirely.
type User struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customerId"`
	Login      string    `json:"login"`
	Name       string    `json:"name"`
	Password   string    `json:"-"`
	Admin      bool      `json:"admin"`
	Root       bool      `json:"root"`
	Enabled    bool      `json:"enabled"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// passwordPolicy is enforced on self-service flows only (signup and
// password change). Admin-created or admin-updated users bypass it; that
// asymmetry is inherited behaviour and kept on purpose.
var passwordPolicy = regexp.MustCompile(`^[A-Za-z0-9$@$!%*?&]{8,}$`)

// ValidPassword reports whether a plaintext password satisfies the
// self-service password policy.
func ValidPassword(plaintext string) bool {
	return passwordPolicy.MatchString(plaintext)
}
