// Package password wraps bcrypt hashing behind a small, explicitly
// constructed service so the work factor is configuration, not a constant
// scattered across call sites.
package password

import "golang.org/x/crypto/bcrypt"

// DefaultCost matches the work factor the hashes in production were
// generated with. Raising it only affects newly stored hashes.
const DefaultCost = 10

// Hasher salts and hashes plaintext passwords and verifies candidates
// against stored hashes. The zero value is not usable; construct with New.
type Hasher struct {
	cost int
}

// New returns a Hasher with the given bcrypt cost. Costs outside bcrypt's
// supported range fall back to DefaultCost.
func New(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return Hasher{cost: cost}
}

// Hash generates a fresh salted bcrypt hash of plaintext. The returned
// string embeds the salt and cost parameters.
func (h Hasher) Hash(plaintext string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Verify reports whether candidate matches the stored hash. An empty
// candidate or a malformed hash yields false, never an error: callers treat
// every failure identically.
func (h Hasher) Verify(candidate, hash string) bool {
	if candidate == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}
