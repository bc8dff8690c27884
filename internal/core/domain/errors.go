package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidToken = errors.New("invalid token")
var ErrInvalidCredentials = errors.New("incorrect username or password")
var ErrAccountDisabled = errors.New("account disabled")
var ErrRootRequired = errors.New("root access required")
var ErrAdminRequired = errors.New("administrator access required")

var ErrUserNotFound = errors.New("user not found")
var ErrCustomerNotFound = errors.New("customer not found")
var ErrNotificationNotFound = errors.New("notification not found")

var ErrPasswordPolicy = errors.New("password must be at least 8 characters and may only contain letters, numbers and $@!%*?&")
var ErrPasswordMismatch = errors.New("new passwords do not match")
var ErrWrongPassword = errors.New("incorrect password provided")

// DuplicateKeyError reports a storage-layer uniqueness violation on a single
// field (users.login or customers.email). Repositories translate the driver's
// duplicate-key error into this type so callers never sniff error strings.
type DuplicateKeyError struct {
	Field string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate value for unique field %q", e.Field)
}

// IsDuplicateKey reports whether err is a uniqueness violation.
func IsDuplicateKey(err error) bool {
	var dup *DuplicateKeyError
	return errors.As(err, &dup)
}
