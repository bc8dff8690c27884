package domain

import "time"

// NotificationClass is the severity bucket of a notification.
type NotificationClass string

const (
	ClassInfo    NotificationClass = "INFO"
	ClassWarning NotificationClass = "WARNING"
	ClassError   NotificationClass = "ERROR"
)

// ValidClass reports whether c is one of the known notification classes.
func ValidClass(c NotificationClass) bool {
	switch c {
	case ClassInfo, ClassWarning, ClassError:
		return true
	}
	return false
}

// Notification is a per-user message scoped to a tenant. Reads and deletes
// always filter on both CustomerID and UserID.
type Notification struct {
	ID         string            `json:"id"`
	CustomerID string            `json:"customerId"`
	UserID     string            `json:"userId"`
	Class      NotificationClass `json:"class"`
	Message    string            `json:"message"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}
