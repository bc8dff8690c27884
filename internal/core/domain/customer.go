package domain

import "time"

// Customer is a tenant: the unit of data isolation. Every User, Notification
// and Settings document hangs off exactly one Customer.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
