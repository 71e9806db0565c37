// internal/models/user.go
package models

// ManagedUser is an account in the admin user directory.
type ManagedUser struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Role       AppRole `json:"role"`
	JoinedDate string  `json:"joined_date"`
	Avatar     string  `json:"avatar"`

	// PendingAvatar holds a staged avatar preview until it is committed or discarded.
	PendingAvatar string `json:"pending_avatar,omitempty"`
}
