package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a staff account. PasswordHash never leaves the server.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Snapshot flattens the audited user fields.
func (u *User) Snapshot() map[string]any {
	if u == nil {
		return nil
	}
	return map[string]any{
		"email":     u.Email,
		"firstName": u.FirstName,
		"lastName":  u.LastName,
		"role":      u.Role,
		"active":    u.Active,
	}
}
