package models

import "time"

// Staff-user roles. Admins manage users and plans; cashiers run the desk.
const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

// IsValidRole reports whether r is a known staff role.
func IsValidRole(r string) bool {
	return r == RoleAdmin || r == RoleCashier
}

// User represents a staff user of the back office.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // never serialized
	Role         string    `json:"role" db:"role"`
	Enabled      bool      `json:"enabled" db:"enabled"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
