package domain

import "time"

// Role is a coarse capability tag carried by every user.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthToken is the verified content of a bearer token. It is never persisted.
type AuthToken struct {
	SubjectID string
	Role      Role
	ExpiresAt time.Time
}

// Actor is the identity an operation runs on behalf of.
type Actor struct {
	UserID string
	Role   Role
}
