package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a storefront account. Only provisioned admins can sign in.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	IsAdmin      bool      `json:"is_admin" db:"is_admin"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Principal is the identity returned by a successful authentication
type Principal struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// Session is the request-scoped view of a decoded session token
type Session struct {
	UserID    uuid.UUID `json:"id"`
	ExpiresAt time.Time `json:"expires"`
}

// PrincipalFromUser strips everything but the public identity
func PrincipalFromUser(u *User) *Principal {
	return &Principal{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}
