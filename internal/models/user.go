package models

import (
	"time"
)

// User represents an authenticated account. Users are the owning principal
// for providers and shipments; everything else is scoped by their ID.
type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// NewUser creates a new user with a fresh identifier
func NewUser(email, passwordHash, name string) *User {
	return &User{
		ID:           GenerateID("usr"),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		CreatedAt:    GetCurrentTime(),
	}
}
