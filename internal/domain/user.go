package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account in the system.
// Maps to the 'users' table; email and username carry unique indexes.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
