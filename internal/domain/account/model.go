package account

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// User maps to the account table.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

var (
	// ErrNotFound means no user matched the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken means the email is already registered to another user.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials means the email/password pair did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPasswordMismatch means the supplied current password was wrong.
	ErrPasswordMismatch = errors.New("current password is incorrect")
)
