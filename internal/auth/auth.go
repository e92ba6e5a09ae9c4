package auth

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Owner is the bookkeeper account that cheques and follow-ups belong to.
type Owner struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FullName     *string
	CompanyName  *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
