package auth

import (
	"context"
	"errors"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username taken")

	// ErrInvalidCredentials deliberately covers both unknown user and wrong
	// password so responses never reveal which part failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User is a credential record. It is written once at registration and
// never mutated; username is the identity key.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	CreatedAt    int64  `json:"created_at,omitempty"`
}

type CredentialStore interface {
	Insert(ctx context.Context, u User) error
	FindByUsername(ctx context.Context, username string) (User, error)
}
