package domain

import (
	"context"
	"errors"
	"time"
)

// User is a marketplace account. Hosts may publish listings; admins may
// moderate any listing.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FullName     string
	Phone        string
	Bio          string
	Avatar       string
	IsHost       bool
	IsAdmin      bool
	CreatedAt    time.Time
}

// Principal is the authenticated identity attached to a request.
type Principal struct {
	ID      string
	IsHost  bool
	IsAdmin bool
}

// Principal derives the request identity for the user.
func (u *User) Principal() Principal {
	return Principal{ID: u.ID, IsHost: u.IsHost, IsAdmin: u.IsAdmin}
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidUserData    = errors.New("invalid user data")
	ErrDuplicateUser      = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrForbidden          = errors.New("user not authorized to modify this account")
)

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}
