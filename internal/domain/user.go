package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

type UserRepository interface {
	// Create inserts a user; returns ErrUserExists on a duplicate email
	Create(ctx context.Context, user *User) error
	// GetByEmail returns ErrUserNotFound when no row matches
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// RegisterRequest is the account signup body. The password is never trimmed.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,max=254,safe_email"`
	Password string `json:"password" validate:"required,strong_password"`
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = normalizeEmail(r.Email)
}

// RegistrationResult tells the transport whether a new account was made.
// Callers that hide enumeration must render both outcomes identically.
type RegistrationResult struct {
	Created bool
	User    *User
}

type AuthUsecase interface {
	Register(ctx context.Context, req *RegisterRequest, clientIP string) (*RegistrationResult, error)
}
