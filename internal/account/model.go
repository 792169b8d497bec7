// Package account manages learner accounts: registration, credential
// verification, and lookup.
package account

import (
	"context"
	"time"
)

// Account represents the persisted account document.
type Account struct {
	ID           string    `json:"id" firestore:"id"`
	Username     string    `json:"username" firestore:"username"`
	Email        string    `json:"email,omitempty" firestore:"email"`
	PasswordHash string    `json:"-" firestore:"password_hash"`
	CreatedAt    time.Time `json:"created_at" firestore:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" firestore:"updated_at"`
}

// SignupInput describes a registration request.
type SignupInput struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// LoginInput describes a credential check.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Repository defines the interface for account data access.
type Repository interface {
	Create(ctx context.Context, acct Account) error
	GetByID(ctx context.Context, id string) (Account, error)
	GetByUsername(ctx context.Context, username string) (Account, error)
}

// Service defines the account service interface.
type Service interface {
	Signup(ctx context.Context, input SignupInput) (Account, error)
	Login(ctx context.Context, input LoginInput) (Account, error)
	GetByID(ctx context.Context, id string) (Account, error)
}
