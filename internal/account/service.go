package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

type service struct {
	repo     Repository
	clock    Clock
	ids      IDGenerator
	validate *validator.Validate
}

// NewService creates a new account service.
func NewService(repo Repository, clock Clock, ids IDGenerator) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if clock == nil {
		clock = NewSystemClock()
	}
	if ids == nil {
		ids = NewUUIDGenerator()
	}
	return &service{
		repo:     repo,
		clock:    clock,
		ids:      ids,
		validate: validator.New(),
	}, nil
}

func (s *service) Signup(ctx context.Context, input SignupInput) (Account, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if err := s.validate.Struct(input); err != nil {
		return Account{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, err := s.repo.GetByUsername(ctx, input.Username); err == nil {
		return Account{}, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return Account{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.clock.Now().UTC()
	acct := Account{
		ID:           s.ids.NewID(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, acct); err != nil {
		return Account{}, err
	}
	return acct, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (Account, error) {
	input.Username = strings.TrimSpace(input.Username)
	if err := s.validate.Struct(input); err != nil {
		return Account{}, ErrInvalidCredentials
	}

	acct, err := s.repo.GetByUsername(ctx, input.Username)
	if errors.Is(err, ErrNotFound) {
		return Account{}, ErrInvalidCredentials
	}
	if err != nil {
		return Account{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(input.Password)); err != nil {
		return Account{}, ErrInvalidCredentials
	}
	return acct, nil
}

func (s *service) GetByID(ctx context.Context, id string) (Account, error) {
	if strings.TrimSpace(id) == "" {
		return Account{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}
