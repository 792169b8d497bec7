package account

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu        sync.RWMutex
	byID      map[string]Account
	usernames map[string]string // username -> account ID
}

// NewMemoryRepository returns an in-memory repository intended for local development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byID:      make(map[string]Account),
		usernames: make(map[string]string),
	}
}

func (r *memoryRepository) Create(_ context.Context, acct Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.usernames[acct.Username]; exists {
		return ErrUsernameTaken
	}

	r.byID[acct.ID] = acct
	r.usernames[acct.Username] = acct.ID
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acct, ok := r.byID[id]
	if !ok {
		return Account{}, ErrNotFound
	}
	return acct, nil
}

func (r *memoryRepository) GetByUsername(_ context.Context, username string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.usernames[username]
	if !ok {
		return Account{}, ErrNotFound
	}
	return r.byID[id], nil
}
