package progress

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu        sync.RWMutex
	records   map[string]Record
	badges    map[string][]EarnedBadge
	completed map[string][]CompletedLevel
}

// NewMemoryRepository returns an in-memory repository intended for local development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		records:   make(map[string]Record),
		badges:    make(map[string][]EarnedBadge),
		completed: make(map[string][]CompletedLevel),
	}
}

func (r *memoryRepository) GetRecord(_ context.Context, userID string) (Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[userID]
	if !ok {
		// A learner with no progress yet starts from a default record.
		return Record{UserID: userID, Level: 1}, nil
	}
	return record, nil
}

func (r *memoryRepository) UpsertRecord(_ context.Context, record Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[record.UserID] = record
	return nil
}

func (r *memoryRepository) ListBadges(_ context.Context, userID string) ([]EarnedBadge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]EarnedBadge(nil), r.badges[userID]...), nil
}

func (r *memoryRepository) AddBadge(_ context.Context, userID string, badge EarnedBadge) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.badges[userID] {
		if existing.BadgeID == badge.BadgeID {
			return ErrBadgeAlreadyEarned
		}
	}
	r.badges[userID] = append(r.badges[userID], badge)
	return nil
}

func (r *memoryRepository) ListCompletedLevels(_ context.Context, userID string) ([]CompletedLevel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]CompletedLevel(nil), r.completed[userID]...), nil
}

func (r *memoryRepository) AddCompletedLevel(_ context.Context, userID string, completion CompletedLevel) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.completed[userID] {
		if existing.LevelID == completion.LevelID {
			return ErrAlreadyCompleted
		}
	}
	r.completed[userID] = append(r.completed[userID], completion)
	return nil
}
