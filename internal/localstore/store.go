// Package localstore keeps the learner's snapshot in a local BoltDB file,
// the durable client-side slot the progression store writes through.
package localstore

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"github.com/skillquest/learning-service/internal/learning"
)

const slotBucket = "slots"

var _ learning.SlotStore = (*Store)(nil)

// Store is a BoltDB-backed single-slot byte store.
type Store struct {
	db   *bbolt.DB
	slot string
}

// Open opens the BoltDB file at path and binds the store to one named slot.
func Open(path, slot string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if strings.TrimSpace(slot) == "" {
		return nil, fmt.Errorf("slot name is required")
	}

	cleanPath := filepath.Clean(path)
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(slotBucket))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure slot bucket: %w", err)
	}

	return &Store{db: db, slot: slot}, nil
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load reads the slot bytes. ok is false when the slot was never written.
func (s *Store) Load(ctx context.Context) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(slotBucket))
		if bucket == nil {
			return fmt.Errorf("slot bucket is missing")
		}
		if raw := bucket.Get([]byte(s.slot)); raw != nil {
			data = append([]byte(nil), raw...)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return data, data != nil, nil
}

// Save replaces the slot bytes wholesale.
func (s *Store) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(slotBucket))
		if bucket == nil {
			return fmt.Errorf("slot bucket is missing")
		}
		return bucket.Put([]byte(s.slot), data)
	})
}
