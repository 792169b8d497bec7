package progress

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	progressCollection  = "progress"
	badgesCollection    = "badges"
	completedCollection = "completed_levels"
)

type firestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository creates a new Firestore repository
func NewFirestoreRepository(client *firestore.Client) Repository {
	return &firestoreRepository{client: client}
}

func (r *firestoreRepository) userDoc(userID string) *firestore.DocumentRef {
	return r.client.Collection(progressCollection).Doc(userID)
}

func (r *firestoreRepository) GetRecord(ctx context.Context, userID string) (Record, error) {
	doc, err := r.userDoc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return Record{UserID: userID, Level: 1}, nil
	}
	if err != nil {
		return Record{}, err
	}

	var record Record
	if err := doc.DataTo(&record); err != nil {
		return Record{}, fmt.Errorf("unmarshal progress record: %w", err)
	}
	record.UserID = userID
	return record, nil
}

func (r *firestoreRepository) UpsertRecord(ctx context.Context, record Record) error {
	if _, err := r.userDoc(record.UserID).Set(ctx, record); err != nil {
		return fmt.Errorf("upsert progress record: %w", err)
	}
	return nil
}

func (r *firestoreRepository) ListBadges(ctx context.Context, userID string) ([]EarnedBadge, error) {
	iter := r.userDoc(userID).Collection(badgesCollection).
		OrderBy("earned_at", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var badges []EarnedBadge
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var badge EarnedBadge
		if err := doc.DataTo(&badge); err != nil {
			return nil, fmt.Errorf("unmarshal badge: %w", err)
		}
		badges = append(badges, badge)
	}
	return badges, nil
}

func (r *firestoreRepository) AddBadge(ctx context.Context, userID string, badge EarnedBadge) error {
	docRef := r.userDoc(userID).Collection(badgesCollection).Doc(badge.BadgeID)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(docRef); err == nil {
			return ErrBadgeAlreadyEarned
		} else if status.Code(err) != codes.NotFound {
			return err
		}
		return tx.Create(docRef, badge)
	})
	if err == ErrBadgeAlreadyEarned {
		return err
	}
	if err != nil {
		return fmt.Errorf("add badge: %w", err)
	}
	return nil
}

func (r *firestoreRepository) ListCompletedLevels(ctx context.Context, userID string) ([]CompletedLevel, error) {
	iter := r.userDoc(userID).Collection(completedCollection).
		OrderBy("completed_at", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var levels []CompletedLevel
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var level CompletedLevel
		if err := doc.DataTo(&level); err != nil {
			return nil, fmt.Errorf("unmarshal completed level: %w", err)
		}
		levels = append(levels, level)
	}
	return levels, nil
}

func (r *firestoreRepository) AddCompletedLevel(ctx context.Context, userID string, completion CompletedLevel) error {
	docRef := r.userDoc(userID).Collection(completedCollection).Doc(completion.LevelID)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(docRef); err == nil {
			return ErrAlreadyCompleted
		} else if status.Code(err) != codes.NotFound {
			return err
		}
		return tx.Create(docRef, completion)
	})
	if err == ErrAlreadyCompleted {
		return err
	}
	if err != nil {
		return fmt.Errorf("add completed level: %w", err)
	}
	return nil
}
