package account

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const accountsCollection = "accounts"

type firestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository creates a new Firestore repository
func NewFirestoreRepository(client *firestore.Client) Repository {
	return &firestoreRepository{client: client}
}

func (r *firestoreRepository) Create(ctx context.Context, acct Account) error {
	docRef := r.client.Collection(accountsCollection).Doc(acct.ID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		query := r.client.Collection(accountsCollection).
			Where("username", "==", acct.Username).
			Limit(1)
		iter := tx.Documents(query)
		defer iter.Stop()

		if _, err := iter.Next(); err == nil {
			return ErrUsernameTaken
		} else if err != iterator.Done {
			return err
		}

		return tx.Create(docRef, acct)
	})
	if err != nil {
		if err == ErrUsernameTaken {
			return err
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

func (r *firestoreRepository) GetByID(ctx context.Context, id string) (Account, error) {
	doc, err := r.client.Collection(accountsCollection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return Account{}, ErrNotFound
	}
	if err != nil {
		return Account{}, err
	}

	var acct Account
	if err := doc.DataTo(&acct); err != nil {
		return Account{}, fmt.Errorf("unmarshal account: %w", err)
	}
	acct.ID = doc.Ref.ID
	return acct, nil
}

func (r *firestoreRepository) GetByUsername(ctx context.Context, username string) (Account, error) {
	iter := r.client.Collection(accountsCollection).
		Where("username", "==", username).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return Account{}, ErrNotFound
	}
	if err != nil {
		return Account{}, err
	}

	var acct Account
	if err := doc.DataTo(&acct); err != nil {
		return Account{}, fmt.Errorf("unmarshal account: %w", err)
	}
	acct.ID = doc.Ref.ID
	return acct, nil
}
