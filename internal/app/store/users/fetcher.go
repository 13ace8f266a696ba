package userstore

import (
	"context"

	"github.com/deadlinesdragons/questhub/internal/app/system/auth"
	"github.com/deadlinesdragons/questhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fetcher adapts the user store to the auth guard's UserFetcher, so each
// verified token resolves a fresh user document (password excluded).
type Fetcher struct {
	store *Store
}

// NewFetcher constructs a Fetcher over the users collection.
func NewFetcher(db *mongo.Database) *Fetcher {
	return &Fetcher{store: New(db)}
}

// FetchUser implements auth.UserFetcher. A malformed or unknown id maps
// to auth.ErrUserNotFound so the guard answers 401 rather than 500.
func (f *Fetcher) FetchUser(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, auth.ErrUserNotFound
	}
	u, err := f.store.GetByID(ctx, oid)
	if err == mongo.ErrNoDocuments {
		return nil, auth.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
