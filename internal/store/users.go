package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository handles user document operations.
type UserRepository struct {
	col *mongo.Collection
}

// Create inserts a new user document.
func (r *UserRepository) Create(ctx context.Context, user *User) error {
	if _, err := r.col.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// Get retrieves a user by id. Returns ErrNotFound if absent.
func (r *UserRepository) Get(ctx context.Context, id string) (*User, error) {
	var user User
	err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return &user, nil
}

// UpdatePreferences overwrites a user's favorite genres and artists.
// Returns ErrNotFound if no user matches; nothing is written in that case.
func (r *UserRepository) UpdatePreferences(ctx context.Context, id string, genres, artists []string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{
		"favorite_genres":  genres,
		"favorite_artists": artists,
	}})
	if err != nil {
		return fmt.Errorf("updating preferences: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
