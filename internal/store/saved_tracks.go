package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// maxListedTracks caps how many saved tracks a single listing returns.
const maxListedTracks = 1000

// SavedTrackRepository handles saved-track document operations.
type SavedTrackRepository struct {
	col *mongo.Collection
}

// Save inserts a saved track. The unique (user_id, track_id) index rejects
// duplicate pairs atomically; those surface as ErrDuplicate.
func (r *SavedTrackRepository) Save(ctx context.Context, track *SavedTrack) error {
	_, err := r.col.InsertOne(ctx, track)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("inserting saved track: %w", err)
	}
	return nil
}

// List returns up to maxListedTracks saved tracks for a user.
// The user id is not validated against the users collection.
func (r *SavedTrackRepository) List(ctx context.Context, userID string) ([]SavedTrack, error) {
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, options.Find().SetLimit(maxListedTracks))
	if err != nil {
		return nil, fmt.Errorf("querying saved tracks: %w", err)
	}

	tracks := []SavedTrack{}
	if err := cur.All(ctx, &tracks); err != nil {
		return nil, fmt.Errorf("decoding saved tracks: %w", err)
	}
	return tracks, nil
}

// Remove deletes the saved track matching (user_id, track_id).
// Returns ErrNotFound if nothing matched.
func (r *SavedTrackRepository) Remove(ctx context.Context, userID, trackID string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"user_id": userID, "track_id": trackID})
	if err != nil {
		return fmt.Errorf("deleting saved track: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
