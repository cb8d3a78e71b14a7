// Package store persists users and saved tracks in MongoDB.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Common errors.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

const (
	usersCollection       = "users"
	savedTracksCollection = "saved_tracks"
)

// Store wraps a MongoDB client and database handle.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to MongoDB, verifies the connection and ensures indexes.
func New(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	s := &Store{client: client, db: client.Database(dbName)}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

// ensureIndexes creates the unique (user_id, track_id) index on saved
// tracks. Duplicate saves then fail atomically at the database instead of
// relying on a racy check-then-insert.
func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(savedTracksCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "track_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("creating saved_tracks index: %w", err)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Users returns a UserRepository.
func (s *Store) Users() *UserRepository {
	return &UserRepository{col: s.db.Collection(usersCollection)}
}

// SavedTracks returns a SavedTrackRepository.
func (s *Store) SavedTracks() *SavedTrackRepository {
	return &SavedTrackRepository{col: s.db.Collection(savedTracksCollection)}
}
