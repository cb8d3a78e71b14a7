package store

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered user with stored listening preferences.
// The id is generated at creation and never changes; preference fields are
// overwritten wholesale on update, never merged.
type User struct {
	ID              string    `bson:"id" json:"id"`
	SpotifyID       string    `bson:"spotify_id" json:"spotify_id"`
	DisplayName     string    `bson:"display_name" json:"display_name"`
	Email           string    `bson:"email,omitempty" json:"email,omitempty"`
	FavoriteGenres  []string  `bson:"favorite_genres" json:"favorite_genres"`
	FavoriteArtists []string  `bson:"favorite_artists" json:"favorite_artists"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
}

// NewUser creates a User with a generated id and creation timestamp.
func NewUser(spotifyID, displayName, email string) *User {
	return &User{
		ID:              uuid.NewString(),
		SpotifyID:       spotifyID,
		DisplayName:     displayName,
		Email:           email,
		FavoriteGenres:  []string{},
		FavoriteArtists: []string{},
		CreatedAt:       time.Now().UTC(),
	}
}

// SavedTrack joins a user to a track they saved, with a denormalized
// snapshot of the track name and artists taken at save time.
type SavedTrack struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	TrackID   string    `bson:"track_id" json:"track_id"`
	TrackName string    `bson:"track_name" json:"track_name"`
	Artists   []string  `bson:"artists" json:"artists"`
	SavedAt   time.Time `bson:"saved_at" json:"saved_at"`
}

// NewSavedTrack creates a SavedTrack with a generated id and timestamp.
func NewSavedTrack(userID, trackID, trackName string, artists []string) *SavedTrack {
	if artists == nil {
		artists = []string{}
	}
	return &SavedTrack{
		ID:        uuid.NewString(),
		UserID:    userID,
		TrackID:   trackID,
		TrackName: trackName,
		Artists:   artists,
		SavedAt:   time.Now().UTC(),
	}
}
