// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

const (
	// DefaultAddr is the default listen address.
	DefaultAddr = "0.0.0.0:8000"

	// DefaultRedirectURI is the redirect URI registered with the Spotify
	// application. No endpoint consumes it; the user-authorization flow
	// was never wired in.
	DefaultRedirectURI = "http://127.0.0.1:3000/auth/callback"
)

// Missing-variable errors.
var (
	ErrMissingMongoURL     = errors.New("missing MONGO_URL environment variable")
	ErrMissingDBName       = errors.New("missing DB_NAME environment variable")
	ErrMissingClientID     = errors.New("missing SPOTIFY_CLIENT_ID environment variable")
	ErrMissingClientSecret = errors.New("missing SPOTIFY_CLIENT_SECRET environment variable")
)

// Config holds everything the service reads at startup.
type Config struct {
	Addr                string
	MongoURL            string
	DBName              string
	SpotifyClientID     string
	SpotifyClientSecret string
	RedirectURI         string
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:                envOr("ADDR", DefaultAddr),
		MongoURL:            os.Getenv("MONGO_URL"),
		DBName:              os.Getenv("DB_NAME"),
		SpotifyClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
		SpotifyClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
		RedirectURI:         envOr("SPOTIFY_REDIRECT_URI", DefaultRedirectURI),
	}

	switch {
	case cfg.MongoURL == "":
		return nil, ErrMissingMongoURL
	case cfg.DBName == "":
		return nil, ErrMissingDBName
	case cfg.SpotifyClientID == "":
		return nil, ErrMissingClientID
	case cfg.SpotifyClientSecret == "":
		return nil, ErrMissingClientSecret
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
