package config

import (
	"errors"
	"testing"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("MONGO_URL", "mongodb://localhost:27017")
	t.Setenv("DB_NAME", "musicrec")
	t.Setenv("SPOTIFY_CLIENT_ID", "client-id")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "client-secret")
}

func TestLoad(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.MongoURL != "mongodb://localhost:27017" {
		t.Errorf("MongoURL = %q", cfg.MongoURL)
	}
	if cfg.DBName != "musicrec" {
		t.Errorf("DBName = %q", cfg.DBName)
	}
	if cfg.Addr != DefaultAddr {
		t.Errorf("Addr = %q, want default %q", cfg.Addr, DefaultAddr)
	}
	if cfg.RedirectURI != DefaultRedirectURI {
		t.Errorf("RedirectURI = %q, want default %q", cfg.RedirectURI, DefaultRedirectURI)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ADDR", "127.0.0.1:9000")
	t.Setenv("SPOTIFY_REDIRECT_URI", "http://example.com/cb")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Addr != "127.0.0.1:9000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.RedirectURI != "http://example.com/cb" {
		t.Errorf("RedirectURI = %q", cfg.RedirectURI)
	}
}

func TestLoadMissing(t *testing.T) {
	tests := []struct {
		unset   string
		wantErr error
	}{
		{"MONGO_URL", ErrMissingMongoURL},
		{"DB_NAME", ErrMissingDBName},
		{"SPOTIFY_CLIENT_ID", ErrMissingClientID},
		{"SPOTIFY_CLIENT_SECRET", ErrMissingClientSecret},
	}

	for _, tt := range tests {
		t.Run(tt.unset, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.unset, "")

			_, err := Load()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
