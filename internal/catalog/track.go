package catalog

import (
	"errors"
	"fmt"

	"github.com/zmb3/spotify/v2"
)

// ErrMissingField is returned when a required field is absent from an
// upstream track payload.
var ErrMissingField = errors.New("missing field in track payload")

// Track is the canonical track representation served to clients, decoupled
// from the upstream schema. Tracks are rebuilt on every query and carry no
// local identity.
type Track struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Artists     []string `json:"artists"`
	Album       string   `json:"album"`
	PreviewURL  string   `json:"preview_url,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	ExternalURL string   `json:"external_url"`
	DurationMs  int      `json:"duration_ms"`
	Popularity  int      `json:"popularity"`
}

// FormatTrack maps an upstream track to the canonical Track.
//
// Required fields (id, name, artists, album, external URL, duration) yield
// ErrMissingField when absent rather than being defaulted. Preview URL and
// popularity are optional; a missing popularity formats to zero. The image
// URL is the first album image verbatim: upstream orders images
// largest-first and this relies on that ordering.
func FormatTrack(ft spotify.FullTrack) (Track, error) {
	switch {
	case ft.ID == "":
		return Track{}, fmt.Errorf("%w: id", ErrMissingField)
	case ft.Name == "":
		return Track{}, fmt.Errorf("%w: name", ErrMissingField)
	case len(ft.Artists) == 0:
		return Track{}, fmt.Errorf("%w: artists", ErrMissingField)
	case ft.Album.Name == "":
		return Track{}, fmt.Errorf("%w: album", ErrMissingField)
	case ft.Duration == 0:
		return Track{}, fmt.Errorf("%w: duration_ms", ErrMissingField)
	}

	external := ft.ExternalURLs["spotify"]
	if external == "" {
		return Track{}, fmt.Errorf("%w: external_urls.spotify", ErrMissingField)
	}

	artists := make([]string, len(ft.Artists))
	for i, a := range ft.Artists {
		artists[i] = a.Name
	}

	var image string
	if len(ft.Album.Images) > 0 {
		image = ft.Album.Images[0].URL
	}

	return Track{
		ID:          ft.ID.String(),
		Name:        ft.Name,
		Artists:     artists,
		Album:       ft.Album.Name,
		PreviewURL:  ft.PreviewURL,
		ImageURL:    image,
		ExternalURL: external,
		DurationMs:  int(ft.Duration),
		Popularity:  int(ft.Popularity),
	}, nil
}

// formatTracks formats a batch, failing on the first malformed payload.
// A failed upstream item fails the whole batch; partial lists are never
// returned.
func formatTracks(fts []spotify.FullTrack) ([]Track, error) {
	tracks := make([]Track, 0, len(fts))
	for _, ft := range fts {
		t, err := FormatTrack(ft)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}
	return tracks, nil
}
