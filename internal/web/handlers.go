package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/NuhaYoosuf/MusicRec/internal/catalog"
	"github.com/NuhaYoosuf/MusicRec/internal/store"
)

// defaultSeedGenres is used when a user has no stored genre or artist
// preferences at all.
var defaultSeedGenres = []string{"pop", "rock", "indie"}

const (
	// trendingQuery scopes the trending search upstream.
	trendingQuery = "year:2024"

	// defaultLimit is used when the limit query parameter is absent or
	// not a positive integer.
	defaultLimit = 20
)

// UserStore is the subset of the user repository handlers depend on.
type UserStore interface {
	Create(ctx context.Context, user *store.User) error
	Get(ctx context.Context, id string) (*store.User, error)
	UpdatePreferences(ctx context.Context, id string, genres, artists []string) error
}

// SavedTrackStore is the subset of the saved-track repository handlers
// depend on.
type SavedTrackStore interface {
	Save(ctx context.Context, track *store.SavedTrack) error
	List(ctx context.Context, userID string) ([]store.SavedTrack, error)
	Remove(ctx context.Context, userID, trackID string) error
}

// Catalog is the upstream music catalog handlers depend on.
type Catalog interface {
	Token(ctx context.Context) (string, error)
	SearchTracks(ctx context.Context, token, query string, limit int) ([]catalog.Track, error)
	Recommendations(ctx context.Context, token string, seedGenres, seedArtists []string, limit int) ([]catalog.Track, error)
	AvailableGenres(ctx context.Context, token string) ([]string, error)
}

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	users   UserStore
	saved   SavedTrackStore
	catalog Catalog
}

// NewHandlers creates a Handlers instance.
func NewHandlers(users UserStore, saved SavedTrackStore, cat Catalog) *Handlers {
	return &Handlers{users: users, saved: saved, catalog: cat}
}

// Root reports the service identity (GET /api/).
func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"message": "Music Recommender API"})
}

// Genres proxies the upstream list of seedable genres (GET /api/genres).
func (h *Handlers) Genres(w http.ResponseWriter, r *http.Request) {
	token, err := h.catalog.Token(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to get catalog token")
		return
	}

	genres, err := h.catalog.AvailableGenres(r.Context(), token)
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to fetch genres")
		return
	}
	respondJSON(w, http.StatusOK, map[string][]string{"genres": genres})
}

type createUserRequest struct {
	SpotifyID   string `json:"spotify_id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

// CreateUser registers a new user (POST /api/users).
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SpotifyID == "" || req.DisplayName == "" {
		respondError(w, http.StatusBadRequest, "spotify_id and display_name are required")
		return
	}

	user := store.NewUser(req.SpotifyID, req.DisplayName, req.Email)
	if err := h.users.Create(r.Context(), user); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create user")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// GetUser fetches a user by id (GET /api/users/{userID}).
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), chi.URLParam(r, "userID"))
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

type preferencesRequest struct {
	Genres  []string `json:"genres"`
	Artists []string `json:"artists"`
}

// UpdatePreferences overwrites a user's favorite genres and artists
// (PUT /api/users/{userID}/preferences).
func (h *Handlers) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req preferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Genres == nil || req.Artists == nil {
		respondError(w, http.StatusBadRequest, "genres and artists are required")
		return
	}

	err := h.users.UpdatePreferences(r.Context(), chi.URLParam(r, "userID"), req.Genres, req.Artists)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update preferences")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "preferences updated"})
}

// Search queries the catalog for tracks (GET /api/search?q=&limit=).
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "missing q parameter")
		return
	}

	token, err := h.catalog.Token(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to get catalog token")
		return
	}

	tracks, err := h.catalog.SearchTracks(r.Context(), token, query, limitParam(r))
	if err != nil {
		respondError(w, http.StatusBadGateway, "search failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string][]catalog.Track{"tracks": tracks})
}

type recommendationsResponse struct {
	Recommendations []catalog.Track `json:"recommendations"`
	SeedGenres      []string        `json:"seed_genres"`
	SeedArtists     []string        `json:"seed_artists"`
}

// Recommendations returns personalized recommendations for a user
// (GET /api/recommendations/{userID}?limit=).
//
// Users with no stored genres and no stored artists fall back to a fixed
// default genre seed set. The seeds actually used are echoed back.
func (h *Handlers) Recommendations(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), chi.URLParam(r, "userID"))
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}

	seedGenres, seedArtists := catalog.LimitSeeds(user.FavoriteGenres, user.FavoriteArtists)
	if len(seedGenres) == 0 && len(seedArtists) == 0 {
		seedGenres = defaultSeedGenres
	}

	token, err := h.catalog.Token(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to get catalog token")
		return
	}

	tracks, err := h.catalog.Recommendations(r.Context(), token, seedGenres, seedArtists, limitParam(r))
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to get recommendations")
		return
	}

	respondJSON(w, http.StatusOK, recommendationsResponse{
		Recommendations: tracks,
		SeedGenres:      seedGenres,
		SeedArtists:     seedArtists,
	})
}

type saveTrackRequest struct {
	TrackID   string   `json:"track_id"`
	TrackName string   `json:"track_name"`
	Artists   []string `json:"artists"`
}

// SaveTrack adds a track to a user's saved list
// (POST /api/users/{userID}/saved-tracks).
func (h *Handlers) SaveTrack(w http.ResponseWriter, r *http.Request) {
	var req saveTrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.TrackID == "" || req.TrackName == "" {
		respondError(w, http.StatusBadRequest, "track_id and track_name are required")
		return
	}

	track := store.NewSavedTrack(chi.URLParam(r, "userID"), req.TrackID, req.TrackName, req.Artists)
	err := h.saved.Save(r.Context(), track)
	if errors.Is(err, store.ErrDuplicate) {
		respondError(w, http.StatusBadRequest, "track already saved")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save track")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "track saved"})
}

// ListSavedTracks lists a user's saved tracks
// (GET /api/users/{userID}/saved-tracks).
func (h *Handlers) ListSavedTracks(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.saved.List(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list saved tracks")
		return
	}
	respondJSON(w, http.StatusOK, map[string][]store.SavedTrack{"saved_tracks": tracks})
}

// RemoveSavedTrack deletes a saved track
// (DELETE /api/users/{userID}/saved-tracks/{trackID}).
func (h *Handlers) RemoveSavedTrack(w http.ResponseWriter, r *http.Request) {
	err := h.saved.Remove(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "trackID"))
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "saved track not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to remove track")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "track removed"})
}

// Trending returns popular tracks from a fixed current-year search, sorted
// by popularity descending (GET /api/trending?limit=).
func (h *Handlers) Trending(w http.ResponseWriter, r *http.Request) {
	token, err := h.catalog.Token(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to get catalog token")
		return
	}

	tracks, err := h.catalog.SearchTracks(r.Context(), token, trendingQuery, limitParam(r))
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to get trending tracks")
		return
	}

	// Stable sort keeps the upstream order for equal popularity.
	sort.SliceStable(tracks, func(i, j int) bool {
		return tracks[i].Popularity > tracks[j].Popularity
	})
	respondJSON(w, http.StatusOK, map[string][]catalog.Track{"trending_tracks": tracks})
}

// limitParam parses the limit query parameter, falling back to defaultLimit
// when absent or not a positive integer.
func limitParam(r *http.Request) int {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return defaultLimit
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return defaultLimit
	}
	return n
}
