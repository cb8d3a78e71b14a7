// Package catalog wraps the Spotify Web API for track search and
// recommendation queries.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Spotify caps recommendation requests at five seeds total; genres and
// artists each get a fixed share.
const (
	maxSeedGenres  = 3
	maxSeedArtists = 2
)

// Recommendation tuning sent on every request. Not caller-configurable.
const (
	minPopularity      = 30
	targetEnergy       = 0.7
	targetDanceability = 0.6
)

// Sentinel errors.
var (
	// ErrNoToken is returned when the token endpoint rejects the client
	// credentials or cannot be reached.
	ErrNoToken = errors.New("no catalog token available")

	// ErrUpstream is returned when a catalog call fails or returns a
	// non-success status.
	ErrUpstream = errors.New("catalog request failed")
)

// Client issues authenticated requests against the Spotify Web API.
//
// Every dependent call fetches a fresh client-credentials token via Token;
// tokens are deliberately not cached across requests. That costs one extra
// round trip per incoming request and keeps the client stateless.
type Client struct {
	clientID     string
	clientSecret string
	tokenURL     string
	baseURL      string
	httpClient   *http.Client
}

// New creates a catalog client from service credentials.
func New(clientID, clientSecret string) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     spotifyauth.TokenURL,
		baseURL:      "https://api.spotify.com/v1/",
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Token obtains a bearer token using the client-credentials grant.
// Any transport or auth failure yields ErrNoToken.
func (c *Client) Token(ctx context.Context) (string, error) {
	conf := &clientcredentials.Config{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		TokenURL:     c.tokenURL,
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	tok, err := conf.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoToken, err)
	}
	if tok.AccessToken == "" {
		return "", ErrNoToken
	}
	return tok.AccessToken, nil
}

// SearchTracks queries the track search endpoint.
func (c *Client) SearchTracks(ctx context.Context, token, query string, limit int) ([]Track, error) {
	results, err := c.api(token).Search(ctx, query, spotify.SearchTypeTrack, spotify.Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("%w: searching tracks: %v", ErrUpstream, err)
	}
	if results.Tracks == nil {
		return []Track{}, nil
	}
	return formatTracks(results.Tracks.Tracks)
}

// Recommendations queries the recommendation endpoint seeded with the given
// genres and artist ids.
//
// Only the first three genres and first two artists are forwarded, in
// caller order, keeping the request within the upstream seed cap. Empty
// seed lists are omitted from the request entirely. A fixed popularity
// floor and energy/danceability targets are always applied.
func (c *Client) Recommendations(ctx context.Context, token string, seedGenres, seedArtists []string, limit int) ([]Track, error) {
	genres, artists := LimitSeeds(seedGenres, seedArtists)

	params := url.Values{}
	if len(genres) > 0 {
		params.Set("seed_genres", strings.Join(genres, ","))
	}
	if len(artists) > 0 {
		params.Set("seed_artists", strings.Join(artists, ","))
	}
	params.Set("min_popularity", strconv.Itoa(minPopularity))
	params.Set("target_energy", strconv.FormatFloat(targetEnergy, 'f', -1, 64))
	params.Set("target_danceability", strconv.FormatFloat(targetDanceability, 'f', -1, 64))
	params.Set("limit", strconv.Itoa(limit))

	// The generic client decodes recommendation tracks into a shape that
	// drops popularity, so issue the request ourselves and decode the
	// full track objects the endpoint actually returns.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"recommendations?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building recommendations request: %w", err)
	}

	resp, err := c.authClient(token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching recommendations: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fetching recommendations: status %d", ErrUpstream, resp.StatusCode)
	}

	var page struct {
		Tracks []spotify.FullTrack `json:"tracks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("%w: decoding recommendations: %v", ErrUpstream, err)
	}
	return formatTracks(page.Tracks)
}

// AvailableGenres proxies the upstream list of seedable genres.
func (c *Client) AvailableGenres(ctx context.Context, token string) ([]string, error) {
	genres, err := c.api(token).GetAvailableGenreSeeds(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching genre seeds: %v", ErrUpstream, err)
	}
	return genres, nil
}

// LimitSeeds applies the upstream seed cap: at most three genres and two
// artists, taken from the front of each list in order. A truncation, not a
// ranked selection.
func LimitSeeds(genres, artists []string) ([]string, []string) {
	return truncate(genres, maxSeedGenres), truncate(artists, maxSeedArtists)
}

// authClient returns an HTTP client that sends the given bearer token on
// every request. The request timeout of the base client is kept;
// oauth2.NewClient would drop it.
func (c *Client) authClient(token string) *http.Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	return &http.Client{
		Timeout:   c.httpClient.Timeout,
		Transport: &oauth2.Transport{Source: src, Base: c.httpClient.Transport},
	}
}

func (c *Client) api(token string) *spotify.Client {
	return spotify.New(c.authClient(token), spotify.WithBaseURL(c.baseURL))
}

func truncate(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
