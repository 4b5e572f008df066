package igdb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rommapp/romm-sub002/internal/services/httpclient"
)

const (
	imageBaseURL = "https://images.igdb.com/igdb/image/upload"
	searchLimit  = 20
)

// gameFields lists every field requested from /games. Records only carry the
// fields IGDB has data for.
var gameFields = []string{
	"id", "name", "slug", "summary", "total_rating", "aggregated_rating",
	"first_release_date", "cover.image_id", "screenshots.image_id",
	"artworks.image_id", "genres.name", "themes.name", "franchises.name",
	"collections.name", "alternative_names.name", "alternative_names.comment",
	"involved_companies.company.name", "game_modes.name", "platforms.id",
	"platforms.name", "game_type",
}

// Named is an IGDB entity reference expanded to its name.
type Named struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Image references an uploaded image.
type Image struct {
	ID      int64  `json:"id"`
	ImageID string `json:"image_id"`
}

// AlternativeName is a localized or marketing title.
type AlternativeName struct {
	Name    string `json:"name"`
	Comment string `json:"comment"`
}

// InvolvedCompany links a game to a developer or publisher.
type InvolvedCompany struct {
	Company *Named `json:"company"`
}

// Game is an IGDB game record. Only ID is guaranteed to be present.
type Game struct {
	ID                int64             `json:"id"`
	Name              string            `json:"name"`
	Slug              string            `json:"slug"`
	Summary           string            `json:"summary"`
	TotalRating       *float64          `json:"total_rating"`
	AggregatedRating  *float64          `json:"aggregated_rating"`
	FirstReleaseDate  *int64            `json:"first_release_date"`
	Cover             *Image            `json:"cover"`
	Screenshots       []Image           `json:"screenshots"`
	Artworks          []Image           `json:"artworks"`
	Genres            []Named           `json:"genres"`
	Themes            []Named           `json:"themes"`
	Franchises        []Named           `json:"franchises"`
	Collections       []Named           `json:"collections"`
	AlternativeNames  []AlternativeName `json:"alternative_names"`
	InvolvedCompanies []InvolvedCompany `json:"involved_companies"`
	GameModes         []Named           `json:"game_modes"`
	Platforms         []Named           `json:"platforms"`
	GameType          *int              `json:"game_type"`
}

// Client talks to the IGDB games endpoint.
type Client struct {
	baseURL string
	http    *httpclient.Client
}

// New creates an IGDB client. auth supplies the Client-ID and bearer token.
func New(baseURL string, auth httpclient.Authenticator, opts ...httpclient.Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("igdb base url required")
	}
	if auth == nil {
		return nil, errors.New("igdb authenticator required")
	}
	opts = append(opts, httpclient.WithAuthenticator(auth))
	return &Client{baseURL: baseURL, http: httpclient.New("igdb", opts...)}, nil
}

// SearchGames runs a full-text search restricted to platformID when non-zero.
func (c *Client) SearchGames(ctx context.Context, term string, platformID int) ([]Game, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, errors.New("igdb search: term must not be empty")
	}
	query := NewQuery(gameFields...).Search(term).Limit(searchLimit)
	if platformID > 0 {
		query.Where(fmt.Sprintf("platforms = (%d)", platformID))
	}
	return c.games(ctx, "games.search", query)
}

// GetGame fetches one game by id. It returns nil when IGDB has no such game.
func (c *Client) GetGame(ctx context.Context, id int64) (*Game, error) {
	if id <= 0 {
		return nil, fmt.Errorf("igdb get game: invalid id %d", id)
	}
	games, err := c.games(ctx, "games.get", NewQuery(gameFields...).Where(fmt.Sprintf("id = %d", id)).Limit(1))
	if err != nil || len(games) == 0 {
		return nil, err
	}
	return &games[0], nil
}

func (c *Client) games(ctx context.Context, urlClass string, query *Query) ([]Game, error) {
	var games []Game
	ok, err := c.http.PostRaw(ctx, urlClass, c.baseURL+"/games", "text/plain", []byte(query.String()), &games)
	if err != nil || !ok {
		return nil, err
	}
	return games, nil
}

// ImageURL returns the CDN URL for an image id at the given size
// (e.g. "t_cover_big", "t_screenshot_big").
func ImageURL(size, imageID string) string {
	if imageID == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s.jpg", imageBaseURL, size, imageID)
}
