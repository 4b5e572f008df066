package mobygames

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rommapp/romm-sub002/internal/services/httpclient"
)

// Genre is a MobyGames genre entry.
type Genre struct {
	Name     string `json:"genre_name"`
	Category string `json:"genre_category"`
}

// Platform is a release platform of a game.
type Platform struct {
	ID               int    `json:"platform_id"`
	Name             string `json:"platform_name"`
	FirstReleaseDate string `json:"first_release_date"`
}

// Cover is the representative cover image.
type Cover struct {
	Image          string `json:"image"`
	ThumbnailImage string `json:"thumbnail_image"`
}

// Screenshot is a sample screenshot.
type Screenshot struct {
	Image   string `json:"image"`
	Caption string `json:"caption"`
}

// AlternateTitle is an alternate or regional title.
type AlternateTitle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Game is a MobyGames game record. Only GameID is guaranteed.
type Game struct {
	GameID            int64            `json:"game_id"`
	Title             string           `json:"title"`
	Description       string           `json:"description"`
	MobyScore         *float64         `json:"moby_score"`
	MobyURL           string           `json:"moby_url"`
	Genres            []Genre          `json:"genres"`
	Platforms         []Platform       `json:"platforms"`
	SampleCover       *Cover           `json:"sample_cover"`
	SampleScreenshots []Screenshot     `json:"sample_screenshots"`
	AlternateTitles   []AlternateTitle `json:"alternate_titles"`
}

type gamesResponse struct {
	Games []Game `json:"games"`
}

// Client talks to the MobyGames API.
type Client struct {
	baseURL string
	http    *httpclient.Client
}

// New creates a MobyGames client.
func New(apiKey, baseURL string, opts ...httpclient.Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("mobygames api key required")
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("mobygames base url required")
	}
	opts = append(opts, httpclient.WithAuthenticator(httpclient.QueryParams{"api_key": apiKey}))
	return &Client{baseURL: baseURL, http: httpclient.New("moby", opts...)}, nil
}

// SearchGames searches by title, restricted to platformID when non-zero.
func (c *Client) SearchGames(ctx context.Context, title string, platformID int) ([]Game, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("mobygames search: title must not be empty")
	}
	params := url.Values{}
	params.Set("title", title)
	params.Set("format", "normal")
	if platformID > 0 {
		params.Set("platform", strconv.Itoa(platformID))
	}
	var resp gamesResponse
	ok, err := c.http.GetJSON(ctx, "games.search", c.baseURL+"/games?"+params.Encode(), &resp)
	if err != nil || !ok {
		return nil, err
	}
	return resp.Games, nil
}

// GetGame fetches one game by id, or nil when it does not exist.
func (c *Client) GetGame(ctx context.Context, id int64) (*Game, error) {
	if id <= 0 {
		return nil, fmt.Errorf("mobygames get game: invalid id %d", id)
	}
	var game Game
	ok, err := c.http.GetJSON(ctx, "games.get", fmt.Sprintf("%s/games/%d", c.baseURL, id), &game)
	if err != nil || !ok || game.GameID == 0 {
		return nil, err
	}
	return &game, nil
}
