package steamgriddb

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rommapp/romm-sub002/internal/services/httpclient"
)

// Game is a SteamGridDB game entry.
type Game struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	ReleaseDate *int64   `json:"release_date"`
	Types       []string `json:"types"`
	Verified    bool     `json:"verified"`
}

// Grid is one grid (cover) image.
type Grid struct {
	ID     int64  `json:"id"`
	URL    string `json:"url"`
	Thumb  string `json:"thumb"`
	Style  string `json:"style"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Score  int    `json:"score"`
	NSFW   bool   `json:"nsfw"`
}

type envelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

// Client talks to the SteamGridDB API.
type Client struct {
	baseURL string
	http    *httpclient.Client
}

// New creates a SteamGridDB client authenticated with a bearer API key.
func New(apiKey, baseURL string, opts ...httpclient.Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("steamgriddb api key required")
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("steamgriddb base url required")
	}
	opts = append(opts, httpclient.WithAuthenticator(httpclient.Bearer(apiKey)))
	return &Client{baseURL: baseURL, http: httpclient.New("sgdb", opts...)}, nil
}

// SearchGames runs an autocomplete search for term.
func (c *Client) SearchGames(ctx context.Context, term string) ([]Game, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, errors.New("steamgriddb search: term must not be empty")
	}
	var resp envelope[[]Game]
	ok, err := c.http.GetJSON(ctx, "search.autocomplete", c.baseURL+"/search/autocomplete/"+url.PathEscape(term), &resp)
	if err != nil || !ok || !resp.Success {
		return nil, err
	}
	return resp.Data, nil
}

// GetGame fetches a game by SteamGridDB id.
func (c *Client) GetGame(ctx context.Context, id int64) (*Game, error) {
	if id <= 0 {
		return nil, fmt.Errorf("steamgriddb get game: invalid id %d", id)
	}
	var resp envelope[Game]
	ok, err := c.http.GetJSON(ctx, "games.id", fmt.Sprintf("%s/games/id/%d", c.baseURL, id), &resp)
	if err != nil || !ok || !resp.Success || resp.Data.ID == 0 {
		return nil, err
	}
	return &resp.Data, nil
}

// Grids lists portrait grids for a game, best scored first as returned.
func (c *Client) Grids(ctx context.Context, gameID int64) ([]Grid, error) {
	if gameID <= 0 {
		return nil, fmt.Errorf("steamgriddb grids: invalid id %d", gameID)
	}
	params := url.Values{}
	params.Set("dimensions", "600x900,342x482,660x930")
	params.Set("nsfw", "false")
	var resp envelope[[]Grid]
	ok, err := c.http.GetJSON(ctx, "grids.game", fmt.Sprintf("%s/grids/game/%d?%s", c.baseURL, gameID, params.Encode()), &resp)
	if err != nil || !ok || !resp.Success {
		return nil, err
	}
	return resp.Data, nil
}
