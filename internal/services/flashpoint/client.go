package flashpoint

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/rommapp/romm-sub002/internal/services/httpclient"
)

const imageBaseURL = "https://infinity.unstable.life/images"

// Game is a Flashpoint database entry.
type Game struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	AlternateTitles     string   `json:"alternateTitles"`
	Series              string   `json:"series"`
	Developer           string   `json:"developer"`
	Publisher           string   `json:"publisher"`
	Platform            string   `json:"platform"`
	Library             string   `json:"library"`
	Tags                []string `json:"tags"`
	OriginalDescription string   `json:"originalDescription"`
	ReleaseDate         string   `json:"releaseDate"`
	Language            string   `json:"language"`
	PlayMode            string   `json:"playMode"`
}

// AltTitles splits the semicolon-separated alternate title list.
func (g Game) AltTitles() []string {
	var out []string
	for _, title := range strings.Split(g.AlternateTitles, ";") {
		if title = strings.TrimSpace(title); title != "" {
			out = append(out, title)
		}
	}
	return out
}

// LogoURL returns the logo image URL for a game id.
func LogoURL(id string) string {
	return imageURL("Logos", id)
}

// ScreenshotURL returns the screenshot image URL for a game id.
func ScreenshotURL(id string) string {
	return imageURL("Screenshots", id)
}

func imageURL(kind, id string) string {
	if len(id) < 4 {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s/%s/%s.png", imageBaseURL, kind, id[0:2], id[2:4], id)
}

// Client talks to the Flashpoint database API.
type Client struct {
	baseURL string
	http    *httpclient.Client
}

// New creates a Flashpoint client. The API is public.
func New(baseURL string, opts ...httpclient.Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("flashpoint base url required")
	}
	return &Client{baseURL: baseURL, http: httpclient.New("flashpoint", opts...)}, nil
}

// SearchGames runs a smart search for term.
func (c *Client) SearchGames(ctx context.Context, term string) ([]Game, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, errors.New("flashpoint search: term must not be empty")
	}
	params := url.Values{}
	params.Set("smartSearch", term)
	params.Set("filter", "true")
	var games []Game
	ok, err := c.http.GetJSON(ctx, "search", c.baseURL+"/search?"+params.Encode(), &games)
	if err != nil || !ok {
		return nil, err
	}
	return games, nil
}

// GetGame fetches a game by its UUID.
func (c *Client) GetGame(ctx context.Context, id string) (*Game, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("flashpoint get game: invalid id %q: %w", id, err)
	}
	params := url.Values{}
	params.Set("id", parsed.String())
	var games []Game
	ok, err := c.http.GetJSON(ctx, "search.id", c.baseURL+"/search?"+params.Encode(), &games)
	if err != nil || !ok || len(games) == 0 {
		return nil, err
	}
	return &games[0], nil
}
