package hltb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rommapp/romm-sub002/internal/services/httpclient"
)

// Game is a HowLongToBeat search result. Completion times are seconds.
type Game struct {
	ID              int64  `json:"game_id"`
	Name            string `json:"game_name"`
	Alias           string `json:"game_alias"`
	Image           string `json:"game_image"`
	CompMain        int64  `json:"comp_main"`
	CompPlus        int64  `json:"comp_plus"`
	Comp100         int64  `json:"comp_100"`
	ReviewScore     int    `json:"review_score"`
	ReleaseWorld    int    `json:"release_world"`
	ProfilePlatform string `json:"profile_platform"`
}

type searchRequest struct {
	SearchType    string        `json:"searchType"`
	SearchTerms   []string      `json:"searchTerms"`
	SearchPage    int           `json:"searchPage"`
	Size          int           `json:"size"`
	SearchOptions searchOptions `json:"searchOptions"`
}

type searchOptions struct {
	Games struct {
		Platform      string `json:"platform"`
		SortCategory  string `json:"sortCategory"`
		RangeCategory string `json:"rangeCategory"`
	} `json:"games"`
	Filter string `json:"filter"`
	Sort   int    `json:"sort"`
}

type searchResponse struct {
	Data []Game `json:"data"`
}

// Client talks to HowLongToBeat.
type Client struct {
	baseURL string
	http    *httpclient.Client
}

// New creates a HowLongToBeat client.
func New(baseURL string, opts ...httpclient.Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("hltb base url required")
	}
	return &Client{baseURL: baseURL, http: httpclient.New("hltb", opts...)}, nil
}

// ImageURL returns the absolute URL for a result image name.
func (c *Client) ImageURL(image string) string {
	if image == "" {
		return ""
	}
	return c.baseURL + "/games/" + image
}

// SearchGames searches by title. platform narrows results when non-empty.
func (c *Client) SearchGames(ctx context.Context, term, platform string) ([]Game, error) {
	terms := strings.Fields(term)
	if len(terms) == 0 {
		return nil, errors.New("hltb search: term must not be empty")
	}
	payload := searchRequest{
		SearchType:  "games",
		SearchTerms: terms,
		SearchPage:  1,
		Size:        20,
	}
	payload.SearchOptions.Games.Platform = platform
	payload.SearchOptions.Games.SortCategory = "popular"
	payload.SearchOptions.Games.RangeCategory = "main"
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("hltb search: encode body: %w", err)
	}

	endpoint := c.baseURL + "/api/search"
	body, err := c.http.Do(ctx, "api.search", func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Origin", c.baseURL)
		req.Header.Set("Referer", c.baseURL+"/")
		return req, nil
	})
	if err != nil {
		return nil, err
	}
	var resp searchResponse
	if !c.http.Decode(ctx, "api.search", body, &resp) {
		return nil, nil
	}
	return resp.Data, nil
}
