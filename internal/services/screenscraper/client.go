package screenscraper

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/rommapp/romm-sub002/internal/services/httpclient"
)

// Credentials are the developer and (optional) user credentials.
type Credentials struct {
	DevID       string
	DevPassword string
	SoftName    string
	Username    string
	Password    string
}

// HashQuery identifies a ROM for jeuInfos.php.
type HashQuery struct {
	SystemID int
	CRC32    string
	MD5      string
	SHA1     string
	FileName string
	Size     int64
}

// Client talks to the ScreenScraper API.
type Client struct {
	baseURL string
	http    *httpclient.Client
}

// New creates a ScreenScraper client.
func New(creds Credentials, baseURL string, opts ...httpclient.Option) (*Client, error) {
	if strings.TrimSpace(creds.DevID) == "" || strings.TrimSpace(creds.DevPassword) == "" {
		return nil, errors.New("screenscraper developer credentials required")
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("screenscraper base url required")
	}
	params := httpclient.QueryParams{
		"devid":       creds.DevID,
		"devpassword": creds.DevPassword,
		"softname":    creds.SoftName,
		"output":      "json",
	}
	if creds.Username != "" {
		params["ssid"] = creds.Username
		params["sspassword"] = creds.Password
	}
	opts = append(opts, httpclient.WithAuthenticator(params))
	return &Client{baseURL: baseURL, http: httpclient.New("ss", opts...)}, nil
}

// LookupByHash asks jeuInfos.php to identify a ROM by checksum.
func (c *Client) LookupByHash(ctx context.Context, q HashQuery) (*Game, error) {
	params := url.Values{}
	params.Set("romtype", "rom")
	if q.SystemID > 0 {
		params.Set("systemeid", strconv.Itoa(q.SystemID))
	}
	setIf(params, "crc", strings.ToUpper(q.CRC32))
	setIf(params, "md5", q.MD5)
	setIf(params, "sha1", q.SHA1)
	setIf(params, "romnom", q.FileName)
	if q.Size > 0 {
		params.Set("romtaille", strconv.FormatInt(q.Size, 10))
	}
	if params.Get("crc") == "" && params.Get("md5") == "" && params.Get("sha1") == "" {
		return nil, errors.New("screenscraper lookup: at least one hash required")
	}
	return c.info(ctx, "jeuInfos.hash", params)
}

// SearchGames searches by name within systemID when non-zero.
func (c *Client) SearchGames(ctx context.Context, term string, systemID int) ([]Game, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, errors.New("screenscraper search: term must not be empty")
	}
	params := url.Values{}
	params.Set("recherche", term)
	if systemID > 0 {
		params.Set("systemeid", strconv.Itoa(systemID))
	}
	var resp searchResponse
	ok, err := c.http.GetJSON(ctx, "jeuRecherche", c.baseURL+"/jeuRecherche.php?"+params.Encode(), &resp)
	if err != nil || !ok {
		return nil, err
	}
	games := make([]Game, 0, len(resp.Response.Games))
	for _, game := range resp.Response.Games {
		if game.ID > 0 {
			games = append(games, game)
		}
	}
	return games, nil
}

// GetGame fetches a game by ScreenScraper id.
func (c *Client) GetGame(ctx context.Context, id int64) (*Game, error) {
	params := url.Values{}
	params.Set("gameid", strconv.FormatInt(id, 10))
	return c.info(ctx, "jeuInfos.id", params)
}

func (c *Client) info(ctx context.Context, urlClass string, params url.Values) (*Game, error) {
	var resp infoResponse
	ok, err := c.http.GetJSON(ctx, urlClass, c.baseURL+"/jeuInfos.php?"+params.Encode(), &resp)
	if err != nil || !ok || resp.Response.Game == nil || resp.Response.Game.ID == 0 {
		return nil, err
	}
	return resp.Response.Game, nil
}

func setIf(params url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		params.Set(key, value)
	}
}
