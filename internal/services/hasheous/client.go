package hasheous

import (
	"context"
	"errors"
	"strings"

	"github.com/rommapp/romm-sub002/internal/services/httpclient"
)

// Metadata sources as reported in lookup responses.
const (
	SourceIGDB              = "IGDB"
	SourceTheGamesDB        = "TheGamesDB"
	SourceRetroAchievements = "RetroAchievements"
)

// HashQuery carries the checksums to look up. Empty values are omitted.
type HashQuery struct {
	MD5   string `json:"mD5,omitempty"`
	SHA1  string `json:"shA1,omitempty"`
	CRC32 string `json:"crc,omitempty"`
}

// Named is a referenced entity.
type Named struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MetadataLink is the id another database assigns to the matched game.
type MetadataLink struct {
	ID          string `json:"id"`
	Source      string `json:"source"`
	ImmutableID string `json:"immutableId"`
}

// Result is the matched game.
type Result struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Platform  *Named         `json:"platform"`
	Publisher *Named         `json:"publisher"`
	Year      string         `json:"year"`
	Metadata  []MetadataLink `json:"metadata"`
}

// LinkedID returns the id for source, preferring the immutable id.
func (r *Result) LinkedID(source string) string {
	if r == nil {
		return ""
	}
	for _, link := range r.Metadata {
		if !strings.EqualFold(link.Source, source) {
			continue
		}
		if link.ImmutableID != "" {
			return link.ImmutableID
		}
		return link.ID
	}
	return ""
}

// Client talks to Hasheous.
type Client struct {
	baseURL string
	http    *httpclient.Client
}

// New creates a Hasheous client. apiKey is optional.
func New(apiKey, baseURL string, opts ...httpclient.Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("hasheous base url required")
	}
	if apiKey = strings.TrimSpace(apiKey); apiKey != "" {
		opts = append(opts, httpclient.WithAuthenticator(httpclient.Header{Name: "X-Client-API-Key", Value: apiKey}))
	}
	return &Client{baseURL: baseURL, http: httpclient.New("hasheous", opts...)}, nil
}

// LookupByHash identifies a ROM by checksum.
func (c *Client) LookupByHash(ctx context.Context, q HashQuery) (*Result, error) {
	q.MD5 = strings.ToLower(strings.TrimSpace(q.MD5))
	q.SHA1 = strings.ToLower(strings.TrimSpace(q.SHA1))
	q.CRC32 = strings.ToLower(strings.TrimSpace(q.CRC32))
	if q.MD5 == "" && q.SHA1 == "" && q.CRC32 == "" {
		return nil, errors.New("hasheous lookup: at least one hash required")
	}
	var result Result
	ok, err := c.http.PostJSON(ctx, "Lookup.ByHash", c.baseURL+"/Lookup/ByHash", q, &result)
	if err != nil || !ok || result.ID == 0 {
		return nil, err
	}
	return &result, nil
}
