package retroachievements

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rommapp/romm-sub002/internal/services/httpclient"
)

// GameListEntry is one row of API_GetGameList with hashes included.
type GameListEntry struct {
	ID              int64    `json:"ID"`
	Title           string   `json:"Title"`
	ConsoleID       int      `json:"ConsoleID"`
	ConsoleName     string   `json:"ConsoleName"`
	ImageIcon       string   `json:"ImageIcon"`
	NumAchievements int      `json:"NumAchievements"`
	Hashes          []string `json:"Hashes"`
}

// Game is the extended game record.
type Game struct {
	ID              int64  `json:"ID"`
	Title           string `json:"Title"`
	ConsoleID       int    `json:"ConsoleID"`
	ConsoleName     string `json:"ConsoleName"`
	ImageIcon       string `json:"ImageIcon"`
	ImageTitle      string `json:"ImageTitle"`
	ImageIngame     string `json:"ImageIngame"`
	ImageBoxArt     string `json:"ImageBoxArt"`
	Publisher       string `json:"Publisher"`
	Developer       string `json:"Developer"`
	Genre           string `json:"Genre"`
	Released        string `json:"Released"`
	NumAchievements int    `json:"NumAchievements"`
}

type cachedList struct {
	entries []GameListEntry
	byHash  map[string]*GameListEntry
	fetched time.Time
}

// Client talks to the RetroAchievements API.
type Client struct {
	baseURL string
	http    *httpclient.Client
	ttl     time.Duration
	now     func() time.Time

	mu    sync.RWMutex
	lists map[int]*cachedList
	group singleflight.Group
}

// New creates a RetroAchievements client whose game lists expire after ttl.
func New(apiKey, baseURL string, ttl time.Duration, opts ...httpclient.Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("retroachievements api key required")
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("retroachievements base url required")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	opts = append(opts, httpclient.WithAuthenticator(httpclient.QueryParams{"y": apiKey}))
	return &Client{
		baseURL: baseURL,
		http:    httpclient.New("ra", opts...),
		ttl:     ttl,
		now:     time.Now,
		lists:   make(map[int]*cachedList),
	}, nil
}

// GameList returns the cached game list for consoleID, refreshing it when
// the TTL has elapsed. Concurrent callers share a single download.
func (c *Client) GameList(ctx context.Context, consoleID int) ([]GameListEntry, error) {
	list, err := c.list(ctx, consoleID)
	if err != nil || list == nil {
		return nil, err
	}
	return list.entries, nil
}

// FindByHash returns the game whose hash list contains md5, or nil.
func (c *Client) FindByHash(ctx context.Context, consoleID int, md5 string) (*GameListEntry, error) {
	md5 = strings.ToLower(strings.TrimSpace(md5))
	if md5 == "" {
		return nil, nil
	}
	list, err := c.list(ctx, consoleID)
	if err != nil || list == nil {
		return nil, err
	}
	if entry, ok := list.byHash[md5]; ok {
		found := *entry
		return &found, nil
	}
	return nil, nil
}

// GetGame fetches the extended record for id, or nil when unknown.
func (c *Client) GetGame(ctx context.Context, id int64) (*Game, error) {
	if id <= 0 {
		return nil, fmt.Errorf("retroachievements get game: invalid id %d", id)
	}
	params := url.Values{}
	params.Set("i", strconv.FormatInt(id, 10))
	var game Game
	ok, err := c.http.GetJSON(ctx, "API_GetGameExtended", c.baseURL+"/API_GetGameExtended.php?"+params.Encode(), &game)
	if err != nil || !ok || game.ID == 0 {
		return nil, err
	}
	return &game, nil
}

func (c *Client) list(ctx context.Context, consoleID int) (*cachedList, error) {
	if consoleID <= 0 {
		return nil, nil
	}
	c.mu.RLock()
	cached := c.lists[consoleID]
	c.mu.RUnlock()
	if cached != nil && c.now().Sub(cached.fetched) < c.ttl {
		return cached, nil
	}

	ch := c.group.DoChan(strconv.Itoa(consoleID), func() (any, error) {
		return c.fetchList(context.WithoutCancel(ctx), consoleID)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		list, _ := res.Val.(*cachedList)
		return list, nil
	}
}

func (c *Client) fetchList(ctx context.Context, consoleID int) (*cachedList, error) {
	params := url.Values{}
	params.Set("i", strconv.Itoa(consoleID))
	params.Set("h", "1")
	params.Set("f", "1")
	var entries []GameListEntry
	ok, err := c.http.GetJSON(ctx, "API_GetGameList", c.baseURL+"/API_GetGameList.php?"+params.Encode(), &entries)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Not cached: an empty answer is more likely an outage than an empty console.
		return nil, nil
	}
	list := &cachedList{
		entries: entries,
		byHash:  make(map[string]*GameListEntry, len(entries)),
		fetched: c.now(),
	}
	for i := range entries {
		for _, hash := range entries[i].Hashes {
			list.byHash[strings.ToLower(strings.TrimSpace(hash))] = &entries[i]
		}
	}
	c.mu.Lock()
	c.lists[consoleID] = list
	c.mu.Unlock()
	return list, nil
}
