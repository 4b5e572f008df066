package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"
)

// TokenFetcher obtains a fresh access token.
type TokenFetcher func(ctx context.Context) (*oauth2.Token, error)

// TokenAuth caches an OAuth access token process-wide and refreshes it
// lazily. Concurrent callers that find the token missing or expired share a
// single fetch.
type TokenAuth struct {
	clientID string
	fetch    TokenFetcher

	mu    sync.RWMutex
	token *oauth2.Token
	group singleflight.Group
}

// NewTokenAuth builds a TokenAuth around fetch. clientID is sent in the
// Client-ID header when non-empty.
func NewTokenAuth(clientID string, fetch TokenFetcher) *TokenAuth {
	return &TokenAuth{clientID: strings.TrimSpace(clientID), fetch: fetch}
}

// NewClientCredentials builds a TokenAuth that uses the OAuth client
// credentials grant against tokenURL, sending id and secret as form params.
func NewClientCredentials(clientID, clientSecret, tokenURL string, httpClient *http.Client) *TokenAuth {
	cfg := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	fetch := func(ctx context.Context) (*oauth2.Token, error) {
		if httpClient != nil {
			ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		}
		return cfg.Token(ctx)
	}
	return NewTokenAuth(clientID, fetch)
}

func (a *TokenAuth) Apply(ctx context.Context, req *http.Request) error {
	token, err := a.current(ctx)
	if err != nil {
		return err
	}
	if a.clientID != "" {
		req.Header.Set("Client-ID", a.clientID)
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	return nil
}

// Refresh replaces the token the rejected request carried. When another
// caller already replaced it, the cached token is kept and no fetch happens.
// A nil rejected request always discards the cached token.
func (a *TokenAuth) Refresh(ctx context.Context, rejected *http.Request) error {
	a.mu.Lock()
	if a.token != nil && (rejected == nil || bearerToken(rejected) == a.token.AccessToken) {
		a.token = nil
	}
	a.mu.Unlock()
	_, err := a.current(ctx)
	return err
}

func bearerToken(req *http.Request) string {
	return strings.TrimPrefix(req.Header.Get("Authorization"), "Bearer ")
}

func (a *TokenAuth) current(ctx context.Context) (*oauth2.Token, error) {
	a.mu.RLock()
	token := a.token
	a.mu.RUnlock()
	if token.Valid() {
		return token, nil
	}
	return a.refresh(ctx)
}

func (a *TokenAuth) refresh(ctx context.Context) (*oauth2.Token, error) {
	if a.fetch == nil {
		return nil, errors.New("token fetcher not configured")
	}
	ch := a.group.DoChan("token", func() (any, error) {
		a.mu.RLock()
		cached := a.token
		a.mu.RUnlock()
		if cached.Valid() {
			return cached, nil
		}
		token, err := a.fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, fmt.Errorf("fetch access token: %w", err)
		}
		if token == nil || token.AccessToken == "" {
			return nil, errors.New("fetch access token: empty token")
		}
		a.mu.Lock()
		a.token = token
		a.mu.Unlock()
		return token, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*oauth2.Token), nil
	}
}
