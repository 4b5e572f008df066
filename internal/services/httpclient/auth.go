package httpclient

import (
	"context"
	"net/http"
)

// Authenticator attaches credentials to each outgoing request. Refresh is
// called once after a 401 with the rejected request, before the request is
// rebuilt and retried.
type Authenticator interface {
	Apply(ctx context.Context, req *http.Request) error
	Refresh(ctx context.Context, rejected *http.Request) error
}

// QueryParams adds fixed query parameters such as API keys.
type QueryParams map[string]string

func (q QueryParams) Apply(_ context.Context, req *http.Request) error {
	query := req.URL.Query()
	for key, value := range q {
		query.Set(key, value)
	}
	req.URL.RawQuery = query.Encode()
	return nil
}

// Refresh is a no-op: static keys cannot be renewed, so the retry repeats
// the 401 and the caller sees a credential error.
func (q QueryParams) Refresh(context.Context, *http.Request) error { return nil }

// Header sets a fixed request header.
type Header struct {
	Name  string
	Value string
}

func (h Header) Apply(_ context.Context, req *http.Request) error {
	req.Header.Set(h.Name, h.Value)
	return nil
}

func (h Header) Refresh(context.Context, *http.Request) error { return nil }

// Bearer returns a Header authenticator for a static bearer token.
func Bearer(token string) Header {
	return Header{Name: "Authorization", Value: "Bearer " + token}
}
