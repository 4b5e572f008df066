package httpclient

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TransportConfig configures the process-wide outbound client.
type TransportConfig struct {
	Timeout   time.Duration
	Proxy     string
	UserAgent string
}

// NewHTTPClient builds the pooled client shared by every provider in a scan.
func NewHTTPClient(cfg TransportConfig) (*http.Client, error) {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 16,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		ForceAttemptHTTP2:   true,
	}
	if proxy := strings.TrimSpace(cfg.Proxy); proxy != "" {
		proxyURL, err := url.Parse(proxy)
		if err != nil {
			return nil, fmt.Errorf("parse proxy url: %w", err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	var rt http.RoundTripper = transport
	if ua := strings.TrimSpace(cfg.UserAgent); ua != "" {
		rt = &userAgentTransport{base: transport, userAgent: ua}
	}
	return &http.Client{Timeout: cfg.Timeout, Transport: rt}, nil
}

type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.base.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(clone)
}
