package providers

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rommapp/romm-sub002/internal/config"
	"github.com/rommapp/romm-sub002/internal/logging"
	"github.com/rommapp/romm-sub002/internal/metadata"
	"github.com/rommapp/romm-sub002/internal/platform"
)

func TestStatusesReportMissingCredentials(t *testing.T) {
	cfg := config.Default()
	cfg.MobyGames.APIKey = "moby"
	cfg.HLTB.Enabled = true

	statuses := Statuses(&cfg)
	if len(statuses) != len(config.KnownProviders) {
		t.Fatalf("expected one status per provider, got %d", len(statuses))
	}
	byName := map[string]Status{}
	for _, s := range statuses {
		byName[s.Name] = s
	}
	if !byName[config.ProviderMobyGames].Configured || !byName[config.ProviderHLTB].Configured {
		t.Fatalf("expected moby and hltb configured: %+v", statuses)
	}
	if s := byName[config.ProviderIGDB]; s.Configured || !strings.Contains(s.Detail, "IGDB_CLIENT_ID") {
		t.Fatalf("unexpected igdb status %+v", s)
	}
}

func TestBuildOnlyConfiguredProviders(t *testing.T) {
	cfg := config.Default()
	cfg.MobyGames.APIKey = "moby"
	cfg.ScreenScraper.DevID = base64.StdEncoding.EncodeToString([]byte("dev"))
	cfg.ScreenScraper.DevPassword = base64.StdEncoding.EncodeToString([]byte("pw"))
	cfg.Hasheous.Enabled = true

	built, err := Build(&cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	var names []string
	for _, p := range built {
		names = append(names, p.Name())
	}
	want := []string{config.ProviderMobyGames, config.ProviderScreenScraper, config.ProviderHasheous}
	if !slices.Equal(names, want) {
		t.Fatalf("built %v, want %v", names, want)
	}
}

func TestIGDBProviderEndToEnd(t *testing.T) {
	var tokenCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access_token":"tok","token_type":"bearer","expires_in":3600}`)
	})
	mux.HandleFunc("/v4/games", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" || r.Header.Get("Client-ID") != "client" {
			t.Errorf("missing auth headers: %v", r.Header)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `search "Super Mario Bros."`) {
			t.Errorf("unexpected query %q", body)
		}
		_, _ = io.WriteString(w, `[{"id":3341,"name":"Super Mario Bros. 2"},{"id":3340,"name":"Super Mario Bros."}]`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	cfg := config.Default()
	cfg.IGDB.ClientID = "client"
	cfg.IGDB.ClientSecret = "secret"
	cfg.IGDB.BaseURL = server.URL + "/v4"
	cfg.IGDB.TokenURL = server.URL + "/oauth2/token"
	cfg.Scan.Priority = config.Priority{Metadata: []string{config.ProviderIGDB}}

	built, err := Build(&cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	p, _ := platform.Lookup("nes")
	rom := metadata.NewROM("Super Mario Bros. (USA) (Rev A).nes", 40976, metadata.Hashes{}, p)

	matcher := metadata.NewMatcher(built, metadata.WithLogger(logging.NewNop()))
	results, err := matcher.Match(context.Background(), rom)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	record := metadata.Merge(results, cfg.Scan.Priority)
	if record.Name != "Super Mario Bros." {
		t.Fatalf("unexpected merged name %q", record.Name)
	}
	if record.IDs.IGDB == nil || *record.IDs.IGDB != 3340 {
		t.Fatalf("unexpected igdb id %v", record.IDs.IGDB)
	}
	if tokenCalls.Load() != 1 {
		t.Fatalf("expected one token fetch, got %d", tokenCalls.Load())
	}
}
