package preflight

import (
	"context"

	"github.com/rommapp/romm-sub002/internal/config"
	"github.com/rommapp/romm-sub002/internal/providers"
	"github.com/rommapp/romm-sub002/internal/services/httpclient"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
	// Optional results are informational and never block a scan.
	Optional bool
}

// Options selects the checks RunAll performs.
type Options struct {
	// Online probes each configured remote provider's endpoint.
	Online bool
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config, opts Options) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	// Library roms directory is only read.
	results = append(results, CheckDirectoryAccess("ROMs directory", cfg.RomsDir(), false))
	results = append(results, CheckDirectoryAccess("Data directory", cfg.Paths.DataDir, true))

	if cfg.LaunchBox.Enabled {
		results = append(results, CheckReadableFile("LaunchBox metadata", cfg.LaunchBox.MetadataPath))
	}

	results = append(results, ProviderResults(cfg)...)

	if opts.Online {
		client := newProbeClient(httpclient.TransportConfig{Proxy: cfg.HTTP.Proxy, UserAgent: cfg.HTTP.UserAgent})
		for _, endpoint := range remoteEndpoints(cfg) {
			result := CheckEndpoint(ctx, client, endpoint.name+" endpoint", endpoint.url)
			results = append(results, result)
		}
	}

	return results
}

// Failed reports whether any required check failed.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Optional {
			return true
		}
	}
	return false
}

// ProviderResults reports credential presence for every known provider.
// Unconfigured providers are optional unless scans require a provider and
// none is configured at all.
func ProviderResults(cfg *config.Config) []Result {
	statuses := providers.Statuses(cfg)
	results := make([]Result, 0, len(statuses)+1)
	configured := 0
	for _, status := range statuses {
		if status.Configured {
			configured++
		}
		results = append(results, Result{
			Name:     "Provider " + status.Name,
			Passed:   status.Configured,
			Detail:   status.Detail,
			Optional: true,
		})
	}
	if cfg.Scan.RequireProvider {
		summary := Result{Name: "Metadata providers", Passed: configured > 0}
		if configured > 0 {
			summary.Detail = "at least one provider configured"
		} else {
			summary.Detail = "no provider configured (scan.require_provider is set)"
		}
		results = append(results, summary)
	}
	return results
}

type endpoint struct {
	name string
	url  string
}

func remoteEndpoints(cfg *config.Config) []endpoint {
	urls := map[string]string{
		config.ProviderIGDB:              cfg.IGDB.BaseURL,
		config.ProviderMobyGames:         cfg.MobyGames.BaseURL,
		config.ProviderScreenScraper:     cfg.ScreenScraper.BaseURL,
		config.ProviderRetroAchievements: cfg.RetroAchievements.BaseURL,
		config.ProviderSteamGridDB:       cfg.SteamGridDB.BaseURL,
		config.ProviderHasheous:          cfg.Hasheous.BaseURL,
		config.ProviderFlashpoint:        cfg.Flashpoint.BaseURL,
		config.ProviderHLTB:              cfg.HLTB.BaseURL,
	}
	var out []endpoint
	for _, name := range cfg.ConfiguredProviders() {
		if url, ok := urls[name]; ok {
			out = append(out, endpoint{name: name, url: url})
		}
	}
	return out
}
