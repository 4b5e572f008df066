package providers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rommapp/romm-sub002/internal/config"
	"github.com/rommapp/romm-sub002/internal/metadata"
	"github.com/rommapp/romm-sub002/internal/services"
	"github.com/rommapp/romm-sub002/internal/services/flashpoint"
	"github.com/rommapp/romm-sub002/internal/services/hasheous"
	"github.com/rommapp/romm-sub002/internal/services/hltb"
	"github.com/rommapp/romm-sub002/internal/services/httpclient"
	"github.com/rommapp/romm-sub002/internal/services/igdb"
	"github.com/rommapp/romm-sub002/internal/services/launchbox"
	"github.com/rommapp/romm-sub002/internal/services/mobygames"
	"github.com/rommapp/romm-sub002/internal/services/retroachievements"
	"github.com/rommapp/romm-sub002/internal/services/screenscraper"
	"github.com/rommapp/romm-sub002/internal/services/steamgriddb"
)

// Status describes whether a provider can take part in scans.
type Status struct {
	Name       string
	Configured bool
	Detail     string
}

// Statuses reports every known provider in canonical order.
func Statuses(cfg *config.Config) []Status {
	out := make([]Status, 0, len(config.KnownProviders))
	for _, name := range config.KnownProviders {
		status := Status{Name: name, Configured: cfg.ProviderConfigured(name)}
		if status.Configured {
			status.Detail = "configured"
		} else {
			status.Detail = missingDetail(cfg, name)
		}
		out = append(out, status)
	}
	return out
}

func missingDetail(cfg *config.Config, name string) string {
	switch name {
	case config.ProviderIGDB:
		if !cfg.IGDB.Enabled {
			return "disabled"
		}
		return "missing IGDB_CLIENT_ID/IGDB_CLIENT_SECRET"
	case config.ProviderMobyGames:
		if !cfg.MobyGames.Enabled {
			return "disabled"
		}
		return "missing MOBYGAMES_API_KEY"
	case config.ProviderScreenScraper:
		if !cfg.ScreenScraper.Enabled {
			return "disabled"
		}
		if _, _, err := cfg.ScreenScraper.DevCredentials(); err != nil {
			return err.Error()
		}
		return "missing screenscraper.dev_id/dev_password"
	case config.ProviderRetroAchievements:
		if !cfg.RetroAchievements.Enabled {
			return "disabled"
		}
		return "missing RETROACHIEVEMENTS_API_KEY"
	case config.ProviderSteamGridDB:
		if !cfg.SteamGridDB.Enabled {
			return "disabled"
		}
		return "missing STEAMGRIDDB_API_KEY"
	case config.ProviderLaunchBox:
		if !cfg.LaunchBox.Enabled {
			return "disabled (set LAUNCHBOX_API_ENABLED)"
		}
		return "missing launchbox.metadata_path"
	case config.ProviderHasheous:
		return "disabled (set HASHEOUS_API_ENABLED)"
	case config.ProviderFlashpoint:
		return "disabled (set FLASHPOINT_API_ENABLED)"
	case config.ProviderHLTB:
		return "disabled (set HLTB_API_ENABLED)"
	default:
		return "unknown provider"
	}
}

// Build constructs every configured provider. All of them share one HTTP
// client and retry policy; extra options are applied after the defaults.
func Build(cfg *config.Config, logger *slog.Logger, extra ...httpclient.Option) ([]metadata.Provider, error) {
	httpClient, err := httpclient.NewHTTPClient(httpclient.TransportConfig{
		Timeout:   cfg.HTTPTimeout(),
		Proxy:     cfg.HTTP.Proxy,
		UserAgent: cfg.HTTP.UserAgent,
	})
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "providers", "build", "http client", err)
	}
	opts := append([]httpclient.Option{
		httpclient.WithHTTPClient(httpClient),
		httpclient.WithRateLimitBackoff(cfg.RateLimitBackoff()),
		httpclient.WithLogger(logger),
	}, extra...)

	var out []metadata.Provider
	for _, name := range cfg.ConfiguredProviders() {
		provider, err := build(cfg, name, httpClient, opts)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "providers", "build", name, err)
		}
		out = append(out, provider)
	}
	return out, nil
}

func build(cfg *config.Config, name string, httpClient *http.Client, opts []httpclient.Option) (metadata.Provider, error) {
	switch name {
	case config.ProviderIGDB:
		auth := httpclient.NewClientCredentials(cfg.IGDB.ClientID, cfg.IGDB.ClientSecret, cfg.IGDB.TokenURL, httpClient)
		client, err := igdb.New(cfg.IGDB.BaseURL, auth, opts...)
		if err != nil {
			return nil, err
		}
		return &igdbProvider{client: client}, nil
	case config.ProviderMobyGames:
		client, err := mobygames.New(cfg.MobyGames.APIKey, cfg.MobyGames.BaseURL, opts...)
		if err != nil {
			return nil, err
		}
		return &mobyProvider{client: client}, nil
	case config.ProviderScreenScraper:
		devID, devPassword, err := cfg.ScreenScraper.DevCredentials()
		if err != nil {
			return nil, err
		}
		client, err := screenscraper.New(screenscraper.Credentials{
			DevID:       devID,
			DevPassword: devPassword,
			SoftName:    cfg.ScreenScraper.SoftName,
			Username:    cfg.ScreenScraper.Username,
			Password:    cfg.ScreenScraper.Password,
		}, cfg.ScreenScraper.BaseURL, opts...)
		if err != nil {
			return nil, err
		}
		return &screenScraperProvider{client: client}, nil
	case config.ProviderRetroAchievements:
		ttl := time.Duration(cfg.RetroAchievements.CacheTTLMinutes) * time.Minute
		client, err := retroachievements.New(cfg.RetroAchievements.APIKey, cfg.RetroAchievements.BaseURL, ttl, opts...)
		if err != nil {
			return nil, err
		}
		return &raProvider{client: client, mediaURL: cfg.RetroAchievements.MediaURL}, nil
	case config.ProviderSteamGridDB:
		client, err := steamgriddb.New(cfg.SteamGridDB.APIKey, cfg.SteamGridDB.BaseURL, opts...)
		if err != nil {
			return nil, err
		}
		return &sgdbProvider{client: client}, nil
	case config.ProviderLaunchBox:
		db, err := launchbox.Open(cfg.LaunchBox.MetadataPath, cfg.LaunchBox.ImageBaseURL)
		if err != nil {
			return nil, err
		}
		return &launchBoxProvider{db: db, path: cfg.LaunchBox.MetadataPath}, nil
	case config.ProviderHasheous:
		client, err := hasheous.New(cfg.Hasheous.APIKey, cfg.Hasheous.BaseURL, opts...)
		if err != nil {
			return nil, err
		}
		return &hasheousProvider{client: client}, nil
	case config.ProviderFlashpoint:
		client, err := flashpoint.New(cfg.Flashpoint.BaseURL, opts...)
		if err != nil {
			return nil, err
		}
		return &flashpointProvider{client: client}, nil
	case config.ProviderHLTB:
		client, err := hltb.New(cfg.HLTB.BaseURL, opts...)
		if err != nil {
			return nil, err
		}
		return &hltbProvider{client: client}, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", name)
	}
}
