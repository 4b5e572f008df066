package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateHTTP(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateScreenScraper(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateScan() error {
	switch c.Scan.Mode {
	case ScanModeNew, ScanModeComplete:
	default:
		return fmt.Errorf("scan.mode: unsupported value %q (use %q or %q)", c.Scan.Mode, ScanModeNew, ScanModeComplete)
	}
	if c.Scan.Workers > 64 {
		return errors.New("scan.workers must be 64 or fewer")
	}
	if c.Scan.MinSimilarity < 0 || c.Scan.MinSimilarity > 1 {
		return errors.New("scan.min_similarity must be between 0 and 1")
	}
	lists := map[string][]string{
		"scan.priority.metadata": c.Scan.Priority.Metadata,
		"scan.priority.artwork":  c.Scan.Priority.Artwork,
		"scan.priority.region":   c.Scan.Priority.Region,
		"scan.priority.language": c.Scan.Priority.Language,
	}
	for _, key := range []string{"scan.priority.metadata", "scan.priority.artwork", "scan.priority.region", "scan.priority.language"} {
		for _, name := range lists[key] {
			if !slices.Contains(KnownProviders, name) {
				return fmt.Errorf("%s: unknown provider %q", key, name)
			}
		}
	}
	return nil
}

func (c *Config) validateHTTP() error {
	if c.HTTP.Proxy != "" {
		parsed, err := url.Parse(c.HTTP.Proxy)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("http.proxy: invalid url %q", c.HTTP.Proxy)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateScreenScraper() error {
	if !c.ScreenScraper.Enabled {
		return nil
	}
	if _, _, err := c.ScreenScraper.DevCredentials(); err != nil {
		return err
	}
	return nil
}

// ValidateProviders fails when scans require at least one provider and none is
// configured. It is separate from Validate so config tooling still works on a
// fresh install without credentials.
func (c *Config) ValidateProviders() error {
	if !c.Scan.RequireProvider {
		return nil
	}
	if len(c.ConfiguredProviders()) > 0 {
		return nil
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = defaultConfigPath
	}
	return fmt.Errorf("no metadata provider is configured; set credentials (e.g. IGDB_CLIENT_ID/IGDB_CLIENT_SECRET) or edit %s (create with 'romm config init')", defaultPath)
}

// ConfiguredProviders returns the provider keys that are enabled and have the
// credentials they need, in canonical order.
func (c *Config) ConfiguredProviders() []string {
	var out []string
	for _, name := range KnownProviders {
		if c.ProviderConfigured(name) {
			out = append(out, name)
		}
	}
	return out
}

// ProviderConfigured reports whether the named provider is enabled and has
// credentials present.
func (c *Config) ProviderConfigured(name string) bool {
	switch name {
	case ProviderIGDB:
		return c.IGDB.Enabled && c.IGDB.ClientID != "" && c.IGDB.ClientSecret != ""
	case ProviderMobyGames:
		return c.MobyGames.Enabled && c.MobyGames.APIKey != ""
	case ProviderScreenScraper:
		if !c.ScreenScraper.Enabled {
			return false
		}
		id, password, err := c.ScreenScraper.DevCredentials()
		return err == nil && id != "" && password != ""
	case ProviderRetroAchievements:
		return c.RetroAchievements.Enabled && c.RetroAchievements.APIKey != ""
	case ProviderSteamGridDB:
		return c.SteamGridDB.Enabled && c.SteamGridDB.APIKey != ""
	case ProviderLaunchBox:
		return c.LaunchBox.Enabled && strings.TrimSpace(c.LaunchBox.MetadataPath) != ""
	case ProviderHasheous:
		return c.Hasheous.Enabled
	case ProviderFlashpoint:
		return c.Flashpoint.Enabled
	case ProviderHLTB:
		return c.HLTB.Enabled
	default:
		return false
	}
}
