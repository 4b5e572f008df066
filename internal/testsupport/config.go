package testsupport

import (
	"path/filepath"
	"testing"

	"github.com/rommapp/romm-sub002/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Every remote provider is disabled so tests never reach the network; enable
// what a test needs with the options below.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LibraryDir = filepath.Join(base, "library")
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Scan.Workers = 2
	cfgVal.HTTP.RateLimitBackoffSeconds = 0
	cfgVal.IGDB.Enabled = false
	cfgVal.MobyGames.Enabled = false
	cfgVal.ScreenScraper.Enabled = false
	cfgVal.RetroAchievements.Enabled = false
	cfgVal.SteamGridDB.Enabled = false

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithIGDB enables IGDB against baseURL with a token endpoint at tokenURL.
func WithIGDB(baseURL, tokenURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.IGDB.Enabled = true
		b.cfg.IGDB.ClientID = "client"
		b.cfg.IGDB.ClientSecret = "secret"
		b.cfg.IGDB.BaseURL = baseURL
		b.cfg.IGDB.TokenURL = tokenURL
	}
}

// WithMobyGames enables MobyGames against baseURL.
func WithMobyGames(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.MobyGames.Enabled = true
		b.cfg.MobyGames.APIKey = "moby-key"
		b.cfg.MobyGames.BaseURL = baseURL
	}
}

// WithScanMode sets the scan mode.
func WithScanMode(mode string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scan.Mode = mode
	}
}

// WithoutProviderRequirement lets scans run with no provider configured.
func WithoutProviderRequirement() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scan.RequireProvider = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
