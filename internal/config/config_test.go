package config_test

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/rommapp/romm-sub002/internal/config"
)

// clearProviderEnv unsets provider variables for the duration of a test so a
// developer's shell cannot leak credentials into assertions.
func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"IGDB_CLIENT_ID", "IGDB_CLIENT_SECRET", "MOBYGAMES_API_KEY",
		"SCREENSCRAPER_USER", "SCREENSCRAPER_PASSWORD", "RETROACHIEVEMENTS_API_KEY",
		"STEAMGRIDDB_API_KEY", "HASHEOUS_API_ENABLED", "HASHEOUS_API_KEY",
		"LAUNCHBOX_API_ENABLED", "FLASHPOINT_API_ENABLED", "HLTB_API_ENABLED",
		"ROMM_LIBRARY_DIR",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeConfig(t *testing.T, path string, value any) {
	t.Helper()
	data, err := toml.Marshal(value)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	clearProviderEnv(t)
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if want := filepath.Join(tempHome, "romm", "library"); cfg.Paths.LibraryDir != want {
		t.Fatalf("unexpected library dir: got %q want %q", cfg.Paths.LibraryDir, want)
	}
	if want := filepath.Join(tempHome, ".local", "share", "romm"); cfg.Paths.DataDir != want {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, want)
	}
	if cfg.DatabasePath() != filepath.Join(cfg.Paths.DataDir, "library.db") {
		t.Fatalf("unexpected database path: %q", cfg.DatabasePath())
	}
	if cfg.Scan.Mode != config.ScanModeNew {
		t.Fatalf("expected default scan mode %q, got %q", config.ScanModeNew, cfg.Scan.Mode)
	}
	if cfg.HTTPTimeout().Seconds() != 120 {
		t.Fatalf("expected 120s timeout, got %v", cfg.HTTPTimeout())
	}
	if cfg.RateLimitBackoff().Seconds() != 2 {
		t.Fatalf("expected 2s rate limit backoff, got %v", cfg.RateLimitBackoff())
	}
	if got := cfg.Scan.Priority.Metadata[0]; got != config.ProviderIGDB {
		t.Fatalf("expected igdb first in metadata priority, got %q", got)
	}
	if providers := cfg.ConfiguredProviders(); len(providers) != 0 {
		t.Fatalf("expected no configured providers without credentials, got %v", providers)
	}
	if err := cfg.ValidateProviders(); err == nil {
		t.Fatal("expected ValidateProviders to fail without credentials")
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	clearProviderEnv(t)
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "romm.toml")

	type payload struct {
		Paths struct {
			LibraryDir string `toml:"library_dir"`
		} `toml:"paths"`
		Scan struct {
			Workers  int `toml:"workers"`
			Priority struct {
				Metadata []string `toml:"metadata"`
			} `toml:"priority"`
		} `toml:"scan"`
		IGDB struct {
			ClientID     string `toml:"client_id"`
			ClientSecret string `toml:"client_secret"`
		} `toml:"igdb"`
	}
	custom := payload{}
	custom.Paths.LibraryDir = filepath.Join(tempDir, "lib")
	custom.Scan.Workers = 8
	custom.Scan.Priority.Metadata = []string{" SS ", "igdb", "ss"}
	custom.IGDB.ClientID = "client"
	custom.IGDB.ClientSecret = "secret"
	writeConfig(t, configPath, custom)

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.LibraryDir != filepath.Join(tempDir, "lib") {
		t.Fatalf("unexpected library dir: %q", cfg.Paths.LibraryDir)
	}
	if cfg.Scan.Workers != 8 {
		t.Fatalf("expected 8 workers, got %d", cfg.Scan.Workers)
	}
	if !slices.Equal(cfg.Scan.Priority.Metadata, []string{"ss", "igdb"}) {
		t.Fatalf("expected normalized priority list, got %v", cfg.Scan.Priority.Metadata)
	}
	if !cfg.ProviderConfigured(config.ProviderIGDB) {
		t.Fatal("expected igdb to be configured")
	}
	if err := cfg.ValidateProviders(); err != nil {
		t.Fatalf("ValidateProviders: %v", err)
	}
}

func TestEnvVarOverridesConfigFileForAPIKeys(t *testing.T) {
	clearProviderEnv(t)
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "romm.toml")

	type payload struct {
		MobyGames struct {
			APIKey string `toml:"api_key"`
		} `toml:"mobygames"`
		RetroAchievements struct {
			APIKey string `toml:"api_key"`
		} `toml:"retroachievements"`
	}
	custom := payload{}
	custom.MobyGames.APIKey = "file-moby"
	custom.RetroAchievements.APIKey = "file-ra"
	writeConfig(t, configPath, custom)

	t.Setenv("MOBYGAMES_API_KEY", "env-moby")
	t.Setenv("HLTB_API_ENABLED", "true")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.MobyGames.APIKey != "env-moby" {
		t.Fatalf("expected env moby key, got %q", cfg.MobyGames.APIKey)
	}
	if cfg.RetroAchievements.APIKey != "file-ra" {
		t.Fatalf("expected file ra key when env unset, got %q", cfg.RetroAchievements.APIKey)
	}
	if !cfg.HLTB.Enabled {
		t.Fatal("expected HLTB_API_ENABLED to enable hltb")
	}
}

func TestInvalidBooleanEnvFails(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FLASHPOINT_API_ENABLED", "maybe")

	if _, _, _, err := config.Load(""); err == nil {
		t.Fatal("expected invalid boolean to fail")
	}
}

func TestDotEnvFileOverlaysSecrets(t *testing.T) {
	clearProviderEnv(t)
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "romm.toml")
	writeConfig(t, configPath, struct{}{})

	envPath := filepath.Join(tempDir, ".env")
	if err := os.WriteFile(envPath, []byte("MOBYGAMES_API_KEY=dotenv-moby\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("MOBYGAMES_API_KEY") })

	if cfg.MobyGames.APIKey != "dotenv-moby" {
		t.Fatalf("expected key from .env, got %q", cfg.MobyGames.APIKey)
	}
	if cfg.Paths.EnvFile != envPath {
		t.Fatalf("expected env file path recorded, got %q", cfg.Paths.EnvFile)
	}
	if !cfg.ProviderConfigured(config.ProviderMobyGames) {
		t.Fatal("expected moby to be configured from .env")
	}
}

func TestMissingExplicitEnvFileFails(t *testing.T) {
	clearProviderEnv(t)
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "romm.toml")

	type payload struct {
		Paths struct {
			EnvFile string `toml:"env_file"`
		} `toml:"paths"`
	}
	custom := payload{}
	custom.Paths.EnvFile = filepath.Join(tempDir, "missing.env")
	writeConfig(t, configPath, custom)

	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error for missing explicit env file")
	}
}

func TestUnknownPriorityProviderRejected(t *testing.T) {
	cfg := config.Default()
	cfg.Scan.Priority.Artwork = []string{"igdb", "tmdb"}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "tmdb") {
		t.Fatalf("expected unknown provider error, got %v", err)
	}
}

func TestUnsupportedScanModeRejected(t *testing.T) {
	cfg := config.Default()
	cfg.Scan.Mode = "partial"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected scan mode validation error")
	}
}

func TestScreenScraperDevCredentialsAreBase64(t *testing.T) {
	cfg := config.Default()
	cfg.ScreenScraper.DevID = base64.StdEncoding.EncodeToString([]byte("devuser"))
	cfg.ScreenScraper.DevPassword = base64.StdEncoding.EncodeToString([]byte("devpass"))

	id, password, err := cfg.ScreenScraper.DevCredentials()
	if err != nil {
		t.Fatalf("DevCredentials: %v", err)
	}
	if id != "devuser" || password != "devpass" {
		t.Fatalf("unexpected credentials: %q %q", id, password)
	}
	if !cfg.ProviderConfigured(config.ProviderScreenScraper) {
		t.Fatal("expected screenscraper to be configured with dev credentials")
	}

	cfg.ScreenScraper.DevPassword = "not base64!"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected invalid base64 to fail validation")
	}
}

func TestCreateSampleLoads(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("unexpected logging format: %q", cfg.Logging.Format)
	}
	if len(cfg.Scan.Priority.Artwork) == 0 || cfg.Scan.Priority.Artwork[4] != config.ProviderSteamGridDB {
		t.Fatalf("unexpected artwork priority: %v", cfg.Scan.Priority.Artwork)
	}
}
