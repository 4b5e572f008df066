package config

import (
	_ "embed"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LibraryDir string `toml:"library_dir"`
	DataDir    string `toml:"data_dir"`
	LogDir     string `toml:"log_dir"`
	EnvFile    string `toml:"env_file"`
}

// Priority holds the provider precedence lists used when merging candidates.
// Metadata covers human-facing text fields; Artwork, Region and Language are
// resolved independently.
type Priority struct {
	Metadata []string `toml:"metadata"`
	Artwork  []string `toml:"artwork"`
	Region   []string `toml:"region"`
	Language []string `toml:"language"`
}

// Scan contains configuration for library scans and matching.
type Scan struct {
	Workers         int      `toml:"workers"`
	Mode            string   `toml:"mode"`
	MinSimilarity   float64  `toml:"min_similarity"`
	RequireProvider bool     `toml:"require_provider"`
	Extensions      []string `toml:"extensions"`
	Priority        Priority `toml:"priority"`
}

// HTTP contains the shared outbound client settings.
type HTTP struct {
	TimeoutSeconds          int    `toml:"timeout_seconds"`
	RateLimitBackoffSeconds int    `toml:"rate_limit_backoff_seconds"`
	Proxy                   string `toml:"proxy"`
	UserAgent               string `toml:"user_agent"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// IGDB contains Twitch client credentials for the IGDB API.
type IGDB struct {
	Enabled      bool   `toml:"enabled"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	BaseURL      string `toml:"base_url"`
	TokenURL     string `toml:"token_url"`
}

// MobyGames contains configuration for the MobyGames API.
type MobyGames struct {
	Enabled bool   `toml:"enabled"`
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

// ScreenScraper contains developer and user credentials for ScreenScraper.
// DevID and DevPassword are stored Base64-encoded.
type ScreenScraper struct {
	Enabled     bool   `toml:"enabled"`
	Username    string `toml:"username"`
	Password    string `toml:"password"`
	DevID       string `toml:"dev_id"`
	DevPassword string `toml:"dev_password"`
	SoftName    string `toml:"softname"`
	BaseURL     string `toml:"base_url"`
}

// RetroAchievements contains configuration for the RetroAchievements web API.
type RetroAchievements struct {
	Enabled         bool   `toml:"enabled"`
	APIKey          string `toml:"api_key"`
	BaseURL         string `toml:"base_url"`
	MediaURL        string `toml:"media_url"`
	CacheTTLMinutes int    `toml:"cache_ttl_minutes"`
}

// SteamGridDB contains configuration for SteamGridDB artwork lookups.
type SteamGridDB struct {
	Enabled bool   `toml:"enabled"`
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

// Hasheous contains configuration for Hasheous hash lookups.
type Hasheous struct {
	Enabled bool   `toml:"enabled"`
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

// LaunchBox contains configuration for the local LaunchBox metadata dump.
type LaunchBox struct {
	Enabled      bool   `toml:"enabled"`
	MetadataPath string `toml:"metadata_path"`
	ImageBaseURL string `toml:"image_base_url"`
}

// Flashpoint contains configuration for the Flashpoint database API.
type Flashpoint struct {
	Enabled bool   `toml:"enabled"`
	BaseURL string `toml:"base_url"`
}

// HLTB contains configuration for HowLongToBeat searches.
type HLTB struct {
	Enabled bool   `toml:"enabled"`
	BaseURL string `toml:"base_url"`
}

// Config encapsulates all configuration values.
//
// Configuration sections by subsystem:
//   - Paths: library, data and log directories plus the optional .env file
//   - Scan: worker count, scan mode, matching threshold and merge priority
//   - HTTP: shared outbound client timeout, backoff and proxy
//   - Logging: log format, level, and retention
//   - One section per metadata provider with its enabled flag and credentials
type Config struct {
	Paths             Paths             `toml:"paths"`
	Scan              Scan              `toml:"scan"`
	HTTP              HTTP              `toml:"http"`
	Logging           Logging           `toml:"logging"`
	IGDB              IGDB              `toml:"igdb"`
	MobyGames         MobyGames         `toml:"mobygames"`
	ScreenScraper     ScreenScraper     `toml:"screenscraper"`
	RetroAchievements RetroAchievements `toml:"retroachievements"`
	SteamGridDB       SteamGridDB       `toml:"steamgriddb"`
	Hasheous          Hasheous          `toml:"hasheous"`
	LaunchBox         LaunchBox         `toml:"launchbox"`
	Flashpoint        Flashpoint        `toml:"flashpoint"`
	HLTB              HLTB              `toml:"hltb"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.loadEnvFile(filepath.Dir(resolvedPath)); err != nil {
		return nil, "", false, err
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("romm.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the data and log directories. LibraryDir is only
// created on a best-effort basis so scans can report a missing mount instead
// of silently scanning an empty tree.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the SQLite library database location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "library.db")
}

// ScanLockPath returns the lock file guarding concurrent scans.
func (c *Config) ScanLockPath() string {
	return filepath.Join(c.Paths.DataDir, "scan.lock")
}

// RomsDir returns the directory holding one folder per platform.
func (c *Config) RomsDir() string {
	return filepath.Join(c.Paths.LibraryDir, "roms")
}

// HTTPTimeout returns the per-request timeout for provider calls.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// RateLimitBackoff returns the fixed sleep applied before retrying a 429.
func (c *Config) RateLimitBackoff() time.Duration {
	return time.Duration(c.HTTP.RateLimitBackoffSeconds) * time.Second
}

// DevCredentials decodes the Base64-obscured ScreenScraper developer credentials.
func (s ScreenScraper) DevCredentials() (string, string, error) {
	id, err := decodeObscured(s.DevID)
	if err != nil {
		return "", "", fmt.Errorf("screenscraper.dev_id: %w", err)
	}
	password, err := decodeObscured(s.DevPassword)
	if err != nil {
		return "", "", fmt.Errorf("screenscraper.dev_password: %w", err)
	}
	return id, password, nil
}

func decodeObscured(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	decoded, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}
	return strings.TrimSpace(string(decoded)), nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
