package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// loadEnvFile overlays secrets from a dotenv file onto the process environment.
// Variables already present in the environment are never replaced.
func (c *Config) loadEnvFile(configDir string) error {
	path := strings.TrimSpace(c.Paths.EnvFile)
	explicit := path != ""
	if !explicit {
		if configDir == "" {
			return nil
		}
		path = filepath.Join(configDir, ".env")
	}
	expanded, err := expandPath(path)
	if err != nil {
		return fmt.Errorf("paths.env_file: %w", err)
	}
	if _, err := os.Stat(expanded); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("paths.env_file: %w", err)
	}
	if err := godotenv.Load(expanded); err != nil {
		return fmt.Errorf("load env file %s: %w", expanded, err)
	}
	c.Paths.EnvFile = expanded
	return nil
}

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeScan()
	c.normalizeHTTP()
	c.normalizeLogging()
	if err := c.normalizeProviders(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("ROMM_LIBRARY_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.LibraryDir = value
	}
	var err error
	if strings.TrimSpace(c.Paths.LibraryDir) == "" {
		c.Paths.LibraryDir = defaultLibraryDir
	}
	if c.Paths.LibraryDir, err = expandPath(c.Paths.LibraryDir); err != nil {
		return fmt.Errorf("paths.library_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeScan() {
	c.Scan.Mode = strings.ToLower(strings.TrimSpace(c.Scan.Mode))
	if c.Scan.Mode == "" {
		c.Scan.Mode = defaultScanMode
	}
	if c.Scan.Workers <= 0 {
		c.Scan.Workers = defaultScanWorkers
	}
	if c.Scan.MinSimilarity == 0 {
		c.Scan.MinSimilarity = defaultMinSimilarity
	}

	exts := make([]string, 0, len(c.Scan.Extensions))
	for _, ext := range c.Scan.Extensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			exts = append(exts, ext)
		}
	}
	c.Scan.Extensions = exts

	c.Scan.Priority.Metadata = normalizeProviderList(c.Scan.Priority.Metadata)
	c.Scan.Priority.Artwork = normalizeProviderList(c.Scan.Priority.Artwork)
	c.Scan.Priority.Region = normalizeProviderList(c.Scan.Priority.Region)
	c.Scan.Priority.Language = normalizeProviderList(c.Scan.Priority.Language)
}

func normalizeProviderList(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		key := strings.ToLower(strings.TrimSpace(value))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}

func (c *Config) normalizeHTTP() {
	if c.HTTP.TimeoutSeconds <= 0 {
		c.HTTP.TimeoutSeconds = defaultHTTPTimeoutSeconds
	}
	if c.HTTP.RateLimitBackoffSeconds < 0 {
		c.HTTP.RateLimitBackoffSeconds = defaultRateLimitBackoffSeconds
	}
	c.HTTP.Proxy = strings.TrimSpace(c.HTTP.Proxy)
	c.HTTP.UserAgent = strings.TrimSpace(c.HTTP.UserAgent)
	if c.HTTP.UserAgent == "" {
		c.HTTP.UserAgent = defaultUserAgent
	}
}

func (c *Config) normalizeLogging() {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if format == "" {
		format = defaultLogFormat
	}
	c.Logging.Format = format

	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = defaultLogLevel
	}
	c.Logging.Level = level

	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}

func (c *Config) normalizeProviders() error {
	overrideString(&c.IGDB.ClientID, "IGDB_CLIENT_ID")
	overrideString(&c.IGDB.ClientSecret, "IGDB_CLIENT_SECRET")
	c.IGDB.BaseURL = trimURL(c.IGDB.BaseURL, defaultIGDBBaseURL)
	c.IGDB.TokenURL = trimURL(c.IGDB.TokenURL, defaultIGDBTokenURL)

	overrideString(&c.MobyGames.APIKey, "MOBYGAMES_API_KEY")
	c.MobyGames.BaseURL = trimURL(c.MobyGames.BaseURL, defaultMobyBaseURL)

	overrideString(&c.ScreenScraper.Username, "SCREENSCRAPER_USER")
	overrideString(&c.ScreenScraper.Password, "SCREENSCRAPER_PASSWORD")
	c.ScreenScraper.BaseURL = trimURL(c.ScreenScraper.BaseURL, defaultScreenScraperBaseURL)
	c.ScreenScraper.SoftName = strings.TrimSpace(c.ScreenScraper.SoftName)
	if c.ScreenScraper.SoftName == "" {
		c.ScreenScraper.SoftName = defaultScreenScraperSoftName
	}

	overrideString(&c.RetroAchievements.APIKey, "RETROACHIEVEMENTS_API_KEY")
	c.RetroAchievements.BaseURL = trimURL(c.RetroAchievements.BaseURL, defaultRABaseURL)
	c.RetroAchievements.MediaURL = trimURL(c.RetroAchievements.MediaURL, defaultRAMediaURL)
	if c.RetroAchievements.CacheTTLMinutes <= 0 {
		c.RetroAchievements.CacheTTLMinutes = defaultRACacheTTLMinutes
	}

	overrideString(&c.SteamGridDB.APIKey, "STEAMGRIDDB_API_KEY")
	c.SteamGridDB.BaseURL = trimURL(c.SteamGridDB.BaseURL, defaultSteamGridDBBaseURL)

	if err := overrideBool(&c.Hasheous.Enabled, "HASHEOUS_API_ENABLED"); err != nil {
		return err
	}
	overrideString(&c.Hasheous.APIKey, "HASHEOUS_API_KEY")
	c.Hasheous.BaseURL = trimURL(c.Hasheous.BaseURL, defaultHasheousBaseURL)

	if err := overrideBool(&c.LaunchBox.Enabled, "LAUNCHBOX_API_ENABLED"); err != nil {
		return err
	}
	if strings.TrimSpace(c.LaunchBox.MetadataPath) == "" {
		c.LaunchBox.MetadataPath = defaultLaunchBoxMetadataPath
	}
	var err error
	if c.LaunchBox.MetadataPath, err = expandPath(c.LaunchBox.MetadataPath); err != nil {
		return fmt.Errorf("launchbox.metadata_path: %w", err)
	}
	c.LaunchBox.ImageBaseURL = trimURL(c.LaunchBox.ImageBaseURL, defaultLaunchBoxImageBaseURL)

	if err := overrideBool(&c.Flashpoint.Enabled, "FLASHPOINT_API_ENABLED"); err != nil {
		return err
	}
	c.Flashpoint.BaseURL = trimURL(c.Flashpoint.BaseURL, defaultFlashpointBaseURL)

	if err := overrideBool(&c.HLTB.Enabled, "HLTB_API_ENABLED"); err != nil {
		return err
	}
	c.HLTB.BaseURL = trimURL(c.HLTB.BaseURL, defaultHLTBBaseURL)
	return nil
}

// overrideString replaces target with the environment value when it is set.
// Environment values take precedence over the config file.
func overrideString(target *string, key string) {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		*target = strings.TrimSpace(value)
		return
	}
	*target = strings.TrimSpace(*target)
}

func overrideBool(target *bool, key string) error {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%s: invalid boolean %q", key, value)
	}
	*target = parsed
	return nil
}

func trimURL(value, fallback string) string {
	value = strings.TrimRight(strings.TrimSpace(value), "/")
	if value == "" {
		return fallback
	}
	return value
}
