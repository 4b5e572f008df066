package config

const (
	defaultConfigPath              = "~/.config/romm/config.toml"
	defaultLibraryDir              = "~/romm/library"
	defaultDataDir                 = "~/.local/share/romm"
	defaultLogDir                  = "~/.local/share/romm/logs"
	defaultLogFormat               = "console"
	defaultLogLevel                = "info"
	defaultLogRetentionDays        = 30
	defaultScanWorkers             = 4
	defaultScanMode                = ScanModeNew
	defaultMinSimilarity           = 0.75
	defaultHTTPTimeoutSeconds      = 120
	defaultRateLimitBackoffSeconds = 2
	defaultUserAgent               = "romm-scanner/dev"
	defaultIGDBBaseURL             = "https://api.igdb.com/v4"
	defaultIGDBTokenURL            = "https://id.twitch.tv/oauth2/token"
	defaultMobyBaseURL             = "https://api.mobygames.com/v1"
	defaultScreenScraperBaseURL    = "https://api.screenscraper.fr/api2"
	defaultScreenScraperSoftName   = "romm"
	defaultRABaseURL               = "https://retroachievements.org/API"
	defaultRAMediaURL              = "https://media.retroachievements.org"
	defaultRACacheTTLMinutes       = 60
	defaultSteamGridDBBaseURL      = "https://www.steamgriddb.com/api/v2"
	defaultHasheousBaseURL         = "https://hasheous.org/api/v1"
	defaultLaunchBoxMetadataPath   = "~/.local/share/romm/launchbox/Metadata.xml"
	defaultLaunchBoxImageBaseURL   = "https://images.launchbox-app.com"
	defaultFlashpointBaseURL       = "https://db-api.unstable.life"
	defaultHLTBBaseURL             = "https://howlongtobeat.com"
)

// Scan modes.
const (
	ScanModeNew      = "new"
	ScanModeComplete = "complete"
)

// Provider keys accepted in priority lists.
const (
	ProviderIGDB              = "igdb"
	ProviderMobyGames         = "moby"
	ProviderScreenScraper     = "ss"
	ProviderRetroAchievements = "ra"
	ProviderSteamGridDB       = "sgdb"
	ProviderLaunchBox         = "launchbox"
	ProviderHasheous          = "hasheous"
	ProviderFlashpoint        = "flashpoint"
	ProviderHLTB              = "hltb"
)

// KnownProviders lists every provider key in canonical order.
var KnownProviders = []string{
	ProviderIGDB,
	ProviderMobyGames,
	ProviderScreenScraper,
	ProviderRetroAchievements,
	ProviderSteamGridDB,
	ProviderLaunchBox,
	ProviderHasheous,
	ProviderFlashpoint,
	ProviderHLTB,
}

var defaultExtensions = []string{
	"nes", "fds", "unf", "sfc", "smc", "n64", "z64", "v64", "gb", "gbc", "gba",
	"md", "gen", "smd", "bin", "sms", "gg", "32x", "pce", "iso", "cue", "chd",
	"cso", "pbp", "gcm", "rvz", "wbfs", "nds", "3ds", "cia", "a26", "lnx",
	"neo", "zip", "7z", "swf",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
			DataDir:    defaultDataDir,
			LogDir:     defaultLogDir,
		},
		Scan: Scan{
			Workers:         defaultScanWorkers,
			Mode:            defaultScanMode,
			MinSimilarity:   defaultMinSimilarity,
			RequireProvider: true,
			Extensions:      append([]string(nil), defaultExtensions...),
			Priority: Priority{
				Metadata: []string{
					ProviderIGDB, ProviderMobyGames, ProviderScreenScraper, ProviderRetroAchievements,
					ProviderLaunchBox, ProviderHasheous, ProviderFlashpoint, ProviderHLTB,
				},
				Artwork: []string{
					ProviderIGDB, ProviderMobyGames, ProviderScreenScraper, ProviderRetroAchievements,
					ProviderSteamGridDB, ProviderLaunchBox, ProviderHasheous, ProviderFlashpoint, ProviderHLTB,
				},
				Region:   []string{ProviderScreenScraper, ProviderLaunchBox, ProviderIGDB},
				Language: []string{ProviderScreenScraper, ProviderIGDB},
			},
		},
		HTTP: HTTP{
			TimeoutSeconds:          defaultHTTPTimeoutSeconds,
			RateLimitBackoffSeconds: defaultRateLimitBackoffSeconds,
			UserAgent:               defaultUserAgent,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
		IGDB: IGDB{
			Enabled:  true,
			BaseURL:  defaultIGDBBaseURL,
			TokenURL: defaultIGDBTokenURL,
		},
		MobyGames: MobyGames{
			Enabled: true,
			BaseURL: defaultMobyBaseURL,
		},
		ScreenScraper: ScreenScraper{
			Enabled:  true,
			SoftName: defaultScreenScraperSoftName,
			BaseURL:  defaultScreenScraperBaseURL,
		},
		RetroAchievements: RetroAchievements{
			Enabled:         true,
			BaseURL:         defaultRABaseURL,
			MediaURL:        defaultRAMediaURL,
			CacheTTLMinutes: defaultRACacheTTLMinutes,
		},
		SteamGridDB: SteamGridDB{
			Enabled: true,
			BaseURL: defaultSteamGridDBBaseURL,
		},
		Hasheous: Hasheous{
			BaseURL: defaultHasheousBaseURL,
		},
		LaunchBox: LaunchBox{
			MetadataPath: defaultLaunchBoxMetadataPath,
			ImageBaseURL: defaultLaunchBoxImageBaseURL,
		},
		Flashpoint: Flashpoint{
			BaseURL: defaultFlashpointBaseURL,
		},
		HLTB: HLTB{
			BaseURL: defaultHLTBBaseURL,
		},
	}
}
