package metadata

import (
	"strconv"
	"strings"

	"github.com/rommapp/romm-sub002/internal/config"
)

// Provider keys. They match the keys accepted in configuration priority lists.
const (
	ProviderIGDB              = config.ProviderIGDB
	ProviderMobyGames         = config.ProviderMobyGames
	ProviderScreenScraper     = config.ProviderScreenScraper
	ProviderRetroAchievements = config.ProviderRetroAchievements
	ProviderSteamGridDB       = config.ProviderSteamGridDB
	ProviderLaunchBox         = config.ProviderLaunchBox
	ProviderHasheous          = config.ProviderHasheous
	ProviderFlashpoint        = config.ProviderFlashpoint
	ProviderHLTB              = config.ProviderHLTB
	// ProviderTGDB has no client; its ids arrive as Hasheous cross-references.
	ProviderTGDB = "tgdb"
)

// siblingProviders are the ids that make two ROMs siblings.
var siblingProviders = []string{
	ProviderIGDB,
	ProviderMobyGames,
	ProviderScreenScraper,
	ProviderLaunchBox,
	ProviderRetroAchievements,
	ProviderHasheous,
	ProviderTGDB,
}

// idProviders is the canonical order for id-bearing providers.
var idProviders = append(append([]string(nil), config.KnownProviders...), ProviderTGDB)

// ExternalIDs holds one nullable id per provider.
type ExternalIDs struct {
	IGDB              *int64  `json:"igdb_id,omitempty"`
	MobyGames         *int64  `json:"moby_id,omitempty"`
	ScreenScraper     *int64  `json:"ss_id,omitempty"`
	RetroAchievements *int64  `json:"ra_id,omitempty"`
	SteamGridDB       *int64  `json:"sgdb_id,omitempty"`
	LaunchBox         *int64  `json:"launchbox_id,omitempty"`
	Hasheous          *int64  `json:"hasheous_id,omitempty"`
	TGDB              *int64  `json:"tgdb_id,omitempty"`
	HLTB              *int64  `json:"hltb_id,omitempty"`
	Flashpoint        *string `json:"flashpoint_id,omitempty"`
}

func (ids *ExternalIDs) intField(provider string) **int64 {
	switch provider {
	case ProviderIGDB:
		return &ids.IGDB
	case ProviderMobyGames:
		return &ids.MobyGames
	case ProviderScreenScraper:
		return &ids.ScreenScraper
	case ProviderRetroAchievements:
		return &ids.RetroAchievements
	case ProviderSteamGridDB:
		return &ids.SteamGridDB
	case ProviderLaunchBox:
		return &ids.LaunchBox
	case ProviderHasheous:
		return &ids.Hasheous
	case ProviderTGDB:
		return &ids.TGDB
	case ProviderHLTB:
		return &ids.HLTB
	default:
		return nil
	}
}

// Set records id for provider. Numeric providers ignore ids that do not
// parse as positive integers. It reports whether the id was stored.
func (ids *ExternalIDs) Set(provider, id string) bool {
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}
	if provider == ProviderFlashpoint {
		ids.Flashpoint = &id
		return true
	}
	field := ids.intField(provider)
	if field == nil {
		return false
	}
	value, err := strconv.ParseInt(id, 10, 64)
	if err != nil || value <= 0 {
		return false
	}
	*field = &value
	return true
}

// Get returns the id stored for provider.
func (ids ExternalIDs) Get(provider string) (string, bool) {
	if provider == ProviderFlashpoint {
		if ids.Flashpoint == nil {
			return "", false
		}
		return *ids.Flashpoint, true
	}
	field := ids.intField(provider)
	if field == nil || *field == nil {
		return "", false
	}
	return strconv.FormatInt(**field, 10), true
}

// Has reports whether provider has an id.
func (ids ExternalIDs) Has(provider string) bool {
	_, ok := ids.Get(provider)
	return ok
}

// IsEmpty reports whether no provider id is set.
func (ids ExternalIDs) IsEmpty() bool {
	for _, provider := range idProviders {
		if ids.Has(provider) {
			return false
		}
	}
	return true
}

// SiblingKeys returns "provider:id" keys for the ids that define siblings.
func (ids ExternalIDs) SiblingKeys() []string {
	keys := make([]string, 0, len(siblingProviders))
	for _, provider := range siblingProviders {
		if id, ok := ids.Get(provider); ok {
			keys = append(keys, provider+":"+id)
		}
	}
	return keys
}
