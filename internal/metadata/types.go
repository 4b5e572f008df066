package metadata

import (
	"encoding/json"
	"strings"

	"github.com/rommapp/romm-sub002/internal/platform"
	"github.com/rommapp/romm-sub002/internal/romname"
)

// Hashes is the checksum set computed for a ROM file. Values are lowercase hex.
type Hashes struct {
	CRC32 string `json:"crc32,omitempty"`
	MD5   string `json:"md5,omitempty"`
	SHA1  string `json:"sha1,omitempty"`
}

// Empty reports whether no hash is known.
func (h Hashes) Empty() bool {
	return h.CRC32 == "" && h.MD5 == "" && h.SHA1 == ""
}

// ROM describes one library file for a matching pass.
type ROM struct {
	Path     string
	Name     romname.Name
	Hashes   Hashes
	Size     int64
	Platform platform.Identity
}

// NewROM parses fileName and returns a descriptor.
func NewROM(fileName string, size int64, hashes Hashes, p platform.Identity) ROM {
	return ROM{
		Path:     fileName,
		Name:     romname.Parse(fileName),
		Hashes:   hashes,
		Size:     size,
		Platform: p,
	}
}

// discExtensions are optical-disc image formats whose name matches need a
// serial check when the provider exposes serials.
var discExtensions = map[string]struct{}{
	"iso": {}, "cue": {}, "bin": {}, "chd": {}, "cso": {}, "pbp": {},
	"gcm": {}, "rvz": {}, "wbfs": {}, "img": {}, "gdi": {},
}

// IsDiscImage reports whether the ROM is an optical-disc image.
func (r ROM) IsDiscImage() bool {
	_, ok := discExtensions[r.Name.Extension]
	return ok
}

// MatchKind ranks how a candidate was matched. Higher is stronger.
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchSimilarity
	MatchExactName
	MatchHash
)

func (k MatchKind) String() string {
	switch k {
	case MatchHash:
		return "hash"
	case MatchExactName:
		return "exact_name"
	case MatchSimilarity:
		return "similarity"
	default:
		return "none"
	}
}

// Candidate is one provider's proposed identification of a ROM. Every field
// except Provider and ExternalID is optional.
type Candidate struct {
	Provider       string
	ExternalID     string
	Name           string
	AltNames       []string
	Summary        string
	Genres         []string
	Themes         []string
	Companies      []string
	Franchises     []string
	Regions        []string
	Languages      []string
	Tags           []string
	CoverURL       string
	ScreenshotURLs []string
	Rating         *float64
	ReleaseDate    string
	Serials        []string
	// CrossIDs carries ids the provider knows for other providers.
	CrossIDs map[string]string
	Match    MatchKind
	Score    float64
	Raw      json.RawMessage
}

// Record is the merged metadata stored for a ROM. It is replaced as a whole
// on every rescan.
type Record struct {
	IDs            ExternalIDs `json:"ids"`
	Name           string      `json:"name,omitempty"`
	AltNames       []string    `json:"alt_names,omitempty"`
	Summary        string      `json:"summary,omitempty"`
	Genres         []string    `json:"genres,omitempty"`
	Themes         []string    `json:"themes,omitempty"`
	Companies      []string    `json:"companies,omitempty"`
	Franchises     []string    `json:"franchises,omitempty"`
	CoverURL       string      `json:"cover_url,omitempty"`
	ScreenshotURLs []string    `json:"screenshot_urls,omitempty"`
	Rating         *float64    `json:"rating,omitempty"`
	ReleaseDate    string      `json:"release_date,omitempty"`
	Regions        []string    `json:"regions,omitempty"`
	Languages      []string    `json:"languages,omitempty"`
	Tags           []string    `json:"tags,omitempty"`
	// Sources names the provider that supplied each display field.
	Sources map[string]string `json:"sources,omitempty"`
	// ProviderData keeps each matched provider's raw payload.
	ProviderData map[string]json.RawMessage `json:"-"`
}

// Matched reports whether any provider contributed to the record.
func (r Record) Matched() bool {
	return !r.IDs.IsEmpty() || len(r.ProviderData) > 0
}

// DisplayName returns the merged name, falling back to the ROM search term.
func (r Record) DisplayName(rom ROM) string {
	if name := strings.TrimSpace(r.Name); name != "" {
		return name
	}
	return rom.Name.SearchTerm
}
