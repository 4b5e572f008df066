package platform

import (
	"slices"
	"strings"

	"github.com/rommapp/romm-sub002/internal/textutil"
)

// Identity is a universal platform slug plus the id each provider uses for
// it. A zero id or empty name means the provider has no matching platform.
type Identity struct {
	Slug              string
	Name              string
	Aliases           []string
	IGDB              int
	MobyGames         int
	ScreenScraper     int
	RetroAchievements int
	Hasheous          int
	TGDB              int
	LaunchBox         string
	Flashpoint        string
	HLTB              string
}

// Unknown returns an identity with only a slug, used for library folders
// that are not in the table. Providers that need a platform id skip it.
func Unknown(slug string) Identity {
	slug = textutil.FolderKey(slug)
	return Identity{Slug: slug, Name: slug}
}

// Known reports whether any provider recognises the platform.
func (p Identity) Known() bool {
	return p.IGDB != 0 || p.MobyGames != 0 || p.ScreenScraper != 0 ||
		p.RetroAchievements != 0 || p.TGDB != 0 || p.LaunchBox != "" ||
		p.Flashpoint != "" || p.HLTB != ""
}

// Lookup resolves a slug, alias, or library folder name to a platform.
func Lookup(name string) (Identity, bool) {
	key := textutil.FolderKey(name)
	if p, ok := bySlug[key]; ok {
		return p, true
	}
	if slug, ok := byAlias[key]; ok {
		return bySlug[slug], true
	}
	return Identity{}, false
}

// Resolve is Lookup with a fallback to Unknown.
func Resolve(folder string) Identity {
	if p, ok := Lookup(folder); ok {
		return p
	}
	return Unknown(folder)
}

// All returns every known platform sorted by slug.
func All() []Identity {
	out := make([]Identity, 0, len(bySlug))
	for _, p := range bySlug {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b Identity) int { return strings.Compare(a.Slug, b.Slug) })
	return out
}

var (
	bySlug  = map[string]Identity{}
	byAlias = map[string]string{}
)

func init() {
	for _, p := range table {
		if p.Hasheous == 0 {
			p.Hasheous = p.IGDB
		}
		bySlug[p.Slug] = p
		for _, alias := range p.Aliases {
			byAlias[textutil.FolderKey(alias)] = p.Slug
		}
	}
}
