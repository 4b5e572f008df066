package providers

import (
	"context"
	"strconv"
	"strings"

	"github.com/rommapp/romm-sub002/internal/metadata"
	"github.com/rommapp/romm-sub002/internal/platform"
	"github.com/rommapp/romm-sub002/internal/services/retroachievements"
)

type raProvider struct {
	client   *retroachievements.Client
	mediaURL string
}

func (p *raProvider) Name() string  { return metadata.ProviderRetroAchievements }
func (p *raProvider) Enabled() bool { return p.client != nil }

// Game list rows carry only title and icon; the winner is fetched in full.
func (p *raProvider) Capabilities() metadata.Capabilities {
	return metadata.Capabilities{HashLookup: true, Detail: true}
}

func (p *raProvider) SearchByHash(ctx context.Context, rom metadata.ROM) ([]metadata.Candidate, error) {
	if rom.Platform.RetroAchievements == 0 || rom.Hashes.MD5 == "" {
		return nil, nil
	}
	entry, err := p.client.FindByHash(ctx, rom.Platform.RetroAchievements, rom.Hashes.MD5)
	if err != nil || entry == nil {
		return nil, err
	}
	return []metadata.Candidate{p.normalizeEntry(*entry)}, nil
}

func (p *raProvider) Search(ctx context.Context, term string, pl platform.Identity) ([]metadata.Candidate, error) {
	if pl.RetroAchievements == 0 {
		return nil, nil
	}
	entries, err := p.client.GameList(ctx, pl.RetroAchievements)
	if err != nil {
		return nil, err
	}
	var out []metadata.Candidate
	for _, entry := range entries {
		if looseMatch(term, entry.Title) {
			out = append(out, p.normalizeEntry(entry))
		}
	}
	return out, nil
}

func (p *raProvider) GetByID(ctx context.Context, id string) (*metadata.Candidate, error) {
	numeric, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, nil
	}
	game, err := p.client.GetGame(ctx, numeric)
	if err != nil || game == nil {
		return nil, err
	}
	candidate := p.normalizeGame(*game)
	return &candidate, nil
}

func (p *raProvider) normalizeEntry(entry retroachievements.GameListEntry) metadata.Candidate {
	return metadata.Candidate{
		Provider:   metadata.ProviderRetroAchievements,
		ExternalID: strconv.FormatInt(entry.ID, 10),
		Name:       entry.Title,
		CoverURL:   p.media(entry.ImageIcon),
		Raw:        rawJSON(entry),
	}
}

func (p *raProvider) normalizeGame(game retroachievements.Game) metadata.Candidate {
	c := metadata.Candidate{
		Provider:    metadata.ProviderRetroAchievements,
		ExternalID:  strconv.FormatInt(game.ID, 10),
		Name:        game.Title,
		Genres:      splitList(game.Genre, ","),
		Companies:   nonEmpty(game.Developer, game.Publisher),
		ReleaseDate: isoDate(game.Released),
		Raw:         rawJSON(game),
	}
	c.CoverURL = p.media(game.ImageBoxArt)
	if c.CoverURL == "" {
		c.CoverURL = p.media(game.ImageIcon)
	}
	c.ScreenshotURLs = nonEmpty(p.media(game.ImageIngame), p.media(game.ImageTitle))
	return c
}

func (p *raProvider) media(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return p.mediaURL + "/" + strings.TrimLeft(path, "/")
}
