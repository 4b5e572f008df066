package providers

import (
	"context"
	"slices"

	"github.com/rommapp/romm-sub002/internal/metadata"
	"github.com/rommapp/romm-sub002/internal/platform"
	"github.com/rommapp/romm-sub002/internal/services/flashpoint"
)

type flashpointProvider struct {
	client *flashpoint.Client
}

func (p *flashpointProvider) Name() string  { return metadata.ProviderFlashpoint }
func (p *flashpointProvider) Enabled() bool { return p.client != nil }

func (p *flashpointProvider) Capabilities() metadata.Capabilities { return metadata.Capabilities{} }

func (p *flashpointProvider) SearchByHash(context.Context, metadata.ROM) ([]metadata.Candidate, error) {
	return nil, nil
}

// Search only runs for platforms Flashpoint archives.
func (p *flashpointProvider) Search(ctx context.Context, term string, pl platform.Identity) ([]metadata.Candidate, error) {
	if pl.Flashpoint == "" {
		return nil, nil
	}
	games, err := p.client.SearchGames(ctx, term)
	if err != nil {
		return nil, err
	}
	out := make([]metadata.Candidate, 0, len(games))
	for _, game := range games {
		out = append(out, normalizeFlashpoint(game))
	}
	return out, nil
}

func (p *flashpointProvider) GetByID(ctx context.Context, id string) (*metadata.Candidate, error) {
	game, err := p.client.GetGame(ctx, id)
	if err != nil || game == nil {
		return nil, err
	}
	candidate := normalizeFlashpoint(*game)
	return &candidate, nil
}

func normalizeFlashpoint(game flashpoint.Game) metadata.Candidate {
	c := metadata.Candidate{
		Provider:    metadata.ProviderFlashpoint,
		ExternalID:  game.ID,
		Name:        game.Title,
		AltNames:    game.AltTitles(),
		Summary:     game.OriginalDescription,
		Companies:   nonEmpty(game.Developer, game.Publisher),
		Franchises:  nonEmpty(game.Series),
		Tags:        nonEmpty(append(slices.Clone(game.Tags), game.PlayMode)...),
		CoverURL:    flashpoint.LogoURL(game.ID),
		ReleaseDate: isoDate(game.ReleaseDate),
		Languages:   splitList(game.Language, ";,"),
		Raw:         rawJSON(game),
	}
	if shot := flashpoint.ScreenshotURL(game.ID); shot != "" {
		c.ScreenshotURLs = []string{shot}
	}
	return c
}
