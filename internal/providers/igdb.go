package providers

import (
	"context"
	"strconv"

	"github.com/rommapp/romm-sub002/internal/metadata"
	"github.com/rommapp/romm-sub002/internal/platform"
	"github.com/rommapp/romm-sub002/internal/services/igdb"
)

type igdbProvider struct {
	client *igdb.Client
}

func (p *igdbProvider) Name() string  { return metadata.ProviderIGDB }
func (p *igdbProvider) Enabled() bool { return p.client != nil }

func (p *igdbProvider) Capabilities() metadata.Capabilities { return metadata.Capabilities{} }

func (p *igdbProvider) SearchByHash(context.Context, metadata.ROM) ([]metadata.Candidate, error) {
	return nil, nil
}

func (p *igdbProvider) Search(ctx context.Context, term string, pl platform.Identity) ([]metadata.Candidate, error) {
	if pl.IGDB == 0 {
		return nil, nil
	}
	games, err := p.client.SearchGames(ctx, term, pl.IGDB)
	if err != nil {
		return nil, err
	}
	out := make([]metadata.Candidate, 0, len(games))
	for _, game := range games {
		out = append(out, normalizeIGDB(game))
	}
	return out, nil
}

func (p *igdbProvider) GetByID(ctx context.Context, id string) (*metadata.Candidate, error) {
	numeric, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, nil
	}
	game, err := p.client.GetGame(ctx, numeric)
	if err != nil || game == nil {
		return nil, err
	}
	candidate := normalizeIGDB(*game)
	return &candidate, nil
}

func normalizeIGDB(game igdb.Game) metadata.Candidate {
	c := metadata.Candidate{
		Provider:    metadata.ProviderIGDB,
		ExternalID:  strconv.FormatInt(game.ID, 10),
		Name:        game.Name,
		Summary:     game.Summary,
		ReleaseDate: unixDate(game.FirstReleaseDate),
		Raw:         rawJSON(game),
	}
	for _, alt := range game.AlternativeNames {
		c.AltNames = append(c.AltNames, alt.Name)
	}
	c.AltNames = nonEmpty(c.AltNames...)
	c.Genres = names(game.Genres)
	c.Themes = names(game.Themes)
	c.Franchises = nonEmpty(append(names(game.Franchises), names(game.Collections)...)...)
	c.Tags = names(game.GameModes)
	for _, involved := range game.InvolvedCompanies {
		if involved.Company != nil {
			c.Companies = append(c.Companies, involved.Company.Name)
		}
	}
	c.Companies = nonEmpty(c.Companies...)
	if game.Cover != nil {
		c.CoverURL = igdb.ImageURL("t_cover_big", game.Cover.ImageID)
	}
	for _, shot := range game.Screenshots {
		if link := igdb.ImageURL("t_screenshot_huge", shot.ImageID); link != "" {
			c.ScreenshotURLs = append(c.ScreenshotURLs, link)
		}
	}
	switch {
	case game.TotalRating != nil:
		c.Rating = scaledRating(*game.TotalRating, 1)
	case game.AggregatedRating != nil:
		c.Rating = scaledRating(*game.AggregatedRating, 1)
	}
	return c
}

func names(values []igdb.Named) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.Name)
	}
	return nonEmpty(out...)
}
