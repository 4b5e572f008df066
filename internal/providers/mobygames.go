package providers

import (
	"context"
	"strconv"

	"github.com/rommapp/romm-sub002/internal/metadata"
	"github.com/rommapp/romm-sub002/internal/platform"
	"github.com/rommapp/romm-sub002/internal/services/mobygames"
)

type mobyProvider struct {
	client *mobygames.Client
}

func (p *mobyProvider) Name() string  { return metadata.ProviderMobyGames }
func (p *mobyProvider) Enabled() bool { return p.client != nil }

// MobyGames rejects non-ASCII titles.
func (p *mobyProvider) Capabilities() metadata.Capabilities {
	return metadata.Capabilities{ASCIIOnly: true}
}

func (p *mobyProvider) SearchByHash(context.Context, metadata.ROM) ([]metadata.Candidate, error) {
	return nil, nil
}

func (p *mobyProvider) Search(ctx context.Context, term string, pl platform.Identity) ([]metadata.Candidate, error) {
	if pl.MobyGames == 0 {
		return nil, nil
	}
	games, err := p.client.SearchGames(ctx, term, pl.MobyGames)
	if err != nil {
		return nil, err
	}
	out := make([]metadata.Candidate, 0, len(games))
	for _, game := range games {
		out = append(out, normalizeMoby(game, pl.MobyGames))
	}
	return out, nil
}

func (p *mobyProvider) GetByID(ctx context.Context, id string) (*metadata.Candidate, error) {
	numeric, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, nil
	}
	game, err := p.client.GetGame(ctx, numeric)
	if err != nil || game == nil {
		return nil, err
	}
	candidate := normalizeMoby(*game, 0)
	return &candidate, nil
}

// normalizeMoby takes the release date from platformID's entry, or the
// earliest listed platform when platformID is zero or absent.
func normalizeMoby(game mobygames.Game, platformID int) metadata.Candidate {
	c := metadata.Candidate{
		Provider:   metadata.ProviderMobyGames,
		ExternalID: strconv.FormatInt(game.GameID, 10),
		Name:       game.Title,
		Summary:    game.Description,
		Raw:        rawJSON(game),
	}
	for _, alt := range game.AlternateTitles {
		c.AltNames = append(c.AltNames, alt.Title)
	}
	c.AltNames = nonEmpty(c.AltNames...)
	for _, genre := range game.Genres {
		c.Genres = append(c.Genres, genre.Name)
	}
	c.Genres = nonEmpty(c.Genres...)
	if game.SampleCover != nil {
		c.CoverURL = game.SampleCover.Image
	}
	for _, shot := range game.SampleScreenshots {
		c.ScreenshotURLs = append(c.ScreenshotURLs, shot.Image)
	}
	c.ScreenshotURLs = nonEmpty(c.ScreenshotURLs...)
	if game.MobyScore != nil {
		c.Rating = scaledRating(*game.MobyScore, 10)
	}
	earliest := ""
	for _, pl := range game.Platforms {
		date := isoDate(pl.FirstReleaseDate)
		if date == "" {
			continue
		}
		if platformID != 0 && pl.ID == platformID {
			earliest = date
			break
		}
		if earliest == "" || date < earliest {
			earliest = date
		}
	}
	c.ReleaseDate = earliest
	return c
}
