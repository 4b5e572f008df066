package providers

import (
	"context"
	"strconv"

	"github.com/rommapp/romm-sub002/internal/metadata"
	"github.com/rommapp/romm-sub002/internal/platform"
	"github.com/rommapp/romm-sub002/internal/services/steamgriddb"
)

type sgdbProvider struct {
	client *steamgriddb.Client
}

func (p *sgdbProvider) Name() string  { return metadata.ProviderSteamGridDB }
func (p *sgdbProvider) Enabled() bool { return p.client != nil }

// Search results have no artwork; grids are fetched for the winner.
func (p *sgdbProvider) Capabilities() metadata.Capabilities {
	return metadata.Capabilities{Detail: true}
}

func (p *sgdbProvider) SearchByHash(context.Context, metadata.ROM) ([]metadata.Candidate, error) {
	return nil, nil
}

func (p *sgdbProvider) Search(ctx context.Context, term string, _ platform.Identity) ([]metadata.Candidate, error) {
	games, err := p.client.SearchGames(ctx, term)
	if err != nil {
		return nil, err
	}
	out := make([]metadata.Candidate, 0, len(games))
	for _, game := range games {
		out = append(out, normalizeSGDB(game, nil))
	}
	return out, nil
}

func (p *sgdbProvider) GetByID(ctx context.Context, id string) (*metadata.Candidate, error) {
	numeric, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, nil
	}
	game, err := p.client.GetGame(ctx, numeric)
	if err != nil || game == nil {
		return nil, err
	}
	grids, err := p.client.Grids(ctx, numeric)
	if err != nil {
		return nil, err
	}
	candidate := normalizeSGDB(*game, grids)
	return &candidate, nil
}

func normalizeSGDB(game steamgriddb.Game, grids []steamgriddb.Grid) metadata.Candidate {
	c := metadata.Candidate{
		Provider:    metadata.ProviderSteamGridDB,
		ExternalID:  strconv.FormatInt(game.ID, 10),
		Name:        game.Name,
		ReleaseDate: unixDate(game.ReleaseDate),
		Raw:         rawJSON(struct {
			Game  steamgriddb.Game   `json:"game"`
			Grids []steamgriddb.Grid `json:"grids,omitempty"`
		}{game, grids}),
	}
	for _, grid := range grids {
		if grid.URL != "" && !grid.NSFW {
			c.CoverURL = grid.URL
			break
		}
	}
	return c
}
