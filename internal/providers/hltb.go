package providers

import (
	"context"
	"strconv"

	"github.com/rommapp/romm-sub002/internal/metadata"
	"github.com/rommapp/romm-sub002/internal/platform"
	"github.com/rommapp/romm-sub002/internal/services/hltb"
)

type hltbProvider struct {
	client *hltb.Client
}

func (p *hltbProvider) Name() string  { return metadata.ProviderHLTB }
func (p *hltbProvider) Enabled() bool { return p.client != nil }

func (p *hltbProvider) Capabilities() metadata.Capabilities { return metadata.Capabilities{} }

func (p *hltbProvider) SearchByHash(context.Context, metadata.ROM) ([]metadata.Candidate, error) {
	return nil, nil
}

func (p *hltbProvider) Search(ctx context.Context, term string, pl platform.Identity) ([]metadata.Candidate, error) {
	games, err := p.client.SearchGames(ctx, term, pl.HLTB)
	if err != nil {
		return nil, err
	}
	out := make([]metadata.Candidate, 0, len(games))
	for _, game := range games {
		out = append(out, normalizeHLTB(p.client, game))
	}
	return out, nil
}

// GetByID is unsupported: HowLongToBeat has no lookup endpoint.
func (p *hltbProvider) GetByID(context.Context, string) (*metadata.Candidate, error) {
	return nil, nil
}

func normalizeHLTB(client *hltb.Client, game hltb.Game) metadata.Candidate {
	c := metadata.Candidate{
		Provider:   metadata.ProviderHLTB,
		ExternalID: strconv.FormatInt(game.ID, 10),
		Name:       game.Name,
		AltNames:   splitList(game.Alias, ","),
		CoverURL:   client.ImageURL(game.Image),
		Rating:     scaledRating(float64(game.ReviewScore), 1),
		Raw:        rawJSON(game),
	}
	if game.ReleaseWorld > 0 {
		c.ReleaseDate = strconv.Itoa(game.ReleaseWorld)
	}
	return c
}
