package providers

import (
	"context"
	"strconv"

	"github.com/rommapp/romm-sub002/internal/metadata"
	"github.com/rommapp/romm-sub002/internal/platform"
	"github.com/rommapp/romm-sub002/internal/services/hasheous"
)

// hasheousLinks maps Hasheous metadata sources to provider keys.
var hasheousLinks = map[string]string{
	hasheous.SourceIGDB:              metadata.ProviderIGDB,
	hasheous.SourceTheGamesDB:        metadata.ProviderTGDB,
	hasheous.SourceRetroAchievements: metadata.ProviderRetroAchievements,
}

type hasheousProvider struct {
	client *hasheous.Client
}

func (p *hasheousProvider) Name() string  { return metadata.ProviderHasheous }
func (p *hasheousProvider) Enabled() bool { return p.client != nil }

func (p *hasheousProvider) Capabilities() metadata.Capabilities {
	return metadata.Capabilities{HashLookup: true}
}

func (p *hasheousProvider) SearchByHash(ctx context.Context, rom metadata.ROM) ([]metadata.Candidate, error) {
	result, err := p.client.LookupByHash(ctx, hasheous.HashQuery{
		MD5:   rom.Hashes.MD5,
		SHA1:  rom.Hashes.SHA1,
		CRC32: rom.Hashes.CRC32,
	})
	if err != nil || result == nil {
		return nil, err
	}
	return []metadata.Candidate{normalizeHasheous(*result)}, nil
}

// Search is unsupported: Hasheous only identifies by checksum.
func (p *hasheousProvider) Search(context.Context, string, platform.Identity) ([]metadata.Candidate, error) {
	return nil, nil
}

func (p *hasheousProvider) GetByID(context.Context, string) (*metadata.Candidate, error) {
	return nil, nil
}

func normalizeHasheous(result hasheous.Result) metadata.Candidate {
	c := metadata.Candidate{
		Provider:    metadata.ProviderHasheous,
		ExternalID:  strconv.FormatInt(result.ID, 10),
		Name:        result.Name,
		ReleaseDate: isoDate(result.Year),
		Raw:         rawJSON(result),
	}
	if result.Publisher != nil {
		c.Companies = nonEmpty(result.Publisher.Name)
	}
	for _, link := range result.Metadata {
		provider, ok := hasheousLinks[link.Source]
		if !ok {
			continue
		}
		if id := result.LinkedID(link.Source); id != "" {
			if c.CrossIDs == nil {
				c.CrossIDs = make(map[string]string)
			}
			c.CrossIDs[provider] = id
		}
	}
	return c
}
