package providers

import (
	"context"
	"strconv"
	"strings"

	"github.com/rommapp/romm-sub002/internal/metadata"
	"github.com/rommapp/romm-sub002/internal/platform"
	"github.com/rommapp/romm-sub002/internal/services/screenscraper"
)

// ssRegionOrder is the preference order for localized names and media.
var ssRegionOrder = []string{"us", "wor", "ss", "eu", "jp"}

type screenScraperProvider struct {
	client *screenscraper.Client
}

func (p *screenScraperProvider) Name() string  { return metadata.ProviderScreenScraper }
func (p *screenScraperProvider) Enabled() bool { return p.client != nil }

func (p *screenScraperProvider) Capabilities() metadata.Capabilities {
	return metadata.Capabilities{HashLookup: true}
}

func (p *screenScraperProvider) SearchByHash(ctx context.Context, rom metadata.ROM) ([]metadata.Candidate, error) {
	if rom.Platform.ScreenScraper == 0 {
		return nil, nil
	}
	game, err := p.client.LookupByHash(ctx, screenscraper.HashQuery{
		SystemID: rom.Platform.ScreenScraper,
		CRC32:    rom.Hashes.CRC32,
		MD5:      rom.Hashes.MD5,
		SHA1:     rom.Hashes.SHA1,
		FileName: rom.Name.FileName,
		Size:     rom.Size,
	})
	if err != nil || game == nil {
		return nil, err
	}
	return []metadata.Candidate{normalizeScreenScraper(*game)}, nil
}

func (p *screenScraperProvider) Search(ctx context.Context, term string, pl platform.Identity) ([]metadata.Candidate, error) {
	if pl.ScreenScraper == 0 {
		return nil, nil
	}
	games, err := p.client.SearchGames(ctx, term, pl.ScreenScraper)
	if err != nil {
		return nil, err
	}
	out := make([]metadata.Candidate, 0, len(games))
	for _, game := range games {
		out = append(out, normalizeScreenScraper(game))
	}
	return out, nil
}

func (p *screenScraperProvider) GetByID(ctx context.Context, id string) (*metadata.Candidate, error) {
	numeric, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, nil
	}
	game, err := p.client.GetGame(ctx, numeric)
	if err != nil || game == nil {
		return nil, err
	}
	candidate := normalizeScreenScraper(*game)
	return &candidate, nil
}

func normalizeScreenScraper(game screenscraper.Game) metadata.Candidate {
	c := metadata.Candidate{
		Provider:    metadata.ProviderScreenScraper,
		ExternalID:  strconv.FormatInt(int64(game.ID), 10),
		Name:        pickRegionText(game.Names),
		Summary:     pickLanguageText(game.Synopsis),
		ReleaseDate: isoDate(pickRegionText(game.Dates)),
		Raw:         rawJSON(game),
	}
	var regionCodes []string
	for _, name := range game.Names {
		c.AltNames = append(c.AltNames, name.Text)
		regionCodes = append(regionCodes, name.Region)
	}
	c.AltNames = withoutName(nonEmpty(c.AltNames...), c.Name)
	for _, genre := range game.Genres {
		c.Genres = append(c.Genres, pickLanguageText(genre.Names))
	}
	c.Genres = nonEmpty(c.Genres...)
	for _, company := range []*screenscraper.IDText{game.Developer, game.Publisher} {
		if company != nil {
			c.Companies = append(c.Companies, company.Text)
		}
	}
	c.Companies = nonEmpty(c.Companies...)
	c.CoverURL = pickMedia(game.Medias, "box-2D")
	for _, media := range game.Medias {
		if media.Type == "ss" {
			c.ScreenshotURLs = append(c.ScreenshotURLs, media.URL)
		}
	}
	c.ScreenshotURLs = nonEmpty(c.ScreenshotURLs...)
	if game.Rating != nil {
		if note, err := strconv.ParseFloat(strings.TrimSpace(game.Rating.Text), 64); err == nil {
			c.Rating = scaledRating(note, 5)
		}
	}

	roms := game.ROMs
	if game.ROM != nil {
		roms = append([]screenscraper.ROMInfo{*game.ROM}, roms...)
	}
	var languages []string
	for _, rom := range roms {
		c.Serials = append(c.Serials, splitList(rom.Serial, ",")...)
		regionCodes = append(regionCodes, splitList(rom.Regions, ",")...)
		languages = append(languages, splitList(rom.Languages, ",")...)
	}
	c.Serials = nonEmpty(c.Serials...)
	c.Regions = regionList(regionCodes...)
	for i, lang := range languages {
		languages[i] = strings.ToLower(lang)
	}
	c.Languages = nonEmpty(languages...)
	return c
}

func pickRegionText(values []screenscraper.RegionText) string {
	for _, region := range ssRegionOrder {
		for _, v := range values {
			if strings.EqualFold(v.Region, region) && strings.TrimSpace(v.Text) != "" {
				return strings.TrimSpace(v.Text)
			}
		}
	}
	for _, v := range values {
		if text := strings.TrimSpace(v.Text); text != "" {
			return text
		}
	}
	return ""
}

func pickLanguageText(values []screenscraper.LanguageText) string {
	for _, v := range values {
		if strings.EqualFold(v.Language, "en") && strings.TrimSpace(v.Text) != "" {
			return strings.TrimSpace(v.Text)
		}
	}
	for _, v := range values {
		if text := strings.TrimSpace(v.Text); text != "" {
			return text
		}
	}
	return ""
}

func pickMedia(medias []screenscraper.Media, kind string) string {
	for _, region := range ssRegionOrder {
		for _, m := range medias {
			if m.Type == kind && strings.EqualFold(m.Region, region) && m.URL != "" {
				return m.URL
			}
		}
	}
	for _, m := range medias {
		if m.Type == kind && m.URL != "" {
			return m.URL
		}
	}
	return ""
}

func withoutName(values []string, name string) []string {
	out := values[:0]
	for _, v := range values {
		if v != name {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
