package providers

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/rommapp/romm-sub002/internal/metadata"
	"github.com/rommapp/romm-sub002/internal/platform"
	"github.com/rommapp/romm-sub002/internal/services/launchbox"
)

var launchBoxRegionOrder = []string{"North America", "World", "United States", ""}

type launchBoxProvider struct {
	db   *launchbox.Database
	path string
}

func (p *launchBoxProvider) Name() string { return metadata.ProviderLaunchBox }

// Enabled reports whether the metadata dump is present on disk.
func (p *launchBoxProvider) Enabled() bool {
	info, err := os.Stat(p.path)
	return err == nil && !info.IsDir()
}

func (p *launchBoxProvider) Capabilities() metadata.Capabilities { return metadata.Capabilities{} }

func (p *launchBoxProvider) SearchByHash(context.Context, metadata.ROM) ([]metadata.Candidate, error) {
	return nil, nil
}

func (p *launchBoxProvider) Search(ctx context.Context, term string, pl platform.Identity) ([]metadata.Candidate, error) {
	if pl.LaunchBox == "" {
		return nil, nil
	}
	games, err := p.db.Search(ctx, term, pl.LaunchBox)
	if err != nil {
		return nil, err
	}
	out := make([]metadata.Candidate, 0, len(games))
	for _, game := range games {
		out = append(out, normalizeLaunchBox(p.db, game))
	}
	return out, nil
}

func (p *launchBoxProvider) GetByID(ctx context.Context, id string) (*metadata.Candidate, error) {
	numeric, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, nil
	}
	game, err := p.db.Get(ctx, numeric)
	if err != nil || game == nil {
		return nil, err
	}
	candidate := normalizeLaunchBox(p.db, game)
	return &candidate, nil
}

func normalizeLaunchBox(db *launchbox.Database, game *launchbox.Game) metadata.Candidate {
	c := metadata.Candidate{
		Provider:    metadata.ProviderLaunchBox,
		ExternalID:  strconv.FormatInt(game.DatabaseID, 10),
		Name:        game.Name,
		Summary:     game.Overview,
		Genres:      game.GenreList(),
		Companies:   nonEmpty(game.Developer, game.Publisher),
		Rating:      scaledRating(game.CommunityRating, 20),
		ReleaseDate: isoDate(game.ReleaseDate),
		Regions:     game.Regions(),
		Raw:         rawJSON(game),
	}
	for _, alt := range game.AlternateNames {
		c.AltNames = append(c.AltNames, alt.AlternateName)
	}
	c.AltNames = nonEmpty(c.AltNames...)
	if game.ESRB != "" {
		c.Tags = []string{game.ESRB}
	}
	c.CoverURL = db.ImageURL(pickLaunchBoxImage(game.Images, "Box - Front"))
	for _, image := range game.Images {
		if strings.HasPrefix(image.Type, "Screenshot") {
			c.ScreenshotURLs = append(c.ScreenshotURLs, db.ImageURL(image.FileName))
		}
	}
	c.ScreenshotURLs = nonEmpty(c.ScreenshotURLs...)
	return c
}

func pickLaunchBoxImage(images []launchbox.Image, kind string) string {
	for _, region := range launchBoxRegionOrder {
		for _, image := range images {
			if image.Type == kind && image.Region == region {
				return image.FileName
			}
		}
	}
	for _, image := range images {
		if image.Type == kind {
			return image.FileName
		}
	}
	return ""
}
