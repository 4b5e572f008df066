package launchbox

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rommapp/romm-sub002/internal/romname"
)

// Game is one <Game> element.
type Game struct {
	DatabaseID      int64   `xml:"DatabaseID"`
	Name            string  `xml:"Name"`
	ReleaseDate     string  `xml:"ReleaseDate"`
	Overview        string  `xml:"Overview"`
	Platform        string  `xml:"Platform"`
	Genres          string  `xml:"Genres"`
	Developer       string  `xml:"Developer"`
	Publisher       string  `xml:"Publisher"`
	CommunityRating float64 `xml:"CommunityRating"`
	MaxPlayers      int     `xml:"MaxPlayers"`
	ESRB            string  `xml:"ESRB"`

	AlternateNames []AlternateName `xml:"-"`
	Images         []Image         `xml:"-"`
}

// GenreList splits the semicolon-separated genre field.
func (g *Game) GenreList() []string {
	var out []string
	for _, genre := range strings.Split(g.Genres, ";") {
		if genre = strings.TrimSpace(genre); genre != "" {
			out = append(out, genre)
		}
	}
	return out
}

// Regions lists the distinct regions of the game's alternate names.
func (g *Game) Regions() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, alt := range g.AlternateNames {
		if alt.Region == "" {
			continue
		}
		if _, ok := seen[alt.Region]; ok {
			continue
		}
		seen[alt.Region] = struct{}{}
		out = append(out, alt.Region)
	}
	return out
}

// AlternateName is a <GameAlternateName> element.
type AlternateName struct {
	DatabaseID    int64  `xml:"DatabaseID"`
	AlternateName string `xml:"AlternateName"`
	Region        string `xml:"Region"`
}

// Image is a <GameImage> element.
type Image struct {
	DatabaseID int64  `xml:"DatabaseID"`
	FileName   string `xml:"FileName"`
	Type       string `xml:"Type"`
	Region     string `xml:"Region"`
}

// Database is a lazily loaded, read-only index over Metadata.xml.
type Database struct {
	path         string
	imageBaseURL string

	mu      sync.Mutex
	loaded  bool
	loadErr error

	byID       map[int64]*Game
	byPlatform map[string][]*Game
}

// Open returns a Database for path. The file is read on first query.
func Open(path, imageBaseURL string) (*Database, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("launchbox metadata path required")
	}
	return &Database{path: path, imageBaseURL: strings.TrimRight(imageBaseURL, "/")}, nil
}

// Load parses the metadata file if it has not been parsed yet. A load cut
// short by ctx is retried on the next call; other failures are sticky.
func (d *Database) Load(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.loaded {
		return d.loadErr
	}
	err := d.load(ctx)
	if err != nil && ctx.Err() != nil {
		return err
	}
	d.loaded = true
	d.loadErr = err
	return err
}

// Search returns the games on platform whose name or alternate name
// normalizes to the same value as term, falling back to every game on the
// platform that shares a token with term.
func (d *Database) Search(ctx context.Context, term, platform string) ([]*Game, error) {
	if err := d.Load(ctx); err != nil {
		return nil, err
	}
	want := romname.NormalizeName(term)
	if want == "" {
		return nil, nil
	}
	tokens := strings.Fields(want)
	var exact, partial []*Game
	for _, game := range d.byPlatform[platformKey(platform)] {
		names := append([]string{game.Name}, altNames(game)...)
		matched := false
		for _, name := range names {
			if romname.NormalizeName(name) == want {
				exact = append(exact, game)
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		normalized := romname.NormalizeName(game.Name)
		for _, token := range tokens {
			if len(token) > 2 && strings.Contains(normalized, token) {
				partial = append(partial, game)
				break
			}
		}
	}
	if len(exact) > 0 {
		return exact, nil
	}
	return partial, nil
}

// Get returns the game with the given database id, or nil.
func (d *Database) Get(ctx context.Context, id int64) (*Game, error) {
	if err := d.Load(ctx); err != nil {
		return nil, err
	}
	return d.byID[id], nil
}

// ImageURL returns the absolute URL for an image file name.
func (d *Database) ImageURL(fileName string) string {
	if fileName == "" {
		return ""
	}
	return d.imageBaseURL + "/" + fileName
}

func (d *Database) load(ctx context.Context) error {
	file, err := os.Open(d.path)
	if err != nil {
		return fmt.Errorf("open launchbox metadata: %w", err)
	}
	defer file.Close()
	return d.decode(ctx, file)
}

func (d *Database) decode(ctx context.Context, r io.Reader) error {
	d.byID = make(map[int64]*Game)
	d.byPlatform = make(map[string][]*Game)
	var alternates []AlternateName
	var images []Image

	decoder := xml.NewDecoder(r)
	for count := 0; ; count++ {
		if count%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("parse launchbox metadata: %w", err)
		}
		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "Game":
			var game Game
			if err := decoder.DecodeElement(&game, &start); err != nil {
				return fmt.Errorf("parse launchbox game: %w", err)
			}
			if game.DatabaseID == 0 {
				continue
			}
			entry := &game
			d.byID[game.DatabaseID] = entry
			key := platformKey(game.Platform)
			d.byPlatform[key] = append(d.byPlatform[key], entry)
		case "GameAlternateName":
			var alt AlternateName
			if err := decoder.DecodeElement(&alt, &start); err != nil {
				return fmt.Errorf("parse launchbox alternate name: %w", err)
			}
			alternates = append(alternates, alt)
		case "GameImage":
			var image Image
			if err := decoder.DecodeElement(&image, &start); err != nil {
				return fmt.Errorf("parse launchbox image: %w", err)
			}
			images = append(images, image)
		}
	}

	for _, alt := range alternates {
		if game := d.byID[alt.DatabaseID]; game != nil {
			game.AlternateNames = append(game.AlternateNames, alt)
		}
	}
	for _, image := range images {
		if game := d.byID[image.DatabaseID]; game != nil {
			game.Images = append(game.Images, image)
		}
	}
	return nil
}

func altNames(game *Game) []string {
	out := make([]string, 0, len(game.AlternateNames))
	for _, alt := range game.AlternateNames {
		out = append(out, alt.AlternateName)
	}
	return out
}

func platformKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
