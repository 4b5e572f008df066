package providers

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/rommapp/romm-sub002/internal/metadata"
	"github.com/rommapp/romm-sub002/internal/services/hasheous"
	"github.com/rommapp/romm-sub002/internal/services/igdb"
	"github.com/rommapp/romm-sub002/internal/services/mobygames"
	"github.com/rommapp/romm-sub002/internal/services/screenscraper"
)

func TestNormalizeIGDB(t *testing.T) {
	var game igdb.Game
	payload := `{"id":3340,"name":"Super Mario Bros.","summary":"Plumbers.","first_release_date":495417600,
		"total_rating":87.5,"cover":{"id":1,"image_id":"co1abc"},"genres":[{"id":8,"name":"Platform"}],
		"involved_companies":[{"company":{"id":70,"name":"Nintendo"}},{"company":null}],
		"alternative_names":[{"name":"Super Mario Brothers"}],"game_modes":[{"id":1,"name":"Single player"}]}`
	if err := json.Unmarshal([]byte(payload), &game); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	c := normalizeIGDB(game)
	if c.ExternalID != "3340" || c.Name != "Super Mario Bros." {
		t.Fatalf("unexpected identity %+v", c)
	}
	if c.ReleaseDate != "1985-09-13" {
		t.Fatalf("unexpected release date %q", c.ReleaseDate)
	}
	if c.Rating == nil || *c.Rating != 87.5 {
		t.Fatalf("unexpected rating %v", c.Rating)
	}
	if !slices.Equal(c.Companies, []string{"Nintendo"}) || !slices.Equal(c.Genres, []string{"Platform"}) {
		t.Fatalf("unexpected lists %+v", c)
	}
	if c.CoverURL == "" || !slices.Equal(c.AltNames, []string{"Super Mario Brothers"}) {
		t.Fatalf("unexpected cover/alt names %+v", c)
	}
	if len(c.Raw) == 0 {
		t.Fatal("expected raw payload")
	}
}

func TestNormalizeIGDBSparse(t *testing.T) {
	c := normalizeIGDB(igdb.Game{ID: 1})
	if c.ExternalID != "1" || c.Name != "" || c.Rating != nil || c.CoverURL != "" || c.ReleaseDate != "" {
		t.Fatalf("sparse record should normalize to empty fields, got %+v", c)
	}
}

func TestNormalizeMobyUsesPlatformReleaseDate(t *testing.T) {
	score := 8.1
	game := mobygames.Game{
		GameID:    180,
		Title:     "Super Mario Bros.",
		MobyScore: &score,
		Platforms: []mobygames.Platform{
			{ID: 3, FirstReleaseDate: "1987"},
			{ID: 22, FirstReleaseDate: "1985-09-13"},
		},
		SampleCover: &mobygames.Cover{Image: "https://cdn/cover.jpg"},
	}
	c := normalizeMoby(game, 22)
	if c.ReleaseDate != "1985-09-13" {
		t.Fatalf("expected platform release date, got %q", c.ReleaseDate)
	}
	if c.Rating == nil || *c.Rating != 81 {
		t.Fatalf("expected moby score scaled to 81, got %v", c.Rating)
	}
	if earliest := normalizeMoby(game, 0); earliest.ReleaseDate != "1985-09-13" {
		t.Fatalf("expected earliest date without platform, got %q", earliest.ReleaseDate)
	}
}

func TestNormalizeScreenScraper(t *testing.T) {
	var game screenscraper.Game
	payload := `{"id":"1234",
		"noms":[{"region":"jp","text":"Super Mario Bros. (J)"},{"region":"us","text":"Super Mario Bros."}],
		"synopsis":[{"langue":"fr","text":"Sauvez"},{"langue":"en","text":"Save the princess"}],
		"dates":[{"region":"us","text":"1985-10-18"}],
		"genres":[{"id":"7","noms":[{"langue":"en","text":"Platform"}]}],
		"medias":[{"type":"box-2D","region":"jp","url":"https://ss/jp.png"},{"type":"box-2D","region":"us","url":"https://ss/us.png"},{"type":"ss","url":"https://ss/shot.png"}],
		"editeur":{"id":"3","text":"Nintendo"},
		"note":{"text":"16"},
		"rom":{"romserial":"SLUS-00594","romregions":"us,eu","romlangues":"en"}}`
	if err := json.Unmarshal([]byte(payload), &game); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	c := normalizeScreenScraper(game)
	if c.ExternalID != "1234" || c.Name != "Super Mario Bros." {
		t.Fatalf("unexpected identity %q %q", c.ExternalID, c.Name)
	}
	if c.Summary != "Save the princess" || c.CoverURL != "https://ss/us.png" {
		t.Fatalf("unexpected localized fields %+v", c)
	}
	if c.Rating == nil || *c.Rating != 80 {
		t.Fatalf("expected note 16/20 scaled to 80, got %v", c.Rating)
	}
	if !slices.Equal(c.Serials, []string{"SLUS-00594"}) {
		t.Fatalf("unexpected serials %v", c.Serials)
	}
	if !slices.Equal(c.Regions, []string{"Japan", "USA", "Europe"}) {
		t.Fatalf("unexpected regions %v", c.Regions)
	}
	if !slices.Equal(c.AltNames, []string{"Super Mario Bros. (J)"}) {
		t.Fatalf("unexpected alt names %v", c.AltNames)
	}
}

func TestNormalizeHasheousCrossIDs(t *testing.T) {
	result := hasheous.Result{
		ID:   77,
		Name: "Super Mario Bros.",
		Metadata: []hasheous.MetadataLink{
			{ID: "super-mario-bros", Source: "IGDB", ImmutableID: "3340"},
			{ID: "140", Source: "TheGamesDB"},
			{ID: "9", Source: "GiantBomb"},
		},
	}
	c := normalizeHasheous(result)
	if c.CrossIDs[metadata.ProviderIGDB] != "3340" || c.CrossIDs[metadata.ProviderTGDB] != "140" {
		t.Fatalf("unexpected cross ids %v", c.CrossIDs)
	}
	if len(c.CrossIDs) != 2 {
		t.Fatalf("unknown sources must be ignored, got %v", c.CrossIDs)
	}
}

func TestIsoDate(t *testing.T) {
	cases := map[string]string{
		"1985-09-13T00:00:00-04:00": "1985-09-13",
		"1985-09-13 00:00:00":       "1985-09-13",
		"September 13, 1985":        "1985-09-13",
		"1985":                      "1985",
		"soon":                      "",
		"":                          "",
	}
	for in, want := range cases {
		if got := isoDate(in); got != want {
			t.Errorf("isoDate(%q) = %q, want %q", in, got, want)
		}
	}
}
