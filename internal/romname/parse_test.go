package romname

import (
	"slices"
	"testing"
)

func TestParseScenario(t *testing.T) {
	got := Parse("Super Mario Bros. (USA) (Rev A).nes")
	if got.SearchTerm != "Super Mario Bros." {
		t.Fatalf("SearchTerm = %q, want %q", got.SearchTerm, "Super Mario Bros.")
	}
	if got.Tags.Region() != "USA" {
		t.Fatalf("Region = %q, want USA", got.Tags.Region())
	}
	if got.Tags.Revision != "A" {
		t.Fatalf("Revision = %q, want A", got.Tags.Revision)
	}
	if got.Extension != "nes" {
		t.Fatalf("Extension = %q, want nes", got.Extension)
	}
	if got.NormalizedName != "super mario bros" {
		t.Fatalf("NormalizedName = %q", got.NormalizedName)
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		term      string
		regions   []string
		revision  string
		languages []string
		serial    string
		other     []string
	}{
		{
			name:    "multi region and other",
			file:    "Pokemon - Red Version (USA, Europe) (SGB Enhanced).gb",
			term:    "Pokemon - Red Version",
			regions: []string{"USA", "Europe"},
			other:   []string{"SGB Enhanced"},
		},
		{
			name:      "languages",
			file:      "Tetris (World) (En,Ja).gb",
			term:      "Tetris",
			regions:   []string{"World"},
			languages: []string{"En", "Ja"},
		},
		{
			name:     "version revision and good dump flag",
			file:     "Sonic the Hedgehog (E) (v1.1) [!].md",
			term:     "Sonic the Hedgehog",
			regions:  []string{"Europe"},
			revision: "1.1",
			other:    []string{"!"},
		},
		{
			name:    "disc serial",
			file:    "Final Fantasy VII (USA) (Disc 1) [SCUS_941.63].bin",
			term:    "Final Fantasy VII",
			regions: []string{"USA"},
			serial:  "SCUS-94163",
			other:   []string{"Disc 1"},
		},
		{
			name:    "trailing article with subtitle",
			file:    "Legend of Zelda, The - A Link to the Past (U).sfc",
			term:    "The Legend of Zelda - A Link to the Past",
			regions: []string{"USA"},
		},
		{
			name: "no extension",
			file: "roms/snes/Super Mario Bros. 3",
			term: "Super Mario Bros. 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.file)
			if got.SearchTerm != tt.term {
				t.Errorf("SearchTerm = %q, want %q", got.SearchTerm, tt.term)
			}
			if !slices.Equal(got.Tags.Regions, tt.regions) {
				t.Errorf("Regions = %v, want %v", got.Tags.Regions, tt.regions)
			}
			if got.Tags.Revision != tt.revision {
				t.Errorf("Revision = %q, want %q", got.Tags.Revision, tt.revision)
			}
			if !slices.Equal(got.Tags.Languages, tt.languages) {
				t.Errorf("Languages = %v, want %v", got.Tags.Languages, tt.languages)
			}
			if got.Tags.Serial != tt.serial {
				t.Errorf("Serial = %q, want %q", got.Tags.Serial, tt.serial)
			}
			if !slices.Equal(got.Tags.Other, tt.other) {
				t.Errorf("Other = %v, want %v", got.Tags.Other, tt.other)
			}
		})
	}
}

func TestNormalizeName(t *testing.T) {
	tests := map[string]string{
		"Super Mario Bros.":           "super mario bros",
		"The Legend of Zelda":         "legend of zelda",
		"Pokémon Snap":                "pokemon snap",
		"Banjo & Kazooie":             "banjo and kazooie",
		"Kirby's Dream Land":          "kirbys dream land",
		"  Street   Fighter II: Turbo": "street fighter ii turbo",
		"":                            "",
	}
	for input, want := range tests {
		if got := NormalizeName(input); got != want {
			t.Errorf("NormalizeName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestTransliterate(t *testing.T) {
	tests := map[string]string{
		"Pokémon Stadium":     "Pokemon Stadium",
		"Die Straße":          "Die Strasse",
		"Ōkami":               "Okami",
		"ドラゴンクエスト Dragon Quest": "Dragon Quest",
	}
	for input, want := range tests {
		got := Transliterate(input)
		if got != want {
			t.Errorf("Transliterate(%q) = %q, want %q", input, got, want)
		}
		if !IsASCII(got) {
			t.Errorf("Transliterate(%q) is not ASCII: %q", input, got)
		}
	}
	if IsASCII("Pokémon") {
		t.Fatal("expected accented title to be non-ASCII")
	}
}
