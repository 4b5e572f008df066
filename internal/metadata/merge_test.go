package metadata

import (
	"encoding/json"
	"testing"

	"github.com/rommapp/romm-sub002/internal/config"
)

func float(v float64) *float64 { return &v }

func sampleCandidates() map[string]*Candidate {
	return map[string]*Candidate{
		ProviderIGDB: {
			Provider: ProviderIGDB, ExternalID: "1074", Name: "Paper Mario",
			Summary: "An RPG.", Genres: []string{"Role-playing (RPG)", "Adventure"},
			CoverURL: "https://images.igdb.com/cover.jpg", Rating: float(88.5),
			ReleaseDate: "2000-08-11", Raw: json.RawMessage(`{"id":1074}`),
		},
		ProviderScreenScraper: {
			Provider: ProviderScreenScraper, ExternalID: "12345", Name: "Paper Mario (J)",
			Regions: []string{"Japan"}, Languages: []string{"Ja"},
			CoverURL: "https://screenscraper.fr/box.png",
			Raw:      json.RawMessage(`{"id":"12345"}`),
		},
		ProviderMobyGames: nil,
		ProviderHasheous: {
			Provider: ProviderHasheous, ExternalID: "55",
			CrossIDs: map[string]string{ProviderIGDB: "999", ProviderTGDB: "4242", ProviderRetroAchievements: "10"},
		},
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	priority := config.Default().Scan.Priority
	first, err := json.Marshal(Merge(sampleCandidates(), priority))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for range 5 {
		again, err := json.Marshal(Merge(sampleCandidates(), priority))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(again) != string(first) {
			t.Fatalf("merge not deterministic:\n%s\n%s", first, again)
		}
	}
}

func TestMergePriorityRespected(t *testing.T) {
	candidates := sampleCandidates()

	record := Merge(candidates, config.Priority{Metadata: []string{ProviderIGDB, ProviderScreenScraper}})
	if record.Name != "Paper Mario" {
		t.Fatalf("expected igdb name, got %q", record.Name)
	}
	record = Merge(candidates, config.Priority{Metadata: []string{ProviderScreenScraper, ProviderIGDB}})
	if record.Name != "Paper Mario (J)" {
		t.Fatalf("expected ss name, got %q", record.Name)
	}
	if record.Sources["name"] != ProviderScreenScraper {
		t.Fatalf("unexpected name source %q", record.Sources["name"])
	}
	if record.Summary != "An RPG." {
		t.Fatalf("expected summary to fall through to igdb, got %q", record.Summary)
	}
}

func TestMergeIndependentFieldOrders(t *testing.T) {
	priority := config.Priority{
		Metadata: []string{ProviderIGDB},
		Artwork:  []string{ProviderScreenScraper, ProviderIGDB},
		Region:   []string{ProviderScreenScraper},
		Language: []string{ProviderScreenScraper},
	}
	record := Merge(sampleCandidates(), priority)
	if record.Name != "Paper Mario" {
		t.Fatalf("unexpected name %q", record.Name)
	}
	if record.CoverURL != "https://screenscraper.fr/box.png" {
		t.Fatalf("expected artwork from ss, got %q", record.CoverURL)
	}
	if len(record.Regions) != 1 || record.Regions[0] != "Japan" {
		t.Fatalf("unexpected regions %v", record.Regions)
	}
	if record.Rating == nil || *record.Rating != 88.5 {
		t.Fatalf("unexpected rating %v", record.Rating)
	}
}

func TestMergePreservesEveryProviderID(t *testing.T) {
	for _, order := range [][]string{
		{ProviderIGDB, ProviderScreenScraper},
		{ProviderScreenScraper, ProviderIGDB},
		{ProviderHasheous},
	} {
		record := Merge(sampleCandidates(), config.Priority{Metadata: order})
		if id, _ := record.IDs.Get(ProviderIGDB); id != "1074" {
			t.Fatalf("order %v: igdb id %q, want own id 1074 over cross-reference", order, id)
		}
		if id, _ := record.IDs.Get(ProviderScreenScraper); id != "12345" {
			t.Fatalf("order %v: ss id %q", order, id)
		}
		if id, _ := record.IDs.Get(ProviderHasheous); id != "55" {
			t.Fatalf("order %v: hasheous id %q", order, id)
		}
		if id, _ := record.IDs.Get(ProviderTGDB); id != "4242" {
			t.Fatalf("order %v: tgdb cross id %q", order, id)
		}
		if id, _ := record.IDs.Get(ProviderRetroAchievements); id != "10" {
			t.Fatalf("order %v: ra cross id %q", order, id)
		}
		if record.IDs.Has(ProviderMobyGames) {
			t.Fatalf("order %v: nil candidate must leave moby id empty", order)
		}
	}
}

func TestMergeConflictingNames(t *testing.T) {
	candidates := map[string]*Candidate{
		ProviderLaunchBox: {ExternalID: "1", Name: "Paper Mario"},
		ProviderIGDB:      {ExternalID: "2", Name: "Paper Mario (J)"},
	}
	record := Merge(candidates, config.Priority{Metadata: []string{ProviderLaunchBox, ProviderIGDB}})
	if record.Name != "Paper Mario" {
		t.Fatalf("expected first-priority name, got %q", record.Name)
	}
}

func TestMergeKeepsProviderPayloads(t *testing.T) {
	record := Merge(sampleCandidates(), config.Default().Scan.Priority)
	if string(record.ProviderData[ProviderIGDB]) != `{"id":1074}` {
		t.Fatalf("unexpected igdb payload %s", record.ProviderData[ProviderIGDB])
	}
	if _, ok := record.ProviderData[ProviderHasheous]; ok {
		t.Fatal("expected no payload for candidate without raw data")
	}
}
