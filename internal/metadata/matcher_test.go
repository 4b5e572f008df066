package metadata

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/rommapp/romm-sub002/internal/config"
	"github.com/rommapp/romm-sub002/internal/platform"
	"github.com/rommapp/romm-sub002/internal/services"
)

func TestMatchAndMergeScenario(t *testing.T) {
	igdb := newStub(ProviderIGDB)
	igdb.searchResults = []Candidate{{ExternalID: "3340", Name: "Super Mario Bros."}}

	rom := nesROM("Super Mario Bros. (USA) (Rev A).nes")
	matcher := NewMatcher([]Provider{igdb})
	results, err := matcher.Match(context.Background(), rom)
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if terms := igdb.searchTerms(); !slices.Equal(terms, []string{"Super Mario Bros."}) {
		t.Fatalf("unexpected search terms %v", terms)
	}
	if results[ProviderIGDB] == nil || results[ProviderIGDB].Match != MatchExactName {
		t.Fatalf("expected exact-name igdb match, got %+v", results[ProviderIGDB])
	}

	record := Merge(results, config.Priority{Metadata: []string{ProviderIGDB}})
	if record.Name != "Super Mario Bros." {
		t.Fatalf("unexpected name %q", record.Name)
	}
	if id, _ := record.IDs.Get(ProviderIGDB); id != "3340" {
		t.Fatalf("unexpected igdb id %q", id)
	}
}

func TestMatchIsolatesFailingProvider(t *testing.T) {
	broken := newStub(ProviderMobyGames)
	broken.searchErr = &services.UnavailableError{Service: ProviderMobyGames, Err: errors.New("dial tcp: no such host")}
	working := newStub(ProviderIGDB)
	working.searchResults = []Candidate{{ExternalID: "1", Name: "Tetris"}}

	results, err := NewMatcher([]Provider{broken, working}).Match(context.Background(), nesROM("Tetris (USA).nes"))
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if results[ProviderIGDB] == nil {
		t.Fatal("expected working provider result")
	}
	if c, ok := results[ProviderMobyGames]; !ok || c != nil {
		t.Fatalf("expected failing provider mapped to nil, got %v (present=%v)", c, ok)
	}
}

func TestNoMatchProducesEmptyRecord(t *testing.T) {
	a := newStub(ProviderIGDB)
	b := newStub(ProviderScreenScraper)
	b.searchResults = []Candidate{{ExternalID: "9", Name: "Completely Different Game"}}

	results, err := NewMatcher([]Provider{a, b}).Match(context.Background(), nesROM("Homebrew Demo (PD).nes"))
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	for provider, c := range results {
		if c != nil {
			t.Fatalf("expected no candidate for %s, got %+v", provider, c)
		}
	}
	record := Merge(results, config.Default().Scan.Priority)
	if !record.IDs.IsEmpty() || record.Matched() {
		t.Fatalf("expected empty record, got %+v", record)
	}
	if record.Name != "" {
		t.Fatalf("expected empty name, got %q", record.Name)
	}
}

func TestDisabledProvidersSkipped(t *testing.T) {
	off := newStub(ProviderIGDB)
	off.enabled = false
	on := newStub(ProviderScreenScraper)

	matcher := NewMatcher([]Provider{off, on})
	if got := matcher.Providers(); !slices.Equal(got, []string{ProviderScreenScraper}) {
		t.Fatalf("unexpected providers %v", got)
	}
	results, _ := matcher.Match(context.Background(), nesROM("Tetris.nes"))
	if _, ok := results[ProviderIGDB]; ok {
		t.Fatal("disabled provider must not appear in results")
	}
	if len(off.searchTerms()) != 0 {
		t.Fatal("disabled provider must not be queried")
	}
}

func TestHashMatchPreferredOverName(t *testing.T) {
	ss := newStub(ProviderScreenScraper)
	ss.caps = Capabilities{HashLookup: true}
	ss.hashResults = []Candidate{{ExternalID: "77", Name: "Super Mario Bros."}}
	ss.searchResults = []Candidate{{ExternalID: "5", Name: "Super Mario Bros."}}

	p, _ := platform.Lookup("nes")
	rom := NewROM("smb.nes", 40976, Hashes{CRC32: "3337ec46"}, p)
	results, _ := NewMatcher([]Provider{ss}).Match(context.Background(), rom)
	got := results[ProviderScreenScraper]
	if got == nil || got.ExternalID != "77" || got.Match != MatchHash {
		t.Fatalf("expected hash match 77, got %+v", got)
	}
	if len(ss.searchTerms()) != 0 {
		t.Fatal("name search should not run after a hash hit")
	}
}

func TestHashMissFallsBackToName(t *testing.T) {
	ss := newStub(ProviderScreenScraper)
	ss.caps = Capabilities{HashLookup: true}
	ss.searchResults = []Candidate{{ExternalID: "5", Name: "Tetris"}}

	p, _ := platform.Lookup("gb")
	rom := NewROM("Tetris (World).gb", 32768, Hashes{MD5: "abc"}, p)
	results, _ := NewMatcher([]Provider{ss}).Match(context.Background(), rom)
	if results[ProviderScreenScraper] == nil || results[ProviderScreenScraper].ExternalID != "5" {
		t.Fatalf("expected name fallback, got %+v", results[ProviderScreenScraper])
	}
}

func TestTieBreakOrdering(t *testing.T) {
	igdb := newStub(ProviderIGDB)
	igdb.searchResults = []Candidate{
		{ExternalID: "900", Name: "Super Mario Bros"},
		{ExternalID: "12", Name: "Super Mario Bros."},
		{ExternalID: "40", Name: "Super Mario Bros: Special"},
	}
	results, _ := NewMatcher([]Provider{igdb}).Match(context.Background(), nesROM("Super Mario Bros. (USA).nes"))
	if got := results[ProviderIGDB]; got == nil || got.ExternalID != "12" {
		t.Fatalf("expected lowest id among exact matches, got %+v", got)
	}

	igdb.searchResults = []Candidate{
		{ExternalID: "3", Name: "Super Mario Bras"},
		{ExternalID: "2", Name: "Super Mario Brothers"},
	}
	results, _ = NewMatcher([]Provider{igdb}).Match(context.Background(), nesROM("Super Mario Bros. (USA).nes"))
	if got := results[ProviderIGDB]; got == nil || got.ExternalID != "3" {
		t.Fatalf("expected highest similarity to win, got %+v", got)
	}
}

func TestASCIIOnlyProviderReceivesTransliteratedTerm(t *testing.T) {
	moby := newStub(ProviderMobyGames)
	moby.caps = Capabilities{ASCIIOnly: true}
	igdb := newStub(ProviderIGDB)

	rom := nesROM("Pokémon Puzzle League (USA).n64")
	_, _ = NewMatcher([]Provider{moby, igdb}).Match(context.Background(), rom)
	if got := moby.searchTerms(); !slices.Equal(got, []string{"Pokemon Puzzle League"}) {
		t.Fatalf("unexpected moby terms %v", got)
	}
	if got := igdb.searchTerms(); !slices.Equal(got, []string{"Pokémon Puzzle League"}) {
		t.Fatalf("unexpected igdb terms %v", got)
	}
}

func TestDiscSerialDisambiguates(t *testing.T) {
	ss := newStub(ProviderScreenScraper)
	ss.searchResults = []Candidate{
		{ExternalID: "1", Name: "Final Fantasy VII", Serials: []string{"SCES-00867"}},
		{ExternalID: "2", Name: "Final Fantasy VII", Serials: []string{"SCUS-94163"}},
	}
	p, _ := platform.Lookup("psx")
	rom := NewROM("Final Fantasy VII (USA) (Disc 1) [SCUS-94163].bin", 1, Hashes{}, p)
	results, _ := NewMatcher([]Provider{ss}).Match(context.Background(), rom)
	if got := results[ProviderScreenScraper]; got == nil || got.ExternalID != "2" {
		t.Fatalf("expected serial match 2, got %+v", got)
	}
}

func TestCredentialFailureDisablesProviderForPass(t *testing.T) {
	igdb := newStub(ProviderIGDB)
	igdb.searchErr = services.Wrap(services.ErrCredentials, "igdb", "search", "http 401", nil)

	matcher := NewMatcher([]Provider{igdb})
	for range 3 {
		if _, err := matcher.Match(context.Background(), nesROM("Tetris.nes")); err != nil {
			t.Fatalf("Match returned error: %v", err)
		}
	}
	if got := len(igdb.searchTerms()); got != 1 {
		t.Fatalf("expected provider queried once before being disabled, got %d", got)
	}
	if got := matcher.Disabled(); !slices.Equal(got, []string{ProviderIGDB}) {
		t.Fatalf("unexpected disabled list %v", got)
	}
}

func TestDetailFetchReplacesSummary(t *testing.T) {
	ra := newStub(ProviderRetroAchievements)
	ra.caps = Capabilities{Detail: true}
	ra.searchResults = []Candidate{{ExternalID: "1446", Name: "Super Mario Bros."}}
	ra.detail = map[string]*Candidate{"1446": {ExternalID: "1446", Name: "Super Mario Bros.", Genres: []string{"Platformer"}}}

	results, _ := NewMatcher([]Provider{ra}).Match(context.Background(), nesROM("Super Mario Bros. (World).nes"))
	got := results[ProviderRetroAchievements]
	if got == nil || len(got.Genres) != 1 || got.Match != MatchExactName {
		t.Fatalf("expected detailed candidate, got %+v", got)
	}
}

func TestMatchReturnsContextError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewMatcher([]Provider{newStub(ProviderIGDB)}).Match(ctx, nesROM("Tetris.nes")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
