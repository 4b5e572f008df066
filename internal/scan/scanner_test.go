package scan_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/gofrs/flock"

	"github.com/rommapp/romm-sub002/internal/config"
	"github.com/rommapp/romm-sub002/internal/logging"
	"github.com/rommapp/romm-sub002/internal/metadata"
	"github.com/rommapp/romm-sub002/internal/platform"
	"github.com/rommapp/romm-sub002/internal/scan"
	"github.com/rommapp/romm-sub002/internal/services"
	"github.com/rommapp/romm-sub002/internal/testsupport"
)

type stubProvider struct {
	name     string
	byTerm   map[string]metadata.Candidate
	calls    atomic.Int32
	onSearch func()
}

func (s *stubProvider) Name() string                        { return s.name }
func (s *stubProvider) Enabled() bool                       { return true }
func (s *stubProvider) Capabilities() metadata.Capabilities { return metadata.Capabilities{} }

func (s *stubProvider) SearchByHash(context.Context, metadata.ROM) ([]metadata.Candidate, error) {
	return nil, nil
}

func (s *stubProvider) Search(_ context.Context, term string, _ platform.Identity) ([]metadata.Candidate, error) {
	s.calls.Add(1)
	if s.onSearch != nil {
		s.onSearch()
	}
	candidate, ok := s.byTerm[term]
	if !ok {
		return nil, nil
	}
	return []metadata.Candidate{candidate}, nil
}

func (s *stubProvider) GetByID(context.Context, string) (*metadata.Candidate, error) {
	return nil, nil
}

func newIGDBStub() *stubProvider {
	return &stubProvider{
		name: config.ProviderIGDB,
		byTerm: map[string]metadata.Candidate{
			"Super Mario Bros.": {ExternalID: "3340", Name: "Super Mario Bros.", Genres: []string{"Platform"}},
		},
	}
}

func TestRunStoresMatchedAndUnmatchedROMs(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.WriteROM(t, cfg, "nes", "Super Mario Bros. (USA) (Rev A).nes", "mario")
	testsupport.WriteROM(t, cfg, "nes", "Homebrew Thing.nes", "homebrew")

	stub := newIGDBStub()
	scanner := scan.New(cfg, store, scan.WithProviders(stub), scan.WithLogger(logging.NewNop()))

	summary, err := scanner.Run(context.Background(), scan.Request{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Discovered != 2 || summary.Matched != 1 || summary.Unmatched != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if summary.ScanID == "" || summary.Mode != config.ScanModeNew {
		t.Fatalf("expected scan id and default mode, got %+v", summary)
	}

	rom, err := store.Get(context.Background(), "nes", "Super Mario Bros. (USA) (Rev A).nes")
	if err != nil || rom == nil {
		t.Fatalf("Get: %+v err=%v", rom, err)
	}
	if rom.Record.IDs.IGDB == nil || *rom.Record.IDs.IGDB != 3340 || rom.Record.Name != "Super Mario Bros." {
		t.Fatalf("unexpected record %+v", rom.Record)
	}
	if rom.SearchTerm != "Super Mario Bros." || rom.Tags.Revision != "A" || rom.ScanID != summary.ScanID {
		t.Fatalf("unexpected stored rom %+v", rom)
	}

	homebrew, err := store.Get(context.Background(), "nes", "Homebrew Thing.nes")
	if err != nil || homebrew == nil {
		t.Fatalf("Get homebrew: %+v err=%v", homebrew, err)
	}
	if homebrew.Matched() {
		t.Fatalf("expected empty record, got %+v", homebrew.Record)
	}
}

func TestRunNewModeSkipsUnchangedFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.WriteROM(t, cfg, "nes", "Super Mario Bros. (USA).nes", "mario")

	stub := newIGDBStub()
	scanner := scan.New(cfg, store, scan.WithProviders(stub))
	if _, err := scanner.Run(context.Background(), scan.Request{}); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	summary, err := scanner.Run(context.Background(), scan.Request{})
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if summary.Skipped != 1 || stub.calls.Load() != 1 {
		t.Fatalf("expected skip without provider call, summary=%+v calls=%d", summary, stub.calls.Load())
	}

	summary, err = scanner.Run(context.Background(), scan.Request{Mode: config.ScanModeComplete})
	if err != nil {
		t.Fatalf("complete Run: %v", err)
	}
	if summary.Matched != 1 || stub.calls.Load() != 2 {
		t.Fatalf("expected complete mode to rematch, summary=%+v calls=%d", summary, stub.calls.Load())
	}
}

func TestRunCompleteModeRemovesMissingFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.WriteROM(t, cfg, "nes", "Super Mario Bros. (USA).nes", "mario")
	gone := testsupport.WriteROM(t, cfg, "gb", "Tetris (World).gb", "tetris")

	scanner := scan.New(cfg, store, scan.WithProviders(newIGDBStub()))
	if _, err := scanner.Run(context.Background(), scan.Request{}); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if err := os.Remove(gone); err != nil {
		t.Fatal(err)
	}

	summary, err := scanner.Run(context.Background(), scan.Request{Mode: config.ScanModeComplete})
	if err != nil {
		t.Fatalf("complete Run: %v", err)
	}
	if summary.Removed != 1 {
		t.Fatalf("expected one removal, got %+v", summary)
	}
	roms, err := store.List(context.Background(), "")
	if err != nil || len(roms) != 1 || roms[0].Platform != "nes" {
		t.Fatalf("unexpected rows after prune: %+v err=%v", roms, err)
	}
}

func TestRunFailsWithoutProviders(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	_, err := scan.New(cfg, store).Run(context.Background(), scan.Request{})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestRunWithoutProviderRequirementStoresEmptyRecords(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutProviderRequirement())
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.WriteROM(t, cfg, "snes", "Chrono Trigger (USA).sfc", "chrono")

	summary, err := scan.New(cfg, store).Run(context.Background(), scan.Request{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Unmatched != 1 || len(summary.Providers) != 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestRunRejectsConcurrentScan(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.WriteROM(t, cfg, "nes", "Super Mario Bros. (USA).nes", "mario")

	lock := flock.New(cfg.ScanLockPath())
	locked, err := lock.TryLock()
	if err != nil || !locked {
		t.Fatalf("TryLock: locked=%v err=%v", locked, err)
	}
	defer lock.Unlock()

	_, err = scan.New(cfg, store, scan.WithProviders(newIGDBStub())).Run(context.Background(), scan.Request{})
	if !errors.Is(err, scan.ErrScanInProgress) {
		t.Fatalf("expected ErrScanInProgress, got %v", err)
	}
}

func TestCancelledScanStoresNothing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.WriteROM(t, cfg, "nes", "Super Mario Bros. (USA).nes", "mario")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stub := newIGDBStub()
	stub.onSearch = cancel

	_, err := scan.New(cfg, store, scan.WithProviders(stub)).Run(ctx, scan.Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	roms, err := store.List(context.Background(), "")
	if err != nil || len(roms) != 0 {
		t.Fatalf("expected no stored rows, got %d err=%v", len(roms), err)
	}
}

func TestRunMissingLibrary(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	cfg.Paths.LibraryDir = filepath.Join(testsupport.BaseDir(cfg), "absent")

	_, err := scan.New(cfg, store, scan.WithProviders(newIGDBStub())).Run(context.Background(), scan.Request{})
	if err == nil {
		t.Fatal("expected missing library error")
	}
}

func TestMatchFileDoesNotStore(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	path := testsupport.WriteROM(t, cfg, "famicom", "Super Mario Bros. (Japan).nes", "mario")

	result, err := scan.New(cfg, store, scan.WithProviders(newIGDBStub())).MatchFile(context.Background(), path, "")
	if err != nil {
		t.Fatalf("MatchFile: %v", err)
	}
	if result.ROM.Platform.Slug != "nes" || result.Record.Name != "Super Mario Bros." {
		t.Fatalf("unexpected result %+v", result)
	}
	if c := result.Candidates[config.ProviderIGDB]; c == nil || c.Match != metadata.MatchExactName {
		t.Fatalf("unexpected igdb candidate %+v", c)
	}
	roms, _ := store.List(context.Background(), "")
	if len(roms) != 0 {
		t.Fatalf("MatchFile must not store rows, got %d", len(roms))
	}
}
