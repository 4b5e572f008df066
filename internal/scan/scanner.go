package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rommapp/romm-sub002/internal/config"
	"github.com/rommapp/romm-sub002/internal/library"
	"github.com/rommapp/romm-sub002/internal/logging"
	"github.com/rommapp/romm-sub002/internal/metadata"
	"github.com/rommapp/romm-sub002/internal/platform"
	"github.com/rommapp/romm-sub002/internal/providers"
	"github.com/rommapp/romm-sub002/internal/services"
	"github.com/rommapp/romm-sub002/internal/services/httpclient"
)

// ErrScanInProgress reports that another process holds the scan lock.
var ErrScanInProgress = errors.New("another scan is already running")

// Scanner runs library scans against one config and store.
type Scanner struct {
	cfg       *config.Config
	store     *library.Store
	logger    *slog.Logger
	providers []metadata.Provider
	httpOpts  []httpclient.Option
}

// Option customizes a Scanner.
type Option func(*Scanner)

// WithLogger sets the scanner logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// WithProviders replaces the providers built from the config.
func WithProviders(list ...metadata.Provider) Option {
	return func(s *Scanner) {
		s.providers = list
	}
}

// WithHTTPOptions appends options to every provider client built from the config.
func WithHTTPOptions(opts ...httpclient.Option) Option {
	return func(s *Scanner) {
		s.httpOpts = append(s.httpOpts, opts...)
	}
}

// New constructs a Scanner.
func New(cfg *config.Config, store *library.Store, opts ...Option) *Scanner {
	s := &Scanner{cfg: cfg, store: store}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.NewComponentLogger(s.logger, "scan")
	return s
}

// Request selects what a scan covers. Zero values fall back to the config.
type Request struct {
	Mode      string
	Platforms []string
}

// Summary reports the outcome of one scan.
type Summary struct {
	ScanID    string
	Mode      string
	Providers []string
	// DisabledProviders were switched off during the scan after rejecting credentials.
	DisabledProviders []string
	Discovered        int
	Matched           int
	Unmatched         int
	Skipped           int
	Failed            int
	Removed           int
	Duration          time.Duration
}

type outcome int

const (
	outcomeMatched outcome = iota
	outcomeUnmatched
	outcomeSkipped
	outcomeFailed
)

// Run scans the library. Provider failures never fail the scan; only a
// configuration error, a held lock, a missing library or cancellation do.
func (s *Scanner) Run(ctx context.Context, req Request) (Summary, error) {
	started := time.Now()
	mode := strings.ToLower(strings.TrimSpace(req.Mode))
	if mode == "" {
		mode = s.cfg.Scan.Mode
	}
	if mode != config.ScanModeNew && mode != config.ScanModeComplete {
		return Summary{}, services.Wrap(services.ErrValidation, "scan", "run", fmt.Sprintf("unsupported mode %q", mode), nil)
	}

	matcher, err := s.newMatcher()
	if err != nil {
		return Summary{}, err
	}

	if err := s.cfg.EnsureDirectories(); err != nil {
		return Summary{}, err
	}
	lock := flock.New(s.cfg.ScanLockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return Summary{}, fmt.Errorf("acquire scan lock: %w", err)
	}
	if !locked {
		return Summary{}, fmt.Errorf("%w (lock %s)", ErrScanInProgress, s.cfg.ScanLockPath())
	}
	defer func() { _ = lock.Unlock() }()

	summary := Summary{
		ScanID:    uuid.NewString(),
		Mode:      mode,
		Providers: matcher.Providers(),
	}
	ctx = services.WithScanID(ctx, summary.ScanID)
	logger := logging.WithContext(ctx, s.logger)

	files, err := library.Walk(ctx, s.cfg.RomsDir(), s.cfg.Scan.Extensions, req.Platforms)
	if err != nil {
		return summary, err
	}
	summary.Discovered = len(files)
	logger.Info("scan started",
		logging.String("mode", mode),
		logging.Int("files", len(files)),
		logging.String("providers", strings.Join(summary.Providers, ",")))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, s.cfg.Scan.Workers))
	for _, file := range files {
		g.Go(func() error {
			result, err := s.processFile(gctx, matcher, mode, summary.ScanID, file)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			switch result {
			case outcomeMatched:
				summary.Matched++
			case outcomeUnmatched:
				summary.Unmatched++
			case outcomeSkipped:
				summary.Skipped++
			case outcomeFailed:
				summary.Failed++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		summary.Duration = time.Since(started)
		return summary, err
	}

	if mode == config.ScanModeComplete {
		removed, err := s.removeMissing(ctx, files, req.Platforms)
		if err != nil {
			return summary, err
		}
		summary.Removed = removed
	}

	summary.DisabledProviders = matcher.Disabled()
	summary.Duration = time.Since(started)
	logger.Info("scan finished",
		logging.Int("matched", summary.Matched),
		logging.Int("unmatched", summary.Unmatched),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
		logging.Int("removed", summary.Removed),
		logging.Duration("duration", summary.Duration))
	return summary, nil
}

func (s *Scanner) newMatcher() (*metadata.Matcher, error) {
	list := s.providers
	if list == nil {
		if err := s.cfg.ValidateProviders(); err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "scan", "providers", "", err)
		}
		built, err := providers.Build(s.cfg, s.logger, s.httpOpts...)
		if err != nil {
			return nil, err
		}
		list = built
	}
	matcher := metadata.NewMatcher(list,
		metadata.WithMinSimilarity(s.cfg.Scan.MinSimilarity),
		metadata.WithLogger(s.logger))
	if s.cfg.Scan.RequireProvider && len(matcher.Providers()) == 0 {
		return nil, services.Wrap(services.ErrConfiguration, "scan", "providers", "no enabled metadata provider", nil)
	}
	return matcher, nil
}

// processFile handles one ROM. Only cancellation is returned as an error;
// per-ROM failures are logged and counted.
func (s *Scanner) processFile(ctx context.Context, matcher *metadata.Matcher, mode, scanID string, file library.File) (outcome, error) {
	ctx = services.WithROM(ctx, file.FileName)
	ctx = services.WithPlatform(ctx, file.Platform.Slug)
	logger := logging.WithContext(ctx, s.logger)

	hashes, err := file.Hash(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return outcomeFailed, ctx.Err()
		}
		s.logFailure(logger, "hash rom", err)
		return outcomeFailed, nil
	}

	if mode == config.ScanModeNew {
		existing, err := s.store.Get(ctx, file.Platform.Slug, file.FileName)
		if err != nil {
			s.logFailure(logger, "load stored rom", err)
			return outcomeFailed, nil
		}
		if existing != nil && existing.Hashes == hashes && existing.Size == file.Size {
			logger.Debug("rom unchanged; skipping")
			return outcomeSkipped, nil
		}
	}

	rom := metadata.NewROM(file.FileName, file.Size, hashes, file.Platform)
	rom.Path = file.Path
	candidates, err := matcher.Match(ctx, rom)
	if err != nil {
		return outcomeFailed, err
	}
	record := metadata.Merge(candidates, s.cfg.Scan.Priority)

	if err := ctx.Err(); err != nil {
		return outcomeFailed, err
	}
	stored := &library.ROM{
		Platform:       file.Platform.Slug,
		FileName:       file.FileName,
		Size:           file.Size,
		Hashes:         hashes,
		SearchTerm:     rom.Name.SearchTerm,
		NormalizedName: rom.Name.NormalizedName,
		Tags:           rom.Name.Tags,
		Record:         record,
		ScanID:         scanID,
	}
	if err := s.store.Save(ctx, stored); err != nil {
		if ctx.Err() != nil {
			return outcomeFailed, ctx.Err()
		}
		s.logFailure(logger, "save rom", err)
		return outcomeFailed, nil
	}

	if !record.Matched() {
		logger.Info("rom stored without metadata", logging.String("term", rom.Name.SearchTerm))
		return outcomeUnmatched, nil
	}
	logger.Info("rom matched",
		logging.String("name", record.Name),
		logging.String("sources", strings.Join(sortedKeys(record.ProviderData), ",")))
	return outcomeMatched, nil
}

func (s *Scanner) logFailure(logger *slog.Logger, operation string, err error) {
	logging.WarnWithContext(logger, "rom scan failed",
		"rom_scan_failed",
		logging.String("operation", operation),
		logging.String(logging.FieldImpact, "rom is not updated in the library"),
		logging.Error(err),
	)
}

// removeMissing deletes stored rows whose files were not found. With a
// platform filter only the filtered platforms are pruned.
func (s *Scanner) removeMissing(ctx context.Context, files []library.File, filter []string) (int, error) {
	present := make(map[string]struct{}, len(files))
	for _, file := range files {
		present[file.Platform.Slug+"\x00"+file.FileName] = struct{}{}
	}
	var slugs []string
	for _, value := range filter {
		slugs = append(slugs, platform.Resolve(value).Slug)
	}

	stored, err := s.store.List(ctx, "")
	if err != nil {
		return 0, err
	}
	var stale []int64
	for _, rom := range stored {
		if len(slugs) > 0 && !slices.Contains(slugs, rom.Platform) {
			continue
		}
		if _, ok := present[rom.Platform+"\x00"+rom.FileName]; !ok {
			stale = append(stale, rom.ID)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}
	removed, err := s.store.Delete(ctx, stale...)
	if err != nil {
		return 0, err
	}
	return int(removed), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// MatchResult is a dry-run match of a single file.
type MatchResult struct {
	ROM        metadata.ROM
	Candidates map[string]*metadata.Candidate
	Record     metadata.Record
}

// MatchFile hashes and matches one file without storing it. An empty
// platformName resolves the platform from the parent directory name.
func (s *Scanner) MatchFile(ctx context.Context, path, platformName string) (MatchResult, error) {
	matcher, err := s.newMatcher()
	if err != nil {
		return MatchResult{}, err
	}
	if platformName == "" {
		platformName = filepath.Base(filepath.Dir(path))
	}
	file, err := library.Stat(path, platform.Resolve(platformName))
	if err != nil {
		return MatchResult{}, err
	}
	hashes, err := file.Hash(ctx)
	if err != nil {
		return MatchResult{}, err
	}
	rom := metadata.NewROM(file.FileName, file.Size, hashes, file.Platform)
	rom.Path = file.Path
	ctx = services.WithRequestID(ctx, uuid.NewString())
	candidates, err := matcher.Match(ctx, rom)
	if err != nil {
		return MatchResult{}, err
	}
	return MatchResult{
		ROM:        rom,
		Candidates: candidates,
		Record:     metadata.Merge(candidates, s.cfg.Scan.Priority),
	}, nil
}
