package metadata

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rommapp/romm-sub002/internal/logging"
	"github.com/rommapp/romm-sub002/internal/romname"
	"github.com/rommapp/romm-sub002/internal/services"
)

const defaultMinSimilarity = 0.75

// Matcher runs matching passes against a fixed provider set. Credential
// failures disable a provider for the Matcher's lifetime, so build one per
// scan.
type Matcher struct {
	providers     []Provider
	minSimilarity float64
	logger        *slog.Logger

	mu       sync.Mutex
	disabled map[string]struct{}
}

// MatcherOption customizes a Matcher.
type MatcherOption func(*Matcher)

// WithMinSimilarity sets the lowest similarity score accepted for name matches.
func WithMinSimilarity(threshold float64) MatcherOption {
	return func(m *Matcher) {
		if threshold > 0 && threshold <= 1 {
			m.minSimilarity = threshold
		}
	}
}

// WithLogger sets the matcher logger.
func WithLogger(logger *slog.Logger) MatcherOption {
	return func(m *Matcher) {
		m.logger = logger
	}
}

// NewMatcher builds a Matcher over providers. Disabled providers are dropped.
func NewMatcher(providers []Provider, opts ...MatcherOption) *Matcher {
	m := &Matcher{
		minSimilarity: defaultMinSimilarity,
		disabled:      make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = logging.NewComponentLogger(m.logger, "matcher")
	for _, p := range providers {
		if p != nil && p.Enabled() {
			m.providers = append(m.providers, p)
		}
	}
	return m
}

// Providers returns the names of the providers the matcher queries.
func (m *Matcher) Providers() []string {
	names := make([]string, 0, len(m.providers))
	for _, p := range m.providers {
		names = append(names, p.Name())
	}
	return names
}

// Match queries every enabled provider concurrently and returns the best
// candidate per provider. Providers with no acceptable candidate map to nil.
// The only error returned is the context's.
func (m *Matcher) Match(ctx context.Context, rom ROM) (map[string]*Candidate, error) {
	ctx = services.WithROM(ctx, rom.Name.FileName)
	ctx = services.WithPlatform(ctx, rom.Platform.Slug)

	results := make([]*Candidate, len(m.providers))
	var g errgroup.Group
	for i, p := range m.providers {
		g.Go(func() error {
			results[i] = m.matchProvider(ctx, p, rom)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(map[string]*Candidate, len(m.providers))
	for i, p := range m.providers {
		out[p.Name()] = results[i]
	}
	return out, nil
}

func (m *Matcher) matchProvider(ctx context.Context, p Provider, rom ROM) *Candidate {
	name := p.Name()
	if m.isDisabled(name) {
		return nil
	}
	ctx = services.WithProvider(ctx, name)
	logger := logging.WithContext(ctx, m.logger)
	caps := p.Capabilities()

	if caps.HashLookup && !rom.Hashes.Empty() {
		candidates, err := p.SearchByHash(ctx, rom)
		if err != nil {
			m.handleError(logger, name, "hash lookup", err)
			if m.isDisabled(name) || ctx.Err() != nil || errors.Is(err, services.ErrServiceUnavailable) {
				return nil
			}
		}
		for i := range candidates {
			candidates[i].Provider = name
			candidates[i].Match = MatchHash
			candidates[i].Score = 1
		}
		if best := pickBest(candidates); best != nil {
			return m.withDetail(ctx, logger, p, caps, best)
		}
	}

	term := rom.Name.SearchTerm
	if caps.ASCIIOnly && !romname.IsASCII(term) {
		term = romname.Transliterate(term)
	}
	if term == "" {
		return nil
	}
	candidates, err := p.Search(ctx, term, rom.Platform)
	if err != nil {
		m.handleError(logger, name, "search", err)
		return nil
	}

	accepted := candidates[:0]
	for _, c := range candidates {
		c.Provider = name
		scoreByName(rom, &c)
		if c.Match == MatchSimilarity && c.Score < m.minSimilarity {
			continue
		}
		if serialMismatch(rom, c) {
			logger.Debug("candidate rejected by serial check",
				logging.String("external_id", c.ExternalID),
				logging.String("serial", rom.Name.Tags.Serial))
			continue
		}
		accepted = append(accepted, c)
	}
	best := pickBest(accepted)
	if best == nil {
		logger.Debug("no acceptable candidate",
			logging.String("term", term),
			logging.Int("candidates", len(candidates)))
		return nil
	}
	return m.withDetail(ctx, logger, p, caps, best)
}

// withDetail replaces a summary candidate with the provider's full record
// when the provider supports it. The summary is kept if the fetch fails.
func (m *Matcher) withDetail(ctx context.Context, logger *slog.Logger, p Provider, caps Capabilities, best *Candidate) *Candidate {
	logger.Debug("candidate selected",
		logging.String("external_id", best.ExternalID),
		logging.String("name", best.Name),
		logging.String("match", best.Match.String()),
		logging.Float64("score", best.Score))
	if !caps.Detail {
		return best
	}
	detail, err := p.GetByID(ctx, best.ExternalID)
	if err != nil {
		m.handleError(logger, p.Name(), "detail", err)
		if m.isDisabled(p.Name()) {
			return nil
		}
		return best
	}
	if detail == nil {
		return best
	}
	detail.Provider = p.Name()
	detail.Match = best.Match
	detail.Score = best.Score
	if detail.ExternalID == "" {
		detail.ExternalID = best.ExternalID
	}
	return detail
}

func (m *Matcher) handleError(logger *slog.Logger, provider, operation string, err error) {
	switch {
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		return
	case errors.Is(err, services.ErrCredentials):
		m.disable(provider)
		logging.ErrorWithContext(logger, "provider credentials rejected; disabled for this scan",
			"provider_credentials",
			logging.String("operation", operation),
			logging.Alert("provider_credentials"),
			logging.String(logging.FieldImpact, "provider contributes no metadata until credentials are fixed"),
			logging.String(logging.FieldErrorHint, "check the provider credentials in the config file or environment"),
			logging.Error(err),
		)
	case errors.Is(err, services.ErrServiceUnavailable):
		logging.WarnWithContext(logger, "provider unavailable",
			"provider_unavailable",
			logging.String("operation", operation),
			logging.String(logging.FieldImpact, "provider contributes no candidates for this ROM"),
			logging.String(logging.FieldErrorHint, "check network connectivity to the provider"),
			logging.Error(err),
		)
	default:
		logging.WarnWithContext(logger, "provider query failed",
			"provider_query_failed",
			logging.String("operation", operation),
			logging.String(logging.FieldImpact, "provider contributes no candidates for this ROM"),
			logging.Error(err),
		)
	}
}

func (m *Matcher) disable(provider string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disabled[provider] = struct{}{}
}

func (m *Matcher) isDisabled(provider string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.disabled[provider]
	return ok
}

// Disabled returns the providers disabled by credential failures.
func (m *Matcher) Disabled() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.disabled))
	for _, p := range m.providers {
		if _, ok := m.disabled[p.Name()]; ok {
			out = append(out, p.Name())
		}
	}
	return out
}
