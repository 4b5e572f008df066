package metadata

import (
	"context"

	"github.com/rommapp/romm-sub002/internal/platform"
)

// Capabilities describes how the matcher may query a provider.
type Capabilities struct {
	// HashLookup providers are asked by checksum before falling back to name search.
	HashLookup bool
	// ASCIIOnly providers receive transliterated search terms.
	ASCIIOnly bool
	// Detail providers return summaries from search; the winner is fetched by id.
	Detail bool
}

// Provider is the uniform contract every metadata source implements.
// Implementations return (nil, nil) when nothing matched; errors are reserved
// for unreachable services and rejected credentials.
type Provider interface {
	Name() string
	Enabled() bool
	Capabilities() Capabilities
	SearchByHash(ctx context.Context, rom ROM) ([]Candidate, error)
	Search(ctx context.Context, term string, p platform.Identity) ([]Candidate, error)
	GetByID(ctx context.Context, id string) (*Candidate, error)
}
