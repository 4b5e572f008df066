package library

import (
	"time"

	"github.com/rommapp/romm-sub002/internal/metadata"
	"github.com/rommapp/romm-sub002/internal/romname"
)

// ROM is one stored library file with its merged metadata.
type ROM struct {
	ID             int64
	Platform       string
	FileName       string
	Size           int64
	Hashes         metadata.Hashes
	SearchTerm     string
	NormalizedName string
	Tags           romname.Tags
	Record         metadata.Record
	ScanID         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DisplayName returns the merged name or the file's search term.
func (r ROM) DisplayName() string {
	if r.Record.Name != "" {
		return r.Record.Name
	}
	return r.SearchTerm
}

// Matched reports whether any provider contributed metadata.
func (r ROM) Matched() bool {
	return r.Record.Matched()
}

// PlatformSummary counts stored ROMs per platform.
type PlatformSummary struct {
	Slug    string
	ROMs    int
	Matched int
}

// SiblingSet is a resolved sibling group.
type SiblingSet struct {
	Platform string
	ROMs     []ROM
}
