package metadata

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/rommapp/romm-sub002/internal/romname"
	"github.com/rommapp/romm-sub002/internal/textutil"
)

// scoreByName classifies a name-search candidate against the ROM. Exact
// normalized-name matches (on the primary or any alternate name) score 1;
// everything else scores textutil.TitleSimilarity.
func scoreByName(rom ROM, c *Candidate) {
	target := rom.Name.NormalizedName
	best := 0.0
	for _, name := range append([]string{c.Name}, c.AltNames...) {
		normalized := romname.NormalizeName(name)
		if normalized == "" {
			continue
		}
		if normalized == target {
			c.Match = MatchExactName
			c.Score = 1
			return
		}
		best = max(best, textutil.TitleSimilarity(normalized, target))
	}
	c.Match = MatchSimilarity
	c.Score = best
}

// serialMismatch reports whether a disc-image ROM with a known serial is
// being matched by name to a candidate whose serials do not include it.
func serialMismatch(rom ROM, c Candidate) bool {
	if !rom.IsDiscImage() || rom.Name.Tags.Serial == "" || len(c.Serials) == 0 {
		return false
	}
	for _, serial := range c.Serials {
		if romname.NormalizeSerial(serial) == rom.Name.Tags.Serial {
			return false
		}
	}
	return true
}

// compareCandidates orders stronger candidates first: hash over exact name
// over similarity, then higher score, then the numerically lowest id.
func compareCandidates(a, b Candidate) int {
	if c := cmp.Compare(b.Match, a.Match); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	return compareIDs(a.ExternalID, b.ExternalID)
}

// compareIDs sorts numeric ids numerically before non-numeric ids, which sort
// lexically.
func compareIDs(a, b string) int {
	an, aErr := strconv.ParseInt(strings.TrimSpace(a), 10, 64)
	bn, bErr := strconv.ParseInt(strings.TrimSpace(b), 10, 64)
	switch {
	case aErr == nil && bErr == nil:
		return cmp.Compare(an, bn)
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// pickBest returns the strongest candidate or nil.
func pickBest(candidates []Candidate) *Candidate {
	if len(candidates) == 0 {
		return nil
	}
	sorted := slices.Clone(candidates)
	slices.SortStableFunc(sorted, compareCandidates)
	best := sorted[0]
	return &best
}
