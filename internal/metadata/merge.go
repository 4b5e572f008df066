package metadata

import (
	"encoding/json"
	"slices"
	"sort"

	"github.com/rommapp/romm-sub002/internal/config"
)

// Merge folds per-provider winners into one Record. Each display field takes
// the first provider in its priority list whose candidate has a non-empty
// value; providers missing from a list are consulted after it in canonical
// order. External ids are never subject to priority: every candidate's own id
// is kept, and cross-reference ids only fill ids no candidate supplied.
// Merge is deterministic for a given input.
func Merge(candidates map[string]*Candidate, priority config.Priority) Record {
	record := Record{}
	if len(candidates) == 0 {
		return record
	}

	for _, provider := range idProviders {
		c := candidates[provider]
		if c == nil {
			continue
		}
		record.IDs.Set(provider, c.ExternalID)
		if len(c.Raw) > 0 {
			if record.ProviderData == nil {
				record.ProviderData = make(map[string]json.RawMessage)
			}
			record.ProviderData[provider] = slices.Clone(c.Raw)
		}
	}
	for _, provider := range idProviders {
		c := candidates[provider]
		if c == nil {
			continue
		}
		keys := make([]string, 0, len(c.CrossIDs))
		for key := range c.CrossIDs {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if !record.IDs.Has(key) {
				record.IDs.Set(key, c.CrossIDs[key])
			}
		}
	}

	metadataOrder := resolveOrder(priority.Metadata)
	artworkOrder := resolveOrder(priority.Artwork)
	regionOrder := resolveOrder(priority.Region)
	languageOrder := resolveOrder(priority.Language)

	sources := make(map[string]string)
	pickString(candidates, metadataOrder, sources, "name", &record.Name, func(c *Candidate) string { return c.Name })
	pickString(candidates, metadataOrder, sources, "summary", &record.Summary, func(c *Candidate) string { return c.Summary })
	pickString(candidates, metadataOrder, sources, "release_date", &record.ReleaseDate, func(c *Candidate) string { return c.ReleaseDate })
	pickList(candidates, metadataOrder, sources, "alt_names", &record.AltNames, func(c *Candidate) []string { return c.AltNames })
	pickList(candidates, metadataOrder, sources, "genres", &record.Genres, func(c *Candidate) []string { return c.Genres })
	pickList(candidates, metadataOrder, sources, "themes", &record.Themes, func(c *Candidate) []string { return c.Themes })
	pickList(candidates, metadataOrder, sources, "companies", &record.Companies, func(c *Candidate) []string { return c.Companies })
	pickList(candidates, metadataOrder, sources, "franchises", &record.Franchises, func(c *Candidate) []string { return c.Franchises })
	pickList(candidates, metadataOrder, sources, "tags", &record.Tags, func(c *Candidate) []string { return c.Tags })
	for _, provider := range metadataOrder {
		if c := candidates[provider]; c != nil && c.Rating != nil {
			rating := *c.Rating
			record.Rating = &rating
			sources["rating"] = provider
			break
		}
	}

	pickString(candidates, artworkOrder, sources, "cover_url", &record.CoverURL, func(c *Candidate) string { return c.CoverURL })
	pickList(candidates, artworkOrder, sources, "screenshot_urls", &record.ScreenshotURLs, func(c *Candidate) []string { return c.ScreenshotURLs })
	pickList(candidates, regionOrder, sources, "regions", &record.Regions, func(c *Candidate) []string { return c.Regions })
	pickList(candidates, languageOrder, sources, "languages", &record.Languages, func(c *Candidate) []string { return c.Languages })

	if len(sources) > 0 {
		record.Sources = sources
	}
	return record
}

// resolveOrder appends every known provider missing from order, in canonical order.
func resolveOrder(order []string) []string {
	out := make([]string, 0, len(idProviders))
	seen := make(map[string]struct{}, len(idProviders))
	for _, provider := range append(slices.Clone(order), idProviders...) {
		if _, ok := seen[provider]; ok {
			continue
		}
		seen[provider] = struct{}{}
		out = append(out, provider)
	}
	return out
}

func pickString(candidates map[string]*Candidate, order []string, sources map[string]string, field string, dst *string, get func(*Candidate) string) {
	for _, provider := range order {
		c := candidates[provider]
		if c == nil {
			continue
		}
		if value := get(c); value != "" {
			*dst = value
			sources[field] = provider
			return
		}
	}
}

func pickList(candidates map[string]*Candidate, order []string, sources map[string]string, field string, dst *[]string, get func(*Candidate) []string) {
	for _, provider := range order {
		c := candidates[provider]
		if c == nil {
			continue
		}
		if value := compact(get(c)); len(value) > 0 {
			*dst = value
			sources[field] = provider
			return
		}
	}
}

// compact copies values without blanks or duplicates, keeping order.
func compact(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value == "" || slices.Contains(out, value) {
			continue
		}
		out = append(out, value)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
