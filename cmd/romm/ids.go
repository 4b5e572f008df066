package main

import (
	"strings"

	"github.com/rommapp/romm-sub002/internal/config"
	"github.com/rommapp/romm-sub002/internal/metadata"
)

var idDisplayOrder = append(append([]string(nil), config.KnownProviders...), metadata.ProviderTGDB)

// formatIDs renders "igdb:3340 moby:180" in canonical provider order.
func formatIDs(ids metadata.ExternalIDs) string {
	var parts []string
	for _, provider := range idDisplayOrder {
		if id, ok := ids.Get(provider); ok {
			parts = append(parts, provider+":"+id)
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}
