package library

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rommapp/romm-sub002/internal/metadata"
)

// SiblingGroups recomputes the sibling groups of a platform (or of every
// platform when platform is empty) from the stored rows.
func (s *Store) SiblingGroups(ctx context.Context, platform string) ([]metadata.SiblingGroup, error) {
	inputs, err := s.siblingInputs(ctx, platform)
	if err != nil {
		return nil, err
	}
	return metadata.GroupSiblings(inputs), nil
}

// SiblingSets is SiblingGroups with each member ROM loaded.
func (s *Store) SiblingSets(ctx context.Context, platform string) ([]SiblingSet, error) {
	groups, err := s.SiblingGroups(ctx, platform)
	if err != nil {
		return nil, err
	}
	roms, err := s.List(ctx, platform)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]ROM, len(roms))
	for _, rom := range roms {
		byID[rom.ID] = rom
	}
	sets := make([]SiblingSet, 0, len(groups))
	for _, group := range groups {
		set := SiblingSet{Platform: group.Platform}
		for _, id := range group.ROMIDs {
			if rom, ok := byID[id]; ok {
				set.ROMs = append(set.ROMs, rom)
			}
		}
		sets = append(sets, set)
	}
	return sets, nil
}

// Siblings returns the other members of romID's group.
func (s *Store) Siblings(ctx context.Context, romID int64) ([]ROM, error) {
	rom, err := s.GetByID(ctx, romID)
	if err != nil || rom == nil {
		return nil, err
	}
	groups, err := s.SiblingGroups(ctx, rom.Platform)
	if err != nil {
		return nil, err
	}
	var out []ROM
	for _, id := range metadata.SiblingsOf(groups, romID) {
		sibling, err := s.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if sibling != nil {
			out = append(out, *sibling)
		}
	}
	return out, nil
}

func (s *Store) siblingInputs(ctx context.Context, platform string) ([]metadata.SiblingInput, error) {
	query := "SELECT id, platform_slug, normalized_name, igdb_id, moby_id, ss_id, ra_id, sgdb_id, launchbox_id, hasheous_id, tgdb_id, hltb_id FROM roms"
	var args []any
	if platform != "" {
		query += " WHERE platform_slug = ?"
		args = append(args, platform)
	}
	query += " ORDER BY id"
	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("load sibling inputs: %w", err)
	}
	defer rows.Close()

	var out []metadata.SiblingInput
	for rows.Next() {
		var (
			input metadata.SiblingInput
			ids   [9]sql.NullInt64
		)
		if err := rows.Scan(&input.ROMID, &input.Platform, &input.NormalizedName,
			&ids[0], &ids[1], &ids[2], &ids[3], &ids[4], &ids[5], &ids[6], &ids[7], &ids[8]); err != nil {
			return nil, fmt.Errorf("scan sibling input: %w", err)
		}
		input.IDs = metadata.ExternalIDs{
			IGDB:              intPtr(ids[0]),
			MobyGames:         intPtr(ids[1]),
			ScreenScraper:     intPtr(ids[2]),
			RetroAchievements: intPtr(ids[3]),
			SteamGridDB:       intPtr(ids[4]),
			LaunchBox:         intPtr(ids[5]),
			Hasheous:          intPtr(ids[6]),
			TGDB:              intPtr(ids[7]),
			HLTB:              intPtr(ids[8]),
		}
		out = append(out, input)
	}
	return out, rows.Err()
}
