package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rommapp/romm-sub002/internal/metadata"
)

const romColumns = "id, platform_slug, file_name, file_size, crc32, md5, sha1, search_term, normalized_name, tags_json, " +
	"igdb_id, moby_id, ss_id, ra_id, sgdb_id, launchbox_id, hasheous_id, tgdb_id, hltb_id, flashpoint_id, " +
	"metadata_json, provider_data_json, scan_id, created_at, updated_at"

const matchedExpr = "(igdb_id IS NOT NULL OR moby_id IS NOT NULL OR ss_id IS NOT NULL OR ra_id IS NOT NULL OR " +
	"sgdb_id IS NOT NULL OR launchbox_id IS NOT NULL OR hasheous_id IS NOT NULL OR tgdb_id IS NOT NULL OR " +
	"hltb_id IS NOT NULL OR flashpoint_id IS NOT NULL)"

// Save inserts or fully replaces the row for rom's platform and file name and
// sets rom.ID. The replacement is a single statement, so readers never see a
// mix of old and new metadata.
func (s *Store) Save(ctx context.Context, rom *ROM) error {
	ctx = ensureContext(ctx)
	if rom == nil || rom.Platform == "" || rom.FileName == "" {
		return errors.New("save rom: platform and file name are required")
	}
	tags, err := json.Marshal(rom.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	record, err := json.Marshal(rom.Record)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	providerData := []byte("{}")
	if len(rom.Record.ProviderData) > 0 {
		if providerData, err = json.Marshal(rom.Record.ProviderData); err != nil {
			return fmt.Errorf("encode provider data: %w", err)
		}
	}

	now := time.Now().UTC()
	ids := rom.Record.IDs
	var id int64
	err = retryOnBusy(ctx, func() error {
		return s.db.QueryRowContext(ctx, `
INSERT INTO roms (
    platform_slug, file_name, file_size, crc32, md5, sha1, search_term, normalized_name, tags_json, name,
    igdb_id, moby_id, ss_id, ra_id, sgdb_id, launchbox_id, hasheous_id, tgdb_id, hltb_id, flashpoint_id,
    metadata_json, provider_data_json, scan_id, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (platform_slug, file_name) DO UPDATE SET
    file_size = excluded.file_size,
    crc32 = excluded.crc32,
    md5 = excluded.md5,
    sha1 = excluded.sha1,
    search_term = excluded.search_term,
    normalized_name = excluded.normalized_name,
    tags_json = excluded.tags_json,
    name = excluded.name,
    igdb_id = excluded.igdb_id,
    moby_id = excluded.moby_id,
    ss_id = excluded.ss_id,
    ra_id = excluded.ra_id,
    sgdb_id = excluded.sgdb_id,
    launchbox_id = excluded.launchbox_id,
    hasheous_id = excluded.hasheous_id,
    tgdb_id = excluded.tgdb_id,
    hltb_id = excluded.hltb_id,
    flashpoint_id = excluded.flashpoint_id,
    metadata_json = excluded.metadata_json,
    provider_data_json = excluded.provider_data_json,
    scan_id = excluded.scan_id,
    updated_at = excluded.updated_at
RETURNING id`,
			rom.Platform, rom.FileName, rom.Size,
			rom.Hashes.CRC32, rom.Hashes.MD5, rom.Hashes.SHA1,
			rom.SearchTerm, rom.NormalizedName, string(tags), rom.Record.Name,
			nullInt(ids.IGDB), nullInt(ids.MobyGames), nullInt(ids.ScreenScraper), nullInt(ids.RetroAchievements),
			nullInt(ids.SteamGridDB), nullInt(ids.LaunchBox), nullInt(ids.Hasheous), nullInt(ids.TGDB),
			nullInt(ids.HLTB), nullString(ids.Flashpoint),
			string(record), string(providerData), rom.ScanID,
			now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano),
		).Scan(&id)
	})
	if err != nil {
		return fmt.Errorf("save rom %s/%s: %w", rom.Platform, rom.FileName, err)
	}
	rom.ID = id
	rom.UpdatedAt = now
	return nil
}

// Get returns the stored ROM for a platform and file name, or nil.
func (s *Store) Get(ctx context.Context, platform, fileName string) (*ROM, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		"SELECT "+romColumns+" FROM roms WHERE platform_slug = ? AND file_name = ?", platform, fileName)
	return scanOne(row)
}

// GetByID returns the stored ROM with id, or nil.
func (s *Store) GetByID(ctx context.Context, id int64) (*ROM, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), "SELECT "+romColumns+" FROM roms WHERE id = ?", id)
	return scanOne(row)
}

// List returns stored ROMs ordered by platform and file name. An empty
// platform lists every platform.
func (s *Store) List(ctx context.Context, platform string) ([]ROM, error) {
	query := "SELECT " + romColumns + " FROM roms"
	var args []any
	if platform != "" {
		query += " WHERE platform_slug = ?"
		args = append(args, platform)
	}
	query += " ORDER BY platform_slug, file_name"
	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list roms: %w", err)
	}
	defer rows.Close()

	var out []ROM
	for rows.Next() {
		rom, err := scanROM(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rom)
	}
	return out, rows.Err()
}

// Delete removes ROMs by id and returns the number removed.
func (s *Store) Delete(ctx context.Context, ids ...int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	ctx = ensureContext(ctx)
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	var removed int64
	err := retryOnBusy(ctx, func() error {
		res, err := s.db.ExecContext(ctx, "DELETE FROM roms WHERE id IN ("+placeholders+")", args...)
		if err != nil {
			return err
		}
		removed, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("delete roms: %w", err)
	}
	return removed, nil
}

// Platforms returns per-platform ROM counts ordered by slug.
func (s *Store) Platforms(ctx context.Context) ([]PlatformSummary, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		"SELECT platform_slug, COUNT(1), SUM(CASE WHEN "+matchedExpr+" THEN 1 ELSE 0 END) FROM roms GROUP BY platform_slug ORDER BY platform_slug")
	if err != nil {
		return nil, fmt.Errorf("list platforms: %w", err)
	}
	defer rows.Close()

	var out []PlatformSummary
	for rows.Next() {
		var summary PlatformSummary
		if err := rows.Scan(&summary.Slug, &summary.ROMs, &summary.Matched); err != nil {
			return nil, fmt.Errorf("scan platform: %w", err)
		}
		out = append(out, summary)
	}
	return out, rows.Err()
}

func scanOne(row *sql.Row) (*ROM, error) {
	rom, err := scanROM(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rom, err
}

func scanROM(scanner interface{ Scan(dest ...any) error }) (*ROM, error) {
	var (
		rom          ROM
		tagsRaw      string
		ids          [9]sql.NullInt64
		flashpointID sql.NullString
		recordRaw    string
		providerRaw  string
		createdRaw   string
		updatedRaw   string
	)
	if err := scanner.Scan(
		&rom.ID, &rom.Platform, &rom.FileName, &rom.Size,
		&rom.Hashes.CRC32, &rom.Hashes.MD5, &rom.Hashes.SHA1,
		&rom.SearchTerm, &rom.NormalizedName, &tagsRaw,
		&ids[0], &ids[1], &ids[2], &ids[3], &ids[4], &ids[5], &ids[6], &ids[7], &ids[8], &flashpointID,
		&recordRaw, &providerRaw, &rom.ScanID, &createdRaw, &updatedRaw,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(tagsRaw), &rom.Tags); err != nil {
		return nil, fmt.Errorf("decode tags for rom %d: %w", rom.ID, err)
	}
	if err := json.Unmarshal([]byte(recordRaw), &rom.Record); err != nil {
		return nil, fmt.Errorf("decode metadata for rom %d: %w", rom.ID, err)
	}
	if providerRaw != "" && providerRaw != "{}" {
		if err := json.Unmarshal([]byte(providerRaw), &rom.Record.ProviderData); err != nil {
			return nil, fmt.Errorf("decode provider data for rom %d: %w", rom.ID, err)
		}
	}

	// Columns are authoritative for ids; the JSON copy is informational.
	rom.Record.IDs = metadata.ExternalIDs{
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
	if flashpointID.Valid {
		value := flashpointID.String
		rom.Record.IDs.Flashpoint = &value
	}
	rom.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdRaw)
	rom.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedRaw)
	return &rom, nil
}

func nullInt(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func intPtr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	value := v.Int64
	return &value
}
