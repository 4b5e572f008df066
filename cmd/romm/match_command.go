package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rommapp/romm-sub002/internal/config"
	"github.com/rommapp/romm-sub002/internal/library"
	"github.com/rommapp/romm-sub002/internal/metadata"
	"github.com/rommapp/romm-sub002/internal/scan"
)

type matchOutput struct {
	File       string                         `json:"file"`
	Platform   string                         `json:"platform"`
	SearchTerm string                         `json:"search_term"`
	Hashes     metadata.Hashes                `json:"hashes"`
	Candidates map[string]*metadata.Candidate `json:"candidates"`
	Record     metadata.Record                `json:"record"`
}

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var platformName string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "match <file>",
		Short: "Match one ROM file without storing the result",
		Long: `Hash a single file, query every configured provider and print each
provider's winning candidate plus the merged record. Nothing is written to the
library database. The platform defaults to the file's parent directory name.

Examples:
  romm match "~/romm/library/roms/nes/Super Mario Bros. (USA).nes"
  romm match ./game.sfc --platform snes --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}
			path, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}
			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				scanner := scan.New(cfg, store, scan.WithLogger(logger))
				result, err := scanner.MatchFile(cmd.Context(), path, platformName)
				if err != nil {
					return fmt.Errorf("match: %w", err)
				}
				if jsonOutput {
					return writeJSON(cmd, matchOutput{
						File:       result.ROM.Name.FileName,
						Platform:   result.ROM.Platform.Slug,
						SearchTerm: result.ROM.Name.SearchTerm,
						Hashes:     result.ROM.Hashes,
						Candidates: result.Candidates,
						Record:     result.Record,
					})
				}
				fmt.Fprint(cmd.OutOrStdout(), renderMatch(result))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&platformName, "platform", "p", "", "Platform slug or folder name")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func renderMatch(result scan.MatchResult) string {
	var b strings.Builder
	rom := result.ROM
	fmt.Fprintf(&b, "File:        %s\n", rom.Name.FileName)
	fmt.Fprintf(&b, "Platform:    %s\n", rom.Platform.Slug)
	fmt.Fprintf(&b, "Search term: %s\n", rom.Name.SearchTerm)
	if region := rom.Name.Tags.Region(); region != "" {
		fmt.Fprintf(&b, "Region:      %s\n", region)
	}
	if rom.Name.Tags.Revision != "" {
		fmt.Fprintf(&b, "Revision:    %s\n", rom.Name.Tags.Revision)
	}
	fmt.Fprintf(&b, "CRC32:       %s\n\n", rom.Hashes.CRC32)

	rows := make([][]string, 0, len(result.Candidates))
	for _, provider := range sortedProviders(result.Candidates) {
		c := result.Candidates[provider]
		if c == nil {
			rows = append(rows, []string{provider, "-", "no match", "-", "-"})
			continue
		}
		rows = append(rows, []string{provider, c.ExternalID, c.Name, c.Match.String(), strconv.FormatFloat(c.Score, 'f', 2, 64)})
	}
	if len(rows) > 0 {
		b.WriteString(renderTable(
			[]string{"Provider", "ID", "Name", "Match", "Score"},
			rows,
		))
		b.WriteString("\n\n")
	}

	record := result.Record
	if !record.Matched() {
		b.WriteString("No provider matched this file.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "Name:        %s\n", record.Name)
	fmt.Fprintf(&b, "IDs:         %s\n", formatIDs(record.IDs))
	if record.ReleaseDate != "" {
		fmt.Fprintf(&b, "Released:    %s\n", record.ReleaseDate)
	}
	if len(record.Genres) > 0 {
		fmt.Fprintf(&b, "Genres:      %s\n", strings.Join(record.Genres, ", "))
	}
	if record.Rating != nil {
		fmt.Fprintf(&b, "Rating:      %.0f\n", *record.Rating)
	}
	if record.CoverURL != "" {
		fmt.Fprintf(&b, "Cover:       %s\n", record.CoverURL)
	}
	return b.String()
}

func sortedProviders(candidates map[string]*metadata.Candidate) []string {
	var out []string
	for _, provider := range idDisplayOrder {
		if _, ok := candidates[provider]; ok {
			out = append(out, provider)
		}
	}
	return out
}
