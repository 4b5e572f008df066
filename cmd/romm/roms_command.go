package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rommapp/romm-sub002/internal/config"
	"github.com/rommapp/romm-sub002/internal/library"
	"github.com/rommapp/romm-sub002/internal/metadata"
	"github.com/rommapp/romm-sub002/internal/platform"
)

type romView struct {
	ID       int64           `json:"id"`
	Platform string          `json:"platform"`
	FileName string          `json:"file_name"`
	Name     string          `json:"name"`
	Matched  bool            `json:"matched"`
	Hashes   metadata.Hashes `json:"hashes"`
	Record   metadata.Record `json:"record"`
}

func toROMView(rom library.ROM) romView {
	return romView{
		ID:       rom.ID,
		Platform: rom.Platform,
		FileName: rom.FileName,
		Name:     rom.DisplayName(),
		Matched:  rom.Matched(),
		Hashes:   rom.Hashes,
		Record:   rom.Record,
	}
}

func newROMsCommand(ctx *commandContext) *cobra.Command {
	var platformName string
	var unmatchedOnly bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "roms",
		Short: "List stored ROMs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, store *library.Store) error {
				slug := ""
				if platformName != "" {
					slug = platform.Resolve(platformName).Slug
				}
				roms, err := store.List(cmd.Context(), slug)
				if err != nil {
					return err
				}
				views := make([]romView, 0, len(roms))
				for _, rom := range roms {
					if unmatchedOnly && rom.Matched() {
						continue
					}
					views = append(views, toROMView(rom))
				}
				if jsonOutput {
					return writeJSON(cmd, views)
				}
				if len(views) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No ROMs stored")
					return nil
				}
				rows := make([][]string, 0, len(views))
				for _, view := range views {
					rows = append(rows, []string{
						strconv.FormatInt(view.ID, 10),
						view.Platform,
						view.FileName,
						view.Name,
						formatIDs(view.Record.IDs),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Platform", "File", "Name", "External IDs"},
					rows,
				))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&platformName, "platform", "p", "", "Only list ROMs on this platform")
	cmd.Flags().BoolVar(&unmatchedOnly, "unmatched", false, "Only list ROMs without metadata")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newPlatformsCommand(ctx *commandContext) *cobra.Command {
	var known bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "platforms",
		Short: "List stored platforms with match counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if known {
				return printKnownPlatforms(cmd, jsonOutput)
			}
			return ctx.withStore(func(_ *config.Config, store *library.Store) error {
				summaries, err := store.Platforms(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, summaries)
				}
				if len(summaries) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No platforms stored; run 'romm scan' first")
					return nil
				}
				rows := make([][]string, 0, len(summaries))
				for _, summary := range summaries {
					rows = append(rows, []string{
						summary.Slug,
						platform.Resolve(summary.Slug).Name,
						strconv.Itoa(summary.ROMs),
						strconv.Itoa(summary.Matched),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Slug", "Name", "ROMs", "Matched"},
					rows,
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&known, "known", false, "List the built-in platform table instead of stored platforms")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func printKnownPlatforms(cmd *cobra.Command, jsonOutput bool) error {
	all := platform.All()
	if jsonOutput {
		return writeJSON(cmd, all)
	}
	rows := make([][]string, 0, len(all))
	for _, p := range all {
		rows = append(rows, []string{
			p.Slug,
			p.Name,
			strconv.Itoa(p.IGDB),
			strconv.Itoa(p.MobyGames),
			strconv.Itoa(p.ScreenScraper),
			strconv.Itoa(p.RetroAchievements),
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Slug", "Name", "IGDB", "Moby", "SS", "RA"},
		rows,
	))
	return nil
}
