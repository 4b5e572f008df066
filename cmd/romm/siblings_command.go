package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rommapp/romm-sub002/internal/config"
	"github.com/rommapp/romm-sub002/internal/library"
	"github.com/rommapp/romm-sub002/internal/platform"
)

type siblingGroupView struct {
	Platform string    `json:"platform"`
	ROMs     []romView `json:"roms"`
}

func newSiblingsCommand(ctx *commandContext) *cobra.Command {
	var platformName string
	var romID int64
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "siblings",
		Short: "List ROMs that are variants of the same game",
		Long: `Group stored ROMs on the same platform that share any external id or the
same normalized file name. Groups are recomputed from the stored rows on every
call.

Examples:
  romm siblings
  romm siblings --platform snes
  romm siblings --rom 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, store *library.Store) error {
				if romID > 0 {
					siblings, err := store.Siblings(cmd.Context(), romID)
					if err != nil {
						return err
					}
					views := make([]romView, 0, len(siblings))
					for _, rom := range siblings {
						views = append(views, toROMView(rom))
					}
					if jsonOutput {
						return writeJSON(cmd, views)
					}
					if len(views) == 0 {
						fmt.Fprintf(cmd.OutOrStdout(), "ROM %d has no siblings\n", romID)
						return nil
					}
					fmt.Fprintln(cmd.OutOrStdout(), renderSiblingRows(views))
					return nil
				}

				slug := ""
				if platformName != "" {
					slug = platform.Resolve(platformName).Slug
				}
				sets, err := store.SiblingSets(cmd.Context(), slug)
				if err != nil {
					return err
				}
				groups := make([]siblingGroupView, 0, len(sets))
				for _, set := range sets {
					group := siblingGroupView{Platform: set.Platform}
					for _, rom := range set.ROMs {
						group.ROMs = append(group.ROMs, toROMView(rom))
					}
					groups = append(groups, group)
				}
				if jsonOutput {
					return writeJSON(cmd, groups)
				}
				if len(groups) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No sibling groups")
					return nil
				}
				out := cmd.OutOrStdout()
				for i, group := range groups {
					fmt.Fprintf(out, "Group %d (%s, %d ROMs)\n", i+1, group.Platform, len(group.ROMs))
					fmt.Fprintln(out, renderSiblingRows(group.ROMs))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&platformName, "platform", "p", "", "Only group ROMs on this platform")
	cmd.Flags().Int64Var(&romID, "rom", 0, "Show the siblings of one ROM id")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func renderSiblingRows(views []romView) string {
	rows := make([][]string, 0, len(views))
	for _, view := range views {
		rows = append(rows, []string{strconv.FormatInt(view.ID, 10), view.FileName, view.Name, formatIDs(view.Record.IDs)})
	}
	return renderTable(
		[]string{"ID", "File", "Name", "External IDs"},
		rows,
	)
}
