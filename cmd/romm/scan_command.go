package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rommapp/romm-sub002/internal/config"
	"github.com/rommapp/romm-sub002/internal/library"
	"github.com/rommapp/romm-sub002/internal/preflight"
	"github.com/rommapp/romm-sub002/internal/scan"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var mode string
	var platforms []string
	var skipPreflight bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the library and match ROMs against metadata providers",
		Long: `Walk <library_dir>/roms/<platform>/ and match every ROM file against the
configured metadata providers. The merged record for each file replaces any
previously stored record.

Modes:
  new       skip files whose stored hashes are unchanged (default)
  complete  rematch every file and remove rows for files that disappeared

Examples:
  romm scan
  romm scan --mode complete
  romm scan --platform nes --platform snes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}
			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				if !skipPreflight {
					results := preflight.RunAll(cmd.Context(), cfg, preflight.Options{})
					if preflight.Failed(results) {
						return preflightError(results)
					}
				}

				scanner := scan.New(cfg, store, scan.WithLogger(logger))
				summary, err := scanner.Run(cmd.Context(), scan.Request{Mode: mode, Platforms: platforms})
				if err != nil {
					return fmt.Errorf("scan: %w", err)
				}
				if jsonOutput {
					return writeJSON(cmd, summary)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderScanSummary(summary))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "Scan mode: new or complete (default from config)")
	cmd.Flags().StringSliceVarP(&platforms, "platform", "p", nil, "Limit the scan to platform folders or slugs")
	cmd.Flags().BoolVar(&skipPreflight, "skip-preflight", false, "Do not run preflight checks before scanning")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the summary as JSON")
	return cmd
}

func renderScanSummary(summary scan.Summary) string {
	rows := [][]string{
		{"Scan ID", summary.ScanID},
		{"Mode", summary.Mode},
		{"Providers", joinOrDash(summary.Providers)},
		{"Discovered", strconv.Itoa(summary.Discovered)},
		{"Matched", strconv.Itoa(summary.Matched)},
		{"Unmatched", strconv.Itoa(summary.Unmatched)},
		{"Skipped", strconv.Itoa(summary.Skipped)},
		{"Failed", strconv.Itoa(summary.Failed)},
		{"Removed", strconv.Itoa(summary.Removed)},
		{"Duration", summary.Duration.Round(time.Millisecond).String()},
	}
	if len(summary.DisabledProviders) > 0 {
		rows = append(rows, []string{"Disabled", strings.Join(summary.DisabledProviders, ", ")})
	}
	return renderTable([]string{"Field", "Value"}, rows)
}

func preflightError(results []preflight.Result) error {
	var failures []string
	for _, r := range results {
		if !r.Passed && !r.Optional {
			failures = append(failures, fmt.Sprintf("%s: %s", r.Name, r.Detail))
		}
	}
	return errors.New("preflight failed (run 'romm doctor' for details):\n  " + strings.Join(failures, "\n  "))
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
