package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/rommapp/romm-sub002/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var online bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check library paths and provider configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(cmd.Context(), cfg, preflight.Options{Online: online})

			p := newStatusPrinter(cmd.OutOrStdout())
			p.section("Configuration")
			p.line("Config file", statusInfo, ctx.configPath)
			p.line("Database", statusInfo, cfg.DatabasePath())
			p.line("Scan mode", statusInfo, cfg.Scan.Mode)
			p.line("Require provider", statusInfo, yesNo(cfg.Scan.RequireProvider))
			p.section("Checks")
			for _, r := range results {
				p.line(r.Name, resultKind(r), r.Detail)
			}
			p.summary()

			if preflight.Failed(results) {
				return errors.New("one or more required checks failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&online, "online", false, "Probe configured provider endpoints over the network")
	return cmd
}

func resultKind(r preflight.Result) statusKind {
	switch {
	case r.Passed:
		return statusOK
	case r.Optional:
		return statusWarn
	default:
		return statusError
	}
}
