package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"reelsmith/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show environment and dependency health",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			out := cmd.OutOrStdout()

			rows := make([][]string, 0, 8)
			for _, status := range preflight.CheckSystemDeps(cmd.Context(), cfg) {
				detail := status.Detail
				if detail == "" {
					detail = status.Command
				}
				rows = append(rows, []string{status.Name, yesNo(status.Available), detail})
			}
			for _, result := range preflight.RunAll(cmd.Context(), cfg) {
				rows = append(rows, []string{result.Name, yesNo(result.Passed), result.Detail})
			}

			fmt.Fprintln(out, renderTable([]string{"Check", "OK", "Detail"}, rows))
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the reelsmith version",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

// version is overridden at release time via -ldflags.
var version = "0.1.0-dev"
