package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/tradeboard/internal/config"
)

func newValidateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the settings file and every table's color modes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, cfg, err := loadConfig(flags)
			if err != nil {
				return newCommandError("validate", "loading "+path, err, "Fix the reported field and run validate again.")
			}

			specs, err := config.TableSpecs(cfg)
			if err != nil {
				return newCommandError("validate", "checking table color modes", err, "Every color mode must target a column of its table.")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Settings: %s\n", path)
			fmt.Fprintf(out, "Storage:  %s %s\n", cfg.Storage.Backend, cfg.Storage.Path)
			for _, spec := range specs {
				modes := 0
				if spec.Colors != nil {
					modes = len(spec.Colors.Modes)
				}
				fmt.Fprintf(out, "  %-14s %2d columns, %d color modes\n", spec.ID, len(spec.Columns), modes)
			}
			fmt.Fprintln(out, "Configuration is valid")
			return nil
		},
	}
}
