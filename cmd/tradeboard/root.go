package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath  string
	storage     string
	storagePath string
	logLevel    string
	verbose     bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "tradeboard",
		Short:         "Tradeboard is a terminal dashboard for trading data",
		Long:          "Tradeboard shows trades, credit, holdings, risk and transactions tables plus price charts, and remembers how you arranged them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, flags)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Settings file (default is the user config dir)")
	cmd.PersistentFlags().StringVar(&flags.storage, "storage", "", "View state backend: memory, file, badger or sqlite")
	cmd.PersistentFlags().StringVar(&flags.storagePath, "storage-path", "", "Location of the view state backend")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newStateCmd(flags))
	cmd.AddCommand(newValidateCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
