package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	appName = "Zone25"
	appID   = "com.zone25.app"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	options := &rootOptions{}
	root := &cobra.Command{
		Use:     "zone25",
		Short:   "Zone25 - four 25 minute focus blocks per run",
		Version: Version,
		Long: `Zone25 runs fixed Pomodoro runs: four 25 minute work blocks separated by
5 minute short breaks, followed by an open-ended long break.

Without a subcommand the desktop app starts.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd, options)
		},
	}

	root.PersistentFlags().StringVar(&options.configPath, "config", "", "config file (default <user config dir>/Zone25/config.yaml)")
	root.PersistentFlags().StringVar(&options.logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")

	root.AddCommand(newGUICmd(options))
	root.AddCommand(newStartCmd(options))
	root.AddCommand(newStopCmd(options))
	root.AddCommand(newStatusCmd(options))
	root.AddCommand(newWatchCmd(options))

	return root
}
