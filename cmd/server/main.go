package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const appName = "wci"

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   appName,
		Short: "World Cybercrime Index dashboard backend",
		Long: color.New(color.FgHiMagenta).Sprint("World Cybercrime Index dashboard backend. ") +
			"Serves the metrics map and the attribution charts over HTTP.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a config file (default: search ., ./config, $XDG_CONFIG_HOME/wci-dashboard)")

	root.AddCommand(
		newServeCmd(&configPath),
		newQueryCmd(&configPath),
		newCheckCmd(&configPath),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}
