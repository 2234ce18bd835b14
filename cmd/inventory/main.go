// Package main is the inventory client binary: a product gateway that
// serves the upstream products API when it is reachable and a local
// offline store when it is not.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	Version = "1.0.0"
	appName = "inventory"
)

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath string
	logLevel   string
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Inventory product client with offline fallback",
		Long: `Inventory talks to the products API when it answers, and otherwise keeps
products in a local offline store. The mode is decided once per run.

Offline products are never copied to the API.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file path (YAML), falls back to CONFIG_PATH")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	cmd.AddCommand(
		serveCmd(flags),
		listCmd(flags),
		getCmd(flags),
		createCmd(flags),
		updateCmd(flags),
		deleteCmd(flags),
		duplicateCmd(flags),
		importCmd(flags),
		exportCmd(flags),
		statsCmd(flags),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
			},
		},
	)

	return cmd
}
