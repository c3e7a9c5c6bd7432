package main

import (
	"github.com/spf13/cobra"

	"xmlcreator/internal/config"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "1.0.0"

func newRootCommand() *cobra.Command {
	var configFlag string
	var serverFlag string

	ctx := newCommandContext(&configFlag, &serverFlag)

	rootCmd := &cobra.Command{
		Use:   "xmlcreator",
		Short: "Create asset descriptors for finished videos and upload them",
		Long: "xmlcreator reads the video tracking sheet, writes one XML asset descriptor\n" +
			"per finished video that does not have one yet, and uploads the new\n" +
			"descriptors to the delivery server.",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd, ctx)
		},
	}
	rootCmd.SetVersionTemplate("XML Creator {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", config.DefaultConfigFile, "Spreadsheet configuration file")
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", config.DefaultServerFile, "Server configuration file")

	rootCmd.AddCommand(newHistoryCommand(ctx))

	return rootCmd
}
