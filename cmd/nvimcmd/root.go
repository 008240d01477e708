package main

import (
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

func newRootCommand() *cobra.Command {
	return buildRootCommand(dialEditor, os.LookupEnv)
}

func buildRootCommand(dial dialFunc, lookupEnv func(string) (string, bool)) *cobra.Command {
	var flags globalFlags

	ctx := newCommandContext(&flags, dial, lookupEnv)

	rootCmd := &cobra.Command{
		Use:           "nvimcmd",
		Short:         "Send commands to the neovim instance hosting this terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.address, "address", "", "Editor RPC address (socket path or host:port); overrides the environment")
	rootCmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format (console, json)")

	rootCmd.AddCommand(newEditCommand(ctx))
	rootCmd.AddCommand(newCdCommand(ctx))
	rootCmd.AddCommand(newRenameCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
