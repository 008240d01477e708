package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"nvimcmd/internal/command"
	"nvimcmd/internal/driver"
)

func newEditCommand(ctx *commandContext) *cobra.Command {
	var wait bool
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "edit <file>",
		Short: "Open a file in the editor",
		Long: "Open a file in the editor's current window.\n\n" +
			"With --wait the command blocks until the buffer is closed in the editor,\n" +
			"so it can be used as $EDITOR or $GIT_EDITOR inside a neovim terminal.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if timeout < 0 {
				return fmt.Errorf("--timeout must not be negative")
			}
			edit := command.Edit(args[0])
			if !wait {
				return ctx.withDriver(cmd, func(runCtx context.Context, d *driver.Driver) error {
					return d.Run(runCtx, edit)
				})
			}
			var tune []func(*driver.Options)
			if cmd.Flags().Changed("timeout") {
				tune = append(tune, func(opts *driver.Options) { opts.WaitTimeout = timeout })
			}
			return ctx.withDriver(cmd, func(runCtx context.Context, d *driver.Driver) error {
				return d.RunAndWait(runCtx, edit)
			}, tune...)
		},
	}

	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "Block until the buffer is closed in the editor")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Give up waiting after this long (0 waits indefinitely; defaults to wait.timeout)")
	return cmd
}

func newCdCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cd [directory]",
		Short: "Change the editor's tab-local working directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var directory string
			if len(args) == 1 {
				directory = args[0]
			}
			return ctx.withDriver(cmd, func(runCtx context.Context, d *driver.Driver) error {
				return d.Run(runCtx, command.Tchdir(directory))
			})
		},
	}
}

func newRenameCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <name>",
		Short: "Rename the current terminal buffer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDriver(cmd, func(runCtx context.Context, d *driver.Driver) error {
				return d.Run(runCtx, command.RenameTerminal(args[0]))
			})
		},
	}
}
