package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"nvimcmd/internal/editor"
	"nvimcmd/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the editor is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runCtx, logger, err := ctx.ensureLogger(cmd.Context())
			if err != nil {
				return err
			}

			var target preflight.Target
			target.Address, target.Source, target.LookupErr = ctx.resolveAddress(cfg)

			dial := func(dialCtx context.Context, address string) (preflight.Pinger, error) {
				session, err := ctx.dial(dialCtx, address, editor.Options{
					DialTimeout: cfg.DialTimeout(),
					CallTimeout: cfg.CallTimeout(),
					Logger:      logger,
				})
				if err != nil {
					return nil, err
				}
				return session, nil
			}

			results := preflight.RunAll(runCtx, target, dial)
			rows := make([][]string, 0, len(results))
			failed := 0
			for _, r := range results {
				status := "ok"
				if !r.Passed {
					status = "FAIL"
					failed++
				}
				rows = append(rows, []string{r.Name, status, r.Detail})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Check", "Status", "Detail"}, rows))
			if failed > 0 {
				return fmt.Errorf("editor not reachable: %d check(s) failed", failed)
			}
			return nil
		},
	}
}
