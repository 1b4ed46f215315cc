package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tagpivot/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var follow bool
	var lines int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent log output",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := logFilePath(cfg)

			opts := logs.Options{Offset: -1, Limit: lines}
			if lines <= 0 {
				opts.Offset = 0
			}
			chunk, err := logs.Read(path, opts)
			if err != nil {
				return err
			}
			for _, line := range chunk.Lines {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}

			if !follow {
				if len(chunk.Lines) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No log entries available")
				}
				return nil
			}

			err = logs.Follow(cmd.Context(), path, chunk.Offset, time.Second, func(line string) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Follow log output")
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of lines to show (0 for all)")
	return cmd
}
