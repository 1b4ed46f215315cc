package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tagpivot/internal/config"
	"tagpivot/internal/fileutil"
	"tagpivot/internal/mapping"
	"tagpivot/internal/reshape"
)

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	var modeFlag string
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "preview <input.csv> <mapping.json>",
		Short: "Show the reshaped rows without writing anything",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			mode, err := ctx.resolveMode(cfg, modeFlag)
			if err != nil {
				return err
			}

			inputPath, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve input path: %w", err)
			}
			mappingPath, err := config.ExpandPath(args[1])
			if err != nil {
				return fmt.Errorf("resolve mapping path: %w", err)
			}

			tableText, err := fileutil.ReadTextFile(inputPath)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			m, err := mapping.LoadFile(mappingPath)
			if err != nil {
				return err
			}
			result, err := reshape.Transform(tableText, m, mode)
			if err != nil {
				return err
			}

			limit := limitFlag
			if limit <= 0 {
				limit = cfg.Preview.Limit
			}

			rows := result.Records[1:]
			shown := rows
			if len(rows) > limit {
				shown = rows[:limit]
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(result.Records[0], shown, nil))
			if len(shown) < len(rows) {
				fmt.Fprintf(out, "Showing first %d of %d rows\n", len(shown), len(rows))
			} else {
				fmt.Fprintf(out, "%d rows\n", len(rows))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&modeFlag, "mode", "", "Header validation mode: strict or lenient (default: configured mode)")
	cmd.Flags().IntVar(&limitFlag, "limit", 0, "Maximum rows to show (default: configured limit)")

	return cmd
}
