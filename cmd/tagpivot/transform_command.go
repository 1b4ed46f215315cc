package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tagpivot/internal/batch"
	"tagpivot/internal/config"
)

func newTransformCommand(ctx *commandContext) *cobra.Command {
	var modeFlag string
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "transform <input.csv> <mapping.json> <output.csv>",
		Short: "Reshape a wide tag export into long tagkey rows",
		Long: `Reshape a wide tag export into the long four-column layout.

The input table's first column carries a metadata value; every remaining
column is a tag display name. Each filled tag cell becomes one output row of
tagkey_id, tagkey_name, tagvalue, metadata, with identifiers resolved
through the mapping document (a JSON object of display name to ID).

Strict mode refuses to produce output when a tag header has no mapping
entry; lenient mode drops those cells and keeps the rest.`,
		Args: cobra.ExactArgs(3),
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
			outputPath, err := config.ExpandPath(args[2])
			if err != nil {
				return fmt.Errorf("resolve output path: %w", err)
			}

			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}

			outcome, err := batch.Run(cmd.Context(), logger, batch.Request{
				InputPath:   inputPath,
				MappingPath: mappingPath,
				OutputPath:  outputPath,
				Mode:        mode,
			})
			if err != nil {
				return err
			}

			if jsonFlag {
				return writeJSON(cmd, outcome)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %d rows to %s\n", outcome.Summary.EmittedRows, outcome.OutputPath)
			fmt.Fprintf(out, "Data rows: %d  Skipped: %d  Blank cells: %d  Unmapped cells: %d\n",
				outcome.Summary.DataRows,
				outcome.Summary.SkippedRows,
				outcome.Summary.BlankCells,
				outcome.Summary.UnmappedCells,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&modeFlag, "mode", "", "Header validation mode: strict or lenient (default: configured mode)")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit the run outcome as JSON")

	return cmd
}
