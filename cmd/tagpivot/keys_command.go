package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"tagpivot/internal/config"
	"tagpivot/internal/mapping"
)

func newKeysCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "keys <mapping.json>",
		Short: "List the mapping document's tag keys and identifiers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mappingPath, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve mapping path: %w", err)
			}
			m, err := mapping.LoadFile(mappingPath)
			if err != nil {
				return err
			}

			names := m.Names()
			collate.New(language.English, collate.IgnoreCase, collate.Numeric).SortStrings(names)

			rows := make([][]string, 0, len(names))
			for _, name := range names {
				id, _ := m.Resolve(name)
				rows = append(rows, []string{name, id})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"tagkey_name", "tagkey_id"}, rows, []columnAlignment{alignLeft, alignRight}))
			fmt.Fprintf(out, "%d mapping entries\n", len(names))
			return nil
		},
	}
}
