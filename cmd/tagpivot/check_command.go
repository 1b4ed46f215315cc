package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tagpivot/internal/config"
	"tagpivot/internal/fileutil"
	"tagpivot/internal/mapping"
	"tagpivot/internal/reshape"
)

type headerReport struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	TagKeyID   string `json:"tagkey_id,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

type checkReport struct {
	MetadataHeader string         `json:"metadata_header"`
	Headers        []headerReport `json:"headers"`
	Mapped         int            `json:"mapped"`
	Missing        []string       `json:"missing,omitempty"`
}

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "check <input.csv> <mapping.json>",
		Short: "Verify that every tag header has a mapping entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			metadataHeader, tagHeaders, err := reshape.Headers(tableText)
			if err != nil {
				return err
			}

			report := buildCheckReport(metadataHeader, tagHeaders, m)

			if jsonFlag {
				if err := writeJSON(cmd, report); err != nil {
					return err
				}
			} else {
				renderCheckReport(cmd, report, len(tagHeaders))
			}

			if len(report.Missing) > 0 {
				return &reshape.UnmappedHeadersError{Headers: report.Missing}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit the check report as JSON")

	return cmd
}

func buildCheckReport(metadataHeader string, tagHeaders []string, m mapping.Mapping) checkReport {
	report := checkReport{MetadataHeader: metadataHeader}
	for _, name := range tagHeaders {
		entry := headerReport{Name: name}
		switch {
		case strings.TrimSpace(name) == "":
			entry.Status = "blank"
		case m.Has(name):
			entry.Status = "ok"
			entry.TagKeyID, _ = m.Resolve(name)
			report.Mapped++
		default:
			entry.Status = "missing"
			entry.Suggestion = m.FindFold(name)
			if entry.Suggestion == "" {
				entry.Suggestion, _ = m.BestMatch(name)
			}
			report.Missing = append(report.Missing, name)
		}
		report.Headers = append(report.Headers, entry)
	}
	return report
}

func renderCheckReport(cmd *cobra.Command, report checkReport, total int) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	fmt.Fprintf(out, "Metadata column: %s\n\n", report.MetadataHeader)
	for _, line := range renderSectionHeader("Tag headers", colorize) {
		fmt.Fprintln(out, line)
	}
	for _, entry := range report.Headers {
		label := entry.Name
		kind := statusInfo
		message := ""
		switch entry.Status {
		case "ok":
			kind = statusOK
			message = entry.TagKeyID
		case "missing":
			kind = statusError
			message = "no mapping entry"
			if entry.Suggestion != "" {
				message = fmt.Sprintf("no mapping entry (similar: %q)", entry.Suggestion)
			}
		case "blank":
			label = "(blank)"
			kind = statusWarn
			message = "blank header; cells under it are dropped"
		}
		fmt.Fprintln(out, renderStatusLine(label, kind, message, colorize))
	}
	fmt.Fprintf(out, "\n%d of %d tag headers mapped\n", report.Mapped, total)
}
