package reshape

import (
	"encoding/csv"
	"fmt"
	"strings"

	"tagpivot/internal/mapping"
)

// OutputHeader returns the fixed header row of every transformed table.
func OutputHeader() []string {
	return []string{"tagkey_id", "tagkey_name", "tagvalue", "metadata"}
}

// Summary counts what a transform saw and produced.
type Summary struct {
	// DataRows is the number of data rows in the input, header excluded.
	DataRows int `json:"data_rows"`
	// SkippedRows counts rows dropped whole: all-blank rows and rows whose
	// metadata cell is blank.
	SkippedRows int `json:"skipped_rows"`
	// EmittedRows is the number of output rows, header excluded.
	EmittedRows int `json:"emitted_rows"`
	// BlankCells counts tag cells dropped for holding only whitespace.
	BlankCells int `json:"blank_cells"`
	// UnmappedCells counts tag cells dropped because their header has no
	// mapping entry; in strict mode only blank headers can land here.
	UnmappedCells int `json:"unmapped_cells"`
}

// Result is a completed transform.
type Result struct {
	// MetadataHeader is the first header cell, captured but never validated.
	MetadataHeader string
	// Records holds the fixed output header followed by every emitted row.
	Records [][]string
	// Output is Records serialized as CSV with "\n" line endings.
	Output string
	// Summary reports row and cell accounting for the run.
	Summary Summary
}

// Transform reshapes the wide table in tableText into the long four-column
// layout, resolving tag display names through m.
//
// Row 0 is the header: first cell the metadata column name, the rest tag
// display names, position-significant. Every later row contributes one
// output row per non-blank tag cell, carrying the row's first cell along as
// the metadata value. Rows that are entirely blank, or whose metadata cell
// is blank, are skipped whole. Cells beyond the header's width are ignored.
//
// Values are copied verbatim; blankness checks trim only for the decision.
// Header names match the mapping exactly, with no trimming or folding.
func Transform(tableText string, m mapping.Mapping, mode Mode) (*Result, error) {
	records, err := parseRecords(tableText)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}

	header := records[0]
	metadataHeader := header[0]
	tagHeaders := header[1:]

	if mode == ModeStrict {
		if missing := MissingHeaders(tagHeaders, m); len(missing) > 0 {
			return nil, &UnmappedHeadersError{Headers: missing}
		}
	}

	out := make([][]string, 1, len(records))
	out[0] = OutputHeader()

	var summary Summary
	for _, row := range records[1:] {
		summary.DataRows++
		if blankRow(row) {
			summary.SkippedRows++
			continue
		}
		metadataValue := row[0]
		if strings.TrimSpace(metadataValue) == "" {
			summary.SkippedRows++
			continue
		}
		for i, tagName := range tagHeaders {
			cell := i + 1
			if cell >= len(row) {
				break
			}
			tagValue := row[cell]
			if strings.TrimSpace(tagValue) == "" {
				summary.BlankCells++
				continue
			}
			tagID, ok := m.Resolve(tagName)
			if !ok {
				// Strict mode already rejected unmapped non-blank headers,
				// so only cells under blank headers land here.
				summary.UnmappedCells++
				continue
			}
			out = append(out, []string{tagID, tagName, tagValue, metadataValue})
			summary.EmittedRows++
		}
	}

	output, err := encodeRecords(out)
	if err != nil {
		return nil, err
	}

	return &Result{
		MetadataHeader: metadataHeader,
		Records:        out,
		Output:         output,
		Summary:        summary,
	}, nil
}

// Headers splits the table's header row into the metadata column name and
// the position-ordered tag headers.
func Headers(tableText string) (metadataHeader string, tagHeaders []string, err error) {
	records, err := parseRecords(tableText)
	if err != nil {
		return "", nil, err
	}
	if len(records) == 0 {
		return "", nil, ErrEmptyInput
	}
	header := records[0]
	return header[0], header[1:], nil
}

// MissingHeaders returns the non-blank tag headers that have no mapping
// entry, in encountered order. Duplicates are reported each time they occur.
func MissingHeaders(tagHeaders []string, m mapping.Mapping) []string {
	var missing []string
	for _, name := range tagHeaders {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if !m.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

func blankRow(row []string) bool {
	for _, cellValue := range row {
		if strings.TrimSpace(cellValue) != "" {
			return false
		}
	}
	return true
}

func parseRecords(tableText string) ([][]string, error) {
	reader := csv.NewReader(strings.NewReader(tableText))
	// Rows may be ragged relative to the header; alignment happens during
	// expansion, not in the parser.
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse input table: %w", err)
	}
	return records, nil
}

func encodeRecords(records [][]string) (string, error) {
	var buf strings.Builder
	writer := csv.NewWriter(&buf)
	if err := writer.WriteAll(records); err != nil {
		return "", fmt.Errorf("encode output table: %w", err)
	}
	return buf.String(), nil
}
