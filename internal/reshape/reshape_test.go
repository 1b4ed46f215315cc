package reshape_test

import (
	"encoding/csv"
	"errors"
	"reflect"
	"strings"
	"testing"

	"tagpivot/internal/mapping"
	"tagpivot/internal/reshape"
)

func TestTransformSingleTagColumn(t *testing.T) {
	input := "project_number,env\np1,dev\n"
	m := mapping.Mapping{"env": "E1"}

	result, err := reshape.Transform(input, m, reshape.ModeStrict)
	if err != nil {
		t.Fatalf("Transform returned error: %v", err)
	}
	want := "tagkey_id,tagkey_name,tagvalue,metadata\nE1,env,dev,p1\n"
	if result.Output != want {
		t.Fatalf("unexpected output:\ngot  %q\nwant %q", result.Output, want)
	}
	if result.MetadataHeader != "project_number" {
		t.Fatalf("unexpected metadata header: %q", result.MetadataHeader)
	}
	if result.Summary.EmittedRows != 1 || result.Summary.DataRows != 1 {
		t.Fatalf("unexpected summary: %+v", result.Summary)
	}
}

func TestTransformExpandsEachTagCell(t *testing.T) {
	input := strings.Join([]string{
		"project_number,Directorate in BQ,environment",
		"346380439549,TASPD,dev",
		"1098178225458,CTO,prd",
		"",
	}, "\n")
	m := mapping.Mapping{
		"Directorate in BQ": "111222333444",
		"environment":       "777888999000",
	}

	result, err := reshape.Transform(input, m, reshape.ModeStrict)
	if err != nil {
		t.Fatalf("Transform returned error: %v", err)
	}
	want := strings.Join([]string{
		"tagkey_id,tagkey_name,tagvalue,metadata",
		"111222333444,Directorate in BQ,TASPD,346380439549",
		"777888999000,environment,dev,346380439549",
		"111222333444,Directorate in BQ,CTO,1098178225458",
		"777888999000,environment,prd,1098178225458",
		"",
	}, "\n")
	if result.Output != want {
		t.Fatalf("unexpected output:\ngot  %q\nwant %q", result.Output, want)
	}
	if result.Summary.EmittedRows != 4 {
		t.Fatalf("expected 4 emitted rows, got %d", result.Summary.EmittedRows)
	}
	if result.Summary.DataRows != 2 {
		t.Fatalf("expected 2 data rows, got %d", result.Summary.DataRows)
	}
}

func TestTransformStrictRejectsUnmappedHeaders(t *testing.T) {
	input := "project_number,env,team\np1,dev,alpha\n"
	m := mapping.Mapping{"env": "E1"}

	_, err := reshape.Transform(input, m, reshape.ModeStrict)
	if err == nil {
		t.Fatal("expected error for unmapped header")
	}
	var unmapped *reshape.UnmappedHeadersError
	if !errors.As(err, &unmapped) {
		t.Fatalf("expected UnmappedHeadersError, got %T: %v", err, err)
	}
	if !reflect.DeepEqual(unmapped.Headers, []string{"team"}) {
		t.Fatalf("unexpected missing headers: %v", unmapped.Headers)
	}
	if got := err.Error(); got != "missing identifier mapping for tag headers: team" {
		t.Fatalf("unexpected error message: %q", got)
	}
}

func TestTransformStrictRepeatsDuplicateHeaders(t *testing.T) {
	input := "project_number,team,env,team\np1,a,dev,b\n"
	m := mapping.Mapping{"env": "E1"}

	_, err := reshape.Transform(input, m, reshape.ModeStrict)
	var unmapped *reshape.UnmappedHeadersError
	if !errors.As(err, &unmapped) {
		t.Fatalf("expected UnmappedHeadersError, got %v", err)
	}
	if !reflect.DeepEqual(unmapped.Headers, []string{"team", "team"}) {
		t.Fatalf("unexpected missing headers: %v", unmapped.Headers)
	}
}

func TestTransformLenientDropsUnmappedCells(t *testing.T) {
	input := "project_number,env,team\np1,dev,alpha\n"
	m := mapping.Mapping{"env": "E1"}

	result, err := reshape.Transform(input, m, reshape.ModeLenient)
	if err != nil {
		t.Fatalf("Transform returned error: %v", err)
	}
	want := "tagkey_id,tagkey_name,tagvalue,metadata\nE1,env,dev,p1\n"
	if result.Output != want {
		t.Fatalf("unexpected output:\ngot  %q\nwant %q", result.Output, want)
	}
	if result.Summary.UnmappedCells != 1 {
		t.Fatalf("expected 1 unmapped cell, got %d", result.Summary.UnmappedCells)
	}
	if result.Summary.EmittedRows != 1 {
		t.Fatalf("expected 1 emitted row, got %d", result.Summary.EmittedRows)
	}
}

func TestTransformEmptyInput(t *testing.T) {
	m := mapping.Mapping{"env": "E1"}
	for _, input := range []string{"", "\n", "\n\n\n"} {
		_, err := reshape.Transform(input, m, reshape.ModeStrict)
		if !errors.Is(err, reshape.ErrEmptyInput) {
			t.Fatalf("Transform(%q) error = %v, want ErrEmptyInput", input, err)
		}
	}
}

func TestTransformHeaderOnly(t *testing.T) {
	result, err := reshape.Transform("project_number,env\n", mapping.Mapping{"env": "E1"}, reshape.ModeStrict)
	if err != nil {
		t.Fatalf("Transform returned error: %v", err)
	}
	if result.Output != "tagkey_id,tagkey_name,tagvalue,metadata\n" {
		t.Fatalf("unexpected output: %q", result.Output)
	}
	if result.Summary != (reshape.Summary{}) {
		t.Fatalf("expected zero summary, got %+v", result.Summary)
	}
}

func TestTransformSkipsBlankRows(t *testing.T) {
	input := "project_number,env,team\n,,\np2,qa,beta\n"
	m := mapping.Mapping{"env": "E1", "team": "T1"}

	result, err := reshape.Transform(input, m, reshape.ModeStrict)
	if err != nil {
		t.Fatalf("Transform returned error: %v", err)
	}
	if result.Summary.SkippedRows != 1 {
		t.Fatalf("expected 1 skipped row, got %d", result.Summary.SkippedRows)
	}
	if result.Summary.EmittedRows != 2 {
		t.Fatalf("expected 2 emitted rows, got %d", result.Summary.EmittedRows)
	}
	if len(result.Records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d records", len(result.Records))
	}
}

func TestTransformSkipsBlankMetadata(t *testing.T) {
	input := "project_number,env\n  ,dev\np2,qa\n"
	m := mapping.Mapping{"env": "E1"}

	result, err := reshape.Transform(input, m, reshape.ModeStrict)
	if err != nil {
		t.Fatalf("Transform returned error: %v", err)
	}
	if result.Summary.SkippedRows != 1 {
		t.Fatalf("expected 1 skipped row, got %d", result.Summary.SkippedRows)
	}
	want := [][]string{
		{"tagkey_id", "tagkey_name", "tagvalue", "metadata"},
		{"E1", "env", "qa", "p2"},
	}
	if !reflect.DeepEqual(result.Records, want) {
		t.Fatalf("unexpected records: %v", result.Records)
	}
}

func TestTransformSkipsBlankCells(t *testing.T) {
	input := "project_number,env,team\np1,  ,alpha\n"
	m := mapping.Mapping{"env": "E1", "team": "T1"}

	result, err := reshape.Transform(input, m, reshape.ModeStrict)
	if err != nil {
		t.Fatalf("Transform returned error: %v", err)
	}
	want := [][]string{
		{"tagkey_id", "tagkey_name", "tagvalue", "metadata"},
		{"T1", "team", "alpha", "p1"},
	}
	if !reflect.DeepEqual(result.Records, want) {
		t.Fatalf("unexpected records: %v", result.Records)
	}
	if result.Summary.BlankCells != 1 {
		t.Fatalf("expected 1 blank cell, got %d", result.Summary.BlankCells)
	}
}

func TestTransformPreservesValuesVerbatim(t *testing.T) {
	input := "project_number,env\n\" p1 \",\" dev \"\n"
	m := mapping.Mapping{"env": "E1"}

	result, err := reshape.Transform(input, m, reshape.ModeStrict)
	if err != nil {
		t.Fatalf("Transform returned error: %v", err)
	}
	if got := result.Records[1][2]; got != " dev " {
		t.Fatalf("tag value trimmed: %q", got)
	}
	if got := result.Records[1][3]; got != " p1 " {
		t.Fatalf("metadata trimmed: %q", got)
	}
	if !reflect.DeepEqual(reparse(t, result.Output), result.Records) {
		t.Fatal("output does not round-trip to records")
	}
}

func TestTransformIgnoresExtraCells(t *testing.T) {
	input := "project_number,env\np1,dev,EXTRA,MORE\n"
	m := mapping.Mapping{"env": "E1"}

	result, err := reshape.Transform(input, m, reshape.ModeStrict)
	if err != nil {
		t.Fatalf("Transform returned error: %v", err)
	}
	want := [][]string{
		{"tagkey_id", "tagkey_name", "tagvalue", "metadata"},
		{"E1", "env", "dev", "p1"},
	}
	if !reflect.DeepEqual(result.Records, want) {
		t.Fatalf("unexpected records: %v", result.Records)
	}
	if strings.Contains(result.Output, "EXTRA") {
		t.Fatalf("overflow cell leaked into output: %q", result.Output)
	}
}

func TestTransformShortRowEmitsPrefix(t *testing.T) {
	input := "project_number,env,team\np1,dev\n"
	m := mapping.Mapping{"env": "E1", "team": "T1"}

	result, err := reshape.Transform(input, m, reshape.ModeStrict)
	if err != nil {
		t.Fatalf("Transform returned error: %v", err)
	}
	want := [][]string{
		{"tagkey_id", "tagkey_name", "tagvalue", "metadata"},
		{"E1", "env", "dev", "p1"},
	}
	if !reflect.DeepEqual(result.Records, want) {
		t.Fatalf("unexpected records: %v", result.Records)
	}
}

func TestTransformBlankHeaderColumnNeverEmits(t *testing.T) {
	input := "project_number,,env\np1,x,dev\n"
	m := mapping.Mapping{"env": "E1"}

	for _, mode := range []reshape.Mode{reshape.ModeStrict, reshape.ModeLenient} {
		t.Run(mode.String(), func(t *testing.T) {
			result, err := reshape.Transform(input, m, mode)
			if err != nil {
				t.Fatalf("Transform returned error: %v", err)
			}
			want := [][]string{
				{"tagkey_id", "tagkey_name", "tagvalue", "metadata"},
				{"E1", "env", "dev", "p1"},
			}
			if !reflect.DeepEqual(result.Records, want) {
				t.Fatalf("unexpected records: %v", result.Records)
			}
			if result.Summary.UnmappedCells != 1 {
				t.Fatalf("expected 1 unmapped cell, got %d", result.Summary.UnmappedCells)
			}
		})
	}
}

func TestTransformAcceptsCRLF(t *testing.T) {
	input := "project_number,env\r\np1,dev\r\n"
	m := mapping.Mapping{"env": "E1"}

	result, err := reshape.Transform(input, m, reshape.ModeStrict)
	if err != nil {
		t.Fatalf("Transform returned error: %v", err)
	}
	want := "tagkey_id,tagkey_name,tagvalue,metadata\nE1,env,dev,p1\n"
	if result.Output != want {
		t.Fatalf("unexpected output: %q", result.Output)
	}
}

func TestTransformQuotedFieldsRoundTrip(t *testing.T) {
	input := "project_number,env\n\"p,1\",\"de\nv\"\n"
	m := mapping.Mapping{"env": "E1"}

	result, err := reshape.Transform(input, m, reshape.ModeStrict)
	if err != nil {
		t.Fatalf("Transform returned error: %v", err)
	}
	if got := result.Records[1][3]; got != "p,1" {
		t.Fatalf("unexpected metadata: %q", got)
	}
	if got := result.Records[1][2]; got != "de\nv" {
		t.Fatalf("unexpected tag value: %q", got)
	}
	if !reflect.DeepEqual(reparse(t, result.Output), result.Records) {
		t.Fatal("output does not round-trip to records")
	}
}

func TestTransformDeterministic(t *testing.T) {
	input := "project_number,env,team\np1,dev,alpha\np2,qa,beta\n"
	m := mapping.Mapping{"env": "E1", "team": "T1"}

	first, err := reshape.Transform(input, m, reshape.ModeStrict)
	if err != nil {
		t.Fatalf("Transform returned error: %v", err)
	}
	second, err := reshape.Transform(input, m, reshape.ModeStrict)
	if err != nil {
		t.Fatalf("Transform returned error: %v", err)
	}
	if first.Output != second.Output {
		t.Fatalf("outputs differ:\nfirst  %q\nsecond %q", first.Output, second.Output)
	}
}

func TestTransformRowAccounting(t *testing.T) {
	input := strings.Join([]string{
		"project_number,env,team",
		"p1,dev,alpha",
		",,",
		"p2,,beta",
		",qa,gamma",
		"p3,prd",
		"",
	}, "\n")
	m := mapping.Mapping{"env": "E1", "team": "T1"}

	result, err := reshape.Transform(input, m, reshape.ModeStrict)
	if err != nil {
		t.Fatalf("Transform returned error: %v", err)
	}
	want := reshape.Summary{
		DataRows:    5,
		SkippedRows: 2,
		EmittedRows: 4,
		BlankCells:  1,
	}
	if result.Summary != want {
		t.Fatalf("unexpected summary: got %+v want %+v", result.Summary, want)
	}
	if len(result.Records) != result.Summary.EmittedRows+1 {
		t.Fatalf("records/summary mismatch: %d records, %d emitted", len(result.Records), result.Summary.EmittedRows)
	}
}

func TestTransformMalformedInput(t *testing.T) {
	input := "project_number,env\np1,\"dev\n"
	_, err := reshape.Transform(input, mapping.Mapping{"env": "E1"}, reshape.ModeStrict)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "parse input table") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		value   string
		want    reshape.Mode
		wantErr bool
	}{
		{value: "strict", want: reshape.ModeStrict},
		{value: "STRICT", want: reshape.ModeStrict},
		{value: " lenient ", want: reshape.ModeLenient},
		{value: "Lenient", want: reshape.ModeLenient},
		{value: "", wantErr: true},
		{value: "loose", wantErr: true},
	}
	for _, tt := range tests {
		got, err := reshape.ParseMode(tt.value)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseMode(%q) expected error", tt.value)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMode(%q) returned error: %v", tt.value, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestModeString(t *testing.T) {
	if got := reshape.ModeStrict.String(); got != "strict" {
		t.Fatalf("ModeStrict.String() = %q", got)
	}
	if got := reshape.ModeLenient.String(); got != "lenient" {
		t.Fatalf("ModeLenient.String() = %q", got)
	}
}

func TestHeaders(t *testing.T) {
	metadataHeader, tagHeaders, err := reshape.Headers("project_number,env,team\np1,dev,alpha\n")
	if err != nil {
		t.Fatalf("Headers returned error: %v", err)
	}
	if metadataHeader != "project_number" {
		t.Fatalf("unexpected metadata header: %q", metadataHeader)
	}
	if !reflect.DeepEqual(tagHeaders, []string{"env", "team"}) {
		t.Fatalf("unexpected tag headers: %v", tagHeaders)
	}
}

func TestHeadersEmptyInput(t *testing.T) {
	_, _, err := reshape.Headers("\n")
	if !errors.Is(err, reshape.ErrEmptyInput) {
		t.Fatalf("Headers error = %v, want ErrEmptyInput", err)
	}
}

func TestMissingHeaders(t *testing.T) {
	m := mapping.Mapping{"env": "E1"}
	got := reshape.MissingHeaders([]string{"env", "  ", "team", "owner", "team"}, m)
	want := []string{"team", "owner", "team"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("MissingHeaders = %v, want %v", got, want)
	}
	if missing := reshape.MissingHeaders([]string{"env"}, m); missing != nil {
		t.Fatalf("expected no missing headers, got %v", missing)
	}
}

func reparse(t *testing.T, output string) [][]string {
	t.Helper()
	reader := csv.NewReader(strings.NewReader(output))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("reparse output: %v", err)
	}
	return records
}
