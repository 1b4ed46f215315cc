package reshape

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyInput reports an input with zero parseable rows: without a header
// there is nothing to interpret.
var ErrEmptyInput = errors.New("input table is empty")

// UnmappedHeadersError is the strict-mode hard stop: one or more non-blank
// tag headers have no identifier mapping. Headers keeps encountered order
// and repeats duplicates.
type UnmappedHeadersError struct {
	Headers []string
}

func (e *UnmappedHeadersError) Error() string {
	return fmt.Sprintf("missing identifier mapping for tag headers: %s", strings.Join(e.Headers, ", "))
}
