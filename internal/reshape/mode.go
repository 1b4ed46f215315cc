package reshape

import (
	"fmt"
	"strings"
)

// Mode selects the header-validation policy for a transform.
type Mode int

const (
	// ModeStrict rejects the whole input when any non-blank tag header has
	// no mapping entry.
	ModeStrict Mode = iota
	// ModeLenient drops cells whose header has no mapping entry and keeps
	// processing.
	ModeLenient
)

// ParseMode converts a configuration or flag value into a Mode.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "strict":
		return ModeStrict, nil
	case "lenient":
		return ModeLenient, nil
	default:
		return ModeStrict, fmt.Errorf("transform mode: unsupported value %q (expected strict or lenient)", value)
	}
}

func (m Mode) String() string {
	if m == ModeLenient {
		return "lenient"
	}
	return "strict"
}
