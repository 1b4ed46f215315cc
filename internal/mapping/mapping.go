// Package mapping loads the tag display-name to identifier lookup document.
//
// The document is a flat JSON object of display name to ID, typically exported
// from the upstream tag registry. Keys are matched exactly against table
// headers; no trimming or case folding happens at lookup time.
package mapping

import (
	"encoding/json"
	"fmt"

	"golang.org/x/text/cases"

	"tagpivot/internal/fileutil"
	"tagpivot/internal/textutil"
)

// Mapping resolves tag display names to their stable identifiers.
type Mapping map[string]string

// Parse decodes a JSON object of string keys to string values.
func Parse(data []byte) (Mapping, error) {
	var m Mapping
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse mapping document: %w", err)
	}
	if m == nil {
		m = Mapping{}
	}
	return m, nil
}

// LoadFile reads and parses the mapping document at path. A leading UTF-8
// byte-order mark is tolerated.
func LoadFile(path string) (Mapping, error) {
	text, err := fileutil.ReadTextFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Parse([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Resolve returns the identifier for the given display name.
func (m Mapping) Resolve(name string) (string, bool) {
	id, ok := m[name]
	return id, ok
}

// Has reports whether the display name exists in the mapping.
func (m Mapping) Has(name string) bool {
	_, ok := m[name]
	return ok
}

// Names returns every display name in the mapping, in unspecified order.
func (m Mapping) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	return names
}

// FindFold returns a display name that equals name under Unicode case
// folding, for suggesting near-miss headers. Exact matches are excluded;
// the empty string means no candidate exists. Ties resolve to the
// lexicographically smallest candidate so output stays stable.
func (m Mapping) FindFold(name string) string {
	folder := cases.Fold()
	folded := folder.String(name)
	best := ""
	for candidate := range m {
		if candidate == name {
			continue
		}
		if folder.String(candidate) != folded {
			continue
		}
		if best == "" || candidate < best {
			best = candidate
		}
	}
	return best
}

// bestMatchThreshold is the minimum cosine similarity a display name must
// score before BestMatch suggests it.
const bestMatchThreshold = 0.5

// BestMatch returns the display name whose token fingerprint is most similar
// to name, along with its cosine score. It catches the mistakes FindFold
// cannot, such as dropped words or punctuation differences. The empty string
// means nothing scored at or above the threshold. Ties resolve to the
// lexicographically smallest candidate so output stays stable.
func (m Mapping) BestMatch(name string) (string, float64) {
	query := textutil.NewFingerprint(name)
	if query == nil {
		return "", 0
	}
	best := ""
	bestScore := 0.0
	for candidate := range m {
		if candidate == name {
			continue
		}
		score := textutil.CosineSimilarity(query, textutil.NewFingerprint(candidate))
		if score < bestMatchThreshold {
			continue
		}
		if score > bestScore || (score == bestScore && (best == "" || candidate < best)) {
			best = candidate
			bestScore = score
		}
	}
	if best == "" {
		return "", 0
	}
	return best, bestScore
}
