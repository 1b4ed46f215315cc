// Package textutil provides token-level text similarity for header
// suggestions.
//
// Tag header typos rarely survive an exact case-folded comparison, so the
// check command falls back to cosine similarity over token fingerprints to
// point at the mapping entry the author probably meant.
package textutil
