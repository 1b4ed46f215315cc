// Package batch coordinates a single file-to-file transform run. It reads
// the input table, loads the mapping document, reshapes, and atomically
// replaces the output file while holding a lock that keeps concurrent runs
// off the same target.
package batch
