// Package reshape turns a wide tag export into the normalized long layout.
//
// The input is a delimited table whose first column holds a metadata key
// (such as a project number) and whose remaining columns are tag display
// names. Each (row, tag column) pair with a usable value becomes one output
// row of tagkey_id, tagkey_name, tagvalue, metadata, with the identifier
// resolved through a mapping document.
//
// Two header-validation policies exist: strict refuses to produce anything
// when a non-blank header lacks a mapping entry, lenient drops those cells
// and keeps the rest. Both policies occur in real pipelines; callers pick
// one explicitly via Mode.
package reshape
