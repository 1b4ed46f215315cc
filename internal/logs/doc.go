// Package logs reads tagpivot log files for the CLI.
//
// Read returns either the trailing lines of a file or everything after a
// byte offset, with bounded memory use. Follow polls for appended lines so
// `tagpivot logs --follow` can stream a run's output as it happens, and
// restarts from the top when the file is rotated underneath it.
package logs
