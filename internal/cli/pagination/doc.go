// Package pagination provides the --limit/--offset, --page/--page-size and
// --sort flags shared by listing commands, and applies them to slices.
package pagination
