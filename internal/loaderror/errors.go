// Package loaderror defines the error types surfaced by the dataset loader
// and the upload merger. Structural problems (missing required columns) abort
// a load; per-row problems are absorbed by the loader and never reach callers.
package loaderror

import "fmt"

// SchemaError reports a required input column missing at load time.
// A SchemaError is fatal for that load attempt; no partial load happens.
type SchemaError struct {
	Source  string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required column(s): %v", e.Source, e.Missing)
}

// ParseError represents a per-field parse failure with enough context to
// trace it back to the source row.
type ParseError struct {
	Source string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Source, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MergeError reports a failed upload merge.
type MergeError struct {
	Mode   string
	Reason string
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("merge (%s) failed: %s", e.Mode, e.Reason)
}
