// Package diag implements diagnostics as data: lexing, parsing, symbol
// resolution, and type checking never signal errors through panics or
// sentinel returns. They report a Diagnostic to a Reporter and keep going,
// so a single compile attempt surfaces every problem it can find rather
// than stopping at the first one.
package diag

import "langcore/internal/source"

// Note attaches secondary context to a Diagnostic, pointing at a related
// location (e.g. "previous declaration was here").
type Note struct {
	Span source.Range
	Msg  string
}

// Diagnostic is a single reported issue.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Range
	Notes    []Note
}
