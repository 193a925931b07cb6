package diag

import (
	"fmt"

	"langcore/internal/source"
)

// Reporter is the narrow contract every compiler phase reports through.
// Phases never know whether diagnostics end up in a Bag, are streamed to an
// LSP client, or discarded.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter adapts a Bag to Reporter.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

// NopReporter discards every diagnostic. Useful in tests that only care
// about a phase's primary return value.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}

// Errorf reports a SevError diagnostic at span with code and a formatted
// message.
func Errorf(r Reporter, code Code, span source.Range, format string, args ...any) {
	r.Report(Diagnostic{Severity: SevError, Code: code, Primary: span, Message: fmt.Sprintf(format, args...)})
}

// Warnf reports a SevWarning diagnostic at span with code and a formatted
// message.
func Warnf(r Reporter, code Code, span source.Range, format string, args ...any) {
	r.Report(Diagnostic{Severity: SevWarning, Code: code, Primary: span, Message: fmt.Sprintf(format, args...)})
}
