package resolve

import (
	"github.com/vela-lang/velac/internal/diag"
	"github.com/vela-lang/velac/internal/source"
)

// recordingReporter is a minimal diag.Reporter double: it just
// remembers every code it was asked to report, so tests can assert on
// which diagnostics fired without pulling in the full diag.Bag
// machinery.
type recordingReporter struct {
	codes []diag.Code
}

func (r *recordingReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	r.codes = append(r.codes, code)
}

func (r *recordingReporter) has(code diag.Code) bool {
	for _, c := range r.codes {
		if c == code {
			return true
		}
	}
	return false
}
