// Package diagfmt renders diagnostics for a terminal. Grounded on the
// teacher's internal/diagfmt/pretty.go — same PrettyOpts shape and
// severity/code/message line layout — but implemented in full: the
// teacher's own Pretty is left as a TODO stub, and this CLI needs a
// working renderer for `velac resolve`'s output.
//
// This core's fixtures (internal/fixture) build every AST node with a
// zero source.Span (there is no lexer/parser in this retrieval to
// produce real ones), so unlike the teacher's version this renderer
// never attempts a source-line preview under a diagnostic — there is
// no source text a zero span could address.
package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/vela-lang/velac/internal/diag"
)

// PrettyOpts configures Pretty's output.
type PrettyOpts struct {
	Color     bool
	ShowNotes bool
}

var (
	errorColor  = color.New(color.FgRed, color.Bold)
	warnColor   = color.New(color.FgYellow, color.Bold)
	infoColor   = color.New(color.FgCyan)
	noteColor   = color.New(color.FgHiBlack)
	moduleColor = color.New(color.Bold)
)

// Pretty renders bag's diagnostics, one per line, prefixed with
// module (the fixture name the bag came from since there is no file
// path to anchor on), colorized per opts.Color.
func Pretty(w io.Writer, module string, bag *diag.Bag, opts PrettyOpts) {
	if bag == nil {
		return
	}
	moduleLabel := module
	if opts.Color {
		moduleLabel = moduleColor.Sprint(module)
	}
	for _, d := range bag.Items() {
		fmt.Fprintf(w, "%s: %s %s: %s\n", moduleLabel, severityLabel(d.Severity, opts.Color), d.Code.ID(), d.Message)
		if opts.ShowNotes {
			for _, n := range d.Notes {
				label := "note"
				if opts.Color {
					label = noteColor.Sprint("note")
				}
				fmt.Fprintf(w, "  %s: %s\n", label, n.Msg)
			}
		}
	}
}

func severityLabel(sev diag.Severity, colored bool) string {
	var text string
	var c *color.Color
	switch {
	case sev >= diag.SevError:
		text, c = "error", errorColor
	case sev >= diag.SevWarning:
		text, c = "warning", warnColor
	default:
		text, c = "info", infoColor
	}
	if !colored {
		return text
	}
	return c.Sprint(text)
}

// Summary renders one line describing how many errors/warnings a
// module produced, used after Pretty's per-diagnostic detail.
func Summary(w io.Writer, module string, errCount, warnCount int, colored bool) {
	switch {
	case errCount > 0:
		label := fmt.Sprintf("%d error(s)", errCount)
		if colored {
			label = errorColor.Sprint(label)
		}
		fmt.Fprintf(w, "%s: %s\n", module, label)
	case warnCount > 0:
		label := fmt.Sprintf("%d warning(s)", warnCount)
		if colored {
			label = warnColor.Sprint(label)
		}
		fmt.Fprintf(w, "%s: %s\n", module, label)
	default:
		label := "ok"
		if colored {
			label = color.New(color.FgGreen).Sprint(label)
		}
		fmt.Fprintf(w, "%s: %s\n", module, label)
	}
}
