package diag

import "golang.org/x/text/unicode/norm"

// NormalizeSnippet returns s in Unicode NFC form, so precomposed and
// decomposed accent forms of the same identifier compare equal. Nothing in
// internal/diagfmt's rendering path calls it.
func NormalizeSnippet(s string) string {
	return norm.NFC.String(s)
}
