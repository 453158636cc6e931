// Package annotate relocates saved phrases inside a document and wraps
// them in annotation markup the UI can query, scroll to, and highlight.
// A document that was reloaded or reflowed may differ from the version a
// phrase was saved against, so location works through a cascade of
// progressively more whitespace-tolerant strategies instead of trusting
// stored offsets.
//
// Everything in this package is a pure function over its inputs: no state
// survives between calls and no failure ever escapes as a panic or error.
// A phrase that cannot be found is simply left undecorated.
package annotate

// Ref is the minimal view of a saved phrase the engine works with.
// LineNo/ColOffset and FormulaPos are hints recorded at save time; they
// feed ordering only and are never trusted as actual offsets.
type Ref struct {
	ID         string   `json:"id"`
	Text       string   `json:"text"`
	LineNo     *int     `json:"line_no,omitempty"`     // 1-based
	ColOffset  *int     `json:"col_offset,omitempty"`  // 0-based
	FormulaPos *float64 `json:"formula_pos,omitempty"` // ordering hint when line/col are unknown
}

// Position is a (line, column) address computed at save time.
type Position struct {
	LineNo    int `json:"line_no"`    // 1-based
	ColOffset int `json:"col_offset"` // 0-based, bytes from start of line
}

// MarkerLen is the number of leading identifier characters used as the
// visible marker. Changing it breaks the rendered-output contract.
const MarkerLen = 4

// Marker derives the short visible footnote token from a phrase id.
// Markers are not guaranteed unique; two ids sharing a prefix collide
// silently and the last-decorated phrase wins visually.
func Marker(id string) string {
	if len(id) <= MarkerLen {
		return id
	}
	return id[:MarkerLen]
}
