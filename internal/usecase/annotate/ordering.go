package annotate

import "strings"

// lineKeyStride packs (line, column) into one integer for persistence
// and display. A line longer than stride-1 columns misorders under the
// packed form, which is why sorting goes through Less instead.
const lineKeyStride = 100000

// Key derives a single comparable reading-order value for a phrase.
// Precedence: saved (line, column) packed as line*100000+column, then
// the stored ordering hint, then the phrase's offset in the currently
// displayed document. ok is false when none of those apply.
func Key(ref Ref, doc string) (key int64, ok bool) {
	if ref.LineNo != nil && ref.ColOffset != nil {
		return int64(*ref.LineNo)*lineKeyStride + int64(*ref.ColOffset), true
	}
	if ref.FormulaPos != nil {
		return int64(*ref.FormulaPos), true
	}
	if doc != "" && ref.Text != "" {
		if at := strings.Index(doc, ref.Text); at >= 0 {
			return int64(at), true
		}
	}
	return 0, false
}

// Less orders two phrases by document reading order. Saved positions
// compare as a (line, column) tuple rather than through the packed key,
// so pathologically long lines cannot misorder. Phrases with no
// derivable position sort after those with one; relative order among
// them is left to the caller (typically recency).
func Less(a, b Ref, doc string) bool {
	if a.LineNo != nil && a.ColOffset != nil && b.LineNo != nil && b.ColOffset != nil {
		if *a.LineNo != *b.LineNo {
			return *a.LineNo < *b.LineNo
		}
		return *a.ColOffset < *b.ColOffset
	}
	ka, oka := Key(a, doc)
	kb, okb := Key(b, doc)
	if oka && okb {
		return ka < kb
	}
	return oka && !okb
}
