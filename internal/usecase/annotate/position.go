package annotate

import "strings"

// RecordPosition computes the (line, column) address of phrase inside
// doc at save time. Only the exact and case-insensitive tiers apply
// here: the selection was just made from this very document, so the
// flexible tiers are reserved for later re-location. ok is false when
// the phrase is absent, in which case it is saved without a position.
func RecordPosition(phrase, doc string) (pos Position, ok bool) {
	if phrase == "" || doc == "" {
		return Position{}, false
	}
	at := strings.Index(doc, phrase)
	if at < 0 {
		at = foldIndex(doc, phrase)
	}
	if at < 0 {
		return Position{}, false
	}
	line := 1 + strings.Count(doc[:at], "\n")
	col := at
	if nl := strings.LastIndexByte(doc[:at], '\n'); nl >= 0 {
		col = at - nl - 1
	}
	return Position{LineNo: line, ColOffset: col}, true
}
