package annotate

import "strings"

// minSignificantLen is the shortest word length considered reliable
// enough to anchor a best-effort boundary search.
const minSignificantLen = 4

// ExtractMatch determines the substring of doc that actually represents
// phrase, given a start offset found by Locate. The document's copy may
// differ from the stored text in whitespace only, never in content.
//
// Strategy, in order: the whitespace-flexible regexp at or after start;
// an exact prefix at exactly start; a case-insensitive prefix; the span
// between the first and last significant word of the phrase. When all
// fail the stored phrase text is returned unchanged, which may give a
// wrong length for decoration purposes. That is an accepted degradation,
// not an error.
func ExtractMatch(phrase, doc string, start int) string {
	if start < 0 || start > len(doc) {
		return phrase
	}
	tail := doc[start:]
	if re, err := flexPattern(phrase); err == nil {
		if m := re.FindString(tail); m != "" {
			return m
		}
	}
	if strings.HasPrefix(tail, phrase) {
		return phrase
	}
	if n := foldPrefixLen(tail, phrase); n >= 0 {
		return tail[:n]
	}
	if span, ok := significantSpan(phrase, tail); ok {
		return span
	}
	return phrase
}

// significantSpan brackets the match between the first and last word of
// the phrase long enough to be unambiguous.
func significantSpan(phrase, tail string) (string, bool) {
	words := strings.Fields(phrase)
	var first, last string
	for _, w := range words {
		if len(w) >= minSignificantLen {
			first = w
			break
		}
	}
	for i := len(words) - 1; i >= 0; i-- {
		if len(words[i]) >= minSignificantLen {
			last = words[i]
			break
		}
	}
	if first == "" || last == "" {
		return "", false
	}
	fi := strings.Index(tail, first)
	if fi < 0 {
		return "", false
	}
	li := strings.Index(tail[fi:], last)
	if li < 0 {
		return "", false
	}
	return tail[fi : fi+li+len(last)], true
}
