package annotate

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// NotFound is returned by Locate when every tier of the cascade fails.
const NotFound = -1

// Locate finds the byte offset of phrase inside doc, or NotFound.
//
// The cascade, each tier attempted only when the previous one fails:
//  1. exact substring
//  2. case-insensitive substring
//  3. whitespace-flexible regexp (words joined by \s+, tolerating
//     reflowed line breaks but not reordering or substitution)
//  4. normalized-whitespace search with the offset walked back into the
//     original document
//
// Malformed phrase text never causes an error; a tier that cannot run
// falls through to the next one.
func Locate(phrase, doc string) int {
	if phrase == "" || doc == "" {
		return NotFound
	}
	if at := strings.Index(doc, phrase); at >= 0 {
		return at
	}
	if at := foldIndex(doc, phrase); at >= 0 {
		return at
	}
	if re, err := flexPattern(phrase); err == nil {
		if loc := re.FindStringIndex(doc); loc != nil {
			return loc[0]
		}
	}
	return normalizedIndex(phrase, doc)
}

// LocateWithin restricts the search to doc[:limit]. Used by the
// decoration pass to keep already-placed matches out of scope.
func LocateWithin(phrase, doc string, limit int) int {
	if limit < 0 {
		return NotFound
	}
	if limit > len(doc) {
		limit = len(doc)
	}
	return Locate(phrase, doc[:limit])
}

// flexPattern builds the whitespace-flexible regexp for a phrase: every
// word regexp-escaped, any run of whitespace (space, tab, newline, CRLF)
// accepted between words.
func flexPattern(phrase string) (*regexp.Regexp, error) {
	words := strings.Fields(phrase)
	if len(words) == 0 {
		return nil, errors.New("phrase has no words")
	}
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = regexp.QuoteMeta(w)
	}
	return regexp.Compile(strings.Join(parts, `\s+`))
}

// foldIndex is a case-insensitive substring search that reports offsets
// in the original string. It compares runes under simple case folding
// instead of lowering the whole document, so offsets stay valid even
// when folding changes byte lengths.
func foldIndex(doc, phrase string) int {
	if phrase == "" {
		return NotFound
	}
	for i := range doc {
		if foldPrefixLen(doc[i:], phrase) >= 0 {
			return i
		}
	}
	return NotFound
}

// foldPrefixLen returns the byte length of the prefix of s matching
// phrase under case folding, or -1.
func foldPrefixLen(s, phrase string) int {
	n := 0
	for _, pr := range phrase {
		r, size := utf8.DecodeRuneInString(s[n:])
		if size == 0 {
			return -1
		}
		if r != pr && unicode.ToLower(r) != unicode.ToLower(pr) {
			return -1
		}
		n += size
	}
	return n
}

// normalizedIndex collapses every whitespace run in both phrase and doc
// to a single space, searches in that space, and walks the hit back to
// the corresponding offset in the original document.
func normalizedIndex(phrase, doc string) int {
	np := collapseSpace(phrase)
	if strings.TrimSpace(np) == "" {
		return NotFound
	}
	at := strings.Index(collapseSpace(doc), np)
	if at < 0 {
		return NotFound
	}
	return originalOffset(doc, at)
}

// collapseSpace replaces each run of Unicode whitespace with one space.
func collapseSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inRun := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inRun {
				b.WriteByte(' ')
				inRun = true
			}
			continue
		}
		inRun = false
		b.WriteRune(r)
	}
	return b.String()
}

// originalOffset maps a byte offset in collapseSpace(doc) back into doc
// by advancing both cursors in lock step. A target landing on a
// collapsed whitespace run resolves to the first byte after the run:
// leading whitespace is expendable.
func originalOffset(doc string, target int) int {
	ci := 0
	for i := 0; i < len(doc); {
		r, size := utf8.DecodeRuneInString(doc[i:])
		if unicode.IsSpace(r) {
			j := i + size
			for j < len(doc) {
				r2, s2 := utf8.DecodeRuneInString(doc[j:])
				if !unicode.IsSpace(r2) {
					break
				}
				j += s2
			}
			if ci == target {
				return j
			}
			ci++ // the whole run is one byte in collapsed space
			i = j
			continue
		}
		if ci == target {
			return i
		}
		ci += size
		i += size
	}
	return NotFound
}
