package annotate

import (
	"sort"
	"strings"
)

// Span records where one phrase ended up in the decorated output. The
// range covers the whole annotation fragment, markup included. The
// slice of spans is the caller's lookup index: marker and phrase-id
// resolution never requires scanning the rendered markup.
type Span struct {
	PhraseID string `json:"phrase_id"`
	Marker   string `json:"marker"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
}

// Result is the outcome of one decoration pass.
type Result struct {
	Text  string `json:"text"`
	Spans []Span `json:"spans"` // reading order
}

// Decorate produces a copy of doc in which every locatable phrase is
// wrapped in its annotation fragment:
//
//	<span class="phrase-anchor" data-phrase-id="{id}">{text}<sup class="phrase-marker">{marker}</sup></span>
//
// A phrase spanning line breaks emits one such span per line fragment,
// with the original break characters kept verbatim between spans and
// the marker only on the last fragment, so stripping the markup
// reproduces the input document byte for byte.
//
// Phrases are processed in descending reading order behind a shrinking
// search boundary: once a phrase is placed, every remaining phrase
// appears strictly earlier, so no later search has to look past the
// previous placement. Unlocatable phrases are skipped silently. The
// pass is deterministic and keeps no state between calls.
func Decorate(doc string, refs []Ref) Result {
	ordered := make([]Ref, len(refs))
	copy(ordered, refs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return Less(ordered[j], ordered[i], doc)
	})

	out := doc
	limit := len(out)
	var spans []Span
	for _, ref := range ordered {
		at := LocateWithin(ref.Text, out, limit)
		if at == NotFound {
			continue
		}
		end := at + len(ExtractMatch(ref.Text, out, at))
		if end > len(out) {
			end = len(out)
		}
		// Wrap the document's own bytes for that range; when extraction
		// degraded to the stored text the length may be off by a few
		// characters, but the underlying content is never rewritten.
		marker := Marker(ref.ID)
		frag := renderAnchors(ref.ID, marker, out[at:end])
		out = out[:at] + frag + out[end:]

		delta := len(frag) - (end - at)
		for i := range spans {
			spans[i].Start += delta
			spans[i].End += delta
		}
		spans = append(spans, Span{PhraseID: ref.ID, Marker: marker, Start: at, End: at + len(frag)})
		limit = at
	}
	// Placement order is reverse reading order; flip the index.
	for i, j := 0, len(spans)-1; i < j; i, j = i+1, j-1 {
		spans[i], spans[j] = spans[j], spans[i]
	}
	return Result{Text: out, Spans: spans}
}

// renderAnchors wraps matched text in anchor markup, splitting matches
// that cross line breaks into one anchor per line.
func renderAnchors(id, marker, matched string) string {
	if !strings.ContainsAny(matched, "\r\n") {
		return anchorSpan(id, matched, marker)
	}
	frags, seps := splitBreaks(matched)
	lastText := -1
	for i, f := range frags {
		if f != "" {
			lastText = i
		}
	}
	if lastText == -1 {
		return matched // nothing but break characters, leave untouched
	}
	var b strings.Builder
	for i, f := range frags {
		if f != "" {
			m := ""
			if i == lastText {
				m = marker
			}
			b.WriteString(anchorSpan(id, f, m))
		}
		if i < len(seps) {
			b.WriteString(seps[i])
		}
	}
	return b.String()
}

// anchorSpan renders one anchor element. The class names, attribute
// name, and marker placement are a byte-exact contract with the
// rendering and interaction layers.
func anchorSpan(id, text, marker string) string {
	var b strings.Builder
	b.WriteString(`<span class="phrase-anchor" data-phrase-id="`)
	b.WriteString(id)
	b.WriteString(`">`)
	b.WriteString(text)
	if marker != "" {
		b.WriteString(`<sup class="phrase-marker">`)
		b.WriteString(marker)
		b.WriteString(`</sup>`)
	}
	b.WriteString(`</span>`)
	return b.String()
}

// splitBreaks splits s around line breaks, returning the text fragments
// and the exact break sequences (\n, \r\n, or \r) between them.
// len(frags) == len(seps)+1.
func splitBreaks(s string) (frags, seps []string) {
	start := 0
	for i := 0; i < len(s); {
		switch s[i] {
		case '\n':
			frags = append(frags, s[start:i])
			seps = append(seps, "\n")
			i++
			start = i
		case '\r':
			sep := "\r"
			if i+1 < len(s) && s[i+1] == '\n' {
				sep = "\r\n"
			}
			frags = append(frags, s[start:i])
			seps = append(seps, sep)
			i += len(sep)
			start = i
		default:
			i++
		}
	}
	frags = append(frags, s[start:])
	return frags, seps
}
