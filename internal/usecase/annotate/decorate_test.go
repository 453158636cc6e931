package annotate

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tagRE = regexp.MustCompile(`</?(?:span|sup)[^>]*>`)

func stripMarkup(decorated string) string {
	s := tagRE.ReplaceAllString(decorated, "")
	// Markers ride inside the sup elements, which carry no other text,
	// so removing each phrase's marker once restores the document.
	return s
}

func intp(v int) *int          { return &v }
func floatp(v float64) *float64 { return &v }

func TestDecorateScenario(t *testing.T) {
	res := Decorate("The cat sat on the mat.", []Ref{{ID: "abcd1234", Text: "cat sat"}})
	want := `The <span class="phrase-anchor" data-phrase-id="abcd1234">cat sat<sup class="phrase-marker">abcd</sup></span> on the mat.`
	assert.Equal(t, want, res.Text)
	require.Len(t, res.Spans, 1)
	assert.Equal(t, "abcd1234", res.Spans[0].PhraseID)
	assert.Equal(t, "abcd", res.Spans[0].Marker)
}

func TestDecorateWrapsExactText(t *testing.T) {
	doc := "Je pense, donc je suis. Cogito ergo sum."
	res := Decorate(doc, []Ref{{ID: "11112222", Text: "donc je suis"}})
	assert.Contains(t, res.Text, `data-phrase-id="11112222">donc je suis<sup`)
}

func TestDecorateMultiLine(t *testing.T) {
	doc := "before\nLine 1\nLine 2\nafter"
	res := Decorate(doc, []Ref{{ID: "deadbeef", Text: "Line 1\nLine 2"}})

	assert.Equal(t, 2, strings.Count(res.Text, `data-phrase-id="deadbeef"`))
	assert.Equal(t, 1, strings.Count(res.Text, `phrase-marker`))
	// Marker belongs to the last fragment, and the original break
	// between fragments survives verbatim.
	want := `<span class="phrase-anchor" data-phrase-id="deadbeef">Line 1</span>` + "\n" +
		`<span class="phrase-anchor" data-phrase-id="deadbeef">Line 2<sup class="phrase-marker">dead</sup></span>`
	assert.Contains(t, res.Text, want)
}

func TestDecorateRoundTrip(t *testing.T) {
	// Stripping every annotation tag and marker must reproduce the
	// document byte for byte, line breaks included.
	doc := "First line here.\nSecond line has a phrase\nthat spans a break.\r\nLast line."
	refs := []Ref{
		{ID: "aaaa0001", Text: "First line"},
		{ID: "bbbb0002", Text: "phrase\nthat spans"},
		{ID: "cccc0003", Text: "Last line."},
	}
	res := Decorate(doc, refs)
	stripped := stripMarkup(res.Text)
	for _, ref := range refs {
		stripped = strings.Replace(stripped, Marker(ref.ID), "", 1)
	}
	assert.Equal(t, doc, stripped)
}

func TestDecorateSkipsUnlocatable(t *testing.T) {
	doc := "hello world"
	res := Decorate(doc, []Ref{
		{ID: "gone0000", Text: "goodbye"},
		{ID: "here0000", Text: "world"},
	})
	assert.NotContains(t, res.Text, "gone0000")
	assert.Contains(t, res.Text, `data-phrase-id="here0000">world<sup`)
	require.Len(t, res.Spans, 1)
	assert.Equal(t, "here0000", res.Spans[0].PhraseID)
}

func TestDecorateEmptyInputs(t *testing.T) {
	assert.Equal(t, "doc", Decorate("doc", nil).Text)
	assert.Empty(t, Decorate("", []Ref{{ID: "x", Text: "y"}}).Spans)
}

func TestDecorateDeterministic(t *testing.T) {
	doc := "alpha beta gamma delta epsilon"
	refs := []Ref{
		{ID: "ref00001", Text: "delta"},
		{ID: "ref00002", Text: "beta"},
		{ID: "ref00003", Text: "epsilon"},
	}
	first := Decorate(doc, refs)
	second := Decorate(doc, refs)
	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, first.Spans, second.Spans)
}

func TestDecorateManyPhrasesAnyOrder(t *testing.T) {
	doc := "one two three four five six seven eight nine ten"
	refs := []Ref{
		{ID: "id000007", Text: "seven"},
		{ID: "id000002", Text: "two"},
		{ID: "id000009", Text: "nine"},
		{ID: "id000004", Text: "four"},
	}
	res := Decorate(doc, refs)
	for _, ref := range refs {
		assert.Contains(t, res.Text, `data-phrase-id="`+ref.ID+`"`)
	}
	// Anchor index comes back in reading order and addresses the
	// decorated string directly.
	require.Len(t, res.Spans, 4)
	wantOrder := []string{"id000002", "id000004", "id000007", "id000009"}
	for i, span := range res.Spans {
		assert.Equal(t, wantOrder[i], span.PhraseID)
		frag := res.Text[span.Start:span.End]
		assert.Contains(t, frag, `data-phrase-id="`+span.PhraseID+`"`)
		assert.Equal(t, Marker(span.PhraseID), span.Marker)
	}
}

func TestDecorateUsesPositionHints(t *testing.T) {
	doc := "alpha here\nbeta there"
	// The later phrase is processed first with the full document in
	// scope; the earlier one then only needs the shrunken prefix.
	res := Decorate(doc, []Ref{
		{ID: "late0001", Text: "beta there", LineNo: intp(2), ColOffset: intp(0)},
		{ID: "early001", Text: "alpha", LineNo: intp(1), ColOffset: intp(0)},
	})
	assert.Contains(t, res.Text, `data-phrase-id="early001"`)
	assert.Contains(t, res.Text, `data-phrase-id="late0001"`)
}

func TestDecorateDriftedWhitespaceKeepsDocumentBytes(t *testing.T) {
	// Saved with a single space, rendered document has two: the anchor
	// must wrap the document's own bytes, not the stored text.
	doc := "Hello  world again"
	res := Decorate(doc, []Ref{{ID: "ws000001", Text: "Hello world"}})
	assert.Contains(t, res.Text, `>Hello  world<sup`)
}

func TestMarker(t *testing.T) {
	assert.Equal(t, "abcd", Marker("abcd1234"))
	assert.Equal(t, "ab", Marker("ab"))
	assert.Equal(t, "", Marker(""))
}

func BenchmarkDecorateInOrder(b *testing.B) {
	// Typical case: phrases roughly in document order ride the
	// shrinking search boundary and stay near O(N + P).
	var sb strings.Builder
	var refs []Ref
	for i := 0; i < 200; i++ {
		word := fmt.Sprintf("word%04d", i)
		sb.WriteString("filler text around " + word + " and more filler.\n")
		refs = append(refs, Ref{
			ID:        fmt.Sprintf("%08d", i),
			Text:      word,
			LineNo:    intp(i + 1),
			ColOffset: intp(19),
		})
	}
	doc := sb.String()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Decorate(doc, refs)
	}
}

func BenchmarkDecorateWorstCase(b *testing.B) {
	// Every phrase misses the early tiers and forces a full scan.
	doc := strings.Repeat("lorem ipsum dolor sit amet\n", 200)
	var refs []Ref
	for i := 0; i < 50; i++ {
		refs = append(refs, Ref{ID: fmt.Sprintf("%08d", i), Text: fmt.Sprintf("absent%04d", i)})
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Decorate(doc, refs)
	}
}
