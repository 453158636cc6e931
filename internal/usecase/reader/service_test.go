package reader

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/neverho0d/readnlearn-sub001/internal/domain"
	"github.com/neverho0d/readnlearn-sub001/internal/usecase/annotate"
)

type fakeDocs struct{ docs map[int64]*domain.Document }

func (f *fakeDocs) Create(_ context.Context, d *domain.Document) error {
	if f.docs == nil {
		f.docs = map[int64]*domain.Document{}
	}
	d.ID = int64(len(f.docs) + 1)
	f.docs[d.ID] = d
	return nil
}
func (f *fakeDocs) Get(_ context.Context, id int64) (*domain.Document, error) {
	d, ok := f.docs[id]
	if !ok {
		return nil, errors.New("document not found")
	}
	return d, nil
}
func (f *fakeDocs) GetByHash(context.Context, string) (*domain.Document, error) { return nil, nil }
func (f *fakeDocs) List(context.Context) ([]*domain.Document, error)            { return nil, nil }
func (f *fakeDocs) UpdateContent(_ context.Context, id int64, content, hash string) error {
	f.docs[id].Content = content
	f.docs[id].Hash = hash
	return nil
}
func (f *fakeDocs) Delete(context.Context, int64) error { return nil }

type fakePhrases struct{ items []*domain.Phrase }

func (f *fakePhrases) Create(_ context.Context, p *domain.Phrase) error {
	f.items = append(f.items, p)
	return nil
}
func (f *fakePhrases) Get(_ context.Context, id string) (*domain.Phrase, error) {
	for _, p := range f.items {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}
func (f *fakePhrases) ListByDocument(_ context.Context, documentID int64) ([]*domain.Phrase, error) {
	var out []*domain.Phrase
	for _, p := range f.items {
		if p.DocumentID == documentID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (f *fakePhrases) ListRecent(context.Context, int) ([]*domain.Phrase, error)         { return nil, nil }
func (f *fakePhrases) ListUntranslated(context.Context, int64) ([]*domain.Phrase, error) { return nil, nil }
func (f *fakePhrases) Search(context.Context, string) ([]*domain.Phrase, error)          { return nil, nil }
func (f *fakePhrases) UpdateStudyFields(_ context.Context, id, translation, tagsRaw string) error {
	for _, p := range f.items {
		if p.ID == id {
			p.Translation = translation
			p.TagsRaw = tagsRaw
			return nil
		}
	}
	return errors.New("phrase not found")
}
func (f *fakePhrases) Delete(_ context.Context, id string) error {
	for i, p := range f.items {
		if p.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return nil
}

type recordingEmitter struct{ events []string }

func (r *recordingEmitter) Emit(name string, _ any) { r.events = append(r.events, name) }

func newFixture(t *testing.T, content string) (*Service, *fakeDocs, *fakePhrases, int64) {
	t.Helper()
	docs := &fakeDocs{}
	phrases := &fakePhrases{}
	d := &domain.Document{Title: "T", Content: content, Hash: "h1"}
	require.NoError(t, docs.Create(context.Background(), d))
	svc := New(Deps{Docs: docs, Phrases: phrases, Log: zerolog.Nop()})
	return svc, docs, phrases, d.ID
}

func TestSavePhraseRecordsPosition(t *testing.T) {
	svc, _, phrases, docID := newFixture(t, "first line\nthe grey fox\nlast line")

	p, err := svc.SavePhrase(context.Background(), SavePhraseArgs{DocumentID: docID, Text: "grey fox", Lang: "en"})
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)
	require.Equal(t, "h1", p.DocHash)
	require.NotNil(t, p.LineNo)
	require.Equal(t, 2, *p.LineNo)
	require.NotNil(t, p.ColOffset)
	require.Equal(t, 4, *p.ColOffset)
	require.Len(t, phrases.items, 1)
}

func TestSavePhraseWithoutPositionStillSaves(t *testing.T) {
	svc, _, _, docID := newFixture(t, "nothing matches here")

	p, err := svc.SavePhrase(context.Background(), SavePhraseArgs{DocumentID: docID, Text: "absent phrase"})
	require.NoError(t, err)
	require.Nil(t, p.LineNo)
	require.Nil(t, p.ColOffset)
}

func TestSavePhraseRejectsBlankText(t *testing.T) {
	svc, _, _, docID := newFixture(t, "content")
	_, err := svc.SavePhrase(context.Background(), SavePhraseArgs{DocumentID: docID, Text: "  "})
	require.Error(t, err)
}

func TestRenderDecoratesAndReportsMissing(t *testing.T) {
	svc, _, _, docID := newFixture(t, "the cat sat on the mat")

	saved, err := svc.SavePhrase(context.Background(), SavePhraseArgs{DocumentID: docID, Text: "cat sat"})
	require.NoError(t, err)
	lost, err := svc.SavePhrase(context.Background(), SavePhraseArgs{DocumentID: docID, Text: "not in the text"})
	require.NoError(t, err)

	rr, err := svc.Render(context.Background(), docID)
	require.NoError(t, err)
	require.Len(t, rr.Spans, 1)
	require.Equal(t, saved.ID, rr.Spans[0].PhraseID)
	require.Contains(t, rr.Text, `data-phrase-id="`+saved.ID+`"`)
	require.Equal(t, []string{lost.ID}, rr.Missing)

	// span offsets index into the decorated text
	sp := rr.Spans[0]
	require.Contains(t, rr.Text[sp.Start:sp.End], "cat sat")
}

func TestRenderSurvivesReload(t *testing.T) {
	svc, docs, _, docID := newFixture(t, "old intro\nthe grey fox runs")

	p, err := svc.SavePhrase(context.Background(), SavePhraseArgs{DocumentID: docID, Text: "grey fox"})
	require.NoError(t, err)

	// reload shifts the phrase to a different line; stored hints are stale
	require.NoError(t, docs.UpdateContent(context.Background(), docID, "brand new intro\nmore text\nthe grey fox runs", "h2"))

	rr, err := svc.Render(context.Background(), docID)
	require.NoError(t, err)
	require.Len(t, rr.Spans, 1)
	require.Equal(t, p.ID, rr.Spans[0].PhraseID)
	require.Empty(t, rr.Missing)
}

func TestResolveMarker(t *testing.T) {
	svc, _, _, docID := newFixture(t, "the cat sat on the mat")

	p, err := svc.SavePhrase(context.Background(), SavePhraseArgs{DocumentID: docID, Text: "the mat"})
	require.NoError(t, err)

	got, err := svc.ResolveMarker(context.Background(), docID, annotate.Marker(p.ID))
	require.NoError(t, err)
	require.Equal(t, p.ID, got.ID)

	_, err = svc.ResolveMarker(context.Background(), docID, "zzzz")
	require.Error(t, err)

	_, err = svc.ResolveMarker(context.Background(), docID, "too-long-marker")
	require.Error(t, err)
}

func TestListPhrasesReadingOrder(t *testing.T) {
	svc, _, phrases, docID := newFixture(t, "alpha line\nbeta line\ngamma line")

	// saved out of reading order
	late, err := svc.SavePhrase(context.Background(), SavePhraseArgs{DocumentID: docID, Text: "gamma line"})
	require.NoError(t, err)
	early, err := svc.SavePhrase(context.Background(), SavePhraseArgs{DocumentID: docID, Text: "alpha line"})
	require.NoError(t, err)
	floating, err := svc.SavePhrase(context.Background(), SavePhraseArgs{DocumentID: docID, Text: "not present anywhere"})
	require.NoError(t, err)

	// make creation times distinct for the keyless fallback
	phrases.items[0].CreatedAt = time.Now().Add(-2 * time.Hour)
	phrases.items[1].CreatedAt = time.Now().Add(-1 * time.Hour)
	phrases.items[2].CreatedAt = time.Now()

	out, err := svc.ListPhrases(context.Background(), docID)
	require.NoError(t, err)
	require.Len(t, out, 3)
	require.Equal(t, early.ID, out[0].ID)
	require.Equal(t, late.ID, out[1].ID)
	require.Equal(t, floating.ID, out[2].ID)
}

func TestUpdateTranslationEmitsChange(t *testing.T) {
	svc, _, _, docID := newFixture(t, "the cat sat")
	em := &recordingEmitter{}
	svc.SetEmitter(em)

	p, err := svc.SavePhrase(context.Background(), SavePhraseArgs{DocumentID: docID, Text: "cat"})
	require.NoError(t, err)
	require.NoError(t, svc.UpdateTranslation(context.Background(), p.ID, "gato", ""))

	got, err := svc.ListPhrases(context.Background(), docID)
	require.NoError(t, err)
	require.Equal(t, "gato", got[0].Translation)
	require.Contains(t, em.events, "phrases.changed")
}

func TestDeletePhrase(t *testing.T) {
	svc, _, phrases, docID := newFixture(t, "the cat sat")

	p, err := svc.SavePhrase(context.Background(), SavePhraseArgs{DocumentID: docID, Text: "cat"})
	require.NoError(t, err)
	require.NoError(t, svc.DeletePhrase(context.Background(), p.ID))
	require.Empty(t, phrases.items)
}
