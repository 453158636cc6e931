package exporter

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neverho0d/readnlearn-sub001/internal/adapters/export/csvdeck"
	"github.com/neverho0d/readnlearn-sub001/internal/adapters/export/jsondeck"
	exreg "github.com/neverho0d/readnlearn-sub001/internal/adapters/export/registry"
	"github.com/neverho0d/readnlearn-sub001/internal/domain"
)

type fakeDocs struct{ docs []*domain.Document }

func (f *fakeDocs) Create(context.Context, *domain.Document) error              { return nil }
func (f *fakeDocs) Get(context.Context, int64) (*domain.Document, error)        { return nil, nil }
func (f *fakeDocs) GetByHash(context.Context, string) (*domain.Document, error) { return nil, nil }
func (f *fakeDocs) List(context.Context) ([]*domain.Document, error)            { return f.docs, nil }
func (f *fakeDocs) UpdateContent(context.Context, int64, string, string) error  { return nil }
func (f *fakeDocs) Delete(context.Context, int64) error                         { return nil }

type fakePhrases struct{ items []*domain.Phrase }

func (f *fakePhrases) Create(context.Context, *domain.Phrase) error        { return nil }
func (f *fakePhrases) Get(context.Context, string) (*domain.Phrase, error) { return nil, nil }
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
func (f *fakePhrases) UpdateStudyFields(context.Context, string, string, string) error   { return nil }
func (f *fakePhrases) Delete(context.Context, string) error                              { return nil }

func newTestService() *Service {
	reg := exreg.New()
	reg.Register(csvdeck.New())
	reg.Register(jsondeck.New())
	docs := &fakeDocs{docs: []*domain.Document{
		{ID: 1, Title: "Fables"},
		{ID: 2, Title: "News"},
	}}
	phrases := &fakePhrases{items: []*domain.Phrase{
		{ID: "p1", DocumentID: 1, Text: "el zorro", Translation: "the fox", Lang: "es", TagsRaw: `["animals"]`},
		{ID: "p2", DocumentID: 1, Text: "sin traducir", Lang: "es"},
		{ID: "p3", DocumentID: 2, Text: "las noticias", Translation: "the news", Lang: "es"},
	}}
	return New(docs, phrases, reg)
}

func TestExportDeckSingleDocument(t *testing.T) {
	svc := newTestService()

	res, err := svc.ExportDeck(context.Background(), ExportArgs{DocumentID: 1, Format: "json"})
	require.NoError(t, err)
	require.Equal(t, 2, res.Count)
	require.Equal(t, "fables.json", res.Filename)

	var cards []map[string]any
	require.NoError(t, json.Unmarshal(res.Content, &cards))
	require.Equal(t, "el zorro", cards[0]["text"])
	require.Equal(t, "Fables", cards[0]["document"])
	require.Equal(t, []any{"animals"}, cards[0]["tags"])
}

func TestExportDeckTranslatedOnly(t *testing.T) {
	svc := newTestService()

	res, err := svc.ExportDeck(context.Background(), ExportArgs{DocumentID: 1, Format: "json", TranslatedOnly: true})
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
}

func TestExportDeckAllDocuments(t *testing.T) {
	svc := newTestService()

	res, err := svc.ExportDeck(context.Background(), ExportArgs{Format: "csv"})
	require.NoError(t, err)
	require.Equal(t, 3, res.Count)
	require.Equal(t, "phrases.csv", res.Filename)
}

func TestExportDeckUnknownFormat(t *testing.T) {
	svc := newTestService()
	_, err := svc.ExportDeck(context.Background(), ExportArgs{Format: "apkg"})
	require.Error(t, err)
}
