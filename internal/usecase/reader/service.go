package reader

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/neverho0d/readnlearn-sub001/internal/domain"
	"github.com/neverho0d/readnlearn-sub001/internal/ports"
	"github.com/neverho0d/readnlearn-sub001/internal/usecase/annotate"
	"github.com/neverho0d/readnlearn-sub001/internal/usecase/jobs"
)

type Deps struct {
	Docs    ports.DocumentRepository
	Phrases ports.PhraseRepository
	Log     zerolog.Logger
}

// Service renders documents with saved phrases decorated in place and
// manages the phrase lifecycle around that rendering.
type Service struct {
	d  Deps
	em jobs.EventEmitter
}

func New(d Deps) *Service { return &Service{d: d} }

func (s *Service) SetEmitter(em jobs.EventEmitter) { s.em = em }

// RenderResult is a decorated document plus the anchor index for the
// spans actually placed. Phrases that could not be located are listed
// by id in Missing.
type RenderResult struct {
	DocumentID int64           `json:"document_id"`
	Text       string          `json:"text"`
	Spans      []annotate.Span `json:"spans"`
	Missing    []string        `json:"missing"`
}

// Render decorates the current content of a document with all of its
// saved phrases. Stale position hints are tolerated: the decorator
// re-locates every phrase against the current text.
func (s *Service) Render(ctx context.Context, documentID int64) (RenderResult, error) {
	doc, err := s.d.Docs.Get(ctx, documentID)
	if err != nil {
		return RenderResult{}, err
	}
	phrases, err := s.d.Phrases.ListByDocument(ctx, documentID)
	if err != nil {
		return RenderResult{}, err
	}
	refs := make([]annotate.Ref, 0, len(phrases))
	for _, p := range phrases {
		refs = append(refs, annotate.Ref{
			ID:         p.ID,
			Text:       p.Text,
			LineNo:     p.LineNo,
			ColOffset:  p.ColOffset,
			FormulaPos: p.FormulaPos,
		})
	}
	res := annotate.Decorate(doc.Content, refs)
	placed := make(map[string]struct{}, len(res.Spans))
	for _, sp := range res.Spans {
		placed[sp.PhraseID] = struct{}{}
	}
	var missing []string
	for _, p := range phrases {
		if _, ok := placed[p.ID]; !ok {
			missing = append(missing, p.ID)
		}
	}
	if len(missing) > 0 {
		s.d.Log.Debug().Int64("document_id", documentID).Int("missing", len(missing)).Msg("phrases not locatable in current text")
	}
	return RenderResult{DocumentID: documentID, Text: res.Text, Spans: res.Spans, Missing: missing}, nil
}

type SavePhraseArgs struct {
	DocumentID  int64  `json:"document_id"`
	Text        string `json:"text"`
	Translation string `json:"translation"`
	Lang        string `json:"lang"`
	TagsRaw     string `json:"tags_json"`
	// FormulaPos carries a caller-computed position when the selection
	// came from a view with its own coordinates.
	FormulaPos *float64 `json:"formula_pos"`
}

// SavePhrase stores a selection. The phrase text is kept verbatim;
// line and column hints are recorded from the current document text
// when the phrase can be found in it.
func (s *Service) SavePhrase(ctx context.Context, a SavePhraseArgs) (*domain.Phrase, error) {
	if strings.TrimSpace(a.Text) == "" {
		return nil, errors.New("phrase text is required")
	}
	doc, err := s.d.Docs.Get(ctx, a.DocumentID)
	if err != nil {
		return nil, err
	}
	p := &domain.Phrase{
		ID:          uuid.NewString(),
		DocumentID:  a.DocumentID,
		Text:        a.Text,
		Translation: a.Translation,
		Lang:        a.Lang,
		TagsRaw:     a.TagsRaw,
		DocHash:     doc.Hash,
		FormulaPos:  a.FormulaPos,
	}
	if pos, ok := annotate.RecordPosition(a.Text, doc.Content); ok {
		line, col := pos.LineNo, pos.ColOffset
		p.LineNo = &line
		p.ColOffset = &col
	}
	if err := s.d.Phrases.Create(ctx, p); err != nil {
		return nil, err
	}
	s.emitChanged(a.DocumentID)
	return p, nil
}

// ListPhrases returns a document's phrases in reading order. Phrases
// without any usable position sort after positioned ones, newest first.
func (s *Service) ListPhrases(ctx context.Context, documentID int64) ([]*domain.Phrase, error) {
	doc, err := s.d.Docs.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	phrases, err := s.d.Phrases.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	refs := make(map[string]annotate.Ref, len(phrases))
	for _, p := range phrases {
		refs[p.ID] = annotate.Ref{ID: p.ID, Text: p.Text, LineNo: p.LineNo, ColOffset: p.ColOffset, FormulaPos: p.FormulaPos}
	}
	sort.SliceStable(phrases, func(i, j int) bool {
		a, b := refs[phrases[i].ID], refs[phrases[j].ID]
		_, aok := annotate.Key(a, doc.Content)
		_, bok := annotate.Key(b, doc.Content)
		if aok != bok {
			return aok
		}
		if !aok {
			// both keyless: newest saved first
			return phrases[i].CreatedAt.After(phrases[j].CreatedAt)
		}
		return annotate.Less(a, b, doc.Content)
	})
	return phrases, nil
}

// ResolveMarker maps a clicked marker back to the phrase it decorates
// by rendering the document and consulting the span index.
func (s *Service) ResolveMarker(ctx context.Context, documentID int64, marker string) (*domain.Phrase, error) {
	if len(marker) != annotate.MarkerLen {
		return nil, errors.New("bad marker")
	}
	rr, err := s.Render(ctx, documentID)
	if err != nil {
		return nil, err
	}
	for _, sp := range rr.Spans {
		if sp.Marker == marker {
			return s.d.Phrases.Get(ctx, sp.PhraseID)
		}
	}
	return nil, errors.New("marker not found: " + marker)
}

func (s *Service) UpdateTranslation(ctx context.Context, phraseID, translation, tagsRaw string) error {
	p, err := s.d.Phrases.Get(ctx, phraseID)
	if err != nil {
		return err
	}
	if p == nil {
		return errors.New("phrase not found: " + phraseID)
	}
	if err := s.d.Phrases.UpdateStudyFields(ctx, phraseID, translation, tagsRaw); err != nil {
		return err
	}
	s.emitChanged(p.DocumentID)
	return nil
}

func (s *Service) DeletePhrase(ctx context.Context, phraseID string) error {
	p, err := s.d.Phrases.Get(ctx, phraseID)
	if err != nil {
		return err
	}
	if p == nil {
		return errors.New("phrase not found: " + phraseID)
	}
	if err := s.d.Phrases.Delete(ctx, phraseID); err != nil {
		return err
	}
	s.emitChanged(p.DocumentID)
	return nil
}

func (s *Service) emitChanged(documentID int64) {
	if s.em != nil {
		s.em.Emit("phrases.changed", map[string]any{"document_id": documentID})
	}
}
