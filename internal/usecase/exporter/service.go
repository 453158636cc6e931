package exporter

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	exreg "github.com/neverho0d/readnlearn-sub001/internal/adapters/export/registry"
	"github.com/neverho0d/readnlearn-sub001/internal/ports"
)

type Service struct {
	Docs    ports.DocumentRepository
	Phrases ports.PhraseRepository
	Reg     *exreg.Registry
}

func New(docs ports.DocumentRepository, phrases ports.PhraseRepository, reg *exreg.Registry) *Service {
	return &Service{Docs: docs, Phrases: phrases, Reg: reg}
}

type ExportArgs struct {
	DocumentID     int64 // 0 exports across all documents
	Format         string
	TranslatedOnly bool
}

type ExportResult struct {
	Filename string
	Content  []byte
	Count    int
}

// ExportDeck writes saved phrases as a flashcard deck in the requested format.
func (s *Service) ExportDeck(ctx context.Context, a ExportArgs) (ExportResult, error) {
	exp, ok := s.Reg.Get(a.Format)
	if !ok {
		return ExportResult{}, errors.New("no exporter for format: " + a.Format)
	}

	titles := map[int64]string{}
	docs, err := s.Docs.List(ctx)
	if err != nil {
		return ExportResult{}, err
	}
	for _, d := range docs {
		titles[d.ID] = d.Title
	}

	var items []ports.ExportItem
	appendDoc := func(docID int64) error {
		phrases, err := s.Phrases.ListByDocument(ctx, docID)
		if err != nil {
			return err
		}
		for _, p := range phrases {
			if a.TranslatedOnly && p.Translation == "" {
				continue
			}
			items = append(items, ports.ExportItem{
				Text:        p.Text,
				Translation: p.Translation,
				Lang:        p.Lang,
				Document:    titles[p.DocumentID],
				Tags:        decodeTags(p.TagsRaw),
			})
		}
		return nil
	}

	if a.DocumentID != 0 {
		if err := appendDoc(a.DocumentID); err != nil {
			return ExportResult{}, err
		}
	} else {
		for _, d := range docs {
			if err := appendDoc(d.ID); err != nil {
				return ExportResult{}, err
			}
		}
	}

	content, err := exp.Export(items)
	if err != nil {
		return ExportResult{}, err
	}
	name := "phrases." + a.Format
	if a.DocumentID != 0 {
		if t := titles[a.DocumentID]; t != "" {
			name = slugify(t) + "." + a.Format
		}
	}
	return ExportResult{Filename: name, Content: content, Count: len(items)}, nil
}

func decodeTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil
	}
	return tags
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "phrases"
	}
	return out
}
