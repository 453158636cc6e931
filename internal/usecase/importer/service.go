package importer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"path/filepath"
	"strings"

	srcreg "github.com/neverho0d/readnlearn-sub001/internal/adapters/source/registry"
	"github.com/neverho0d/readnlearn-sub001/internal/domain"
	"github.com/neverho0d/readnlearn-sub001/internal/ports"
)

type Service struct {
	Docs           ports.DocumentRepository
	LoaderRegistry *srcreg.Registry
}

func New(docs ports.DocumentRepository, reg *srcreg.Registry) *Service {
	return &Service{Docs: docs, LoaderRegistry: reg}
}

type ImportArgs struct {
	Filename string
	Format   string // optional, detected from the extension when empty
	Lang     string
	Content  []byte
}

type ImportResult struct {
	DocumentID int64
	Reloaded   bool
}

// Import loads raw file bytes into a document. When a document with the
// same path already exists, its content is replaced in place and saved
// phrases keep their ids; the next render re-locates them against the
// new text.
func (s *Service) Import(ctx context.Context, in ImportArgs) (ImportResult, error) {
	format := in.Format
	if format == "" {
		format = DetectFormat(in.Filename)
	}
	loader, ok := s.LoaderRegistry.Get(format)
	if !ok {
		return ImportResult{}, errors.New("unsupported format: " + format)
	}
	lr, err := loader.Load(in.Filename, in.Content)
	if err != nil {
		return ImportResult{}, err
	}
	sum := sha256.Sum256([]byte(lr.Text))
	hash := hex.EncodeToString(sum[:])
	lang := in.Lang
	if lang == "" {
		lang = lr.Lang
	}

	if existing, err := s.findByPath(ctx, in.Filename); err == nil && existing != nil {
		if existing.Hash == hash {
			return ImportResult{DocumentID: existing.ID, Reloaded: false}, nil
		}
		if err := s.Docs.UpdateContent(ctx, existing.ID, lr.Text, hash); err != nil {
			return ImportResult{}, err
		}
		return ImportResult{DocumentID: existing.ID, Reloaded: true}, nil
	}

	d := &domain.Document{
		Title:   lr.Title,
		Path:    in.Filename,
		Format:  lr.Format,
		Lang:    lang,
		Content: lr.Text,
		Hash:    hash,
	}
	if err := s.Docs.Create(ctx, d); err != nil {
		return ImportResult{}, err
	}
	return ImportResult{DocumentID: d.ID, Reloaded: false}, nil
}

func (s *Service) findByPath(ctx context.Context, path string) (*domain.Document, error) {
	docs, err := s.Docs.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		if d.Path == path {
			return d, nil
		}
	}
	return nil, nil
}

// DetectFormat maps a file extension to a loader format.
func DetectFormat(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return domain.FormatMarkdown
	default:
		return domain.FormatPlain
	}
}
