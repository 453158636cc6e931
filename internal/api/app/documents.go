package app

import (
	"context"
	"encoding/base64"

	"github.com/neverho0d/readnlearn-sub001/internal/domain"
	"github.com/neverho0d/readnlearn-sub001/internal/ports"
	"github.com/neverho0d/readnlearn-sub001/internal/usecase/importer"
)

type DocumentAPI struct {
	repo ports.DocumentRepository
	svc  *importer.Service
}

func NewDocumentAPI(repo ports.DocumentRepository, svc *importer.Service) *DocumentAPI {
	return &DocumentAPI{repo: repo, svc: svc}
}

type ImportRequest struct {
	Filename string `json:"filename"`
	Format   string `json:"format"`
	Lang     string `json:"lang"`
	// Content is base64-encoded file bytes
	ContentB64 string `json:"content_b64"`
}

type ImportResponse struct {
	DocumentID int64 `json:"document_id"`
	Reloaded   bool  `json:"reloaded"`
}

func (a *DocumentAPI) ImportBase64(req ImportRequest) (ImportResponse, error) {
	ctx := context.Background()
	b, err := base64.StdEncoding.DecodeString(req.ContentB64)
	if err != nil {
		return ImportResponse{}, err
	}
	res, err := a.svc.Import(ctx, importer.ImportArgs{Filename: req.Filename, Format: req.Format, Lang: req.Lang, Content: b})
	if err != nil {
		return ImportResponse{}, err
	}
	return ImportResponse{DocumentID: res.DocumentID, Reloaded: res.Reloaded}, nil
}

func (a *DocumentAPI) List() ([]*domain.Document, error) {
	ctx := context.Background()
	return a.repo.List(ctx)
}

func (a *DocumentAPI) Get(id int64) (*domain.Document, error) {
	ctx := context.Background()
	return a.repo.Get(ctx, id)
}

func (a *DocumentAPI) Delete(id int64) (bool, error) {
	ctx := context.Background()
	return true, a.repo.Delete(ctx, id)
}
