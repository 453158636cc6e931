package app

import (
	"context"
	"encoding/base64"

	"github.com/neverho0d/readnlearn-sub001/internal/usecase/exporter"
)

type ExportAPI struct{ svc *exporter.Service }

func NewExportAPI(s *exporter.Service) *ExportAPI { return &ExportAPI{svc: s} }

type ExportDeckRequest struct {
	DocumentID     int64  `json:"document_id"`
	Format         string `json:"format"`
	TranslatedOnly bool   `json:"translated_only"`
}

type ExportDeckResponse struct {
	Filename   string `json:"filename"`
	ContentB64 string `json:"content_b64"`
	Count      int    `json:"count"`
}

func (a *ExportAPI) ExportDeckBase64(req ExportDeckRequest) (ExportDeckResponse, error) {
	ctx := context.Background()
	res, err := a.svc.ExportDeck(ctx, exporter.ExportArgs{DocumentID: req.DocumentID, Format: req.Format, TranslatedOnly: req.TranslatedOnly})
	if err != nil {
		return ExportDeckResponse{}, err
	}
	return ExportDeckResponse{Filename: res.Filename, ContentB64: base64.StdEncoding.EncodeToString(res.Content), Count: res.Count}, nil
}
