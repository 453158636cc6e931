package app

import (
	"context"

	"github.com/neverho0d/readnlearn-sub001/internal/domain"
	"github.com/neverho0d/readnlearn-sub001/internal/usecase/reader"
)

type ReaderAPI struct {
	svc *reader.Service
}

func NewReaderAPI(svc *reader.Service) *ReaderAPI { return &ReaderAPI{svc: svc} }

func (a *ReaderAPI) Render(documentID int64) (reader.RenderResult, error) {
	ctx := context.Background()
	return a.svc.Render(ctx, documentID)
}

func (a *ReaderAPI) ResolveMarker(documentID int64, marker string) (*domain.Phrase, error) {
	ctx := context.Background()
	return a.svc.ResolveMarker(ctx, documentID, marker)
}
