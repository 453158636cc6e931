package app

import (
	"context"

	"github.com/neverho0d/readnlearn-sub001/internal/domain"
	"github.com/neverho0d/readnlearn-sub001/internal/ports"
	"github.com/neverho0d/readnlearn-sub001/internal/usecase/reader"
)

type PhraseAPI struct {
	repo ports.PhraseRepository
	svc  *reader.Service
}

func NewPhraseAPI(repo ports.PhraseRepository, svc *reader.Service) *PhraseAPI {
	return &PhraseAPI{repo: repo, svc: svc}
}

func (a *PhraseAPI) Save(req reader.SavePhraseArgs) (*domain.Phrase, error) {
	ctx := context.Background()
	return a.svc.SavePhrase(ctx, req)
}

// List returns a document's phrases in reading order.
func (a *PhraseAPI) List(documentID int64) ([]*domain.Phrase, error) {
	ctx := context.Background()
	return a.svc.ListPhrases(ctx, documentID)
}

func (a *PhraseAPI) Recent(limit int) ([]*domain.Phrase, error) {
	ctx := context.Background()
	return a.repo.ListRecent(ctx, limit)
}

func (a *PhraseAPI) Search(query string) ([]*domain.Phrase, error) {
	ctx := context.Background()
	return a.repo.Search(ctx, query)
}

func (a *PhraseAPI) UpdateTranslation(id, translation, tagsJSON string) (bool, error) {
	ctx := context.Background()
	if err := a.svc.UpdateTranslation(ctx, id, translation, tagsJSON); err != nil {
		return false, err
	}
	return true, nil
}

func (a *PhraseAPI) Delete(id string) (bool, error) {
	ctx := context.Background()
	return true, a.svc.DeletePhrase(ctx, id)
}
