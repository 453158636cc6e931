package app

import (
	"context"
	"errors"
	"strings"

	"github.com/neverho0d/readnlearn-sub001/internal/adapters/translate/factory"
	"github.com/neverho0d/readnlearn-sub001/internal/domain"
	"github.com/neverho0d/readnlearn-sub001/internal/ports"
)

type ProviderAPI struct {
	repo ports.ProviderRepository
}

func NewProviderAPI(repo ports.ProviderRepository) *ProviderAPI { return &ProviderAPI{repo: repo} }

func (a *ProviderAPI) Create(p domain.Provider) (*domain.Provider, error) {
	ctx := context.Background()
	if p.Type == "" || p.Name == "" {
		return nil, errors.New("type and name are required")
	}
	if err := a.repo.Create(ctx, &p); err != nil {
		return nil, err
	}
	// mask API key when returning
	p.APIKey = mask(p.APIKey)
	return &p, nil
}

func (a *ProviderAPI) Update(p domain.Provider) (*domain.Provider, error) {
	ctx := context.Background()
	if p.ID == 0 {
		return nil, errors.New("id is required")
	}
	// Preserve existing API key if masked or empty provided from UI
	if strings.HasPrefix(p.APIKey, "****") || p.APIKey == "" {
		existing, err := a.repo.Get(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		p.APIKey = existing.APIKey
	}
	if err := a.repo.Update(ctx, &p); err != nil {
		return nil, err
	}
	p.APIKey = mask(p.APIKey)
	return &p, nil
}

func (a *ProviderAPI) List() ([]*domain.Provider, error) {
	ctx := context.Background()
	list, err := a.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		p.APIKey = mask(p.APIKey)
	}
	return list, nil
}

type LanguageDTO struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Languages lists the target languages a provider supports. Chat-model
// providers return an empty list; any language code is accepted there.
func (a *ProviderAPI) Languages(id int64) ([]LanguageDTO, error) {
	ctx := context.Background()
	p, err := a.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	prov, ok := factory.FromProvider(p)
	if !ok {
		return nil, errors.New("unsupported provider type")
	}
	langs, err := prov.Languages(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]LanguageDTO, 0, len(langs))
	for _, l := range langs {
		out = append(out, LanguageDTO{Code: l.Code, Name: l.Name})
	}
	return out, nil
}

// ProviderTestResult contains details of a connectivity/translate test.
type ProviderTestResult struct {
	Ok          bool   `json:"ok"`
	Translation string `json:"translation,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Test performs a live translation of a simple phrase to validate a
// provider's credentials. On failure the error string includes the HTTP
// status and body when available.
func (a *ProviderAPI) Test(id int64) (ProviderTestResult, error) {
	ctx := context.Background()
	p, err := a.repo.Get(ctx, id)
	if err != nil {
		return ProviderTestResult{}, err
	}
	prov, ok := factory.FromProvider(p)
	if !ok {
		return ProviderTestResult{}, errors.New("unsupported provider type")
	}
	system := "You are a translator. Translate from en to es. Return only JSON: {\"translation\":\"...\"}."
	user := "phrase: hello"
	res, trErr := prov.Translate(ctx, "hello", ports.TranslateParams{
		SourceLang:   "en",
		TargetLang:   "es",
		Model:        p.Model,
		SystemPrompt: system,
		UserPrompt:   user,
	})
	if trErr != nil {
		return ProviderTestResult{Ok: false, Error: trErr.Error()}, nil
	}
	return ProviderTestResult{Ok: true, Translation: res.Translation}, nil
}

func (a *ProviderAPI) Delete(id int64) (bool, error) {
	ctx := context.Background()
	if err := a.repo.Delete(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

func mask(s string) string {
	if len(s) <= 4 {
		return s
	}
	return "****" + s[len(s)-4:]
}
