package translator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/neverho0d/readnlearn-sub001/internal/domain"
	"github.com/neverho0d/readnlearn-sub001/internal/ports"
)

type Deps struct {
	Providers ports.ProviderRepository
	Cache     ports.CacheRepository
	Prompt    ports.PromptRenderer
	// BuildProvider returns a concrete ports.Provider for a given provider record
	BuildProvider func(*domain.Provider) (ports.Provider, error)
}

type Service struct{ d Deps }

func New(d Deps) *Service { return &Service{d: d} }

type TranslateArgs struct {
	ProviderID  int64
	Text        string
	SourceLang  string
	TargetLang  string
	Model       string
	Context     string // surrounding sentence, when available
	Document    string // document title, for prompt context
	BypassCache bool
}

func (s *Service) TranslateOne(ctx context.Context, a TranslateArgs) (string, error) {
	if strings.TrimSpace(a.Text) == "" {
		return "", errors.New("text is required")
	}
	prov, err := s.d.Providers.Get(ctx, a.ProviderID)
	if err != nil {
		return "", err
	}
	model := a.Model
	if model == "" {
		model = prov.Model
	}

	if !a.BypassCache {
		if ce, _ := s.d.Cache.Get(ctx, a.Text, a.SourceLang, a.TargetLang, prov.Type, model); ce != nil {
			return ce.Translation, nil
		}
	}

	data := ports.PromptData{
		SrcLang:  a.SourceLang,
		TgtLang:  a.TargetLang,
		Text:     a.Text,
		Context:  a.Context,
		Document: a.Document,
	}
	system, err := s.d.Prompt.Render(ctx, "translate_phrase", "system", data)
	if err != nil {
		return "", err
	}
	user, err := s.d.Prompt.Render(ctx, "translate_phrase", "user", data)
	if err != nil {
		return "", err
	}

	if s.d.BuildProvider == nil {
		return "", fmt.Errorf("TranslateOne: provider builder missing")
	}
	adapter, err := s.d.BuildProvider(prov)
	if err != nil {
		return "", err
	}
	var res ports.TranslateResult
	var trErr error
	for attempt := 1; attempt <= 3; attempt++ {
		res, trErr = adapter.Translate(ctx, a.Text, ports.TranslateParams{
			SourceLang:   a.SourceLang,
			TargetLang:   a.TargetLang,
			Model:        model,
			Context:      a.Context,
			SystemPrompt: system,
			UserPrompt:   user,
		})
		if trErr == nil {
			break
		}
		// Retry only on output/format issues that models often flake on
		if !isRetryableTranslateError(trErr) || attempt == 3 {
			return "", trErr
		}
		time.Sleep(time.Duration(200*attempt) * time.Millisecond)
	}
	translated := strings.TrimSpace(res.Translation)
	if translated == "" {
		return "", errors.New("empty translation returned")
	}
	_ = s.d.Cache.Put(ctx, &domain.CacheEntry{
		SourceText:  a.Text,
		SrcLang:     a.SourceLang,
		TgtLang:     a.TargetLang,
		Provider:    prov.Type,
		Model:       model,
		Translation: translated,
	})
	return translated, nil
}

// isRetryableTranslateError returns true for transient output issues that
// are likely to succeed on retry (e.g., invalid/missing JSON in model response).
func isRetryableTranslateError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "failed to parse translation json"):
		return true
	case strings.Contains(msg, "no choices returned"):
		return true
	case strings.Contains(msg, "no translations returned"):
		return true
	case strings.Contains(msg, "unexpected end of"):
		return true
	case strings.Contains(msg, "invalid character"):
		return true
	default:
		return false
	}
}
