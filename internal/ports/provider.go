package ports

import (
	"context"
)

type TranslateParams struct {
	SourceLang   string
	TargetLang   string
	Model        string
	Context      string // surrounding sentence, when available
	SystemPrompt string
	UserPrompt   string
}

type TranslateResult struct {
	Translation string
	Raw         string
}

type LanguageInfo struct {
	Code string
	Name string
}

// Provider represents a single translation provider implementation.
type Provider interface {
	Translate(ctx context.Context, text string, p TranslateParams) (TranslateResult, error)
	Languages(ctx context.Context) ([]LanguageInfo, error)
	Test(ctx context.Context) error
}
