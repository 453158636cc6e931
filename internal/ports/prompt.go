package ports

import "context"

type PromptData struct {
	SrcLang  string
	TgtLang  string
	Text     string
	Context  string
	Document string
}

type PromptRenderer interface {
	Render(ctx context.Context, typ, role string, data PromptData) (string, error)
}
