package prompt

import (
	"bytes"
	"context"
	"text/template"

	"github.com/neverho0d/readnlearn-sub001/internal/ports"
)

type Renderer struct {
	Templates ports.TemplateRepository
}

func New(templates ports.TemplateRepository) *Renderer { return &Renderer{Templates: templates} }

func (r *Renderer) Render(ctx context.Context, typ, role string, data ports.PromptData) (string, error) {
	// Load the stored template if one exists; otherwise fall back to builtins.
	body := builtinTemplate(typ, role)
	if r.Templates != nil {
		if t, _ := r.Templates.GetEffective(ctx, typ, role); t != nil && t.Body != "" {
			body = t.Body
		}
	}
	tpl, err := template.New("prompt").Parse(body)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func builtinTemplate(typ, role string) string {
	if typ == "translate_phrase" && role == "system" {
		return "You are a translator helping a language learner. Translate from {{.SrcLang}} to {{.TgtLang}}. Keep the register and idiom of the original phrase. Return only JSON: {\"translation\":\"...\"}."
	}
	if typ == "translate_phrase" && role == "user" {
		return "document: {{.Document}}\ncontext: {{.Context}}\nphrase: {{.Text}}"
	}
	return ""
}
