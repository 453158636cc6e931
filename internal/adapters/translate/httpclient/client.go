package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/neverho0d/readnlearn-sub001/internal/ports"
)

// Client is an HTTP-backed translation provider. One instance serves a
// single configured provider record (type, key, base URL, model).
type Client struct {
	ProviderType string
	APIKey       string
	BaseURL      string
	Model        string
	http         *resty.Client
}

func New(providerType, apiKey, baseURL, model string) *Client {
	c := resty.New().SetTimeout(20 * time.Second)
	return &Client{ProviderType: strings.ToLower(providerType), APIKey: apiKey, BaseURL: baseURL, Model: model, http: c}
}

func (c *Client) Translate(ctx context.Context, text string, p ports.TranslateParams) (ports.TranslateResult, error) {
	switch c.ProviderType {
	case "openai":
		return c.translateOpenAI(ctx, p)
	case "deepl":
		return c.translateDeepL(ctx, text, p)
	case "google":
		return c.translateGoogle(ctx, text, p)
	default:
		return ports.TranslateResult{}, fmt.Errorf("unsupported provider: %s", c.ProviderType)
	}
}

func (c *Client) Languages(ctx context.Context) ([]ports.LanguageInfo, error) {
	switch c.ProviderType {
	case "deepl":
		base := c.deeplBase()
		var resp []struct {
			Language string `json:"language"`
			Name     string `json:"name"`
		}
		r, err := c.http.R().SetContext(ctx).
			SetHeader("Authorization", "DeepL-Auth-Key "+c.APIKey).
			SetResult(&resp).
			Get(base + "/v2/languages?type=target")
		if err != nil {
			return nil, err
		}
		if r.IsError() {
			return nil, fmt.Errorf("deepl languages: %s; body: %s", r.Status(), r.String())
		}
		out := make([]ports.LanguageInfo, 0, len(resp))
		for _, l := range resp {
			out = append(out, ports.LanguageInfo{Code: strings.ToLower(l.Language), Name: l.Name})
		}
		return out, nil
	case "google":
		base := c.googleBase()
		var resp struct {
			Data struct {
				Languages []struct {
					Language string `json:"language"`
					Name     string `json:"name"`
				} `json:"languages"`
			} `json:"data"`
		}
		r, err := c.http.R().SetContext(ctx).
			SetQueryParam("key", c.APIKey).
			SetQueryParam("target", "en").
			SetResult(&resp).
			Get(base + "/language/translate/v2/languages")
		if err != nil {
			return nil, err
		}
		if r.IsError() {
			return nil, fmt.Errorf("google languages: %s; body: %s", r.Status(), r.String())
		}
		out := make([]ports.LanguageInfo, 0, len(resp.Data.Languages))
		for _, l := range resp.Data.Languages {
			out = append(out, ports.LanguageInfo{Code: l.Language, Name: l.Name})
		}
		return out, nil
	default:
		// OpenAI translates into any language the model knows; there is
		// no language listing endpoint to consult.
		return nil, nil
	}
}

func (c *Client) Test(ctx context.Context) error {
	switch c.ProviderType {
	case "openai":
		base := c.openaiBase()
		r, err := c.http.R().SetContext(ctx).
			SetHeader("Authorization", "Bearer "+c.APIKey).
			Get(base + "/v1/models")
		if err != nil {
			return err
		}
		if r.IsError() {
			return fmt.Errorf("openai test: %s; body: %s", r.Status(), r.String())
		}
		return nil
	case "deepl":
		base := c.deeplBase()
		r, err := c.http.R().SetContext(ctx).
			SetHeader("Authorization", "DeepL-Auth-Key "+c.APIKey).
			Get(base + "/v2/usage")
		if err != nil {
			return err
		}
		if r.IsError() {
			return fmt.Errorf("deepl test: %s; body: %s", r.Status(), r.String())
		}
		return nil
	case "google":
		_, err := c.Languages(ctx)
		return err
	default:
		return fmt.Errorf("unsupported provider: %s", c.ProviderType)
	}
}

func (c *Client) translateOpenAI(ctx context.Context, p ports.TranslateParams) (ports.TranslateResult, error) {
	base := c.openaiBase()
	model := p.Model
	if model == "" {
		model = c.Model
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	body := map[string]any{
		"model": model,
		"messages": []map[string]string{
			{"role": "system", "content": p.SystemPrompt},
			{"role": "user", "content": p.UserPrompt},
		},
		"temperature":     0.2,
		"response_format": map[string]string{"type": "json_object"},
	}
	var resp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	r, err := c.http.R().SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).SetResult(&resp).
		Post(base + "/v1/chat/completions")
	if err != nil {
		return ports.TranslateResult{}, err
	}
	if r.IsError() {
		return ports.TranslateResult{}, fmt.Errorf("openai translate: %s; body: %s", r.Status(), r.String())
	}
	if len(resp.Choices) == 0 {
		return ports.TranslateResult{}, fmt.Errorf("no choices returned")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	tr, err := extractTranslation(content)
	if err != nil {
		return ports.TranslateResult{}, err
	}
	return ports.TranslateResult{Translation: tr, Raw: content}, nil
}

func (c *Client) translateDeepL(ctx context.Context, text string, p ports.TranslateParams) (ports.TranslateResult, error) {
	base := c.deeplBase()
	body := map[string]any{
		"text":        []string{text},
		"target_lang": strings.ToUpper(p.TargetLang),
	}
	if p.SourceLang != "" {
		body["source_lang"] = strings.ToUpper(p.SourceLang)
	}
	if p.Context != "" {
		body["context"] = p.Context
	}
	var resp struct {
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}
	r, err := c.http.R().SetContext(ctx).
		SetHeader("Authorization", "DeepL-Auth-Key "+c.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).SetResult(&resp).
		Post(base + "/v2/translate")
	if err != nil {
		return ports.TranslateResult{}, err
	}
	if r.IsError() {
		return ports.TranslateResult{}, fmt.Errorf("deepl translate: %s; body: %s", r.Status(), r.String())
	}
	if len(resp.Translations) == 0 {
		return ports.TranslateResult{}, fmt.Errorf("no translations returned")
	}
	return ports.TranslateResult{Translation: resp.Translations[0].Text, Raw: r.String()}, nil
}

func (c *Client) translateGoogle(ctx context.Context, text string, p ports.TranslateParams) (ports.TranslateResult, error) {
	base := c.googleBase()
	body := map[string]any{
		"q":      text,
		"target": p.TargetLang,
		"format": "text",
	}
	if p.SourceLang != "" {
		body["source"] = p.SourceLang
	}
	var resp struct {
		Data struct {
			Translations []struct {
				TranslatedText string `json:"translatedText"`
			} `json:"translations"`
		} `json:"data"`
	}
	r, err := c.http.R().SetContext(ctx).
		SetQueryParam("key", c.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).SetResult(&resp).
		Post(base + "/language/translate/v2")
	if err != nil {
		return ports.TranslateResult{}, err
	}
	if r.IsError() {
		return ports.TranslateResult{}, fmt.Errorf("google translate: %s; body: %s", r.Status(), r.String())
	}
	if len(resp.Data.Translations) == 0 {
		return ports.TranslateResult{}, fmt.Errorf("no translations returned")
	}
	return ports.TranslateResult{Translation: resp.Data.Translations[0].TranslatedText, Raw: r.String()}, nil
}

func (c *Client) openaiBase() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	return "https://api.openai.com"
}

func (c *Client) deeplBase() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	// Free-tier keys are suffixed ":fx" and live on a separate host.
	if strings.HasSuffix(c.APIKey, ":fx") {
		return "https://api-free.deepl.com"
	}
	return "https://api.deepl.com"
}

func (c *Client) googleBase() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	return "https://translation.googleapis.com"
}

// extractTranslation pulls the translation out of a chat-model reply.
// Models asked for {"translation": "..."} mostly comply, but fenced
// code blocks and plain-text answers still show up.
func extractTranslation(content string) (string, error) {
	s := strings.TrimSpace(content)
	if idx := strings.Index(s, "```"); idx >= 0 {
		rest := s[idx+3:]
		rest = strings.TrimPrefix(rest, "json")
		if j := strings.Index(rest, "```"); j >= 0 {
			s = strings.TrimSpace(rest[:j])
		}
	}
	var obj struct {
		Translation string `json:"translation"`
	}
	if err := json.Unmarshal([]byte(s), &obj); err == nil && obj.Translation != "" {
		return obj.Translation, nil
	}
	if i := strings.Index(s, "{"); i >= 0 {
		if j := strings.LastIndex(s, "}"); j > i {
			if err := json.Unmarshal([]byte(s[i:j+1]), &obj); err == nil && obj.Translation != "" {
				return obj.Translation, nil
			}
		}
	}
	if !strings.Contains(s, "{") && s != "" {
		lower := strings.ToLower(s)
		for _, k := range []string{"translation:", "translated:", "result:", "output:"} {
			if pos := strings.Index(lower, k); pos >= 0 && pos < 80 {
				if cand := strings.TrimSpace(s[pos+len(k):]); cand != "" {
					return cand, nil
				}
			}
		}
		return s, nil
	}
	return "", fmt.Errorf("failed to parse translation JSON; content: %s", abbreviate(s, 2000))
}

func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
