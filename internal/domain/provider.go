package domain

import "time"

type Provider struct {
	ID         int64     `json:"id"`
	Type       string    `json:"type"` // e.g., openai, deepl, google
	Name       string    `json:"name"`
	BaseURL    string    `json:"base_url"`
	Model      string    `json:"model"`
	APIKey     string    `json:"api_key"`
	OptionsRaw string    `json:"options_json"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
