package domain

import "time"

type Template struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"` // translate_phrase
	Role      string    `json:"role"` // system | user
	Body      string    `json:"body"`
	IsDefault bool      `json:"is_default"`
	UpdatedAt time.Time `json:"updated_at"`
}
