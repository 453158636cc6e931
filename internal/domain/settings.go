package domain

import "time"

type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type CacheEntry struct {
	ID          int64     `json:"id"`
	SourceText  string    `json:"source_text"`
	SrcLang     string    `json:"src_lang"`
	TgtLang     string    `json:"tgt_lang"`
	Provider    string    `json:"provider"`
	Model       string    `json:"model"`
	Translation string    `json:"translation"`
	CreatedAt   time.Time `json:"created_at"`
}
