package domain

import "time"

// Document formats.
const (
	FormatPlain    = "plain"
	FormatMarkdown = "markdown"
)

// Document is one loaded text a reader studies. Content and Hash belong
// to one version: a reload produces new content and a new hash, and
// phrases saved against an older hash are re-located rather than
// trusted.
type Document struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Path      string    `json:"path"`
	Format    string    `json:"format"` // plain, markdown
	Lang      string    `json:"lang"`
	Content   string    `json:"content"`
	Hash      string    `json:"hash"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
