package domain

import "time"

// Phrase is a saved selection from a document plus its study fields.
// Text is immutable once saved; editing a selection creates a new
// record. LineNo (1-based), ColOffset (0-based) and FormulaPos are
// hints describing the document version identified by DocHash. They
// feed list ordering only; every render re-locates the phrase against
// the current document text.
type Phrase struct {
	ID          string    `json:"id"` // opaque, globally unique
	DocumentID  int64     `json:"document_id"`
	Text        string    `json:"text"`
	Translation string    `json:"translation"`
	Lang        string    `json:"lang"`
	TagsRaw     string    `json:"tags_json"`
	DocHash     string    `json:"doc_hash"`
	LineNo      *int      `json:"line_no"`
	ColOffset   *int      `json:"col_offset"`
	FormulaPos  *float64  `json:"formula_pos"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
