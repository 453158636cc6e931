package sqlite

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/neverho0d/readnlearn-sub001/internal/domain"
)

type PhraseRepo struct{ *Repo }

func NewPhraseRepo(db *sql.DB) *PhraseRepo { return &PhraseRepo{NewRepo(db)} }

const phraseCols = "id, document_id, text, translation, lang, tags_json, doc_hash, line_no, col_offset, formula_pos, created_at, updated_at"

func (r *PhraseRepo) Create(ctx context.Context, p *domain.Phrase) error {
	now := time.Now().UTC()
	q := r.SQ.Insert("phrases").
		Columns("id", "document_id", "text", "translation", "lang", "tags_json", "doc_hash",
			"line_no", "col_offset", "formula_pos", "created_at", "updated_at").
		Values(p.ID, p.DocumentID, p.Text, p.Translation, p.Lang, p.TagsRaw, p.DocHash,
			p.LineNo, p.ColOffset, p.FormulaPos, now.Format(time.RFC3339), now.Format(time.RFC3339))
	sqlStr, args, _ := q.ToSql()
	if _, err := r.DB.ExecContext(ctx, sqlStr, args...); err != nil {
		return err
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

func (r *PhraseRepo) Get(ctx context.Context, id string) (*domain.Phrase, error) {
	q := r.SQ.Select(phraseCols).From("phrases").Where(sq.Eq{"id": id}).Limit(1)
	sqlStr, args, _ := q.ToSql()
	p, err := scanPhrase(r.DB.QueryRowContext(ctx, sqlStr, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (r *PhraseRepo) ListByDocument(ctx context.Context, documentID int64) ([]*domain.Phrase, error) {
	q := r.SQ.Select(phraseCols).From("phrases").Where(sq.Eq{"document_id": documentID}).OrderBy("created_at")
	return r.queryPhrases(ctx, q)
}

func (r *PhraseRepo) ListRecent(ctx context.Context, limit int) ([]*domain.Phrase, error) {
	if limit <= 0 {
		limit = 50
	}
	q := r.SQ.Select(phraseCols).From("phrases").OrderBy("created_at DESC").Limit(uint64(limit))
	return r.queryPhrases(ctx, q)
}

func (r *PhraseRepo) ListUntranslated(ctx context.Context, documentID int64) ([]*domain.Phrase, error) {
	q := r.SQ.Select(phraseCols).From("phrases").
		Where(sq.Eq{"document_id": documentID}).
		Where(sq.Eq{"translation": ""}).
		OrderBy("created_at")
	return r.queryPhrases(ctx, q)
}

func (r *PhraseRepo) Search(ctx context.Context, query string) ([]*domain.Phrase, error) {
	like := "%" + query + "%"
	q := r.SQ.Select(phraseCols).From("phrases").
		Where(sq.Or{sq.Like{"text": like}, sq.Like{"translation": like}}).
		OrderBy("created_at DESC")
	return r.queryPhrases(ctx, q)
}

// UpdateStudyFields changes the mutable fields only. Text, position
// hints and the document hash are frozen at save time.
func (r *PhraseRepo) UpdateStudyFields(ctx context.Context, id, translation, tagsRaw string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	q := r.SQ.Update("phrases").
		Set("translation", translation).Set("tags_json", tagsRaw).Set("updated_at", now).
		Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *PhraseRepo) Delete(ctx context.Context, id string) error {
	q := r.SQ.Delete("phrases").Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *PhraseRepo) queryPhrases(ctx context.Context, q sq.SelectBuilder) ([]*domain.Phrase, error) {
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Phrase
	for rows.Next() {
		p, err := scanPhrase(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPhrase(row rowScanner) (*domain.Phrase, error) {
	var p domain.Phrase
	var line, col sql.NullInt64
	var formula sql.NullFloat64
	var created, updated string
	if err := row.Scan(&p.ID, &p.DocumentID, &p.Text, &p.Translation, &p.Lang, &p.TagsRaw, &p.DocHash,
		&line, &col, &formula, &created, &updated); err != nil {
		return nil, err
	}
	if line.Valid {
		v := int(line.Int64)
		p.LineNo = &v
	}
	if col.Valid {
		v := int(col.Int64)
		p.ColOffset = &v
	}
	if formula.Valid {
		v := formula.Float64
		p.FormulaPos = &v
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, created)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &p, nil
}
