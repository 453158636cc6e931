package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/neverho0d/readnlearn-sub001/internal/domain"
)

type DocumentRepo struct{ *Repo }

func NewDocumentRepo(db *sql.DB) *DocumentRepo { return &DocumentRepo{NewRepo(db)} }

// HashText returns the content hash used to detect document drift.
func HashText(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

const documentCols = "id, title, path, format, lang, content, hash, created_at, updated_at"

func (r *DocumentRepo) Create(ctx context.Context, d *domain.Document) error {
	now := time.Now().UTC()
	q := r.SQ.Insert("documents").
		Columns("title", "path", "format", "lang", "content", "hash", "created_at", "updated_at").
		Values(d.Title, d.Path, d.Format, d.Lang, d.Content, d.Hash, now.Format(time.RFC3339), now.Format(time.RFC3339))
	sqlStr, args, _ := q.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	d.ID = id
	d.CreatedAt = now
	d.UpdatedAt = now
	return nil
}

func (r *DocumentRepo) Get(ctx context.Context, id int64) (*domain.Document, error) {
	q := r.SQ.Select(documentCols).From("documents").Where(sq.Eq{"id": id}).Limit(1)
	sqlStr, args, _ := q.ToSql()
	return scanDocument(r.DB.QueryRowContext(ctx, sqlStr, args...))
}

func (r *DocumentRepo) GetByHash(ctx context.Context, hash string) (*domain.Document, error) {
	q := r.SQ.Select(documentCols).From("documents").Where(sq.Eq{"hash": hash}).Limit(1)
	sqlStr, args, _ := q.ToSql()
	d, err := scanDocument(r.DB.QueryRowContext(ctx, sqlStr, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return d, err
}

func (r *DocumentRepo) List(ctx context.Context) ([]*domain.Document, error) {
	q := r.SQ.Select(documentCols).From("documents").OrderBy("id DESC")
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// UpdateContent replaces a document's text after a reload. Phrases keep
// the hash they were saved against; the mismatch is what tells the
// render pass to re-locate instead of trusting stored positions.
func (r *DocumentRepo) UpdateContent(ctx context.Context, id int64, content, hash string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	q := r.SQ.Update("documents").
		Set("content", content).Set("hash", hash).Set("updated_at", now).
		Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *DocumentRepo) Delete(ctx context.Context, id int64) error {
	q := r.SQ.Delete("documents").Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

type rowScanner interface{ Scan(dest ...any) error }

func scanDocument(row rowScanner) (*domain.Document, error) {
	var d domain.Document
	var created, updated string
	if err := row.Scan(&d.ID, &d.Title, &d.Path, &d.Format, &d.Lang, &d.Content, &d.Hash, &created, &updated); err != nil {
		return nil, err
	}
	d.CreatedAt, _ = time.Parse(time.RFC3339, created)
	d.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &d, nil
}
