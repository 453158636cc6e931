package sqlite

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/neverho0d/readnlearn-sub001/internal/domain"
)

type TemplateRepo struct{ *Repo }

func NewTemplateRepo(db *sql.DB) *TemplateRepo { return &TemplateRepo{NewRepo(db)} }

// GetEffective returns the latest stored template for (type, role), or
// nil so the renderer falls back to its builtin.
func (r *TemplateRepo) GetEffective(ctx context.Context, typ, role string) (*domain.Template, error) {
	q := r.SQ.Select("id", "type", "role", "body", "is_default", "updated_at").From("templates").
		Where(sq.Eq{"type": typ, "role": role}).
		OrderBy("id DESC").Limit(1)
	sqlStr, args, _ := q.ToSql()
	row := r.DB.QueryRowContext(ctx, sqlStr, args...)
	var t domain.Template
	var updated string
	if err := row.Scan(&t.ID, &t.Type, &t.Role, &t.Body, &t.IsDefault, &updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &t, nil
}

func (r *TemplateRepo) Upsert(ctx context.Context, t *domain.Template) error {
	now := time.Now().UTC().Format(time.RFC3339)
	q := r.SQ.Insert("templates").Columns("type", "role", "body", "is_default", "updated_at").
		Values(t.Type, t.Role, t.Body, t.IsDefault, now)
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}
