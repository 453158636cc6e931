package ports

import (
	"context"

	"github.com/neverho0d/readnlearn-sub001/internal/domain"
)

type DocumentRepository interface {
	Create(ctx context.Context, d *domain.Document) error
	Get(ctx context.Context, id int64) (*domain.Document, error)
	GetByHash(ctx context.Context, hash string) (*domain.Document, error)
	List(ctx context.Context) ([]*domain.Document, error)
	UpdateContent(ctx context.Context, id int64, content, hash string) error
	Delete(ctx context.Context, id int64) error
}

type PhraseRepository interface {
	Create(ctx context.Context, p *domain.Phrase) error
	Get(ctx context.Context, id string) (*domain.Phrase, error)
	ListByDocument(ctx context.Context, documentID int64) ([]*domain.Phrase, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Phrase, error)
	ListUntranslated(ctx context.Context, documentID int64) ([]*domain.Phrase, error)
	Search(ctx context.Context, query string) ([]*domain.Phrase, error)
	UpdateStudyFields(ctx context.Context, id, translation, tagsRaw string) error
	Delete(ctx context.Context, id string) error
}

type ProviderRepository interface {
	Create(ctx context.Context, p *domain.Provider) error
	Update(ctx context.Context, p *domain.Provider) error
	Get(ctx context.Context, id int64) (*domain.Provider, error)
	List(ctx context.Context) ([]*domain.Provider, error)
	Delete(ctx context.Context, id int64) error
}

type JobRepository interface {
	Create(ctx context.Context, j *domain.Job) (int64, error)
	UpdateProgress(ctx context.Context, jobID int64, done, total int, status string) error
	AddItem(ctx context.Context, ji *domain.JobItem) (int64, error)
	UpdateItem(ctx context.Context, itemID int64, status, errMsg string) error
	AddLog(ctx context.Context, jl *domain.JobLog) error
	Get(ctx context.Context, jobID int64) (*domain.Job, error)
	List(ctx context.Context, limit int) ([]*domain.Job, error)
	ListItems(ctx context.Context, jobID int64) ([]*domain.JobItem, error)
	ListLogs(ctx context.Context, jobID int64, limit int) ([]*domain.JobLog, error)
	Delete(ctx context.Context, jobID int64) error
}

type TemplateRepository interface {
	GetEffective(ctx context.Context, typ, role string) (*domain.Template, error)
	Upsert(ctx context.Context, t *domain.Template) error
}

type CacheRepository interface {
	Get(ctx context.Context, src, srcLang, tgtLang, provider, model string) (*domain.CacheEntry, error)
	Put(ctx context.Context, entry *domain.CacheEntry) error
}

type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
