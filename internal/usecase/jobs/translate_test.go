package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/neverho0d/readnlearn-sub001/internal/domain"
	"github.com/neverho0d/readnlearn-sub001/internal/ports"
	"github.com/neverho0d/readnlearn-sub001/internal/usecase/translator"
)

type memJobs struct {
	mu    sync.Mutex
	jobs  map[int64]*domain.Job
	items []*domain.JobItem
	logs  []*domain.JobLog
	next  int64
}

func newMemJobs() *memJobs { return &memJobs{jobs: map[int64]*domain.Job{}} }

func (m *memJobs) Create(_ context.Context, j *domain.Job) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	j.ID = m.next
	cp := *j
	m.jobs[j.ID] = &cp
	return j.ID, nil
}

func (m *memJobs) UpdateProgress(_ context.Context, jobID int64, done, total int, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[jobID]
	if !ok {
		return errors.New("job not found")
	}
	j.Progress, j.Total, j.Status = done, total, status
	return nil
}

func (m *memJobs) AddItem(_ context.Context, ji *domain.JobItem) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ji.ID = int64(len(m.items) + 1)
	m.items = append(m.items, ji)
	return ji.ID, nil
}

func (m *memJobs) UpdateItem(_ context.Context, itemID int64, status, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.items {
		if it.ID == itemID {
			it.Status, it.Error = status, errMsg
			return nil
		}
	}
	return errors.New("item not found")
}

func (m *memJobs) AddLog(_ context.Context, jl *domain.JobLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, jl)
	return nil
}

func (m *memJobs) Get(_ context.Context, jobID int64) (*domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[jobID]
	if !ok {
		return nil, nil
	}
	cp := *j
	return &cp, nil
}

func (m *memJobs) List(context.Context, int) ([]*domain.Job, error) { return nil, nil }

func (m *memJobs) ListItems(_ context.Context, jobID int64) ([]*domain.JobItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.JobItem
	for _, it := range m.items {
		if it.JobID == jobID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *memJobs) ListLogs(context.Context, int64, int) ([]*domain.JobLog, error) { return nil, nil }
func (m *memJobs) Delete(context.Context, int64) error                            { return nil }

type memDocs struct{ doc *domain.Document }

func (m *memDocs) Create(context.Context, *domain.Document) error { return nil }
func (m *memDocs) Get(_ context.Context, id int64) (*domain.Document, error) {
	if m.doc != nil && m.doc.ID == id {
		return m.doc, nil
	}
	return nil, errors.New("not found")
}
func (m *memDocs) GetByHash(context.Context, string) (*domain.Document, error) { return nil, nil }
func (m *memDocs) List(context.Context) ([]*domain.Document, error)            { return nil, nil }
func (m *memDocs) UpdateContent(context.Context, int64, string, string) error  { return nil }
func (m *memDocs) Delete(context.Context, int64) error                         { return nil }

type memPhrases struct {
	mu    sync.Mutex
	items []*domain.Phrase
}

func (m *memPhrases) Create(_ context.Context, p *domain.Phrase) error {
	m.items = append(m.items, p)
	return nil
}
func (m *memPhrases) Get(_ context.Context, id string) (*domain.Phrase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.items {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}
func (m *memPhrases) ListByDocument(context.Context, int64) ([]*domain.Phrase, error) {
	return nil, nil
}
func (m *memPhrases) ListRecent(context.Context, int) ([]*domain.Phrase, error) { return nil, nil }
func (m *memPhrases) ListUntranslated(_ context.Context, documentID int64) ([]*domain.Phrase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Phrase
	for _, p := range m.items {
		if p.DocumentID == documentID && p.Translation == "" {
			out = append(out, p)
		}
	}
	return out, nil
}
func (m *memPhrases) Search(context.Context, string) ([]*domain.Phrase, error) { return nil, nil }
func (m *memPhrases) UpdateStudyFields(_ context.Context, id, translation, tagsRaw string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.items {
		if p.ID == id {
			p.Translation, p.TagsRaw = translation, tagsRaw
			return nil
		}
	}
	return errors.New("phrase not found")
}
func (m *memPhrases) Delete(context.Context, string) error { return nil }

type memProviders struct{ p *domain.Provider }

func (m *memProviders) Create(context.Context, *domain.Provider) error { return nil }
func (m *memProviders) Update(context.Context, *domain.Provider) error { return nil }
func (m *memProviders) Get(_ context.Context, id int64) (*domain.Provider, error) {
	if m.p != nil && m.p.ID == id {
		return m.p, nil
	}
	return nil, errors.New("not found")
}
func (m *memProviders) List(context.Context) ([]*domain.Provider, error) { return nil, nil }
func (m *memProviders) Delete(context.Context, int64) error              { return nil }

type nopCache struct{}

func (nopCache) Get(context.Context, string, string, string, string, string) (*domain.CacheEntry, error) {
	return nil, nil
}
func (nopCache) Put(context.Context, *domain.CacheEntry) error { return nil }

type nopPrompt struct{}

func (nopPrompt) Render(context.Context, string, string, ports.PromptData) (string, error) {
	return "", nil
}

type echoProvider struct{}

func (echoProvider) Translate(_ context.Context, text string, _ ports.TranslateParams) (ports.TranslateResult, error) {
	return ports.TranslateResult{Translation: "<" + text + ">"}, nil
}
func (echoProvider) Languages(context.Context) ([]ports.LanguageInfo, error) { return nil, nil }
func (echoProvider) Test(context.Context) error                              { return nil }

func newTestRunner(phrases *memPhrases, jobsRepo *memJobs) *Runner {
	providers := &memProviders{p: &domain.Provider{ID: 1, Type: "openai", Model: "gpt-4o-mini"}}
	trans := translator.New(translator.Deps{
		Providers: providers,
		Cache:     nopCache{},
		Prompt:    nopPrompt{},
		BuildProvider: func(*domain.Provider) (ports.Provider, error) {
			return echoProvider{}, nil
		},
	})
	docs := &memDocs{doc: &domain.Document{ID: 7, Title: "Fables"}}
	return NewRunner(Deps{Jobs: jobsRepo, Docs: docs, Phrases: phrases, Providers: providers}, trans)
}

func waitForStatus(t *testing.T, jobsRepo *memJobs, jobID int64, status string) *domain.Job {
	t.Helper()
	var got *domain.Job
	require.Eventually(t, func() bool {
		j, _ := jobsRepo.Get(context.Background(), jobID)
		if j != nil && j.Status == status {
			got = j
			return true
		}
		return false
	}, 5*time.Second, 10*time.Millisecond)
	return got
}

func TestStartTranslatePhrases(t *testing.T) {
	phrases := &memPhrases{items: []*domain.Phrase{
		{ID: "p1", DocumentID: 7, Text: "el zorro", Lang: "es"},
		{ID: "p2", DocumentID: 7, Text: "la liebre", Lang: "es"},
		{ID: "p3", DocumentID: 7, Text: "hecho", Lang: "es", Translation: "done already"},
	}}
	jobsRepo := newMemJobs()
	r := newTestRunner(phrases, jobsRepo)

	id, err := r.StartTranslatePhrases(context.Background(), 1, TranslatePhrasesParams{DocumentID: 7, TargetLang: "en"})
	require.NoError(t, err)

	j := waitForStatus(t, jobsRepo, id, "done")
	require.Equal(t, 2, j.Total)
	require.Equal(t, 2, j.Progress)

	p1, _ := phrases.Get(context.Background(), "p1")
	require.Equal(t, "<el zorro>", p1.Translation)
	p3, _ := phrases.Get(context.Background(), "p3")
	require.Equal(t, "done already", p3.Translation)

	items, err := jobsRepo.ListItems(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, it := range items {
		require.Equal(t, "done", it.Status)
	}
}

func TestStartTranslatePhrase(t *testing.T) {
	phrases := &memPhrases{items: []*domain.Phrase{
		{ID: "p1", DocumentID: 7, Text: "el zorro", Lang: "es"},
	}}
	jobsRepo := newMemJobs()
	r := newTestRunner(phrases, jobsRepo)

	id, err := r.StartTranslatePhrase(context.Background(), 1, TranslatePhraseParams{PhraseID: "p1", TargetLang: "en"})
	require.NoError(t, err)

	waitForStatus(t, jobsRepo, id, "done")
	p1, _ := phrases.Get(context.Background(), "p1")
	require.Equal(t, "<el zorro>", p1.Translation)
}

func TestStartTranslatePhraseUnknownID(t *testing.T) {
	jobsRepo := newMemJobs()
	r := newTestRunner(&memPhrases{}, jobsRepo)

	_, err := r.StartTranslatePhrase(context.Background(), 1, TranslatePhraseParams{PhraseID: "missing"})
	require.Error(t, err)
}

func TestCancelUnknownJob(t *testing.T) {
	r := newTestRunner(&memPhrases{}, newMemJobs())
	require.False(t, r.Cancel(42))
}
