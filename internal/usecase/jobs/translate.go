package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/neverho0d/readnlearn-sub001/internal/domain"
	"github.com/neverho0d/readnlearn-sub001/internal/ports"
	"github.com/neverho0d/readnlearn-sub001/internal/usecase/translator"
)

type Deps struct {
	Jobs      ports.JobRepository
	Docs      ports.DocumentRepository
	Phrases   ports.PhraseRepository
	Providers ports.ProviderRepository
}

type Runner struct {
	d      Deps
	trans  *translator.Service
	mu     sync.Mutex
	active map[int64]context.CancelFunc
	em     EventEmitter
}

func NewRunner(d Deps, trans *translator.Service) *Runner {
	return &Runner{d: d, trans: trans, active: map[int64]context.CancelFunc{}}
}

type EventEmitter interface {
	Emit(name string, payload any)
}

func (r *Runner) SetEmitter(em EventEmitter) { r.em = em }

// TranslatePhrasesParams describes a batch translating every
// untranslated phrase of one document.
type TranslatePhrasesParams struct {
	DocumentID int64  `json:"document_id"`
	TargetLang string `json:"target_lang"`
	Model      string `json:"model"`
}

// TranslatePhraseParams translates a single saved phrase.
type TranslatePhraseParams struct {
	PhraseID   string `json:"phrase_id"`
	TargetLang string `json:"target_lang"`
	Model      string `json:"model"`
}

func (r *Runner) StartTranslatePhrases(ctx context.Context, providerID int64, p TranslatePhrasesParams) (int64, error) {
	// Resolve model: if empty, use provider default
	if p.Model == "" {
		if prov, err := r.d.Providers.Get(ctx, providerID); err == nil && prov != nil {
			p.Model = prov.Model
		}
	}
	paramsJSON, _ := json.Marshal(p)
	job := &domain.Job{Type: "translate_phrases", Status: "queued", DocumentID: &p.DocumentID, ProviderID: &providerID, ParamsRaw: string(paramsJSON)}
	id, err := r.d.Jobs.Create(ctx, job)
	if err != nil {
		return 0, err
	}
	pending, _ := r.d.Phrases.ListUntranslated(ctx, p.DocumentID)
	total := len(pending)
	_ = r.d.Jobs.UpdateProgress(ctx, id, 0, total, "running")
	if r.em != nil {
		r.em.Emit("job.started", map[string]any{"job_id": id, "total": total, "model": p.Model, "provider_id": providerID})
	}
	r.log(ctx, id, "info", fmt.Sprintf("job started: provider=%d model=%s phrases=%d target=%s", providerID, p.Model, total, p.TargetLang))
	cctx, cancel := context.WithCancel(context.Background())
	r.mu.Lock()
	r.active[id] = cancel
	r.mu.Unlock()
	go r.runTranslatePhrases(cctx, id, providerID, p)
	return id, nil
}

func (r *Runner) runTranslatePhrases(ctx context.Context, jobID, providerID int64, p TranslatePhrasesParams) {
	pending, err := r.d.Phrases.ListUntranslated(ctx, p.DocumentID)
	if err != nil {
		r.log(ctx, jobID, "error", err.Error())
		_ = r.d.Jobs.UpdateProgress(ctx, jobID, 0, 0, "failed")
		return
	}
	docTitle := ""
	if doc, err := r.d.Docs.Get(ctx, p.DocumentID); err == nil && doc != nil {
		docTitle = doc.Title
	}
	total := len(pending)
	done := 0
	for _, ph := range pending {
		select {
		case <-ctx.Done():
			_ = r.d.Jobs.UpdateProgress(ctx, jobID, done, total, "canceled")
			return
		default:
		}
		r.translateOne(ctx, jobID, providerID, ph, p.TargetLang, p.Model, docTitle)
		done++
		_ = r.d.Jobs.UpdateProgress(ctx, jobID, done, total, "running")
		if r.em != nil {
			r.em.Emit("job.progress", map[string]any{"job_id": jobID, "done": done, "total": total, "status": "running"})
		}
	}
	_ = r.d.Jobs.UpdateProgress(ctx, jobID, done, total, "done")
	if r.em != nil {
		r.em.Emit("job.progress", map[string]any{"job_id": jobID, "done": done, "total": total, "status": "done"})
	}
}

// StartTranslatePhrase creates a single-item job for one phrase.
func (r *Runner) StartTranslatePhrase(ctx context.Context, providerID int64, p TranslatePhraseParams) (int64, error) {
	ph, err := r.d.Phrases.Get(ctx, p.PhraseID)
	if err != nil {
		return 0, err
	}
	if ph == nil {
		return 0, fmt.Errorf("phrase not found: %s", p.PhraseID)
	}
	if p.Model == "" {
		if prov, err := r.d.Providers.Get(ctx, providerID); err == nil && prov != nil {
			p.Model = prov.Model
		}
	}
	paramsJSON, _ := json.Marshal(p)
	job := &domain.Job{Type: "translate_phrase", Status: "queued", DocumentID: &ph.DocumentID, ProviderID: &providerID, ParamsRaw: string(paramsJSON)}
	id, err := r.d.Jobs.Create(ctx, job)
	if err != nil {
		return 0, err
	}
	_ = r.d.Jobs.UpdateProgress(ctx, id, 0, 1, "running")
	if r.em != nil {
		r.em.Emit("job.started", map[string]any{"job_id": id, "total": 1, "model": p.Model, "provider_id": providerID})
	}
	docTitle := ""
	if doc, derr := r.d.Docs.Get(ctx, ph.DocumentID); derr == nil && doc != nil {
		docTitle = doc.Title
	}
	cctx, cancel := context.WithCancel(context.Background())
	r.mu.Lock()
	r.active[id] = cancel
	r.mu.Unlock()
	go func() {
		r.translateOne(cctx, id, providerID, ph, p.TargetLang, p.Model, docTitle)
		_ = r.d.Jobs.UpdateProgress(cctx, id, 1, 1, "done")
		if r.em != nil {
			r.em.Emit("job.progress", map[string]any{"job_id": id, "done": 1, "total": 1, "status": "done"})
		}
	}()
	return id, nil
}

func (r *Runner) translateOne(ctx context.Context, jobID, providerID int64, ph *domain.Phrase, targetLang, model, docTitle string) {
	item := &domain.JobItem{JobID: jobID, PhraseID: &ph.ID, Status: "running"}
	itemID, _ := r.d.Jobs.AddItem(ctx, item)
	if r.em != nil {
		r.em.Emit("job.item.start", map[string]any{"job_id": jobID, "phrase_id": ph.ID, "model": model})
	}
	r.log(ctx, jobID, "info", fmt.Sprintf("translate start: phrase=%s target=%s model=%s", ph.ID, targetLang, model))
	// Per-item timeout to avoid hangs
	ictx, cancel := context.WithTimeout(ctx, 60*time.Second)
	txt, err := r.trans.TranslateOne(ictx, translator.TranslateArgs{
		ProviderID: providerID,
		Text:       ph.Text,
		SourceLang: ph.Lang,
		TargetLang: targetLang,
		Model:      model,
		Document:   docTitle,
	})
	cancel()
	if err != nil {
		_ = r.d.Jobs.UpdateItem(ctx, itemID, "failed", err.Error())
		r.log(ctx, jobID, "error", fmt.Sprintf("%s: %v", ph.ID, err))
		if r.em != nil {
			r.em.Emit("job.item.done", map[string]any{"job_id": jobID, "phrase_id": ph.ID, "error": err.Error()})
		}
		return
	}
	if err := r.d.Phrases.UpdateStudyFields(ctx, ph.ID, strings.TrimSpace(txt), ph.TagsRaw); err != nil {
		_ = r.d.Jobs.UpdateItem(ctx, itemID, "failed", err.Error())
		r.log(ctx, jobID, "error", fmt.Sprintf("%s: save: %v", ph.ID, err))
		return
	}
	_ = r.d.Jobs.UpdateItem(ctx, itemID, "done", "")
	r.log(ctx, jobID, "info", fmt.Sprintf("translate done: phrase=%s len=%d", ph.ID, len(txt)))
	if r.em != nil {
		r.em.Emit("job.item.done", map[string]any{"job_id": jobID, "phrase_id": ph.ID, "text": txt})
		r.em.Emit("phrases.changed", map[string]any{"document_id": ph.DocumentID})
	}
}

func (r *Runner) log(ctx context.Context, jobID int64, level, message string) {
	_ = r.d.Jobs.AddLog(ctx, &domain.JobLog{JobID: jobID, Level: level, Message: message})
	if r.em != nil {
		r.em.Emit("job.log", map[string]any{"job_id": jobID, "level": level, "message": message, "ts": time.Now().UTC().Format(time.RFC3339)})
	}
}

func (r *Runner) Cancel(jobID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cancel, ok := r.active[jobID]; ok {
		cancel()
		delete(r.active, jobID)
		return true
	}
	return false
}
