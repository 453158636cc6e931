package main

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	jobsusecase "github.com/neverho0d/readnlearn-sub001/internal/usecase/jobs"
	readerusecase "github.com/neverho0d/readnlearn-sub001/internal/usecase/reader"
)

// App struct
type App struct {
	ctx    context.Context
	runner *jobsusecase.Runner
	reader *readerusecase.Service
}

// NewApp creates a new App application struct
func NewApp() *App {
	return &App{}
}

// startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	if a.runner != nil {
		a.runner.SetEmitter(wailsEmitter{ctx: a.ctx})
	}
	if a.reader != nil {
		a.reader.SetEmitter(wailsEmitter{ctx: a.ctx})
	}
}

// SetRunner allows main() to provide the job runner so we can wire the event emitter on startup
func (a *App) SetRunner(r *jobsusecase.Runner) {
	a.runner = r
}

// SetReader wires the reader service the same way
func (a *App) SetReader(s *readerusecase.Service) {
	a.reader = s
}

type wailsEmitter struct{ ctx context.Context }

func (w wailsEmitter) Emit(name string, payload any) {
	runtime.EventsEmit(w.ctx, name, payload)
}
