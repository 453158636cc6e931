package registry

import "github.com/neverho0d/readnlearn-sub001/internal/ports"

type Registry struct {
	byFormat map[string]ports.Loader
}

func New() *Registry { return &Registry{byFormat: map[string]ports.Loader{}} }

func (r *Registry) Register(l ports.Loader) { r.byFormat[l.Format()] = l }

func (r *Registry) Get(format string) (ports.Loader, bool) { l, ok := r.byFormat[format]; return l, ok }
