package factory

import (
	httpprov "github.com/neverho0d/readnlearn-sub001/internal/adapters/translate/httpclient"
	"github.com/neverho0d/readnlearn-sub001/internal/domain"
	"github.com/neverho0d/readnlearn-sub001/internal/ports"
)

// FromProvider returns an HTTP-backed provider for the given record.
func FromProvider(p *domain.Provider) (ports.Provider, bool) {
	return httpprov.New(p.Type, p.APIKey, p.BaseURL, p.Model), true
}
