package plaintext

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/neverho0d/readnlearn-sub001/internal/domain"
	"github.com/neverho0d/readnlearn-sub001/internal/ports"
)

type Loader struct{}

func New() *Loader { return &Loader{} }

func (l *Loader) Format() string { return domain.FormatPlain }

func (l *Loader) Load(filename string, data []byte) (ports.LoadResult, error) {
	text := string(StripBOM(data))
	title := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if title == "" {
		title = "Untitled"
	}
	return ports.LoadResult{
		Title:  title,
		Format: domain.FormatPlain,
		Text:   text,
	}, nil
}

// StripBOM drops a UTF-8 byte order mark if present.
func StripBOM(b []byte) []byte {
	bom := []byte{0xEF, 0xBB, 0xBF}
	if len(b) >= 3 && bytes.Equal(b[:3], bom) {
		return b[3:]
	}
	return b
}
