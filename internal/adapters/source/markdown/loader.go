package markdown

import (
	"path/filepath"
	"strings"

	"github.com/neverho0d/readnlearn-sub001/internal/adapters/source/plaintext"
	"github.com/neverho0d/readnlearn-sub001/internal/domain"
	"github.com/neverho0d/readnlearn-sub001/internal/ports"
)

type Loader struct{}

func New() *Loader { return &Loader{} }

func (l *Loader) Format() string { return domain.FormatMarkdown }

// Load keeps the markdown text verbatim. The title comes from the first
// ATX heading when one exists, otherwise from the file name.
func (l *Loader) Load(filename string, data []byte) (ports.LoadResult, error) {
	text := string(plaintext.StripBOM(data))
	title := firstHeading(text)
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	if title == "" {
		title = "Untitled"
	}
	return ports.LoadResult{
		Title:  title,
		Format: domain.FormatMarkdown,
		Text:   text,
	}, nil
}

func firstHeading(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "#") {
			continue
		}
		return strings.TrimSpace(strings.TrimLeft(line, "#"))
	}
	return ""
}
