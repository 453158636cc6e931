package csvdeck

import (
	"bytes"
	"encoding/csv"
	"strings"

	"github.com/neverho0d/readnlearn-sub001/internal/ports"
)

type Exporter struct{}

func New() *Exporter { return &Exporter{} }

func (e *Exporter) Format() string { return "csv" }

func (e *Exporter) Export(items []ports.ExportItem) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"text", "translation", "lang", "document", "tags"})
	for _, it := range items {
		_ = w.Write([]string{it.Text, it.Translation, it.Lang, it.Document, strings.Join(it.Tags, ";")})
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
