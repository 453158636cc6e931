package jsondeck

import (
	"encoding/json"

	"github.com/neverho0d/readnlearn-sub001/internal/ports"
)

type Exporter struct{}

func New() *Exporter { return &Exporter{} }

func (e *Exporter) Format() string { return "json" }

type card struct {
	Text        string   `json:"text"`
	Translation string   `json:"translation"`
	Lang        string   `json:"lang,omitempty"`
	Document    string   `json:"document,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

func (e *Exporter) Export(items []ports.ExportItem) ([]byte, error) {
	cards := make([]card, 0, len(items))
	for _, it := range items {
		cards = append(cards, card{
			Text:        it.Text,
			Translation: it.Translation,
			Lang:        it.Lang,
			Document:    it.Document,
			Tags:        it.Tags,
		})
	}
	return json.MarshalIndent(cards, "", "  ")
}
