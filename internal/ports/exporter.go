package ports

type ExportItem struct {
	Text        string
	Translation string
	Lang        string
	Document    string
	Tags        []string
}

type Exporter interface {
	Format() string
	Export(items []ExportItem) ([]byte, error)
}
