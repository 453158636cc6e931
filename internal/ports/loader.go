package ports

type LoadResult struct {
	Title  string
	Format string
	Text   string
	Lang   string // optional, if declared by the file
}

// Loader turns raw file bytes into document text for one source format.
type Loader interface {
	Format() string
	Load(filename string, data []byte) (LoadResult, error)
}
