package source

import (
	"context"

	"ados/internal"
	"ados/internal/config"
	"ados/internal/dataset"
	"ados/internal/pipeline"
)

// Loader is the single acquisition point for records. Bundled, remote and
// local-file data all flow through the same parse and transform path; only
// the way the text arrives differs.
type Loader struct {
	fetcher *Fetcher
}

func NewLoader(cfg config.Config) *Loader {
	return &Loader{fetcher: NewFetcher(cfg)}
}

// LoadDefault parses the bundled registry extract.
func (l *Loader) LoadDefault() ([]internal.DocumentRecord, error) {
	rows, err := ParseTable(dataset.DefaultCSV())
	if err != nil {
		return nil, err
	}
	return pipeline.TransformRows(rows), nil
}

// LoadURL fetches published tabular text and transforms it. Any error
// (fetch, parse, empty result) leaves the caller's snapshot untouched.
func (l *Loader) LoadURL(ctx context.Context, url string) ([]internal.DocumentRecord, error) {
	text, err := l.fetcher.FetchText(ctx, url)
	if err != nil {
		return nil, err
	}
	rows, err := ParseTable(text)
	if err != nil {
		return nil, err
	}
	return pipeline.TransformRows(rows), nil
}

// LoadFile reads a local CSV or XLSX file.
func (l *Loader) LoadFile(path string) ([]internal.DocumentRecord, error) {
	rows, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return pipeline.TransformRows(rows), nil
}
