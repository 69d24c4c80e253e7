package mock

import "github.com/sitesift/sitesift"

var _ sitesift.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of sitesift.Extractor.
type Extractor struct {
	ExtractFn func(rawHTML string, basePath string) ([]sitesift.RawNode, error)
}

func (e *Extractor) Extract(rawHTML string, basePath string) ([]sitesift.RawNode, error) {
	return e.ExtractFn(rawHTML, basePath)
}
