package mock

import "github.com/sitesift/sitesift"

var _ sitesift.Converter = (*Converter)(nil)

// Converter is a mock implementation of sitesift.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
