package sitesift

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be clean HTML (e.g., a result's HTML context).
	// Returns the Markdown representation of the content.
	Convert(html string) (string, error)
}
