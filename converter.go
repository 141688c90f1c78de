package parsecompare

// Converter converts extracted article HTML to Markdown.
type Converter interface {
	// Convert transforms html into Markdown. Relative links and images are
	// resolved against baseURL when it is not empty.
	// Returns EINVALID for empty input.
	Convert(html, baseURL string) (string, error)
}
