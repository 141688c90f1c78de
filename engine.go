package parsecompare

import (
	"context"
	"net/url"
	"strings"
)

// Fallback values for fields an engine could not extract.
const (
	DefaultTitle   = "No title found"
	DefaultContent = "No content found"
	DefaultAuthor  = "Unknown"
)

// ArticleRecord is the normalized output of an extraction engine.
type ArticleRecord struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	Author      string `json:"author"`
	Description string `json:"description"`
	WordCount   int    `json:"word_count"`
	Image       string `json:"image"`
	Domain      string `json:"domain"`
}

// Normalize trims every field and fills the ones left empty with their
// defaults. pageURL is used when the engine did not report a URL.
func (r *ArticleRecord) Normalize(pageURL string) {
	r.Title = orDefault(r.Title, DefaultTitle)
	r.Content = orDefault(r.Content, DefaultContent)
	r.URL = orDefault(r.URL, pageURL)
	r.Author = orDefault(r.Author, DefaultAuthor)
	r.Description = strings.TrimSpace(r.Description)
	r.Image = strings.TrimSpace(r.Image)
	r.Domain = strings.TrimSpace(r.Domain)
	if r.WordCount < 0 {
		r.WordCount = 0
	}
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

// CountWords returns the number of whitespace-separated words in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// URLEngine extracts an article starting from nothing but its URL.
// Implementations fetch the page themselves.
type URLEngine interface {
	// ExtractURL fetches and parses pageURL.
	// Returns EEXTRACT on any network or parsing failure.
	ExtractURL(ctx context.Context, pageURL string) (*ArticleRecord, error)
}

// DocumentEngine extracts an article from an already fetched document.
type DocumentEngine interface {
	// ExtractDocument parses doc. pageURL is used to resolve relative links.
	// Returns EEXTRACT when the markup cannot be used at all.
	ExtractDocument(ctx context.Context, doc *FetchedDocument, pageURL string) (*ArticleRecord, error)
}

// PageMetadata holds the descriptive fields found in a page's markup.
// Empty strings mean the field was not found.
type PageMetadata struct {
	Title        string
	Author       string
	Description  string
	CanonicalURL string
	Image        string
	SiteName     string
	Domain       string
}

// MetadataParser reads descriptive metadata (title, author, OpenGraph tags,
// canonical link) from raw HTML.
type MetadataParser interface {
	ParseMetadata(html string, pageURL string) (*PageMetadata, error)
}

// Domain returns the hostname of u without a leading "www.".
func Domain(u *url.URL) string {
	if u == nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
