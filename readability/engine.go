// Package readability implements the URL-driven extraction engine on top of
// go-readability. The engine fetches the page itself and never sees the
// document retrieved by parsecompare.Fetcher.
package readability

import (
	"context"
	"time"

	"github.com/fwojciec/parsecompare"
	"github.com/go-shiori/go-readability"
)

// DefaultTimeout bounds the engine's own fetch.
const DefaultTimeout = 10 * time.Second

// Ensure Engine implements parsecompare.URLEngine at compile time.
var _ parsecompare.URLEngine = (*Engine)(nil)

// Engine wraps go-readability to fetch and extract an article from a URL.
type Engine struct {
	timeout time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout sets the timeout of the engine's own HTTP request.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.timeout = d
	}
}

// NewEngine creates a new Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractURL downloads pageURL and returns the normalized article.
func (e *Engine) ExtractURL(ctx context.Context, pageURL string) (*parsecompare.ArticleRecord, error) {
	u, err := parsecompare.ParseAbsoluteURL(pageURL)
	if err != nil {
		return nil, parsecompare.Errorf(parsecompare.EEXTRACT, "%s", parsecompare.ErrorMessage(err))
	}
	if err := ctx.Err(); err != nil {
		return nil, parsecompare.Errorf(parsecompare.EEXTRACT, "%v", err)
	}

	article, err := readability.FromURL(u.String(), e.timeout)
	if err != nil {
		return nil, parsecompare.Errorf(parsecompare.EEXTRACT, "%v", err)
	}

	record := &parsecompare.ArticleRecord{
		Title:       article.Title,
		Content:     article.Content,
		URL:         u.String(),
		Author:      article.Byline,
		Description: article.Excerpt,
		WordCount:   parsecompare.CountWords(article.TextContent),
		Image:       article.Image,
		Domain:      parsecompare.Domain(u),
	}
	record.Normalize(pageURL)

	return record, nil
}
