package mock

import (
	"context"

	"github.com/fwojciec/parsecompare"
)

var (
	_ parsecompare.URLEngine      = (*URLEngine)(nil)
	_ parsecompare.DocumentEngine = (*DocumentEngine)(nil)
	_ parsecompare.MetadataParser = (*MetadataParser)(nil)
)

// URLEngine is a mock implementation of parsecompare.URLEngine.
type URLEngine struct {
	ExtractURLFn func(ctx context.Context, pageURL string) (*parsecompare.ArticleRecord, error)
}

func (e *URLEngine) ExtractURL(ctx context.Context, pageURL string) (*parsecompare.ArticleRecord, error) {
	return e.ExtractURLFn(ctx, pageURL)
}

// DocumentEngine is a mock implementation of parsecompare.DocumentEngine.
type DocumentEngine struct {
	ExtractDocumentFn func(ctx context.Context, doc *parsecompare.FetchedDocument, pageURL string) (*parsecompare.ArticleRecord, error)
}

func (e *DocumentEngine) ExtractDocument(ctx context.Context, doc *parsecompare.FetchedDocument, pageURL string) (*parsecompare.ArticleRecord, error) {
	return e.ExtractDocumentFn(ctx, doc, pageURL)
}

// MetadataParser is a mock implementation of parsecompare.MetadataParser.
type MetadataParser struct {
	ParseMetadataFn func(html string, pageURL string) (*parsecompare.PageMetadata, error)
}

func (p *MetadataParser) ParseMetadata(html string, pageURL string) (*parsecompare.PageMetadata, error) {
	return p.ParseMetadataFn(html, pageURL)
}
