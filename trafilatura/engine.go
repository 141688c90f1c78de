// Package trafilatura implements the document-driven extraction engine. Main
// content comes from go-trafilatura; descriptive fields come from a
// parsecompare.MetadataParser with trafilatura's own metadata as fallback.
package trafilatura

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/parsecompare"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Engine implements parsecompare.DocumentEngine at compile time.
var _ parsecompare.DocumentEngine = (*Engine)(nil)

// Engine extracts an article from an already fetched document.
type Engine struct {
	metadata parsecompare.MetadataParser
}

// NewEngine creates a new Engine reading descriptive fields with metadata.
func NewEngine(metadata parsecompare.MetadataParser) *Engine {
	return &Engine{metadata: metadata}
}

// ExtractDocument parses doc and returns the normalized article.
func (e *Engine) ExtractDocument(ctx context.Context, doc *parsecompare.FetchedDocument, pageURL string) (*parsecompare.ArticleRecord, error) {
	if doc == nil || strings.TrimSpace(doc.HTML) == "" {
		return nil, parsecompare.Errorf(parsecompare.EEXTRACT, "empty HTML input")
	}
	base, err := parsecompare.ParseAbsoluteURL(pageURL)
	if err != nil {
		return nil, parsecompare.Errorf(parsecompare.EEXTRACT, "%s", parsecompare.ErrorMessage(err))
	}
	if err := ctx.Err(); err != nil {
		return nil, parsecompare.Errorf(parsecompare.EEXTRACT, "%v", err)
	}

	meta, err := e.metadata.ParseMetadata(doc.HTML, pageURL)
	if err != nil {
		return nil, parsecompare.Errorf(parsecompare.EEXTRACT, "%s", parsecompare.ErrorMessage(err))
	}

	record := &parsecompare.ArticleRecord{
		Title:       meta.Title,
		URL:         meta.CanonicalURL,
		Author:      meta.Author,
		Description: meta.Description,
		Image:       meta.Image,
		Domain:      meta.Domain,
	}

	opts := trafilatura.Options{
		OriginalURL:    base,
		EnableFallback: true,
	}

	// Trafilatura fails when it finds no main content. That is a page without
	// an article, not a broken document, so the record keeps its defaults.
	result, err := trafilatura.Extract(strings.NewReader(doc.HTML), opts)
	if err == nil && result != nil {
		// The fallback extractors return the title and navigation text of
		// pages that have no body text, so that output is discarded.
		if result.ContentNode != nil && strings.TrimSpace(result.ContentText) != "" && hasBodyText(doc.HTML) {
			record.Content, err = renderNode(result.ContentNode)
			if err != nil {
				return nil, parsecompare.Errorf(parsecompare.EEXTRACT, "render content: %v", err)
			}
			record.WordCount = parsecompare.CountWords(result.ContentText)
		}

		md := result.Metadata
		record.Title = firstNonEmpty(record.Title, md.Title)
		record.Author = firstNonEmpty(record.Author, md.Author)
		record.Description = firstNonEmpty(record.Description, md.Description)
		record.Image = firstNonEmpty(record.Image, md.Image)
		record.Domain = firstNonEmpty(record.Domain, strings.TrimPrefix(md.Hostname, "www."))
	}

	record.Normalize(pageURL)

	return record, nil
}

// boilerplate matches page chrome that never holds article text.
const boilerplate = "nav, header, footer, aside, script, style, noscript, template, form"

// hasBodyText reports whether the body holds any text outside boilerplate.
func hasBodyText(html string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}
	body := doc.Find("body")
	body.Find(boilerplate).Remove()
	return strings.TrimSpace(body.Text()) != ""
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
