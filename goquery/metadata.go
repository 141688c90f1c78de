// Package goquery implements parsecompare.MetadataParser using goquery for
// DOM queries and go-opengraph for OpenGraph tags.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dyatlov/go-opengraph/opengraph"
	"github.com/fwojciec/parsecompare"
)

// Ensure MetadataParser implements parsecompare.MetadataParser at compile time.
var _ parsecompare.MetadataParser = (*MetadataParser)(nil)

// MetadataParser extracts descriptive metadata from HTML.
type MetadataParser struct{}

// NewMetadataParser creates a new MetadataParser.
func NewMetadataParser() *MetadataParser {
	return &MetadataParser{}
}

// ParseMetadata reads title, author, description, canonical URL, image and
// site name from html. Relative URLs are resolved against pageURL.
// Fields that cannot be found are left empty.
func (p *MetadataParser) ParseMetadata(html string, pageURL string) (*parsecompare.PageMetadata, error) {
	base, err := parsecompare.ParseAbsoluteURL(pageURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, parsecompare.Errorf(parsecompare.EEXTRACT, "failed to parse HTML: %v", err)
	}

	// OpenGraph is optional; a page without og tags still has usable metadata.
	og := opengraph.NewOpenGraph()
	if err := og.ProcessHTML(strings.NewReader(html)); err != nil {
		og = opengraph.NewOpenGraph()
	}

	var ogImage string
	if len(og.Images) > 0 && og.Images[0] != nil {
		ogImage = og.Images[0].URL
	}

	meta := &parsecompare.PageMetadata{
		Title: firstNonEmpty(
			og.Title,
			metaContent(doc, `meta[name="twitter:title"]`),
			doc.Find("head title").First().Text(),
			doc.Find("h1").First().Text(),
		),
		Author: firstNonEmpty(
			metaContent(doc, `meta[name="author"]`),
			nonURL(metaContent(doc, `meta[property="article:author"]`)),
			metaContent(doc, `meta[name="byl"]`),
			doc.Find(`[itemprop="author"] [itemprop="name"]`).First().Text(),
			doc.Find(`[itemprop="author"]`).First().Text(),
			doc.Find(`a[rel="author"]`).First().Text(),
			doc.Find(`.byline .author, .author-name`).First().Text(),
		),
		Description: firstNonEmpty(
			metaContent(doc, `meta[name="description"]`),
			og.Description,
			metaContent(doc, `meta[name="twitter:description"]`),
		),
		CanonicalURL: resolve(base, firstNonEmpty(
			attr(doc, `link[rel="canonical"]`, "href"),
			og.URL,
		)),
		Image: resolve(base, firstNonEmpty(
			ogImage,
			metaContent(doc, `meta[name="twitter:image"]`),
			metaContent(doc, `meta[name="twitter:image:src"]`),
			attr(doc, `link[rel="image_src"]`, "href"),
		)),
		SiteName: firstNonEmpty(
			og.SiteName,
			metaContent(doc, `meta[name="application-name"]`),
		),
	}

	domainURL := base
	if meta.CanonicalURL != "" {
		if u, err := url.Parse(meta.CanonicalURL); err == nil && u.Host != "" {
			domainURL = u
		}
	}
	meta.Domain = parsecompare.Domain(domainURL)

	return meta, nil
}

func metaContent(doc *goquery.Document, selector string) string {
	return attr(doc, selector, "content")
}

func attr(doc *goquery.Document, selector, name string) string {
	v, _ := doc.Find(selector).First().Attr(name)
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = collapseSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// nonURL drops values that are profile links rather than names, as is common
// for article:author.
func nonURL(s string) string {
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return ""
	}
	return s
}

// resolve makes ref absolute against base. Data URIs and unparsable values
// are dropped.
func resolve(base *url.URL, ref string) string {
	if ref == "" || strings.HasPrefix(ref, "data:") {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return base.ResolveReference(u).String()
}
