// Package htmltomarkdown renders extracted article HTML as Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/parsecompare"
)

// Ensure Converter implements parsecompare.Converter at compile time.
var _ parsecompare.Converter = (*Converter)(nil)

// Converter renders article HTML produced by the extraction engines.
type Converter struct {
	conv       *converter.Converter
	dropImages bool
}

// Option configures a Converter.
type Option func(*Converter)

// WithoutImages drops images and their figures, leaving only the text of
// the article.
func WithoutImages() Option {
	return func(c *Converter) {
		c.dropImages = true
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{}
	for _, opt := range opts {
		opt(c)
	}

	c.conv = converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	if c.dropImages {
		for _, tag := range []string{"img", "picture", "figure"} {
			c.conv.Register.TagType(tag, converter.TagTypeRemove, converter.PriorityEarly)
		}
	}

	return c
}

// Convert transforms article HTML into Markdown, resolving relative links
// against baseURL.
func (c *Converter) Convert(html, baseURL string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", parsecompare.Errorf(parsecompare.EINVALID, "empty HTML input")
	}

	var opts []converter.ConvertOptionFunc
	if baseURL != "" {
		opts = append(opts, converter.WithDomain(baseURL))
	}

	result, err := c.conv.ConvertString(html, opts...)
	if err != nil {
		return "", parsecompare.Errorf(parsecompare.EINTERNAL, "convert to markdown: %v", err)
	}

	return strings.TrimSpace(result), nil
}
