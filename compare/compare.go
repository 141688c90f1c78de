// Package compare orchestrates a page comparison: one shared fetch followed
// by both extraction engines running concurrently, each isolated from the
// other's failure.
package compare

import (
	"context"

	"github.com/fwojciec/parsecompare"
)

// Ensure Comparer implements parsecompare.ComparisonService at compile time.
var _ parsecompare.ComparisonService = (*Comparer)(nil)

// Comparer runs a page through the URL-driven and document-driven engines.
type Comparer struct {
	Fetcher        parsecompare.Fetcher
	URLEngine      parsecompare.URLEngine
	DocumentEngine parsecompare.DocumentEngine
}

// Compare validates req, fetches the page once and runs both engines
// concurrently. It returns an error only when req is invalid; engine and
// fetch failures are recorded in the corresponding outcome.
func (c *Comparer) Compare(ctx context.Context, req *parsecompare.FetchRequest) (*parsecompare.ComparisonResult, error) {
	if req == nil {
		return nil, parsecompare.Errorf(parsecompare.EINVALID, "URL is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	pageURL := req.URL

	// A failed fetch only disables the document-driven engine; the URL-driven
	// engine fetches on its own and still runs.
	doc, fetchErr := c.Fetcher.Fetch(ctx, req)
	if fetchErr == nil && doc == nil {
		fetchErr = parsecompare.Errorf(parsecompare.EFETCH, "fetcher returned no document")
	}

	results := Settle(ctx,
		func(ctx context.Context) (*parsecompare.ArticleRecord, error) {
			return c.URLEngine.ExtractURL(ctx, pageURL)
		},
		func(ctx context.Context) (*parsecompare.ArticleRecord, error) {
			if fetchErr != nil {
				return nil, fetchErr
			}
			return c.DocumentEngine.ExtractDocument(ctx, doc, pageURL)
		},
	)

	return &parsecompare.ComparisonResult{
		URLDriven:      outcome(results[0], pageURL),
		DocumentDriven: outcome(results[1], pageURL),
	}, nil
}

// outcome converts a settled engine result into an EngineOutcome. Records are
// normalized again so a misbehaving engine cannot leak empty fields.
func outcome(r Result[*parsecompare.ArticleRecord], pageURL string) parsecompare.EngineOutcome {
	if r.Err != nil {
		return parsecompare.Failed(parsecompare.ErrorMessage(r.Err))
	}
	if r.Value == nil {
		return parsecompare.Failed("engine returned no result")
	}
	record := *r.Value
	record.Normalize(pageURL)
	return parsecompare.Succeeded(&record)
}
