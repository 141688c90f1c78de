// Package slog provides logging decorators for parsecompare services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/parsecompare"
)

// Ensure LoggingFetcher implements parsecompare.Fetcher.
var _ parsecompare.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging of each fetch.
type LoggingFetcher struct {
	next   parsecompare.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next parsecompare.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, req *parsecompare.FetchRequest) (doc *parsecompare.FetchedDocument, err error) {
	defer func(begin time.Time) {
		var n int
		if doc != nil {
			n = len(doc.HTML)
		}
		f.logger.InfoContext(ctx, "fetch",
			"url", req.URL,
			"bytes", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, req)
}
