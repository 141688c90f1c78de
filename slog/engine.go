package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/parsecompare"
)

var (
	_ parsecompare.URLEngine      = (*LoggingURLEngine)(nil)
	_ parsecompare.DocumentEngine = (*LoggingDocumentEngine)(nil)
)

// LoggingURLEngine wraps a URLEngine with logging.
type LoggingURLEngine struct {
	next   parsecompare.URLEngine
	name   string
	logger *slog.Logger
}

// NewLoggingURLEngine creates a new LoggingURLEngine. name identifies the
// engine in log output.
func NewLoggingURLEngine(next parsecompare.URLEngine, name string, logger *slog.Logger) *LoggingURLEngine {
	return &LoggingURLEngine{next: next, name: name, logger: logger}
}

// ExtractURL delegates to the wrapped engine and logs the operation.
func (e *LoggingURLEngine) ExtractURL(ctx context.Context, pageURL string) (record *parsecompare.ArticleRecord, err error) {
	defer func(begin time.Time) {
		logExtract(ctx, e.logger, e.name, pageURL, record, begin, err)
	}(time.Now())
	return e.next.ExtractURL(ctx, pageURL)
}

// LoggingDocumentEngine wraps a DocumentEngine with logging.
type LoggingDocumentEngine struct {
	next   parsecompare.DocumentEngine
	name   string
	logger *slog.Logger
}

// NewLoggingDocumentEngine creates a new LoggingDocumentEngine.
func NewLoggingDocumentEngine(next parsecompare.DocumentEngine, name string, logger *slog.Logger) *LoggingDocumentEngine {
	return &LoggingDocumentEngine{next: next, name: name, logger: logger}
}

// ExtractDocument delegates to the wrapped engine and logs the operation.
func (e *LoggingDocumentEngine) ExtractDocument(ctx context.Context, doc *parsecompare.FetchedDocument, pageURL string) (record *parsecompare.ArticleRecord, err error) {
	defer func(begin time.Time) {
		logExtract(ctx, e.logger, e.name, pageURL, record, begin, err)
	}(time.Now())
	return e.next.ExtractDocument(ctx, doc, pageURL)
}

func logExtract(ctx context.Context, logger *slog.Logger, engine, pageURL string, record *parsecompare.ArticleRecord, begin time.Time, err error) {
	var words int
	if record != nil {
		words = record.WordCount
	}
	level := slog.LevelInfo
	if err != nil {
		level = slog.LevelWarn
	}
	logger.Log(ctx, level, "extract",
		"engine", engine,
		"url", pageURL,
		"words", words,
		"duration", time.Since(begin),
		"err", err,
	)
}
