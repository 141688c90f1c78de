package compare_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/parsecompare"
	"github.com/fwojciec/parsecompare/compare"
	"github.com/fwojciec/parsecompare/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageURL = "https://example.com/article"

func fetchedDoc() *parsecompare.FetchedDocument {
	return &parsecompare.FetchedDocument{
		SourceURL: pageURL,
		HTML:      "<html><body><p>Hello</p></body></html>",
		Origin:    "https://example.com",
	}
}

func okFetcher(calls *atomic.Int32) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(ctx context.Context, req *parsecompare.FetchRequest) (*parsecompare.FetchedDocument, error) {
			if calls != nil {
				calls.Add(1)
			}
			return fetchedDoc(), nil
		},
	}
}

func okURLEngine() *mock.URLEngine {
	return &mock.URLEngine{
		ExtractURLFn: func(ctx context.Context, u string) (*parsecompare.ArticleRecord, error) {
			return &parsecompare.ArticleRecord{Title: "From URL", Content: "<p>url</p>", URL: u, WordCount: 1}, nil
		},
	}
}

func okDocumentEngine() *mock.DocumentEngine {
	return &mock.DocumentEngine{
		ExtractDocumentFn: func(ctx context.Context, doc *parsecompare.FetchedDocument, u string) (*parsecompare.ArticleRecord, error) {
			return &parsecompare.ArticleRecord{Title: "From Document", Content: doc.HTML, URL: u, WordCount: 1}, nil
		},
	}
}

func TestComparer_Compare(t *testing.T) {
	t.Parallel()

	t.Run("returns both outcomes on success", func(t *testing.T) {
		t.Parallel()

		var fetches atomic.Int32
		c := &compare.Comparer{
			Fetcher:        okFetcher(&fetches),
			URLEngine:      okURLEngine(),
			DocumentEngine: okDocumentEngine(),
		}

		result, err := c.Compare(context.Background(), &parsecompare.FetchRequest{URL: pageURL})

		require.NoError(t, err)
		assert.True(t, result.URLDriven.Success)
		assert.Nil(t, result.URLDriven.Error)
		assert.Equal(t, "From URL", result.URLDriven.Data.Title)
		assert.True(t, result.DocumentDriven.Success)
		assert.Nil(t, result.DocumentDriven.Error)
		assert.Equal(t, "From Document", result.DocumentDriven.Data.Title)
		assert.Equal(t, int32(1), fetches.Load())
	})

	t.Run("passes user agent to fetcher", func(t *testing.T) {
		t.Parallel()

		var gotUA string
		c := &compare.Comparer{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, req *parsecompare.FetchRequest) (*parsecompare.FetchedDocument, error) {
					gotUA = req.UserAgent
					return fetchedDoc(), nil
				},
			},
			URLEngine:      okURLEngine(),
			DocumentEngine: okDocumentEngine(),
		}

		_, err := c.Compare(context.Background(), &parsecompare.FetchRequest{URL: pageURL, UserAgent: "TestBot/1.0"})

		require.NoError(t, err)
		assert.Equal(t, "TestBot/1.0", gotUA)
	})

	t.Run("rejects invalid URL without fetching", func(t *testing.T) {
		t.Parallel()

		var fetches, urlCalls atomic.Int32
		c := &compare.Comparer{
			Fetcher: okFetcher(&fetches),
			URLEngine: &mock.URLEngine{
				ExtractURLFn: func(ctx context.Context, u string) (*parsecompare.ArticleRecord, error) {
					urlCalls.Add(1)
					return nil, nil
				},
			},
			DocumentEngine: okDocumentEngine(),
		}

		for _, raw := range []string{"not a url", "", "/relative/path", "example.com/no-scheme"} {
			_, err := c.Compare(context.Background(), &parsecompare.FetchRequest{URL: raw})
			require.Error(t, err, raw)
			assert.Equal(t, parsecompare.EINVALID, parsecompare.ErrorCode(err), raw)
		}
		assert.Equal(t, int32(0), fetches.Load())
		assert.Equal(t, int32(0), urlCalls.Load())
	})

	t.Run("fetch failure fails document engine but still runs URL engine", func(t *testing.T) {
		t.Parallel()

		var docCalls atomic.Int32
		c := &compare.Comparer{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, req *parsecompare.FetchRequest) (*parsecompare.FetchedDocument, error) {
					return nil, parsecompare.Errorf(parsecompare.EFETCH, "HTTP error! status: 403")
				},
			},
			URLEngine: okURLEngine(),
			DocumentEngine: &mock.DocumentEngine{
				ExtractDocumentFn: func(ctx context.Context, doc *parsecompare.FetchedDocument, u string) (*parsecompare.ArticleRecord, error) {
					docCalls.Add(1)
					return nil, nil
				},
			},
		}

		result, err := c.Compare(context.Background(), &parsecompare.FetchRequest{URL: pageURL})

		require.NoError(t, err)
		assert.False(t, result.DocumentDriven.Success)
		assert.Nil(t, result.DocumentDriven.Data)
		assert.Equal(t, "HTTP error! status: 403", result.DocumentDriven.ErrorMessage())
		assert.True(t, result.URLDriven.Success)
		assert.Equal(t, int32(0), docCalls.Load())
	})

	t.Run("fetch failure and URL engine failure are independent", func(t *testing.T) {
		t.Parallel()

		c := &compare.Comparer{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, req *parsecompare.FetchRequest) (*parsecompare.FetchedDocument, error) {
					return nil, errors.New("connection refused")
				},
			},
			URLEngine: &mock.URLEngine{
				ExtractURLFn: func(ctx context.Context, u string) (*parsecompare.ArticleRecord, error) {
					return nil, parsecompare.Errorf(parsecompare.EEXTRACT, "dial tcp: timeout")
				},
			},
			DocumentEngine: okDocumentEngine(),
		}

		result, err := c.Compare(context.Background(), &parsecompare.FetchRequest{URL: pageURL})

		require.NoError(t, err)
		assert.Equal(t, "dial tcp: timeout", result.URLDriven.ErrorMessage())
		assert.Equal(t, "connection refused", result.DocumentDriven.ErrorMessage())
	})

	t.Run("URL engine failure does not affect document engine", func(t *testing.T) {
		t.Parallel()

		c := &compare.Comparer{
			Fetcher: okFetcher(nil),
			URLEngine: &mock.URLEngine{
				ExtractURLFn: func(ctx context.Context, u string) (*parsecompare.ArticleRecord, error) {
					return nil, parsecompare.Errorf(parsecompare.EEXTRACT, "parse failed")
				},
			},
			DocumentEngine: okDocumentEngine(),
		}

		result, err := c.Compare(context.Background(), &parsecompare.FetchRequest{URL: pageURL})

		require.NoError(t, err)
		assert.False(t, result.URLDriven.Success)
		assert.Equal(t, "parse failed", result.URLDriven.ErrorMessage())
		assert.True(t, result.DocumentDriven.Success)
		assert.Equal(t, "From Document", result.DocumentDriven.Data.Title)
	})

	t.Run("document engine panic is isolated", func(t *testing.T) {
		t.Parallel()

		c := &compare.Comparer{
			Fetcher:   okFetcher(nil),
			URLEngine: okURLEngine(),
			DocumentEngine: &mock.DocumentEngine{
				ExtractDocumentFn: func(ctx context.Context, doc *parsecompare.FetchedDocument, u string) (*parsecompare.ArticleRecord, error) {
					panic("nil map write")
				},
			},
		}

		result, err := c.Compare(context.Background(), &parsecompare.FetchRequest{URL: pageURL})

		require.NoError(t, err)
		assert.True(t, result.URLDriven.Success)
		assert.False(t, result.DocumentDriven.Success)
		assert.Contains(t, result.DocumentDriven.ErrorMessage(), "nil map write")
	})

	t.Run("normalizes engine records", func(t *testing.T) {
		t.Parallel()

		c := &compare.Comparer{
			Fetcher: okFetcher(nil),
			URLEngine: &mock.URLEngine{
				ExtractURLFn: func(ctx context.Context, u string) (*parsecompare.ArticleRecord, error) {
					return &parsecompare.ArticleRecord{WordCount: -3}, nil
				},
			},
			DocumentEngine: okDocumentEngine(),
		}

		result, err := c.Compare(context.Background(), &parsecompare.FetchRequest{URL: pageURL})

		require.NoError(t, err)
		data := result.URLDriven.Data
		require.NotNil(t, data)
		assert.Equal(t, parsecompare.DefaultTitle, data.Title)
		assert.Equal(t, parsecompare.DefaultContent, data.Content)
		assert.Equal(t, parsecompare.DefaultAuthor, data.Author)
		assert.Equal(t, pageURL, data.URL)
		assert.Equal(t, 0, data.WordCount)
	})

	t.Run("nil record is reported as failure", func(t *testing.T) {
		t.Parallel()

		c := &compare.Comparer{
			Fetcher: okFetcher(nil),
			URLEngine: &mock.URLEngine{
				ExtractURLFn: func(ctx context.Context, u string) (*parsecompare.ArticleRecord, error) {
					return nil, nil
				},
			},
			DocumentEngine: okDocumentEngine(),
		}

		result, err := c.Compare(context.Background(), &parsecompare.FetchRequest{URL: pageURL})

		require.NoError(t, err)
		assert.False(t, result.URLDriven.Success)
		assert.NotEmpty(t, result.URLDriven.ErrorMessage())
	})

	t.Run("slow URL engine does not affect document engine outcome", func(t *testing.T) {
		t.Parallel()

		const delay = 150 * time.Millisecond
		var docFinished atomic.Int64
		start := time.Now()
		c := &compare.Comparer{
			Fetcher: okFetcher(nil),
			URLEngine: &mock.URLEngine{
				ExtractURLFn: func(ctx context.Context, u string) (*parsecompare.ArticleRecord, error) {
					time.Sleep(delay)
					return &parsecompare.ArticleRecord{Title: "Slow"}, nil
				},
			},
			DocumentEngine: &mock.DocumentEngine{
				ExtractDocumentFn: func(ctx context.Context, doc *parsecompare.FetchedDocument, u string) (*parsecompare.ArticleRecord, error) {
					docFinished.Store(int64(time.Since(start)))
					return &parsecompare.ArticleRecord{Title: "Fast"}, nil
				},
			},
		}

		result, err := c.Compare(context.Background(), &parsecompare.FetchRequest{URL: pageURL})
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Equal(t, "Fast", result.DocumentDriven.Data.Title)
		assert.Equal(t, "Slow", result.URLDriven.Data.Title)
		// The document engine ran concurrently and finished well before the
		// slow engine; the result waited for both.
		assert.Less(t, time.Duration(docFinished.Load()), delay)
		assert.GreaterOrEqual(t, elapsed, delay)
	})

	t.Run("rejects nil request", func(t *testing.T) {
		t.Parallel()

		c := &compare.Comparer{Fetcher: okFetcher(nil), URLEngine: okURLEngine(), DocumentEngine: okDocumentEngine()}

		_, err := c.Compare(context.Background(), nil)

		assert.Equal(t, parsecompare.EINVALID, parsecompare.ErrorCode(err))
	})
}
