// Package http provides the HTTP side of parsecompare: an implementation of
// parsecompare.Fetcher for retrieving pages and the Server exposing the
// comparison API.
package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/parsecompare"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxRedirects is the number of redirects followed before giving up.
const DefaultMaxRedirects = 5

// DefaultMaxBodySize caps a page, both as received and after decompression.
const DefaultMaxBodySize = 10 << 20

// DefaultUserAgent is sent when the request does not carry its own.
const DefaultUserAgent = "Mozilla/5.0 (compatible; Parser-Comparison/1.0)"

// Ensure Fetcher implements parsecompare.Fetcher at compile time.
var _ parsecompare.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using a single HTTP GET with a
// fixed header set. It does not execute JavaScript and never retries.
type Fetcher struct {
	client       *http.Client
	timeout      time.Duration
	maxRedirects int
	maxBodySize  int64
	userAgent    string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxRedirects sets how many redirects are followed.
// Defaults to DefaultMaxRedirects (5) if not specified.
func WithMaxRedirects(n int) Option {
	return func(f *Fetcher) {
		f.maxRedirects = n
	}
}

// WithMaxBodySize sets the largest page, in bytes, the fetcher accepts.
// Defaults to DefaultMaxBodySize (10 MiB) if not specified.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// WithUserAgent sets the User-Agent used when a request has none.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		maxRedirects: DefaultMaxRedirects,
		maxBodySize:  DefaultMaxBodySize,
		userAgent:    DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout:       f.timeout,
		CheckRedirect: f.checkRedirect,
	}

	return f
}

func (f *Fetcher) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) > f.maxRedirects {
		return fmt.Errorf("too many redirects (max %d)", f.maxRedirects)
	}
	return nil
}

// Fetch retrieves the page at req.URL and decodes it to a UTF-8 string.
func (f *Fetcher) Fetch(ctx context.Context, req *parsecompare.FetchRequest) (*parsecompare.FetchedDocument, error) {
	u, err := parsecompare.ParseAbsoluteURL(req.URL)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, parsecompare.Errorf(parsecompare.EFETCH, "unsupported URL scheme %q", u.Scheme)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, parsecompare.Errorf(parsecompare.EFETCH, "%v", err)
	}

	ua := req.UserAgent
	if ua == "" {
		ua = f.userAgent
	}
	pageOrigin := origin(u.Scheme, u.Hostname())
	httpReq.Header.Set("User-Agent", ua)
	httpReq.Header.Set("Origin", pageOrigin)
	httpReq.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	httpReq.Header.Set("Accept-Language", "en-US,en;q=0.5")
	httpReq.Header.Set("Accept-Encoding", "gzip, deflate")
	httpReq.Header.Set("DNT", "1")
	httpReq.Header.Set("Connection", "keep-alive")

	resp, err := f.client.Do(httpReq)
	if err != nil {
		return nil, parsecompare.Errorf(parsecompare.EFETCH, "%v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parsecompare.Errorf(parsecompare.EFETCH, "HTTP error! status: %d", resp.StatusCode)
	}

	body, err := readLimited(resp.Body, f.maxBodySize)
	if err != nil {
		return nil, parsecompare.Errorf(parsecompare.EFETCH, "read body: %v", err)
	}

	body, err = decodeContent(body, resp.Header.Get("Content-Encoding"), f.maxBodySize)
	if err != nil {
		return nil, parsecompare.Errorf(parsecompare.EFETCH, "decode %s body: %v", resp.Header.Get("Content-Encoding"), err)
	}

	text, err := toUTF8(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, parsecompare.Errorf(parsecompare.EFETCH, "decode charset: %v", err)
	}

	return &parsecompare.FetchedDocument{
		SourceURL: req.URL,
		HTML:      text,
		Origin:    pageOrigin,
	}, nil
}

func origin(scheme, hostname string) string {
	return scheme + "://" + hostname
}

// decodeContent undoes the Content-Encoding we asked for. Servers that ignore
// Accept-Encoding and send identity bodies are passed through unchanged.
func decodeContent(body []byte, encoding string, limit int64) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "identity":
		return body, nil
	case "gzip", "x-gzip":
		r, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return readLimited(r, limit)
	case "deflate":
		// "deflate" is zlib-wrapped per RFC 9110, but some servers send raw
		// DEFLATE streams.
		if r, err := zlib.NewReader(bytes.NewReader(body)); err == nil {
			defer r.Close()
			return readLimited(r, limit)
		}
		r := flate.NewReader(bytes.NewReader(body))
		defer r.Close()
		return readLimited(r, limit)
	default:
		return nil, errors.New("unsupported content encoding")
	}
}

// errBodyTooLarge is returned by readLimited when the input exceeds the limit.
var errBodyTooLarge = errors.New("page exceeds maximum size")

// readLimited reads r to the end, failing once more than limit bytes arrive.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, errBodyTooLarge
	}
	return b, nil
}

// toUTF8 transcodes body using the charset from contentType, falling back to
// <meta> declarations and content sniffing.
func toUTF8(body []byte, contentType string) (string, error) {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return "", err
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
