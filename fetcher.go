package parsecompare

import (
	"context"
	"net/url"
	"strings"
)

// FetchRequest describes a single page to compare.
type FetchRequest struct {
	URL       string `json:"url"`
	UserAgent string `json:"userAgent,omitempty"`
}

// Validate returns an EINVALID error unless URL is an absolute URI. Only an
// absent URL is "required"; a blank one is invalid.
func (r *FetchRequest) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "URL is required")
	}
	if _, err := ParseAbsoluteURL(r.URL); err != nil {
		return err
	}
	return nil
}

// ParseAbsoluteURL parses rawURL and requires both a scheme and a host.
func ParseAbsoluteURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil, Errorf(EINVALID, "Invalid URL provided")
	}
	return u, nil
}

// FetchedDocument is the raw HTML of a page retrieved by a Fetcher.
// It is never modified after the fetch that produced it.
type FetchedDocument struct {
	SourceURL string
	HTML      string

	// Origin is scheme://hostname of SourceURL.
	Origin string
}

// Fetcher retrieves raw HTML for a page.
type Fetcher interface {
	// Fetch performs exactly one outbound request for req.URL.
	// Returns EFETCH on network failure, timeout or non-2xx status.
	Fetch(ctx context.Context, req *FetchRequest) (*FetchedDocument, error)
}
