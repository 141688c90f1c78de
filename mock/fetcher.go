package mock

import (
	"context"

	"github.com/fwojciec/parsecompare"
)

var _ parsecompare.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of parsecompare.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, req *parsecompare.FetchRequest) (*parsecompare.FetchedDocument, error)
}

func (f *Fetcher) Fetch(ctx context.Context, req *parsecompare.FetchRequest) (*parsecompare.FetchedDocument, error) {
	return f.FetchFn(ctx, req)
}
