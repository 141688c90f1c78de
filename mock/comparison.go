package mock

import (
	"context"

	"github.com/fwojciec/parsecompare"
)

var _ parsecompare.ComparisonService = (*ComparisonService)(nil)

// ComparisonService is a mock implementation of parsecompare.ComparisonService.
type ComparisonService struct {
	CompareFn func(ctx context.Context, req *parsecompare.FetchRequest) (*parsecompare.ComparisonResult, error)
}

func (s *ComparisonService) Compare(ctx context.Context, req *parsecompare.FetchRequest) (*parsecompare.ComparisonResult, error) {
	return s.CompareFn(ctx, req)
}
