package interfaces

import (
	"context"

	"quadrant-analyzer/internal/research/quadrant"
)

// QuadrantAnalyzer scores equities and places them in the CS x SS quadrant matrix
type QuadrantAnalyzer interface {
	// Analyze runs the full scoring pipeline for one equity
	Analyze(ctx context.Context, input quadrant.EquityInput) (*quadrant.Analysis, error)

	// Compare analyzes a batch of equities and ranks them
	Compare(ctx context.Context, inputs []quadrant.EquityInput) (*quadrant.ComparisonResult, error)

	// Classify places precomputed scores into a quadrant with a recommendation
	Classify(ctx context.Context, req quadrant.ClassifyRequest) (*quadrant.Classification, error)

	// Rank orders precomputed score entries by quadrant priority and upside
	Rank(ctx context.Context, entries []quadrant.StockEntry) ([]quadrant.RankedStock, error)
}
