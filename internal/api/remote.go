package api

import (
	"context"

	"quadrant-analyzer/internal/interfaces"
	"quadrant-analyzer/internal/research/quadrant"
)

var _ interfaces.QuadrantAnalyzer = (*RemoteAnalyzer)(nil)

// RemoteAnalyzer runs analyses against a quadrant API server
type RemoteAnalyzer struct {
	client *Client
}

// NewRemoteAnalyzer creates an analyzer backed by client
func NewRemoteAnalyzer(client *Client) *RemoteAnalyzer {
	return &RemoteAnalyzer{client: client}
}

func (r *RemoteAnalyzer) Analyze(ctx context.Context, input quadrant.EquityInput) (*quadrant.Analysis, error) {
	var out quadrant.Analysis
	if err := r.client.POST(ctx, "/api/quadrant/analyze", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *RemoteAnalyzer) Compare(ctx context.Context, inputs []quadrant.EquityInput) (*quadrant.ComparisonResult, error) {
	body := struct {
		Equities []quadrant.EquityInput `json:"equities"`
	}{inputs}

	var out quadrant.ComparisonResult
	if err := r.client.POST(ctx, "/api/quadrant/compare", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *RemoteAnalyzer) Classify(ctx context.Context, req quadrant.ClassifyRequest) (*quadrant.Classification, error) {
	var out quadrant.Classification
	if err := r.client.POST(ctx, "/api/quadrant/classify", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *RemoteAnalyzer) Rank(ctx context.Context, entries []quadrant.StockEntry) ([]quadrant.RankedStock, error) {
	body := struct {
		Stocks []quadrant.StockEntry `json:"stocks"`
	}{entries}

	var out []quadrant.RankedStock
	if err := r.client.POST(ctx, "/api/quadrant/rank", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Rules fetches the server's scoring reference table
func (r *RemoteAnalyzer) Rules(ctx context.Context) (quadrant.ScoringRules, error) {
	var out quadrant.ScoringRules
	err := r.client.GET(ctx, "/api/quadrant/rules", &out)
	return out, err
}

// Matrix fetches the server's quadrant matrix layout
func (r *RemoteAnalyzer) Matrix(ctx context.Context) (quadrant.MatrixLayout, error) {
	var out quadrant.MatrixLayout
	err := r.client.GET(ctx, "/api/quadrant/matrix", &out)
	return out, err
}

// Health checks that the server is reachable
func (r *RemoteAnalyzer) Health(ctx context.Context) error {
	return r.client.GET(ctx, "/health", nil)
}
