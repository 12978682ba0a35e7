package quadrantobs

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"quadrant-analyzer/internal/interfaces"
	"quadrant-analyzer/internal/logger"
	"quadrant-analyzer/internal/research/quadrant"
	"quadrant-analyzer/internal/trace"
)

// observableAnalyzer wraps QuadrantAnalyzer with logging and tracing
type observableAnalyzer struct {
	inner interfaces.QuadrantAnalyzer
}

// Wrap wraps a QuadrantAnalyzer with observability middleware
func Wrap(analyzer interfaces.QuadrantAnalyzer) interfaces.QuadrantAnalyzer {
	return &observableAnalyzer{inner: analyzer}
}

func fail(ctx context.Context, span oteltrace.Span, msg string, err error, start time.Time, fields ...any) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	logger.ErrorWithErr(ctx, msg, err, append(fields, "duration_ms", time.Since(start).Milliseconds())...)
}

// Analyze wraps the Analyze method with logging and tracing
func (o *observableAnalyzer) Analyze(ctx context.Context, input quadrant.EquityInput) (*quadrant.Analysis, error) {
	ctx, span := trace.StartSpan(ctx, "quadrant.Analyze")
	defer span.End()

	ticker := input.Company.Ticker
	span.SetAttributes(attribute.String("ticker", ticker))
	logger.Debug(ctx, "Starting quadrant analysis", "ticker", ticker)
	start := time.Now()

	analysis, err := o.inner.Analyze(ctx, input)
	if err != nil {
		fail(ctx, span, "Quadrant analysis failed", err, start, "ticker", ticker)
		return nil, err
	}

	span.SetAttributes(
		attribute.Float64("company_score", analysis.CompanyScore.CompanyScore),
		attribute.Float64("stock_score", analysis.StockScore.StockScore),
		attribute.String("quadrant", analysis.Quadrant.Quadrant.String()),
	)
	logger.Classification(ctx, ticker,
		analysis.Quadrant.Quadrant.String(),
		string(analysis.Recommendation.Rating),
		analysis.CompanyScore.CompanyScore,
		analysis.StockScore.StockScore,
		"strength", string(analysis.Quadrant.Position.Strength),
		"upside", analysis.Recommendation.Upside,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return analysis, nil
}

// Compare wraps the Compare method with logging and tracing
func (o *observableAnalyzer) Compare(ctx context.Context, inputs []quadrant.EquityInput) (*quadrant.ComparisonResult, error) {
	ctx, span := trace.StartSpan(ctx, "quadrant.Compare")
	defer span.End()

	span.SetAttributes(attribute.Int("equity_count", len(inputs)))
	logger.Info(ctx, "Starting quadrant comparison", "equity_count", len(inputs))
	start := time.Now()

	result, err := o.inner.Compare(ctx, inputs)
	if err != nil {
		fail(ctx, span, "Quadrant comparison failed", err, start, "equity_count", len(inputs))
		return nil, err
	}

	fields := []any{
		"comparison_id", result.ID,
		"total_analyzed", result.TotalAnalyzed,
		"duration_ms", time.Since(start).Milliseconds(),
	}
	if len(result.Ranking) > 0 {
		top := result.Ranking[0]
		fields = append(fields, "top_pick", top.Ticker, "top_pick_quadrant", top.Quadrant.String())
		span.SetAttributes(attribute.String("top_pick", top.Ticker))
	}
	logger.Info(ctx, "Quadrant comparison completed", fields...)

	return result, nil
}

// Classify wraps the Classify method with logging and tracing
func (o *observableAnalyzer) Classify(ctx context.Context, req quadrant.ClassifyRequest) (*quadrant.Classification, error) {
	ctx, span := trace.StartSpan(ctx, "quadrant.Classify")
	defer span.End()

	start := time.Now()
	result, err := o.inner.Classify(ctx, req)
	if err != nil {
		fail(ctx, span, "Quadrant classification failed", err, start,
			"company_score", req.CompanyScore, "stock_score", req.StockScore)
		return nil, err
	}

	logger.Classification(ctx, req.Ticker,
		result.Quadrant.Quadrant.String(),
		string(result.Recommendation.Rating),
		req.CompanyScore,
		req.StockScore,
	)
	return result, nil
}

// Rank wraps the Rank method with logging and tracing
func (o *observableAnalyzer) Rank(ctx context.Context, entries []quadrant.StockEntry) ([]quadrant.RankedStock, error) {
	ctx, span := trace.StartSpan(ctx, "quadrant.Rank")
	defer span.End()

	span.SetAttributes(attribute.Int("stock_count", len(entries)))
	start := time.Now()

	ranked, err := o.inner.Rank(ctx, entries)
	if err != nil {
		fail(ctx, span, "Stock ranking failed", err, start, "stock_count", len(entries))
		return nil, err
	}

	logger.Debug(ctx, "Stocks ranked", "stock_count", len(ranked), "duration_ms", time.Since(start).Milliseconds())
	return ranked, nil
}
