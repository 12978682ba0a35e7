package quadrant

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AnalyzerConfig holds the weights and threshold for a full analysis
type AnalyzerConfig struct {
	Calculator CalculatorConfig `json:"calculator" yaml:"calculator"`
	Threshold  float64          `json:"threshold" yaml:"threshold"`
}

// DefaultAnalyzerConfig returns the standard weights and a 3.0 threshold
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		Calculator: DefaultCalculatorConfig(),
		Threshold:  DefaultThreshold,
	}
}

// Analyzer runs equities through scoring, classification and recommendation
type Analyzer struct {
	config     AnalyzerConfig
	calculator *Calculator
	classifier *Classifier
}

// NewAnalyzer creates a new quadrant analyzer
func NewAnalyzer(config AnalyzerConfig) *Analyzer {
	return &Analyzer{
		config:     config,
		calculator: NewCalculator(config.Calculator),
		classifier: NewClassifier(config.Threshold),
	}
}

// Calculator exposes the analyzer's calculator
func (a *Analyzer) Calculator() *Calculator {
	return a.calculator
}

// Classifier exposes the analyzer's classifier
func (a *Analyzer) Classifier() *Classifier {
	return a.classifier
}

// Analyze validates one equity and computes its scores, quadrant and recommendation
func (a *Analyzer) Analyze(ctx context.Context, input EquityInput) (*Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	hist, err := NewHistoricalSeries(input.Historical)
	if err != nil {
		return nil, err
	}
	proj, err := NewProjectedSeries(input.Projected)
	if err != nil {
		return nil, err
	}

	calc := a.calculator
	companyScore := calc.CalculateCompanyScore(
		calc.QualitativeScores(input.VCS),
		calc.ValueCreation(hist, proj, input.Macro),
		calc.FinancialPower(hist, proj),
	)
	stockScore := calc.CalculateStockScore(input.Valuation, input.Growth)

	info := a.classifier.Classify(companyScore.CompanyScore, stockScore.StockScore)
	rec := a.classifier.Recommend(info, stockScore.BlendedTP, currentPrice(input))

	return &Analysis{
		ID:             uuid.NewString(),
		AnalysisDate:   time.Now(),
		Company:        input.Company,
		CompanyScore:   companyScore,
		StockScore:     stockScore,
		Quadrant:       info,
		Recommendation: rec,
	}, nil
}

// currentPrice prefers the quoted company price and falls back to the valuation price
func currentPrice(input EquityInput) float64 {
	if input.Company.CurrentPrice > 0 {
		return input.Company.CurrentPrice
	}
	return input.Valuation.CurrentPrice
}

// Compare analyzes every equity and ranks the results. One invalid input fails the batch.
func (a *Analyzer) Compare(ctx context.Context, inputs []EquityInput) (*ComparisonResult, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: no equities to compare", ErrInvalidInput)
	}

	analyses := make([]Analysis, 0, len(inputs))
	entries := make([]StockEntry, 0, len(inputs))
	for i, input := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		analysis, err := a.Analyze(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("equity %d (%s): %w", i, input.Company.Ticker, err)
		}

		analyses = append(analyses, *analysis)
		entries = append(entries, StockEntry{
			Ticker:       analysis.Company.Ticker,
			CompanyScore: analysis.CompanyScore.CompanyScore,
			StockScore:   analysis.StockScore.StockScore,
			TargetPrice:  analysis.Recommendation.TargetPrice,
			CurrentPrice: analysis.Recommendation.CurrentPrice,
		})
	}

	return &ComparisonResult{
		ID:            uuid.NewString(),
		AnalysisDate:  time.Now(),
		TotalAnalyzed: len(analyses),
		Threshold:     a.classifier.Threshold(),
		Analyses:      analyses,
		Ranking:       a.classifier.CompareStocks(entries),
	}, nil
}

// Classify places precomputed scores into a quadrant and prices a recommendation
func (a *Analyzer) Classify(ctx context.Context, req ClassifyRequest) (*Classification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	info := a.classifier.Classify(req.CompanyScore, req.StockScore)
	return &Classification{
		Quadrant:       info,
		Recommendation: a.classifier.Recommend(info, req.TargetPrice, req.CurrentPrice),
	}, nil
}

// Rank classifies and orders precomputed score entries
func (a *Analyzer) Rank(ctx context.Context, entries []StockEntry) ([]RankedStock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no stocks to rank", ErrInvalidInput)
	}
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("stock %d (%s): %w", i, e.Ticker, err)
		}
	}
	return a.classifier.CompareStocks(entries), nil
}
