package quadrant

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSeries(t *testing.T) (HistoricalSeries, ProjectedSeries) {
	t.Helper()
	in := SampleEquity()
	hist, err := NewHistoricalSeries(in.Historical)
	require.NoError(t, err)
	proj, err := NewProjectedSeries(in.Projected)
	require.NoError(t, err)
	return hist, proj
}

func TestScoreDiscrepancy(t *testing.T) {
	tests := []struct {
		name       string
		future     float64
		historical float64
		kind       MetricKind
		want       int
	}{
		{"ratio above 20", 0.30, 0.05, MetricRatio, 4},
		{"ratio exactly 20 is not above 20", 0.20, 0, MetricRatio, 3},
		{"ratio 16", 0.16, 0, MetricRatio, 3},
		{"ratio 12", 0.12, 0, MetricRatio, 2},
		{"ratio 6", 0.06, 0, MetricRatio, 1},
		{"ratio negative", 0.0783, 0.0902, MetricRatio, 1},
		{"growth 12", 0.12, 0, MetricGrowth, 4},
		{"growth 6", 0.06, 0, MetricGrowth, 3},
		{"growth exactly 5", 0.05, 0, MetricGrowth, 2},
		{"growth 1", 0.01, 0, MetricGrowth, 2},
		{"growth unchanged", 0.10, 0.10, MetricGrowth, 1},
		{"ratio unchanged", 0.10, 0.10, MetricRatio, 1},
		{"growth decline", 0.03, 0.08, MetricGrowth, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreDiscrepancy(tt.future, tt.historical, tt.kind))
		})
	}
}

func TestScoreVsGDP(t *testing.T) {
	tests := []struct {
		name    string
		company float64
		gdp     float64
		want    int
	}{
		{"well above gdp", 0.13, 0.08, 4},
		{"slightly above gdp", 0.09, 0.08, 3},
		{"equal to gdp", 0.08, 0.08, 2},
		{"slightly below gdp", 0.07, 0.08, 2},
		{"far below gdp", 0.05, 0.08, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreVsGDP(tt.company, tt.gdp))
		})
	}
}

func TestScoreDiscrepancy_NaNFallsToLowestScore(t *testing.T) {
	assert.Equal(t, 1, ScoreDiscrepancy(math.NaN(), 0, MetricRatio))
	assert.Equal(t, 1, ScoreVsGDP(math.NaN(), 0.05))
}

func TestCalculator_ComponentScores(t *testing.T) {
	calc := NewCalculator(DefaultCalculatorConfig())
	hist, proj := sampleSeries(t)

	// historical ROA mean ~0.0902, projected ~0.0783, delta ~ -1.19
	assert.Equal(t, 1.0, calc.ROAScore(hist, proj))
	assert.Equal(t, 1.0, calc.EBITMarginScore(hist, proj))
	// revenue: -2.15 vs nominal GDP and -4.70 acceleration
	assert.Equal(t, 1.0, calc.SalesGrowthScore(hist, proj, 0.08))
	// net income: +1.06 vs real GDP (3) and +13.57 acceleration (4)
	assert.Equal(t, 3.5, calc.ProfitGrowthScore(hist, proj, 0.05))
	assert.Equal(t, 4.0, calc.OCFEBITScore(hist, proj))
	assert.Equal(t, 1.0, calc.EquityAssetScore(hist, proj))
	assert.Equal(t, 1.0, calc.CashAssetScore(hist, proj))
}

func TestCalculator_ValueCreationAndFinancialPower(t *testing.T) {
	calc := NewCalculator(DefaultCalculatorConfig())
	hist, proj := sampleSeries(t)

	vc := calc.ValueCreation(hist, proj, MacroAssumptions{NominalGDP: 0.08, RealGDP: 0.05})
	assert.Equal(t, VCScores{ROA: 1, EBITMargin: 1, SalesGrowth: 1, ProfitGrowth: 3.5}, vc)

	fp := calc.FinancialPower(hist, proj)
	assert.Equal(t, FPScores{OCFEBIT: 4, EquityAsset: 1, CashAsset: 1}, fp)
}

func TestCalculator_QualitativeScores(t *testing.T) {
	calc := NewCalculator(DefaultCalculatorConfig())

	q := calc.QualitativeScores(SampleEquity().VCS)

	assert.Equal(t, 3.5, q.Lifecycle)
	assert.InDelta(t, 3.0, q.Porter, 1e-9)
	assert.Equal(t, 3.0, q.Management)
	assert.InDelta(t, 10.0/3.0, q.ESG, 1e-9)
}

func TestCalculator_CalculateCompanyScore(t *testing.T) {
	calc := NewCalculator(DefaultCalculatorConfig())
	vcs := QualitativeInputs{Lifecycle: 3.5, Porter: 3.0, Management: 3.0, ESG: 10.0 / 3.0}
	vc := VCScores{ROA: 1, EBITMargin: 1, SalesGrowth: 1, ProfitGrowth: 3.5}
	fp := FPScores{OCFEBIT: 4, EquityAsset: 1, CashAsset: 1}

	result := calc.CalculateCompanyScore(vcs, vc, fp)

	assert.Equal(t, 2.47, result.CompanyScore)
	assert.Equal(t, 3.21, result.VCSScore)
	assert.Equal(t, 1.62, result.VCScore)
	assert.Equal(t, 2.0, result.FPScore)
	assert.Equal(t, 1.6, result.VCSWeighted)
	assert.Equal(t, 0.3, result.FPWeighted)
	assert.Equal(t, vcs, result.Breakdown.VCS)
	assert.Equal(t, vc, result.Breakdown.VC)
	assert.Equal(t, fp, result.Breakdown.FP)
}

func TestCalculator_CompanyScoreRoundingKeepsModerateStrength(t *testing.T) {
	calc := NewCalculator(DefaultCalculatorConfig())
	vcs := QualitativeInputs{Lifecycle: 3.39, Porter: 3.39, Management: 3.39, ESG: 3.39}
	vc := VCScores{ROA: 4, EBITMargin: 4, SalesGrowth: 4, ProfitGrowth: 4}
	fp := FPScores{OCFEBIT: 4, EquityAsset: 4, CashAsset: 4}

	result := calc.CalculateCompanyScore(vcs, vc, fp)
	assert.Equal(t, 3.69, result.CompanyScore)

	info := NewClassifier(DefaultThreshold).Classify(result.CompanyScore, 1.0)
	assert.Equal(t, QuadrantValue, info.Quadrant)
	assert.Equal(t, StrengthModerate, info.Position.Strength)
}

func TestCalculator_CompanyScoreUsesWeights(t *testing.T) {
	calc := NewCalculator(CalculatorConfig{
		CompanyWeights: CompanyWeights{VCS: 1, VC: 0, FP: 0},
		StockWeights:   StockWeights{Valuation: 1, Growth: 0},
	})

	result := calc.CalculateCompanyScore(
		QualitativeInputs{Lifecycle: 4, Porter: 4, Management: 4, ESG: 4},
		VCScores{ROA: 1, EBITMargin: 1, SalesGrowth: 1, ProfitGrowth: 1},
		FPScores{OCFEBIT: 1, EquityAsset: 1, CashAsset: 1},
	)

	assert.Equal(t, 4.0, result.CompanyScore)
	assert.Equal(t, 0.0, result.VCWeighted)
}

func TestCalculator_ValuationScore(t *testing.T) {
	calc := NewCalculator(DefaultCalculatorConfig())

	v := calc.ValuationScore(ValuationInputs{ModelTP: 3050, RelativeVal: 2882, CurrentPrice: 2210})

	assert.Equal(t, 4, v.Score)
	assert.Equal(t, 2966.0, v.BlendedTP)
	assert.Equal(t, 34.21, v.Upside)
	assert.Equal(t, 3050.0, v.ModelTP)
	assert.Equal(t, 2882.0, v.RelativeVal)
	assert.Equal(t, 2210.0, v.CurrentPrice)
}

func TestCalculator_ValuationScoreLadder(t *testing.T) {
	calc := NewCalculator(DefaultCalculatorConfig())

	tests := []struct {
		name    string
		target  float64
		current float64
		want    int
	}{
		{"upside 40%", 140, 100, 4},
		{"upside 20%", 120, 100, 3},
		{"upside 10%", 110, 100, 2},
		{"no upside", 100, 100, 1},
		{"downside", 80, 100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := calc.ValuationScore(ValuationInputs{ModelTP: tt.target, RelativeVal: tt.target, CurrentPrice: tt.current})
			assert.Equal(t, tt.want, v.Score)
		})
	}
}

func TestCalculator_GrowthScore(t *testing.T) {
	calc := NewCalculator(DefaultCalculatorConfig())

	g := calc.GrowthScore(GrowthInputs{RevenueGrowth: 0.144, EBITGrowth: 0.166, NPGrowth: 0.166})

	assert.Equal(t, 2.0, g.Score)
	assert.Equal(t, 2, g.RevenueScore)
	assert.Equal(t, 2, g.EBITScore)
	assert.Equal(t, 2, g.NPScore)
	assert.Equal(t, 14.4, g.RevenueGrowth)
	assert.Equal(t, 16.6, g.EBITGrowth)
	assert.Equal(t, 16.6, g.NPGrowth)
}

func TestCalculator_GrowthScoreMixed(t *testing.T) {
	calc := NewCalculator(DefaultCalculatorConfig())

	g := calc.GrowthScore(GrowthInputs{RevenueGrowth: 0.60, EBITGrowth: 0.30, NPGrowth: 0.01})

	assert.Equal(t, 4, g.RevenueScore)
	assert.Equal(t, 3, g.EBITScore)
	assert.Equal(t, 1, g.NPScore)
	assert.Equal(t, 2.67, g.Score)
}

func TestCalculator_CalculateStockScore(t *testing.T) {
	calc := NewCalculator(DefaultCalculatorConfig())

	ss := calc.CalculateStockScore(
		ValuationInputs{ModelTP: 3050, RelativeVal: 2882, CurrentPrice: 2210},
		GrowthInputs{RevenueGrowth: 0.144, EBITGrowth: 0.166, NPGrowth: 0.166},
	)

	assert.Equal(t, 3.3, ss.StockScore)
	assert.Equal(t, 4.0, ss.ValuationScore)
	assert.Equal(t, 2.0, ss.GrowthScore)
	assert.Equal(t, 2.6, ss.ValuationWeighted)
	assert.Equal(t, 0.7, ss.GrowthWeighted)
	assert.Equal(t, 2966.0, ss.BlendedTP)
	assert.Equal(t, 34.21, ss.Upside)
	assert.Equal(t, 4, ss.Breakdown.Valuation.Score)
	assert.Equal(t, 2.0, ss.Breakdown.Growth.Score)
}

func TestCalculator_ScoresStayInRange(t *testing.T) {
	calc := NewCalculator(DefaultCalculatorConfig())

	for _, lo := range []float64{1, 2.5, 4} {
		for _, upside := range []float64{-0.5, 0.1, 0.2, 0.5} {
			for _, growth := range []float64{-0.1, 0.1, 0.3, 0.9} {
				cs := calc.CalculateCompanyScore(
					QualitativeInputs{Lifecycle: lo, Porter: lo, Management: lo, ESG: lo},
					VCScores{ROA: lo, EBITMargin: lo, SalesGrowth: lo, ProfitGrowth: lo},
					FPScores{OCFEBIT: lo, EquityAsset: lo, CashAsset: lo},
				)
				ss := calc.CalculateStockScore(
					ValuationInputs{ModelTP: 100 * (1 + upside), RelativeVal: 100 * (1 + upside), CurrentPrice: 100},
					GrowthInputs{RevenueGrowth: growth, EBITGrowth: growth, NPGrowth: growth},
				)

				for _, v := range []float64{cs.CompanyScore, cs.VCSScore, cs.VCScore, cs.FPScore, ss.StockScore, ss.ValuationScore, ss.GrowthScore} {
					assert.GreaterOrEqual(t, v, 1.0)
					assert.LessOrEqual(t, v, 4.0)
				}
				assert.Equal(t, round2(ss.ValuationScore*0.65+ss.GrowthScore*0.35), ss.StockScore)
			}
		}
	}
}

func TestNewSeries_WrongPeriodCount(t *testing.T) {
	periods := SampleEquity().Projected

	_, err := NewHistoricalSeries(periods)
	assert.ErrorIs(t, err, ErrWrongPeriodCount)

	_, err = NewProjectedSeries(periods[:2])
	assert.ErrorIs(t, err, ErrWrongPeriodCount)

	proj, err := NewProjectedSeries(periods)
	require.NoError(t, err)
	assert.Equal(t, periods[2], proj[2])
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 2.47, round2(2.4729166666666664))
	assert.Equal(t, 1.62, round2(1.625))
	assert.Equal(t, 1.88, round2(1.875))
	assert.Equal(t, 2.67, round2(2.675))
	assert.Equal(t, 3.69, round2(3.695))
	assert.Equal(t, -1.19, round2(-1.1885084594971729))
	assert.True(t, math.IsNaN(round2(math.NaN())))
	assert.True(t, math.IsInf(round2(math.Inf(1)), 1))
}

func TestCalculator_ScoringRules(t *testing.T) {
	calc := NewCalculator(DefaultCalculatorConfig())

	rules := calc.ScoringRules()

	require.NotEmpty(t, rules.VC)
	roa := rules.VC[0]
	assert.Equal(t, "ROA Discrepancy", roa.Metric)
	assert.Equal(t, []RuleBand{
		{Score: 4, Condition: "> 20 bps"},
		{Score: 3, Condition: "15 bps to 20 bps"},
		{Score: 2, Condition: "10 bps to 15 bps"},
		{Score: 1, Condition: "<= 10 bps"},
	}, roa.Bands)

	require.Len(t, rules.SS, 2)
	assert.Equal(t, "> 30%", rules.SS[0].Bands[0].Condition)
	assert.Equal(t, "5% to 25%", rules.SS[1].Bands[2].Condition)
	assert.Len(t, rules.FP, 3)
}
