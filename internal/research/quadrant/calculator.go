package quadrant

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// MetricKind selects the discrepancy ladder used for a metric
type MetricKind int

const (
	// MetricRatio scores level ratios such as ROA or Cash/Assets
	MetricRatio MetricKind = iota
	// MetricGrowth scores growth rates and margins
	MetricGrowth
)

func (k MetricKind) String() string {
	if k == MetricGrowth {
		return "growth"
	}
	return "ratio"
}

// band maps values strictly above a bound to a score
type band struct {
	above float64
	score int
}

// ladder is a descending list of bands; values at or below the last bound score 1
type ladder []band

func (l ladder) score(v float64) int {
	for _, b := range l {
		if v > b.above {
			return b.score
		}
	}
	return 1
}

var (
	// deltas are (future - historical) * 100
	ratioLadder  = ladder{{20, 4}, {15, 3}, {10, 2}}
	growthLadder = ladder{{10, 4}, {5, 3}, {0, 2}}
	gdpLadder    = ladder{{4, 4}, {0, 3}, {-2, 2}}

	// fractional inputs
	upsideLadder     = ladder{{0.30, 4}, {0.15, 3}, {0, 2}}
	growthRateLadder = ladder{{0.50, 4}, {0.25, 3}, {0.05, 2}}
)

// CompanyWeights blends the three Company Score categories
type CompanyWeights struct {
	VCS float64 `json:"vcs" yaml:"vcs"`
	VC  float64 `json:"vc" yaml:"vc"`
	FP  float64 `json:"fp" yaml:"fp"`
}

// Sum returns the total of all weights
func (w CompanyWeights) Sum() float64 {
	return w.VCS + w.VC + w.FP
}

// StockWeights blends the two Stock Score categories
type StockWeights struct {
	Valuation float64 `json:"valuation" yaml:"valuation"`
	Growth    float64 `json:"growth" yaml:"growth"`
}

// Sum returns the total of all weights
func (w StockWeights) Sum() float64 {
	return w.Valuation + w.Growth
}

// CalculatorConfig holds the immutable weights used by a Calculator
type CalculatorConfig struct {
	CompanyWeights CompanyWeights `json:"company_weights" yaml:"company_weights"`
	StockWeights   StockWeights   `json:"stock_weights" yaml:"stock_weights"`
}

// DefaultCalculatorConfig returns the standard 50/35/15 and 65/35 weights
func DefaultCalculatorConfig() CalculatorConfig {
	return CalculatorConfig{
		CompanyWeights: CompanyWeights{VCS: 0.50, VC: 0.35, FP: 0.15},
		StockWeights:   StockWeights{Valuation: 0.65, Growth: 0.35},
	}
}

// Calculator turns raw financial and qualitative inputs into Company and Stock scores.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	config CalculatorConfig
}

// NewCalculator creates a calculator with the given weights
func NewCalculator(config CalculatorConfig) *Calculator {
	return &Calculator{
		config: config,
	}
}

// Config returns the weights the calculator was built with
func (c *Calculator) Config() CalculatorConfig {
	return c.config
}

// ScoreDiscrepancy scores the gap between a projected and a historical average.
// The gap is multiplied by 100 before it is compared against the ladder for kind.
func ScoreDiscrepancy(futureAvg, historicalAvg float64, kind MetricKind) int {
	delta := (futureAvg - historicalAvg) * 100
	if kind == MetricGrowth {
		return growthLadder.score(delta)
	}
	return ratioLadder.score(delta)
}

// ScoreVsGDP scores company growth against a GDP growth benchmark
func ScoreVsGDP(companyGrowth, gdpGrowth float64) int {
	return gdpLadder.score((companyGrowth - gdpGrowth) * 100)
}

// Score is the mean of the five competitive forces
func (p PorterForces) Score() float64 {
	return stat.Mean([]float64{p.Suppliers, p.EntryBarrier, p.Rivalry, p.Substitution, p.Buyers}, nil)
}

// Score is the mean of environment, social and governance
func (e ESGInputs) Score() float64 {
	return stat.Mean([]float64{e.Environment, e.Social, e.Governance}, nil)
}

// PorterScore returns the Porter's Five Forces composite
func (c *Calculator) PorterScore(forces PorterForces) float64 {
	return forces.Score()
}

// ESGScore returns the ESG composite
func (c *Calculator) ESGScore(esg ESGInputs) float64 {
	return esg.Score()
}

// QualitativeScores collapses the questionnaire into the four VCS sub-scores
func (c *Calculator) QualitativeScores(in VCSInputs) QualitativeInputs {
	return QualitativeInputs{
		Lifecycle:  in.Lifecycle,
		Porter:     c.PorterScore(in.Porter),
		Management: in.Management,
		ESG:        c.ESGScore(in.ESG),
	}
}

func roa(p PeriodFinancials) float64 { return p.NetIncome / p.TotalAssets }
func ebitMargin(p PeriodFinancials) float64 { return p.EBIT / p.Revenue }
func ocfToEBIT(p PeriodFinancials) float64 { return p.OCF / p.EBIT }
func equityToAsset(p PeriodFinancials) float64 { return p.Equity / p.TotalAssets }
func cashToAsset(p PeriodFinancials) float64 { return p.Cash / p.TotalAssets }
func revenue(p PeriodFinancials) float64 { return p.Revenue }
func netIncome(p PeriodFinancials) float64 { return p.NetIncome }

// meanOf averages f over periods
func meanOf(periods []PeriodFinancials, f func(PeriodFinancials) float64) float64 {
	xs := make([]float64, len(periods))
	for i, p := range periods {
		xs[i] = f(p)
	}
	return stat.Mean(xs, nil)
}

// growthRates returns the year-over-year growth of f between consecutive periods
func growthRates(periods []PeriodFinancials, f func(PeriodFinancials) float64) []float64 {
	rates := make([]float64, 0, len(periods)-1)
	for i := 1; i < len(periods); i++ {
		rates = append(rates, f(periods[i])/f(periods[i-1])-1)
	}
	return rates
}

func (c *Calculator) ratioScore(hist HistoricalSeries, proj ProjectedSeries, f func(PeriodFinancials) float64, kind MetricKind) float64 {
	return float64(ScoreDiscrepancy(meanOf(proj[:], f), meanOf(hist[:], f), kind))
}

// growthVsBenchmark averages the vs-GDP score and the acceleration score for f
func (c *Calculator) growthVsBenchmark(hist HistoricalSeries, proj ProjectedSeries, f func(PeriodFinancials) float64, gdp float64) float64 {
	projAvg := stat.Mean(growthRates(proj[:], f), nil)
	histAvg := stat.Mean(growthRates(hist[:], f), nil)

	vsGDP := ScoreVsGDP(projAvg, gdp)
	accel := ScoreDiscrepancy(projAvg, histAvg, MetricGrowth)
	return stat.Mean([]float64{float64(vsGDP), float64(accel)}, nil)
}

// ROAScore scores projected vs historical return on assets
func (c *Calculator) ROAScore(hist HistoricalSeries, proj ProjectedSeries) float64 {
	return c.ratioScore(hist, proj, roa, MetricRatio)
}

// EBITMarginScore scores projected vs historical EBIT margin on the growth ladder
func (c *Calculator) EBITMarginScore(hist HistoricalSeries, proj ProjectedSeries) float64 {
	return c.ratioScore(hist, proj, ebitMargin, MetricGrowth)
}

// SalesGrowthScore scores projected revenue growth against nominal GDP and against its own history
func (c *Calculator) SalesGrowthScore(hist HistoricalSeries, proj ProjectedSeries, nominalGDP float64) float64 {
	return c.growthVsBenchmark(hist, proj, revenue, nominalGDP)
}

// ProfitGrowthScore scores projected net income growth against real GDP and against its own history
func (c *Calculator) ProfitGrowthScore(hist HistoricalSeries, proj ProjectedSeries, realGDP float64) float64 {
	return c.growthVsBenchmark(hist, proj, netIncome, realGDP)
}

// OCFEBITScore scores the cash conversion of EBIT
func (c *Calculator) OCFEBITScore(hist HistoricalSeries, proj ProjectedSeries) float64 {
	return c.ratioScore(hist, proj, ocfToEBIT, MetricRatio)
}

// EquityAssetScore scores equity funding of the balance sheet
func (c *Calculator) EquityAssetScore(hist HistoricalSeries, proj ProjectedSeries) float64 {
	return c.ratioScore(hist, proj, equityToAsset, MetricRatio)
}

// CashAssetScore scores cash holdings relative to total assets
func (c *Calculator) CashAssetScore(hist HistoricalSeries, proj ProjectedSeries) float64 {
	return c.ratioScore(hist, proj, cashToAsset, MetricRatio)
}

// ValueCreation computes the four Value Creation component scores
func (c *Calculator) ValueCreation(hist HistoricalSeries, proj ProjectedSeries, macro MacroAssumptions) VCScores {
	return VCScores{
		ROA:          c.ROAScore(hist, proj),
		EBITMargin:   c.EBITMarginScore(hist, proj),
		SalesGrowth:  c.SalesGrowthScore(hist, proj, macro.NominalGDP),
		ProfitGrowth: c.ProfitGrowthScore(hist, proj, macro.RealGDP),
	}
}

// FinancialPower computes the three Financial Power component scores
func (c *Calculator) FinancialPower(hist HistoricalSeries, proj ProjectedSeries) FPScores {
	return FPScores{
		OCFEBIT:     c.OCFEBITScore(hist, proj),
		EquityAsset: c.EquityAssetScore(hist, proj),
		CashAsset:   c.CashAssetScore(hist, proj),
	}
}

// CalculateCompanyScore blends VCS, VC and FP into the Company Score.
// Weighting uses the unrounded sub-scores; every reported figure is rounded to 2 decimals.
func (c *Calculator) CalculateCompanyScore(vcs QualitativeInputs, vc VCScores, fp FPScores) CompanyScoreResult {
	w := c.config.CompanyWeights

	vcsScore := stat.Mean([]float64{vcs.Lifecycle, vcs.Porter, vcs.Management, vcs.ESG}, nil)
	vcScore := stat.Mean([]float64{vc.ROA, vc.EBITMargin, vc.SalesGrowth, vc.ProfitGrowth}, nil)
	fpScore := stat.Mean([]float64{fp.OCFEBIT, fp.EquityAsset, fp.CashAsset}, nil)

	companyScore := vcsScore*w.VCS + vcScore*w.VC + fpScore*w.FP

	return CompanyScoreResult{
		CompanyScore: round2(companyScore),
		VCSScore:     round2(vcsScore),
		VCScore:      round2(vcScore),
		FPScore:      round2(fpScore),
		VCSWeighted:  round2(vcsScore * w.VCS),
		VCWeighted:   round2(vcScore * w.VC),
		FPWeighted:   round2(fpScore * w.FP),
		Breakdown: CompanyBreakdown{
			VCS: vcs,
			VC:  vc,
			FP:  fp,
		},
	}
}

// ValuationScore scores the upside of the blended target price over the current price
func (c *Calculator) ValuationScore(in ValuationInputs) ValuationBreakdown {
	blendedTP := (in.ModelTP + in.RelativeVal) / 2
	upside := (blendedTP - in.CurrentPrice) / in.CurrentPrice

	return ValuationBreakdown{
		Score:        upsideLadder.score(upside),
		BlendedTP:    round2(blendedTP),
		Upside:       round2(upside * 100),
		ModelTP:      in.ModelTP,
		RelativeVal:  in.RelativeVal,
		CurrentPrice: in.CurrentPrice,
	}
}

// GrowthScore scores each forward growth rate and averages them
func (c *Calculator) GrowthScore(in GrowthInputs) GrowthBreakdown {
	revenueScore := growthRateLadder.score(in.RevenueGrowth)
	ebitScore := growthRateLadder.score(in.EBITGrowth)
	npScore := growthRateLadder.score(in.NPGrowth)

	avg := stat.Mean([]float64{float64(revenueScore), float64(ebitScore), float64(npScore)}, nil)

	return GrowthBreakdown{
		Score:         round2(avg),
		RevenueScore:  revenueScore,
		EBITScore:     ebitScore,
		NPScore:       npScore,
		RevenueGrowth: round2(in.RevenueGrowth * 100),
		EBITGrowth:    round2(in.EBITGrowth * 100),
		NPGrowth:      round2(in.NPGrowth * 100),
	}
}

// CalculateStockScore blends valuation and growth into the Stock Score
func (c *Calculator) CalculateStockScore(valuation ValuationInputs, growth GrowthInputs) StockScoreResult {
	w := c.config.StockWeights

	v := c.ValuationScore(valuation)
	g := c.GrowthScore(growth)

	valuationScore := float64(v.Score)
	stockScore := valuationScore*w.Valuation + g.Score*w.Growth

	return StockScoreResult{
		StockScore:        round2(stockScore),
		ValuationScore:    valuationScore,
		GrowthScore:       g.Score,
		ValuationWeighted: round2(valuationScore * w.Valuation),
		GrowthWeighted:    round2(g.Score * w.Growth),
		BlendedTP:         v.BlendedTP,
		Upside:            v.Upside,
		Breakdown: StockBreakdown{
			Valuation: v,
			Growth:    g,
		},
	}
}

// round2 rounds the exact binary value to 2 decimals, ties to even. NaN and Inf pass through.
func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}
