package quadrant

import (
	"fmt"
	"time"
)

// PeriodFinancials holds one fiscal period's figures, all in the same currency unit
type PeriodFinancials struct {
	Revenue     float64 `json:"revenue" yaml:"revenue" validate:"gt=0"`
	EBIT        float64 `json:"ebit" yaml:"ebit" validate:"gt=0"`
	NetIncome   float64 `json:"net_income" yaml:"net_income" validate:"ne=0"`
	OCF         float64 `json:"ocf" yaml:"ocf"`
	TotalAssets float64 `json:"total_assets" yaml:"total_assets" validate:"gt=0"`
	Equity      float64 `json:"equity" yaml:"equity"`
	Cash        float64 `json:"cash" yaml:"cash" validate:"gte=0"`
}

// HistoricalSeries is exactly two consecutive reported periods, oldest first
type HistoricalSeries [2]PeriodFinancials

// ProjectedSeries is exactly three consecutive projected periods following the historical series
type ProjectedSeries [3]PeriodFinancials

// NewHistoricalSeries converts a slice of periods into a HistoricalSeries
func NewHistoricalSeries(periods []PeriodFinancials) (HistoricalSeries, error) {
	var s HistoricalSeries
	if len(periods) != len(s) {
		return s, fmt.Errorf("%w: historical series needs %d periods, got %d", ErrWrongPeriodCount, len(s), len(periods))
	}
	copy(s[:], periods)
	return s, nil
}

// NewProjectedSeries converts a slice of periods into a ProjectedSeries
func NewProjectedSeries(periods []PeriodFinancials) (ProjectedSeries, error) {
	var s ProjectedSeries
	if len(periods) != len(s) {
		return s, fmt.Errorf("%w: projected series needs %d periods, got %d", ErrWrongPeriodCount, len(s), len(periods))
	}
	copy(s[:], periods)
	return s, nil
}

// PorterForces are the five independently scored competitive forces (1-4 each)
type PorterForces struct {
	Suppliers    float64 `json:"suppliers" yaml:"suppliers" validate:"min=1,max=4"`
	EntryBarrier float64 `json:"entry_barrier" yaml:"entry_barrier" validate:"min=1,max=4"`
	Rivalry      float64 `json:"rivalry" yaml:"rivalry" validate:"min=1,max=4"`
	Substitution float64 `json:"substitution" yaml:"substitution" validate:"min=1,max=4"`
	Buyers       float64 `json:"buyers" yaml:"buyers" validate:"min=1,max=4"`
}

// ESGInputs are the environment, social and governance scores (1-4 each)
type ESGInputs struct {
	Environment float64 `json:"environment" yaml:"environment" validate:"min=1,max=4"`
	Social      float64 `json:"social" yaml:"social" validate:"min=1,max=4"`
	Governance  float64 `json:"governance" yaml:"governance" validate:"min=1,max=4"`
}

// VCSInputs is the raw qualitative questionnaire before the Porter and ESG composites are taken
type VCSInputs struct {
	Lifecycle  float64      `json:"lifecycle" yaml:"lifecycle" validate:"min=1,max=4"`
	Porter     PorterForces `json:"porter" yaml:"porter"`
	Management float64      `json:"management" yaml:"management" validate:"min=1,max=4"`
	ESG        ESGInputs    `json:"esg" yaml:"esg"`
}

// QualitativeInputs are the four Value Creation Sustainability sub-scores on a 1-4 scale
type QualitativeInputs struct {
	Lifecycle  float64 `json:"lifecycle" yaml:"lifecycle"`
	Porter     float64 `json:"porter" yaml:"porter"`
	Management float64 `json:"management" yaml:"management"`
	ESG        float64 `json:"esg" yaml:"esg"`
}

// MacroAssumptions holds fractional GDP growth rates (0.08 = 8%)
type MacroAssumptions struct {
	NominalGDP float64 `json:"nominal_gdp" yaml:"nominal_gdp" validate:"gte=0"`
	RealGDP    float64 `json:"real_gdp" yaml:"real_gdp" validate:"gte=0"`
}

// ValuationInputs holds the two target prices and the current market price
type ValuationInputs struct {
	ModelTP      float64 `json:"model_tp" yaml:"model_tp" validate:"gt=0"`
	RelativeVal  float64 `json:"relative_val" yaml:"relative_val" validate:"gt=0"`
	CurrentPrice float64 `json:"current_price" yaml:"current_price" validate:"gt=0"`
}

// GrowthInputs holds blended-forward growth rates as fractions
type GrowthInputs struct {
	RevenueGrowth float64 `json:"revenue_growth" yaml:"revenue_growth"`
	EBITGrowth    float64 `json:"ebit_growth" yaml:"ebit_growth"`
	NPGrowth      float64 `json:"np_growth" yaml:"np_growth"`
}

// CompanyInfo describes the equity being analyzed
type CompanyInfo struct {
	Ticker            string  `json:"ticker" yaml:"ticker" validate:"required"`
	Name              string  `json:"name,omitempty" yaml:"name,omitempty"`
	Sector            string  `json:"sector,omitempty" yaml:"sector,omitempty"`
	CurrentPrice      float64 `json:"current_price,omitempty" yaml:"current_price,omitempty" validate:"gte=0"`
	SharesOutstanding float64 `json:"shares_outstanding,omitempty" yaml:"shares_outstanding,omitempty" validate:"gte=0"`
	MarketCap         float64 `json:"market_cap,omitempty" yaml:"market_cap,omitempty" validate:"gte=0"`
}

// EquityInput is the complete payload needed to analyze one equity
type EquityInput struct {
	Company    CompanyInfo        `json:"company" yaml:"company"`
	VCS        VCSInputs          `json:"vcs" yaml:"vcs"`
	Macro      MacroAssumptions   `json:"macro" yaml:"macro"`
	Historical []PeriodFinancials `json:"historical" yaml:"historical" validate:"dive"`
	Projected  []PeriodFinancials `json:"projected" yaml:"projected" validate:"dive"`
	Valuation  ValuationInputs    `json:"valuation" yaml:"valuation"`
	Growth     GrowthInputs       `json:"growth" yaml:"growth"`
}

// VCScores are the four Value Creation component scores
type VCScores struct {
	ROA          float64 `json:"roa"`
	EBITMargin   float64 `json:"ebit_margin"`
	SalesGrowth  float64 `json:"sales_growth"`
	ProfitGrowth float64 `json:"profit_growth"`
}

// FPScores are the three Financial Power component scores
type FPScores struct {
	OCFEBIT     float64 `json:"ocf_ebit"`
	EquityAsset float64 `json:"equity_asset"`
	CashAsset   float64 `json:"cash_asset"`
}

// CompanyBreakdown preserves every input category behind a company score
type CompanyBreakdown struct {
	VCS QualitativeInputs `json:"vcs"`
	VC  VCScores          `json:"vc"`
	FP  FPScores          `json:"fp"`
}

// CompanyScoreResult is the weighted fundamental-quality score and its parts
type CompanyScoreResult struct {
	CompanyScore float64          `json:"company_score"`
	VCSScore     float64          `json:"vcs_score"`
	VCScore      float64          `json:"vc_score"`
	FPScore      float64          `json:"fp_score"`
	VCSWeighted  float64          `json:"vcs_weighted"`
	VCWeighted   float64          `json:"vc_weighted"`
	FPWeighted   float64          `json:"fp_weighted"`
	Breakdown    CompanyBreakdown `json:"breakdown"`
}

// ValuationBreakdown holds the valuation sub-score and the figures behind it.
// BlendedTP is rounded to 2 decimals; Upside is a percentage.
type ValuationBreakdown struct {
	Score        int     `json:"score"`
	BlendedTP    float64 `json:"blended_tp"`
	Upside       float64 `json:"upside"`
	ModelTP      float64 `json:"model_tp"`
	RelativeVal  float64 `json:"relative_val"`
	CurrentPrice float64 `json:"current_price"`
}

// GrowthBreakdown holds per-metric growth scores; growth rates are percentages
type GrowthBreakdown struct {
	Score         float64 `json:"score"`
	RevenueScore  int     `json:"revenue_score"`
	EBITScore     int     `json:"ebit_score"`
	NPScore       int     `json:"np_score"`
	RevenueGrowth float64 `json:"revenue_growth"`
	EBITGrowth    float64 `json:"ebit_growth"`
	NPGrowth      float64 `json:"np_growth"`
}

// StockBreakdown preserves the valuation and growth sub-metrics behind a stock score
type StockBreakdown struct {
	Valuation ValuationBreakdown `json:"valuation"`
	Growth    GrowthBreakdown    `json:"growth"`
}

// StockScoreResult is the weighted valuation/momentum score and its parts
type StockScoreResult struct {
	StockScore        float64        `json:"stock_score"`
	ValuationScore    float64        `json:"valuation_score"`
	GrowthScore       float64        `json:"growth_score"`
	ValuationWeighted float64        `json:"valuation_weighted"`
	GrowthWeighted    float64        `json:"growth_weighted"`
	BlendedTP         float64        `json:"blended_tp"`
	Upside            float64        `json:"upside"`
	Breakdown         StockBreakdown `json:"breakdown"`
}

// Analysis is the full result of running one equity through the pipeline
type Analysis struct {
	ID             string             `json:"id"`
	AnalysisDate   time.Time          `json:"analysis_date"`
	Company        CompanyInfo        `json:"company"`
	CompanyScore   CompanyScoreResult `json:"company_score"`
	StockScore     StockScoreResult   `json:"stock_score"`
	Quadrant       QuadrantInfo       `json:"quadrant"`
	Recommendation Recommendation     `json:"recommendation"`
}

// ComparisonResult holds the analyses of a batch of equities and their ranking
type ComparisonResult struct {
	ID            string        `json:"id"`
	AnalysisDate  time.Time     `json:"analysis_date"`
	TotalAnalyzed int           `json:"total_analyzed"`
	Threshold     float64       `json:"threshold"`
	Analyses      []Analysis    `json:"analyses"`
	Ranking       []RankedStock `json:"ranking"`
}

// ClassifyRequest classifies precomputed scores and prices a recommendation
type ClassifyRequest struct {
	Ticker       string  `json:"ticker,omitempty" yaml:"ticker,omitempty"`
	CompanyScore float64 `json:"company_score" yaml:"company_score" validate:"gte=1,lte=4"`
	StockScore   float64 `json:"stock_score" yaml:"stock_score" validate:"gte=1,lte=4"`
	TargetPrice  float64 `json:"target_price" yaml:"target_price" validate:"gt=0"`
	CurrentPrice float64 `json:"current_price" yaml:"current_price" validate:"gt=0"`
}

// Classification pairs a quadrant placement with its recommendation
type Classification struct {
	Quadrant       QuadrantInfo   `json:"quadrant"`
	Recommendation Recommendation `json:"recommendation"`
}
