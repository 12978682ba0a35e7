package quadrant

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RuleBand describes the condition that earns one score
type RuleBand struct {
	Score     int    `json:"score"`
	Condition string `json:"condition"`
}

// MetricRule is one row of the scoring reference table
type MetricRule struct {
	Metric string     `json:"metric"`
	Bands  []RuleBand `json:"bands"`
}

// ScoringRules is the reference table of every score ladder, grouped by category
type ScoringRules struct {
	VC []MetricRule `json:"vc_metrics"`
	FP []MetricRule `json:"fp_metrics"`
	SS []MetricRule `json:"ss_metrics"`
}

// ScoringRules renders the ladders the calculator actually applies
func (c *Calculator) ScoringRules() ScoringRules {
	return ScoringRules{
		VC: []MetricRule{
			describe("ROA Discrepancy", ratioLadder, 1, " bps"),
			describe("EBIT Margin Disc", growthLadder, 1, " bps"),
			describe("Sales vs GDP", gdpLadder, 1, " bps"),
			describe("Profit vs GDP", gdpLadder, 1, " bps"),
			describe("Sales/Profit Acceleration", growthLadder, 1, " bps"),
		},
		FP: []MetricRule{
			describe("OCF/EBIT Disc", ratioLadder, 1, " bps"),
			describe("Equity/Asset Disc", ratioLadder, 1, " bps"),
			describe("Cash/Asset Disc", ratioLadder, 1, " bps"),
		},
		SS: []MetricRule{
			describe("Valuation Upside", upsideLadder, 100, "%"),
			describe("Growth Rate", growthRateLadder, 100, "%"),
		},
	}
}

// describe renders a ladder as human readable bands, scaling bounds for display
func describe(metric string, l ladder, scale int64, unit string) MetricRule {
	bound := func(v float64) string {
		return decimal.NewFromFloat(v).Mul(decimal.NewFromInt(scale)).String() + unit
	}

	bands := make([]RuleBand, 0, len(l)+1)
	for i, b := range l {
		condition := "> " + bound(b.above)
		if i > 0 {
			condition = fmt.Sprintf("%s to %s", bound(b.above), bound(l[i-1].above))
		}
		bands = append(bands, RuleBand{Score: b.score, Condition: condition})
	}
	bands = append(bands, RuleBand{Score: 1, Condition: "<= " + bound(l[len(l)-1].above)})

	return MetricRule{Metric: metric, Bands: bands}
}
