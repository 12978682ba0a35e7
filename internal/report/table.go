package report

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"quadrant-analyzer/internal/research/quadrant"
)

var quadrantColors = map[quadrant.Quadrant]text.Colors{
	quadrant.QuadrantStar:   {text.FgGreen},
	quadrant.QuadrantGrowth: {text.FgYellow},
	quadrant.QuadrantValue:  {text.FgCyan},
	quadrant.QuadrantDog:    {text.FgRed},
}

func (r *Reporter) newTable() table.Writer {
	tw := table.NewWriter()
	if r.color {
		tw.SetStyle(table.StyleColoredDark)
	} else {
		tw.SetStyle(table.StyleLight)
	}
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateRows = false
	return tw
}

func (r *Reporter) quadrantCell(q quadrant.Quadrant) string {
	if !r.color {
		return q.String()
	}
	return quadrantColors[q].Sprint(q.String())
}

func rightAligned(cols ...int) []table.ColumnConfig {
	cfgs := make([]table.ColumnConfig, 0, len(cols))
	for _, n := range cols {
		cfgs = append(cfgs, table.ColumnConfig{Number: n, Align: text.AlignRight, AlignHeader: text.AlignRight})
	}
	return cfgs
}

func (r *Reporter) analysisTable(analyses []quadrant.Analysis) string {
	tw := r.newTable()
	tw.AppendHeader(table.Row{"Ticker", "CS", "VCS", "VC", "FP", "SS", "Val", "Growth", "Target", "Upside %", "Quadrant", "Strength", "Rating"})
	tw.SetColumnConfigs(rightAligned(2, 3, 4, 5, 6, 7, 8, 9, 10))
	for _, a := range analyses {
		tw.AppendRow(table.Row{
			a.Company.Ticker,
			num(a.CompanyScore.CompanyScore),
			num(a.CompanyScore.VCSScore),
			num(a.CompanyScore.VCScore),
			num(a.CompanyScore.FPScore),
			num(a.StockScore.StockScore),
			num(a.StockScore.ValuationScore),
			num(a.StockScore.GrowthScore),
			num(a.StockScore.BlendedTP),
			num(a.Recommendation.Upside),
			r.quadrantCell(a.Quadrant.Quadrant),
			a.Quadrant.Position.Strength,
			a.Recommendation.Rating,
		})
	}
	return tw.Render() + "\n"
}

func (r *Reporter) rankingTable(ranking []quadrant.RankedStock) string {
	tw := r.newTable()
	tw.AppendHeader(table.Row{"#", "Ticker", "CS", "SS", "Quadrant", "Rating", "Upside %", "Risk"})
	tw.SetColumnConfigs(rightAligned(1, 3, 4, 7))
	for _, s := range ranking {
		tw.AppendRow(table.Row{
			s.Rank,
			s.Ticker,
			num(s.CompanyScore),
			num(s.StockScore),
			r.quadrantCell(s.Quadrant),
			s.Rating,
			num(s.Upside),
			s.RiskLevel,
		})
	}
	return tw.Render() + "\n"
}

// RulesTable renders the scoring reference table, one section per category
func (r *Reporter) RulesTable(rules quadrant.ScoringRules) string {
	sections := []struct {
		title string
		rows  []quadrant.MetricRule
	}{
		{"VALUE CREATION", rules.VC},
		{"FINANCIAL POWER", rules.FP},
		{"STOCK SCORE", rules.SS},
	}

	var sb strings.Builder
	for i, s := range sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		title := s.title
		if r.color {
			title = text.Bold.Sprint(title)
		}
		sb.WriteString(title + "\n")

		tw := r.newTable()
		tw.AppendHeader(table.Row{"Metric", "Score 4", "Score 3", "Score 2", "Score 1"})
		for _, m := range s.rows {
			row := table.Row{m.Metric}
			for _, b := range m.Bands {
				row = append(row, b.Condition)
			}
			tw.AppendRow(row)
		}
		sb.WriteString(tw.Render() + "\n")
	}
	return sb.String()
}

// MatrixTable renders the quadrant regions of the CS x SS plane
func (r *Reporter) MatrixTable(layout quadrant.MatrixLayout) string {
	tw := r.newTable()
	tw.AppendHeader(table.Row{"Quadrant", "Company Score", "Stock Score", "Strategy", "Color"})
	for _, c := range layout.Quadrants {
		tw.AppendRow(table.Row{
			r.quadrantCell(c.Quadrant),
			fmt.Sprintf("%.2f to %.2f", c.X[0], c.X[1]),
			fmt.Sprintf("%.2f to %.2f", c.Y[0], c.Y[1]),
			c.Quadrant.Profile().Strategy,
			c.Color,
		})
	}
	tw.SetCaption("Threshold %.2f on both axes (%s horizontal, %s vertical)", layout.Threshold, layout.XAxis.Label, layout.YAxis.Label)
	return tw.Render() + "\n"
}
