package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"quadrant-analyzer/internal/research/quadrant"
)

// ReportFormat specifies the output format for quadrant reports
type ReportFormat string

const (
	FormatText  ReportFormat = "text"
	FormatTable ReportFormat = "table"
	FormatJSON  ReportFormat = "json"
	FormatCSV   ReportFormat = "csv"
)

// ParseFormat converts a user supplied format name
func ParseFormat(s string) (ReportFormat, error) {
	switch f := ReportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatTable, FormatJSON, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("unsupported format: %q (want text, table, json or csv)", s)
}

// Reporter handles generation and storage of quadrant reports
type Reporter struct {
	outputDir string
	color     bool
}

// NewReporter creates a new reporter writing saved reports under outputDir
func NewReporter(outputDir string) *Reporter {
	return &Reporter{
		outputDir: outputDir,
	}
}

// SetColor toggles ANSI colors in table output
func (r *Reporter) SetColor(on bool) {
	r.color = on
}

// GenerateAnalysisReport renders one or more analyses in the given format
func (r *Reporter) GenerateAnalysisReport(analyses []quadrant.Analysis, format ReportFormat) (string, error) {
	switch format {
	case FormatJSON:
		if len(analyses) == 1 {
			return toJSON(analyses[0])
		}
		return toJSON(analyses)
	case FormatText:
		var sb strings.Builder
		for i := range analyses {
			writeAnalysisText(&sb, &analyses[i])
		}
		return sb.String(), nil
	case FormatTable:
		return r.analysisTable(analyses), nil
	case FormatCSV:
		return analysisCSV(analyses)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// GenerateComparisonReport renders a comparison and its ranking
func (r *Reporter) GenerateComparisonReport(result *quadrant.ComparisonResult, format ReportFormat) (string, error) {
	switch format {
	case FormatJSON:
		return toJSON(result)
	case FormatText:
		return r.comparisonText(result), nil
	case FormatTable:
		return r.analysisTable(result.Analyses) + "\n" + r.rankingTable(result.Ranking), nil
	case FormatCSV:
		return rankingCSV(result.Ranking)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// GenerateClassificationReport renders a standalone classification.
// The recommendation is omitted when c carries none.
func (r *Reporter) GenerateClassificationReport(c *quadrant.Classification, format ReportFormat) (string, error) {
	hasRec := c.Recommendation.Rating != ""

	switch format {
	case FormatJSON:
		if !hasRec {
			return toJSON(map[string]any{"quadrant": c.Quadrant})
		}
		return toJSON(c)
	case FormatText, FormatTable:
		var sb strings.Builder
		writeQuadrant(&sb, &c.Quadrant)
		if hasRec {
			writeRecommendation(&sb, &c.Recommendation)
		}
		return sb.String(), nil
	case FormatCSV:
		row := []string{
			c.Quadrant.Quadrant.String(),
			num(c.Quadrant.CompanyScore),
			num(c.Quadrant.StockScore),
			string(c.Quadrant.Position.Strength),
			"", "", "",
		}
		if hasRec {
			row[4] = string(c.Recommendation.Rating)
			row[5] = num(c.Recommendation.Upside)
			row[6] = c.Recommendation.PositionSizing
		}
		return writeCSV([][]string{
			{"quadrant", "company_score", "stock_score", "strength", "rating", "upside", "position_sizing"},
			row,
		})
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// SaveReport writes content to a timestamped file in the output directory
func (r *Reporter) SaveReport(name, content string, format ReportFormat, ts time.Time) (string, error) {
	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return "", err
	}

	ext := string(format)
	if format == FormatTable {
		ext = "txt"
	}
	filename := fmt.Sprintf("%s_quadrant_%s.%s", name, ts.Format("2006-01-02_15-04-05"), ext)
	path := filepath.Join(r.outputDir, filename)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}

	return path, nil
}

func toJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

func rule(ch string) string {
	return strings.Repeat(ch, 80) + "\n"
}

func writeAnalysisText(sb *strings.Builder, a *quadrant.Analysis) {
	sb.WriteString(rule("="))
	title := a.Company.Ticker
	if a.Company.Name != "" {
		title += " (" + a.Company.Name + ")"
	}
	sb.WriteString(fmt.Sprintf("QUADRANT ANALYSIS REPORT - %s\n", title))
	sb.WriteString(rule("="))
	sb.WriteString(fmt.Sprintf("Generated: %s\n", a.AnalysisDate.Format("2006-01-02 15:04:05")))
	if a.Company.Sector != "" {
		sb.WriteString(fmt.Sprintf("Sector: %s\n", a.Company.Sector))
	}

	cs := a.CompanyScore
	sb.WriteString("\nCOMPANY SCORE\n")
	sb.WriteString(rule("-"))
	sb.WriteString(fmt.Sprintf("Company Score: %.2f/4\n", cs.CompanyScore))
	sb.WriteString(fmt.Sprintf("  Value Creation Sustainability: %.2f (weighted %.2f)\n", cs.VCSScore, cs.VCSWeighted))
	sb.WriteString(fmt.Sprintf("  Value Creation:                %.2f (weighted %.2f)\n", cs.VCScore, cs.VCWeighted))
	sb.WriteString(fmt.Sprintf("  Financial Power:               %.2f (weighted %.2f)\n", cs.FPScore, cs.FPWeighted))
	q := cs.Breakdown.VCS
	sb.WriteString(fmt.Sprintf("\n• Qualitative: lifecycle %.2f, porter %.2f, management %.2f, esg %.2f\n",
		q.Lifecycle, q.Porter, q.Management, q.ESG))
	vc := cs.Breakdown.VC
	sb.WriteString(fmt.Sprintf("• Value creation: ROA %.1f, EBIT margin %.1f, sales growth %.1f, profit growth %.1f\n",
		vc.ROA, vc.EBITMargin, vc.SalesGrowth, vc.ProfitGrowth))
	fp := cs.Breakdown.FP
	sb.WriteString(fmt.Sprintf("• Financial power: OCF/EBIT %.1f, equity/assets %.1f, cash/assets %.1f\n",
		fp.OCFEBIT, fp.EquityAsset, fp.CashAsset))

	ss := a.StockScore
	val := ss.Breakdown.Valuation
	gr := ss.Breakdown.Growth
	sb.WriteString("\nSTOCK SCORE\n")
	sb.WriteString(rule("-"))
	sb.WriteString(fmt.Sprintf("Stock Score: %.2f/4\n", ss.StockScore))
	sb.WriteString(fmt.Sprintf("  Valuation: %.2f (weighted %.2f)\n", ss.ValuationScore, ss.ValuationWeighted))
	sb.WriteString(fmt.Sprintf("  Growth:    %.2f (weighted %.2f)\n", ss.GrowthScore, ss.GrowthWeighted))
	sb.WriteString(fmt.Sprintf("\n• Target price: %.2f blended from model %.2f and relative %.2f\n",
		val.BlendedTP, val.ModelTP, val.RelativeVal))
	sb.WriteString(fmt.Sprintf("• Current price: %.2f, upside %.2f%%\n", val.CurrentPrice, val.Upside))
	sb.WriteString(fmt.Sprintf("• Growth: revenue %.2f%% (%d), EBIT %.2f%% (%d), net profit %.2f%% (%d)\n",
		gr.RevenueGrowth, gr.RevenueScore, gr.EBITGrowth, gr.EBITScore, gr.NPGrowth, gr.NPScore))

	sb.WriteString("\n")
	writeQuadrant(sb, &a.Quadrant)
	writeRecommendation(sb, &a.Recommendation)

	sb.WriteString("\n" + rule("="))
	sb.WriteString("END OF REPORT\n")
	sb.WriteString(rule("="))
	sb.WriteString("\n")
}

func writeQuadrant(sb *strings.Builder, info *quadrant.QuadrantInfo) {
	p := info.Profile
	sb.WriteString(fmt.Sprintf("QUADRANT: %s %s\n", p.Emoji, p.Name))
	sb.WriteString(rule("-"))
	sb.WriteString(fmt.Sprintf("%s\n", p.Description))
	sb.WriteString(fmt.Sprintf("CS %.2f (%s), SS %.2f (%s), threshold %.2f\n",
		info.CompanyScore, info.Position.CSCategory, info.StockScore, info.Position.SSCategory, info.Threshold))
	sb.WriteString(fmt.Sprintf("Position strength: %s (CS distance %.2f, SS distance %.2f)\n",
		info.Position.Strength, info.Position.CSDistance, info.Position.SSDistance))
	for _, c := range p.Characteristics {
		sb.WriteString(fmt.Sprintf("  - %s\n", c))
	}
}

func writeRecommendation(sb *strings.Builder, rec *quadrant.Recommendation) {
	sb.WriteString("\nRECOMMENDATION\n")
	sb.WriteString(rule("-"))
	sb.WriteString(fmt.Sprintf("Rating: %s (priority %d)\n", rec.Rating, rec.Priority))
	sb.WriteString(fmt.Sprintf("Action: %s\n", rec.Action))
	sb.WriteString(fmt.Sprintf("Target %.2f vs current %.2f, upside %.2f%%\n", rec.TargetPrice, rec.CurrentPrice, rec.Upside))
	sb.WriteString(fmt.Sprintf("Risk level: %s\n", rec.RiskLevel))
	sb.WriteString(fmt.Sprintf("Time horizon: %s\n", rec.TimeHorizon))
	sb.WriteString(fmt.Sprintf("Position sizing: %s\n", rec.PositionSizing))
	sb.WriteString("Risk factors:\n")
	for _, f := range rec.RiskFactors {
		sb.WriteString(fmt.Sprintf("  ⚠ %s\n", f))
	}
}

func (r *Reporter) comparisonText(result *quadrant.ComparisonResult) string {
	var sb strings.Builder
	for i := range result.Analyses {
		writeAnalysisText(&sb, &result.Analyses[i])
	}

	sb.WriteString(rule("="))
	sb.WriteString(fmt.Sprintf("QUADRANT RANKING - %d equities (threshold %.2f)\n", result.TotalAnalyzed, result.Threshold))
	sb.WriteString(rule("="))
	sb.WriteString(fmt.Sprintf("Generated: %s\n", result.AnalysisDate.Format("2006-01-02 15:04:05")))
	for _, s := range result.Ranking {
		sb.WriteString(fmt.Sprintf("\n%d. %s [%s] %s\n", s.Rank, s.Ticker, s.Quadrant, s.Rating))
		sb.WriteString(fmt.Sprintf("   CS %.2f, SS %.2f, upside %.2f%%, risk %s\n", s.CompanyScore, s.StockScore, s.Upside, s.RiskLevel))
	}
	return sb.String()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func writeCSV(rows [][]string) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func analysisCSV(analyses []quadrant.Analysis) (string, error) {
	rows := [][]string{{
		"ticker", "company_score", "vcs_score", "vc_score", "fp_score",
		"stock_score", "valuation_score", "growth_score", "blended_tp", "upside",
		"quadrant", "strength", "rating", "priority", "position_sizing", "risk_factors",
	}}
	for _, a := range analyses {
		rows = append(rows, []string{
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
			a.Quadrant.Quadrant.String(),
			string(a.Quadrant.Position.Strength),
			string(a.Recommendation.Rating),
			strconv.Itoa(a.Recommendation.Priority),
			a.Recommendation.PositionSizing,
			strings.Join(a.Recommendation.RiskFactors, "; "),
		})
	}
	return writeCSV(rows)
}

func rankingCSV(ranking []quadrant.RankedStock) (string, error) {
	rows := [][]string{{"rank", "ticker", "company_score", "stock_score", "quadrant", "rating", "priority", "upside", "risk_level"}}
	for _, s := range ranking {
		rows = append(rows, []string{
			strconv.Itoa(s.Rank),
			s.Ticker,
			num(s.CompanyScore),
			num(s.StockScore),
			s.Quadrant.String(),
			string(s.Rating),
			strconv.Itoa(s.Priority),
			num(s.Upside),
			s.RiskLevel,
		})
	}
	return writeCSV(rows)
}
