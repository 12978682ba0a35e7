package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quadrant-analyzer/internal/research/quadrant"
	"quadrant-analyzer/internal/server"
)

// run executes the CLI with a config file confined to a temp dir
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", filepath.Join(dir, "config.yaml"), "--log-level", "ERROR"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeSample(t *testing.T, dir string) string {
	t.Helper()
	out, err := run(t, dir, "sample")
	require.NoError(t, err)
	path := filepath.Join(dir, "amrt.yaml")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o644))
	return path
}

func TestSample(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, dir, "sample")
	require.NoError(t, err)
	assert.Contains(t, out, "equities:")
	assert.Contains(t, out, "ticker: AMRT")

	out, err = run(t, dir, "sample", "--json")
	require.NoError(t, err)
	var equities []quadrant.EquityInput
	require.NoError(t, json.Unmarshal([]byte(out), &equities))
	assert.Equal(t, quadrant.SampleEquity(), equities[0])
}

func TestAnalyzeCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeSample(t, dir)

	out, err := run(t, dir, "analyze", input, "--format", "csv")
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"AMRT", "2.47"}, rows[1][:2])

	out, err = run(t, dir, "analyze", input)
	require.NoError(t, err)
	assert.Contains(t, out, "QUADRANT ANALYSIS REPORT - AMRT")
}

func TestAnalyzeCommand_OutputAndSave(t *testing.T) {
	dir := t.TempDir()
	reports := filepath.Join(dir, "reports")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("report:\n  output_dir: "+reports+"\n  format: json\n"), 0o644))
	input := writeSample(t, dir)
	target := filepath.Join(dir, "out.json")

	out, err := run(t, dir, "analyze", input, "--output", target, "--save")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	var analysis quadrant.Analysis
	require.NoError(t, json.Unmarshal(data, &analysis))
	assert.Equal(t, quadrant.QuadrantGrowth, analysis.Quadrant.Quadrant)

	saved, err := filepath.Glob(filepath.Join(reports, "AMRT_quadrant_*.json"))
	require.NoError(t, err)
	assert.Len(t, saved, 1)
}

func TestAnalyzeCommand_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "analyze", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("company: {ticker: X}\nhistorical: []\n"), 0o644))
	_, err = run(t, dir, "analyze", bad)
	assert.ErrorIs(t, err, quadrant.ErrWrongPeriodCount)

	input := writeSample(t, dir)
	_, err = run(t, dir, "analyze", input, "--format", "pdf")
	assert.Error(t, err)

	_, err = run(t, dir, "--threshold", "5", "analyze", input)
	assert.Error(t, err)
}

func TestCompareCommand(t *testing.T) {
	dir := t.TempDir()
	second := quadrant.SampleEquity()
	second.Company.Ticker = "MIDI"
	second.Valuation.ModelTP = 2000
	second.Valuation.RelativeVal = 2000

	data, err := json.Marshal(map[string]any{"equities": []quadrant.EquityInput{second, quadrant.SampleEquity()}})
	require.NoError(t, err)
	input := filepath.Join(dir, "pair.json")
	require.NoError(t, os.WriteFile(input, data, 0o644))

	out, err := run(t, dir, "compare", input, "--format", "json")
	require.NoError(t, err)

	var result quadrant.ComparisonResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Ranking, 2)
	assert.Equal(t, "AMRT", result.Ranking[0].Ticker)
	assert.Equal(t, "MIDI", result.Ranking[1].Ticker)
}

func TestClassifyCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "classify", "--cs", "3.6", "--ss", "3.5", "--target", "120", "--current", "100", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "STAR,3.60,3.50,Moderate,STRONG BUY,20.00")

	out, err = run(t, dir, "classify", "--cs", "2", "--ss", "3.2")
	require.NoError(t, err)
	assert.Contains(t, out, "GROWTH")
	assert.NotContains(t, out, "RECOMMENDATION")

	out, err = run(t, dir, "--threshold", "2.5", "classify", "--cs", "2.8", "--ss", "2.8", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"STAR"`)

	_, err = run(t, dir, "classify", "--cs", "3")
	assert.Error(t, err)

	_, err = run(t, dir, "classify", "--cs", "3", "--ss", "3", "--target", "100")
	assert.Error(t, err)

	_, err = run(t, dir, "classify", "--cs", "4.5", "--ss", "3")
	assert.ErrorIs(t, err, quadrant.ErrScoreOutOfRange)
}

func TestRulesAndMatrixCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "ROA Discrepancy")

	out, err = run(t, dir, "matrix", "--json")
	require.NoError(t, err)
	var layout quadrant.MatrixLayout
	require.NoError(t, json.Unmarshal([]byte(out), &layout))
	assert.Equal(t, 3.0, layout.Threshold)
}

func TestRemoteMode(t *testing.T) {
	analyzer := quadrant.NewAnalyzer(quadrant.DefaultAnalyzerConfig())
	srv := server.New(server.Config{
		Analyzer: analyzer,
		Rules:    analyzer.Calculator().ScoringRules(),
		Matrix:   quadrant.NewClassifier(2.0).MatrixLayout(),
	})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	dir := t.TempDir()
	input := writeSample(t, dir)

	out, err := run(t, dir, "--server", ts.URL, "analyze", input, "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "AMRT,2.47")

	out, err = run(t, dir, "--server", ts.URL, "matrix", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"threshold": 2`)

	out, err = run(t, dir, "--server", ts.URL, "classify", "--cs", "2.5", "--ss", "2.5", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "STAR,2.50,2.50")

	_, err = run(t, dir, "--server", ts.URL, "serve")
	assert.Error(t, err)
}
