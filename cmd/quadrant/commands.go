package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"quadrant-analyzer/internal/logger"
	"quadrant-analyzer/internal/report"
	"quadrant-analyzer/internal/research/quadrant"
	"quadrant-analyzer/internal/store"
)

// outputFlags are shared by every command that renders a report
type outputFlags struct {
	format string
	output string
	save   bool
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", "", "output format: text, table, json or csv (default from config)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "write the report to this file instead of stdout")
	cmd.Flags().BoolVar(&o.save, "save", false, "also save a timestamped copy under the report output dir")
}

func (a *app) reportFormat(o *outputFlags) (report.ReportFormat, error) {
	name := o.format
	if name == "" {
		name = a.cfg.Report.Format
	}
	format, err := report.ParseFormat(name)
	if err != nil {
		return "", err
	}
	a.reporter.SetColor(format == report.FormatTable && o.output == "")
	return format, nil
}

func (a *app) emit(cmd *cobra.Command, o *outputFlags, name, content string, format report.ReportFormat) error {
	ctx := cmd.Context()

	if o.output != "" {
		if err := os.WriteFile(o.output, []byte(content), 0644); err != nil {
			return err
		}
		logger.Info(ctx, "Report written", "path", o.output, "format", string(format))
	} else {
		fmt.Fprint(cmd.OutOrStdout(), content)
	}

	if o.save {
		path, err := a.reporter.SaveReport(name, content, format, time.Now())
		if err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved report to %s\n", path)
	}
	return nil
}

func (a *app) analyzeCmd() *cobra.Command {
	var o outputFlags
	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze every equity in a YAML or JSON input file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.reportFormat(&o)
			if err != nil {
				return err
			}
			equities, err := store.LoadEquities(args[0])
			if err != nil {
				return err
			}

			analyses := make([]quadrant.Analysis, 0, len(equities))
			for _, e := range equities {
				analysis, err := a.analyzer.Analyze(cmd.Context(), e)
				if err != nil {
					return fmt.Errorf("%s: %w", e.Company.Ticker, err)
				}
				analyses = append(analyses, *analysis)
			}

			content, err := a.reporter.GenerateAnalysisReport(analyses, format)
			if err != nil {
				return err
			}
			name := "analysis"
			if len(analyses) == 1 {
				name = analyses[0].Company.Ticker
			}
			return a.emit(cmd, &o, name, content, format)
		},
	}
	o.register(cmd)
	return cmd
}

func (a *app) compareCmd() *cobra.Command {
	var o outputFlags
	cmd := &cobra.Command{
		Use:   "compare <file>",
		Short: "Analyze and rank every equity in an input file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.reportFormat(&o)
			if err != nil {
				return err
			}
			equities, err := store.LoadEquities(args[0])
			if err != nil {
				return err
			}

			result, err := a.analyzer.Compare(cmd.Context(), equities)
			if err != nil {
				return err
			}

			content, err := a.reporter.GenerateComparisonReport(result, format)
			if err != nil {
				return err
			}
			return a.emit(cmd, &o, "comparison", content, format)
		},
	}
	o.register(cmd)
	return cmd
}

func (a *app) classifyCmd() *cobra.Command {
	var (
		o   outputFlags
		req quadrant.ClassifyRequest
	)
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify precomputed company and stock scores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.reportFormat(&o)
			if err != nil {
				return err
			}

			var c *quadrant.Classification
			if req.TargetPrice == 0 && req.CurrentPrice == 0 {
				info, err := a.placement(cmd.Context(), req)
				if err != nil {
					return err
				}
				c = &quadrant.Classification{Quadrant: info}
			} else {
				c, err = a.analyzer.Classify(cmd.Context(), req)
				if err != nil {
					return err
				}
			}

			content, err := a.reporter.GenerateClassificationReport(c, format)
			if err != nil {
				return err
			}
			name := "classification"
			if req.Ticker != "" {
				name = req.Ticker
			}
			return a.emit(cmd, &o, name, content, format)
		},
	}
	f := cmd.Flags()
	f.Float64Var(&req.CompanyScore, "cs", 0, "company score")
	f.Float64Var(&req.StockScore, "ss", 0, "stock score")
	f.Float64Var(&req.TargetPrice, "target", 0, "target price, enables the recommendation")
	f.Float64Var(&req.CurrentPrice, "current", 0, "current price, enables the recommendation")
	f.StringVar(&req.Ticker, "ticker", "", "ticker used in logs and saved file names")
	_ = cmd.MarkFlagRequired("cs")
	_ = cmd.MarkFlagRequired("ss")
	cmd.MarkFlagsRequiredTogether("target", "current")
	o.register(cmd)
	return cmd
}

// placement classifies scores without pricing a recommendation. In remote mode
// the server's threshold applies.
func (a *app) placement(ctx context.Context, req quadrant.ClassifyRequest) (quadrant.QuadrantInfo, error) {
	if err := quadrant.ValidateScores(req.CompanyScore, req.StockScore); err != nil {
		return quadrant.QuadrantInfo{}, err
	}

	classifier := a.local.Classifier()
	if a.remote != nil {
		layout, err := a.remote.Matrix(ctx)
		if err != nil {
			return quadrant.QuadrantInfo{}, err
		}
		classifier = quadrant.NewClassifier(layout.Threshold)
	}
	return classifier.Classify(req.CompanyScore, req.StockScore), nil
}

func (a *app) rulesCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the scoring reference table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules := a.local.Calculator().ScoringRules()
			if a.remote != nil {
				var err error
				if rules, err = a.remote.Rules(cmd.Context()); err != nil {
					return err
				}
			}
			if asJSON {
				return writeJSON(cmd, rules)
			}
			fmt.Fprint(cmd.OutOrStdout(), a.reporter.RulesTable(rules))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func (a *app) matrixCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Print the quadrant matrix layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layout := a.local.Classifier().MatrixLayout()
			if a.remote != nil {
				var err error
				if layout, err = a.remote.Matrix(cmd.Context()); err != nil {
					return err
				}
			}
			if asJSON {
				return writeJSON(cmd, layout)
			}
			fmt.Fprint(cmd.OutOrStdout(), a.reporter.MatrixTable(layout))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func (a *app) sampleCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print a sample equity input file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			equities := []quadrant.EquityInput{quadrant.SampleEquity()}
			if asJSON {
				return writeJSON(cmd, equities)
			}
			data, err := store.MarshalEquities(equities)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
