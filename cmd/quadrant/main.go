package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"quadrant-analyzer/internal/api"
	"quadrant-analyzer/internal/interfaces"
	"quadrant-analyzer/internal/logger"
	"quadrant-analyzer/internal/report"
	"quadrant-analyzer/internal/research/quadrant"
	"quadrant-analyzer/internal/research/quadrant/quadrantobs"
	"quadrant-analyzer/internal/store"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// app is the state shared by every subcommand once flags are parsed
type app struct {
	v        *viper.Viper
	cfg      *store.Config
	local    *quadrant.Analyzer
	remote   *api.RemoteAnalyzer
	analyzer interfaces.QuadrantAnalyzer
	reporter *report.Reporter
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "quadrant",
		Short: "Score equities and place them in the Company Score x Stock Score quadrant matrix",
		Long: "quadrant computes a Company Score (fundamental quality) and a Stock Score\n" +
			"(valuation and momentum) for each equity, classifies it as STAR, GROWTH,\n" +
			"VALUE or DOG and derives an investment recommendation.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Shutdown(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "config.yaml", "config file, defaults apply when it does not exist")
	pf.Float64("threshold", 0, "classification threshold override (1-4)")
	pf.String("log-level", "", "log level: DEBUG, INFO, WARN or ERROR")
	pf.String("server", "", "use the quadrant API at this URL instead of the local engine")
	_ = a.v.BindPFlags(pf)

	a.v.SetEnvPrefix("QUADRANT")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(
		a.analyzeCmd(),
		a.compareCmd(),
		a.classifyCmd(),
		a.rulesCmd(),
		a.matrixCmd(),
		a.sampleCmd(),
		a.serveCmd(),
	)
	return root
}

// init loads .env, the logger, the config file and the analyzer
func (a *app) init() error {
	_ = godotenv.Load()

	logCfg := logger.LoadConfigFromEnv()
	if level := a.v.GetString("log-level"); level != "" {
		logCfg.Level = level
	}
	if err := logger.InitWithConfig(logCfg); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := store.LoadConfigOrDefault(a.v.GetString("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if t := a.v.GetFloat64("threshold"); t != 0 {
		cfg.Quadrant.Threshold = t
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg

	a.local = quadrant.NewAnalyzer(cfg.AnalyzerConfig())
	var analyzer interfaces.QuadrantAnalyzer = a.local
	if url := a.v.GetString("server"); url != "" {
		client := api.NewClient(url,
			api.WithRetry(api.DefaultRetryConfig()),
			api.WithLogging(true),
		)
		a.remote = api.NewRemoteAnalyzer(client)
		analyzer = a.remote
	}
	a.analyzer = quadrantobs.Wrap(analyzer)
	a.reporter = report.NewReporter(cfg.Report.OutputDir)

	return nil
}
