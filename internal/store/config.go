package store

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"quadrant-analyzer/internal/report"
	"quadrant-analyzer/internal/research/quadrant"
)

const weightTolerance = 1e-6

type Config struct {
	Quadrant struct {
		Threshold      float64 `yaml:"threshold"`
		CompanyWeights struct {
			VCS float64 `yaml:"vcs"`
			VC  float64 `yaml:"vc"`
			FP  float64 `yaml:"fp"`
		} `yaml:"company_weights"`
		StockWeights struct {
			Valuation float64 `yaml:"valuation"`
			Growth    float64 `yaml:"growth"`
		} `yaml:"stock_weights"`
	} `yaml:"quadrant"`
	Server struct {
		Addr                  string   `yaml:"addr"`
		AllowedOrigins        []string `yaml:"allowed_origins"`
		RequestTimeoutSeconds int      `yaml:"request_timeout_seconds"`
	} `yaml:"server"`
	Report struct {
		OutputDir string `yaml:"output_dir"`
		Format    string `yaml:"format"`
	} `yaml:"report"`
}

func (c *Config) Validate() error {
	q := c.Quadrant
	if q.Threshold < 1 || q.Threshold > 4 {
		return fmt.Errorf("quadrant.threshold must be between 1 and 4, got %.2f", q.Threshold)
	}

	cw := q.CompanyWeights
	for name, w := range map[string]float64{"vcs": cw.VCS, "vc": cw.VC, "fp": cw.FP} {
		if w < 0 {
			return fmt.Errorf("quadrant.company_weights.%s must not be negative, got %.2f", name, w)
		}
	}
	if sum := cw.VCS + cw.VC + cw.FP; math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("quadrant.company_weights must sum to 1, got %.4f", sum)
	}

	sw := q.StockWeights
	if sw.Valuation < 0 || sw.Growth < 0 {
		return errors.New("quadrant.stock_weights must not be negative")
	}
	if sum := sw.Valuation + sw.Growth; math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("quadrant.stock_weights must sum to 1, got %.4f", sum)
	}

	if c.Server.Addr == "" {
		return errors.New("server.addr cannot be empty")
	}
	if c.Server.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("server.request_timeout_seconds must be positive, got %d", c.Server.RequestTimeoutSeconds)
	}
	if _, err := report.ParseFormat(c.Report.Format); err != nil {
		return fmt.Errorf("report.format: %w", err)
	}
	return nil
}

// applyDefaults fills every unset field with the standard value
func (c *Config) applyDefaults() {
	def := quadrant.DefaultAnalyzerConfig()

	if c.Quadrant.Threshold == 0 {
		c.Quadrant.Threshold = def.Threshold
	}
	cw := &c.Quadrant.CompanyWeights
	if cw.VCS == 0 && cw.VC == 0 && cw.FP == 0 {
		cw.VCS = def.Calculator.CompanyWeights.VCS
		cw.VC = def.Calculator.CompanyWeights.VC
		cw.FP = def.Calculator.CompanyWeights.FP
	}
	sw := &c.Quadrant.StockWeights
	if sw.Valuation == 0 && sw.Growth == 0 {
		sw.Valuation = def.Calculator.StockWeights.Valuation
		sw.Growth = def.Calculator.StockWeights.Growth
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
	if c.Server.RequestTimeoutSeconds == 0 {
		c.Server.RequestTimeoutSeconds = 30
	}

	if c.Report.OutputDir == "" {
		c.Report.OutputDir = "reports"
	}
	if c.Report.Format == "" {
		c.Report.Format = string(report.FormatText)
	}
}

// AnalyzerConfig converts the quadrant section into analyzer settings
func (c *Config) AnalyzerConfig() quadrant.AnalyzerConfig {
	q := c.Quadrant
	return quadrant.AnalyzerConfig{
		Calculator: quadrant.CalculatorConfig{
			CompanyWeights: quadrant.CompanyWeights{
				VCS: q.CompanyWeights.VCS,
				VC:  q.CompanyWeights.VC,
				FP:  q.CompanyWeights.FP,
			},
			StockWeights: quadrant.StockWeights{
				Valuation: q.StockWeights.Valuation,
				Growth:    q.StockWeights.Growth,
			},
		},
		Threshold: q.Threshold,
	}
}

// DefaultConfig returns a validated config with every default applied
func DefaultConfig() *Config {
	var c Config
	c.applyDefaults()
	return &c
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}

// LoadConfigOrDefault loads path, falling back to defaults when the file does not exist
func LoadConfigOrDefault(path string) (*Config, error) {
	c, err := LoadConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return c, err
}
