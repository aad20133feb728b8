// Package evalconfig provides the Config struct and loader for
// .vdao-eval.yaml evaluation configuration files.
package evalconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rafaelpadilla/vdao-anomaly/internal/metrics"
	"github.com/rafaelpadilla/vdao-anomaly/internal/roc"
)

// Default values for evaluation configuration. These are the single source
// of truth — New() references them and no other code should duplicate them.
const (
	DefaultThreshold = metrics.DefaultThreshold
	DefaultEpsilon   = metrics.DefaultEpsilon
	DefaultBeta      = 1.0

	DefaultOp       = string(roc.OpMax)
	DefaultPlotPath = "roc-crossval.eps"

	DefaultConfidenceLevel = 0.95
)

// ROCConfig holds ROC aggregation and plotting settings.
type ROCConfig struct {
	Op           string `yaml:"op,omitempty"`
	Plot         string `yaml:"plot,omitempty"`
	IncludeFolds *bool  `yaml:"include_folds,omitempty"`
}

// ReportConfig holds report rendering settings.
type ReportConfig struct {
	Bootstrap       *bool   `yaml:"bootstrap,omitempty"`
	ConfidenceLevel float64 `yaml:"confidence_level,omitempty"`
}

// Config is the root of a .vdao-eval.yaml file.
type Config struct {
	Threshold float64      `yaml:"threshold,omitempty"`
	Epsilon   float64      `yaml:"eps,omitempty"`
	Beta      float64      `yaml:"beta,omitempty"`
	Folds     []string     `yaml:"folds"`
	ROC       ROCConfig    `yaml:"roc,omitempty"`
	Report    ReportConfig `yaml:"report,omitempty"`
}

// New returns a Config populated with defaults and no fold files.
func New() *Config {
	includeFolds := true
	bootstrap := true
	return &Config{
		Threshold: DefaultThreshold,
		Epsilon:   DefaultEpsilon,
		Beta:      DefaultBeta,
		ROC: ROCConfig{
			Op:           DefaultOp,
			Plot:         DefaultPlotPath,
			IncludeFolds: &includeFolds,
		},
		Report: ReportConfig{
			Bootstrap:       &bootstrap,
			ConfidenceLevel: DefaultConfidenceLevel,
		},
	}
}

// Load reads a YAML config file and overlays it on the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("evalconfig: read %s: %w", path, err)
	}

	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("evalconfig: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("evalconfig: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field ranges. Zero-value fields are restored to their
// defaults first, since YAML cannot distinguish absent from zero for them.
func (c *Config) Validate() error {
	if c.Epsilon == 0 {
		c.Epsilon = DefaultEpsilon
	}
	if c.ROC.Op == "" {
		c.ROC.Op = DefaultOp
	}
	if c.ROC.Plot == "" {
		c.ROC.Plot = DefaultPlotPath
	}
	if c.Report.ConfidenceLevel == 0 {
		c.Report.ConfidenceLevel = DefaultConfidenceLevel
	}

	if c.Threshold <= 0 || c.Threshold >= 1 {
		return fmt.Errorf("threshold must be in (0, 1), got %v", c.Threshold)
	}
	if c.Beta < 0 {
		return fmt.Errorf("beta must be non-negative, got %v", c.Beta)
	}
	if op := roc.Op(c.ROC.Op); op != roc.OpMax && op != roc.OpMin {
		return fmt.Errorf("roc.op must be %q or %q, got %q", roc.OpMax, roc.OpMin, c.ROC.Op)
	}
	if c.Report.ConfidenceLevel <= 0 || c.Report.ConfidenceLevel >= 1 {
		return fmt.Errorf("report.confidence_level must be in (0, 1), got %v", c.Report.ConfidenceLevel)
	}
	if len(c.Folds) == 0 {
		return fmt.Errorf("folds must list at least one prediction file")
	}
	return nil
}

// IncludeFolds reports whether per-fold curves should be drawn on the plot.
func (c *Config) IncludeFolds() bool {
	return c.ROC.IncludeFolds == nil || *c.ROC.IncludeFolds
}

// Bootstrap reports whether the report should include a bootstrap CI.
func (c *Config) Bootstrap() bool {
	return c.Report.Bootstrap == nil || *c.Report.Bootstrap
}
