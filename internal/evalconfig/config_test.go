package evalconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".vdao-eval.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "folds:\n  - fold0.csv\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultThreshold, cfg.Threshold)
	assert.Equal(t, DefaultEpsilon, cfg.Epsilon)
	assert.Equal(t, DefaultBeta, cfg.Beta)
	assert.Equal(t, DefaultOp, cfg.ROC.Op)
	assert.Equal(t, DefaultPlotPath, cfg.ROC.Plot)
	assert.True(t, cfg.IncludeFolds())
	assert.True(t, cfg.Bootstrap())
	assert.Equal(t, DefaultConfidenceLevel, cfg.Report.ConfidenceLevel)
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
threshold: 0.3
beta: 2
folds:
  - a.csv
  - b.csv
roc:
  op: min
  plot: out/roc.png
  include_folds: false
report:
  bootstrap: false
  confidence_level: 0.9
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.3, cfg.Threshold)
	assert.Equal(t, 2.0, cfg.Beta)
	assert.Equal(t, []string{"a.csv", "b.csv"}, cfg.Folds)
	assert.Equal(t, "min", cfg.ROC.Op)
	assert.Equal(t, "out/roc.png", cfg.ROC.Plot)
	assert.False(t, cfg.IncludeFolds())
	assert.False(t, cfg.Bootstrap())
	assert.Equal(t, 0.9, cfg.Report.ConfidenceLevel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"no_folds", "threshold: 0.5\n", "at least one prediction file"},
		{"bad_threshold", "threshold: 1.5\nfolds: [a.csv]\n", "threshold must be in (0, 1)"},
		{"negative_beta", "beta: -1\nfolds: [a.csv]\n", "beta must be non-negative"},
		{"bad_op", "folds: [a.csv]\nroc:\n  op: median\n", `roc.op must be "max" or "min"`},
		{"bad_confidence", "folds: [a.csv]\nreport:\n  confidence_level: 2\n", "confidence_level must be in (0, 1)"},
		{"not_yaml", "{{{", "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := Load(path)
			assert.ErrorContains(t, err, tt.wantMsg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "read")
}
