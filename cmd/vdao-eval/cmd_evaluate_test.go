package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func setupWorkspace(t *testing.T) (configPath, plotPath string) {
	t.Helper()
	dir := t.TempDir()

	fold0 := writeFile(t, dir, "fold0.csv", "label,score\n0,0.1\n0,0.4\n1,0.35\n1,0.8\n")
	fold1 := writeFile(t, dir, "fold1.csv", "label,score\n0,0.1\n0,0.2\n1,0.8\n1,0.9\n")
	plotPath = filepath.Join(dir, "roc.png")

	configPath = writeFile(t, dir, ".vdao-eval.yaml", fmt.Sprintf(
		"folds:\n  - %s\n  - %s\nroc:\n  op: min\n  plot: %s\n", fold0, fold1, plotPath))
	return configPath, plotPath
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEvaluateCommand(t *testing.T) {
	configPath, plotPath := setupWorkspace(t)

	out, err := runCommand(t, "evaluate", "--config", configPath)
	require.NoError(t, err)

	assert.Contains(t, out, "Cross-Validation ROC Summary")
	assert.Contains(t, out, "fold 0 (fold0.csv): AUC = 0.7500")
	assert.Contains(t, out, "fold 1 (fold1.csv): AUC = 1.0000")
	assert.Contains(t, out, "Cumulative Metrics")
	assert.Contains(t, out, "fpr")
	assert.Contains(t, out, "f1")

	info, statErr := os.Stat(plotPath)
	require.NoError(t, statErr)
	assert.Greater(t, info.Size(), int64(0))
}

func TestEvaluateCommand_PlotOverride(t *testing.T) {
	configPath, _ := setupWorkspace(t)
	override := filepath.Join(t.TempDir(), "override.svg")

	_, err := runCommand(t, "evaluate", "--config", configPath, "--plot", override)
	require.NoError(t, err)

	_, statErr := os.Stat(override)
	require.NoError(t, statErr)
}

func TestEvaluateCommand_NoPlot(t *testing.T) {
	configPath, plotPath := setupWorkspace(t)

	_, err := runCommand(t, "evaluate", "--config", configPath, "--no-plot")
	require.NoError(t, err)

	_, statErr := os.Stat(plotPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestEvaluateCommand_MissingConfig(t *testing.T) {
	_, err := runCommand(t, "evaluate", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestEvaluateCommand_BadFold(t *testing.T) {
	dir := t.TempDir()
	fold := writeFile(t, dir, "fold.csv", "label,score\n1,0.9\n1,0.8\n")
	configPath := writeFile(t, dir, ".vdao-eval.yaml", fmt.Sprintf("folds:\n  - %s\n", fold))

	_, err := runCommand(t, "evaluate", "--config", configPath, "--no-plot")
	assert.ErrorContains(t, err, "single class")
}
