package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFold(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFold(t *testing.T) {
	path := writeFold(t, "fold0.csv", "label,score\n0,0.1\n0,0.4\n1,0.35\n1,0.8\n")

	fold, err := LoadFold(path)
	require.NoError(t, err)
	assert.Equal(t, path, fold.Name)
	assert.Equal(t, []float64{0, 0, 1, 1}, fold.Labels)
	assert.Equal(t, []float64{0.1, 0.4, 0.35, 0.8}, fold.Scores)
}

func TestLoadFold_ColumnOrderIndependent(t *testing.T) {
	path := writeFold(t, "fold0.csv", "score,label\n0.9,1\n0.2,0\n")

	fold, err := LoadFold(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, fold.Labels)
	assert.Equal(t, []float64{0.9, 0.2}, fold.Scores)
}

func TestLoadFold_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"missing_columns", "a,b\n1,2\n", "header must name label and score"},
		{"bad_label", "label,score\nx,0.5\n", "bad label"},
		{"non_binary_label", "label,score\n2,0.5\n", "label must be 0 or 1"},
		{"bad_score", "label,score\n1,oops\n", "bad score"},
		{"no_rows", "label,score\n", "no prediction rows"},
		{"empty_file", "", "no header row"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFold(t, "fold.csv", tt.content)
			_, err := LoadFold(path)
			assert.ErrorContains(t, err, tt.wantMsg)
		})
	}
}

func TestLoadFold_MissingFile(t *testing.T) {
	_, err := LoadFold(filepath.Join(t.TempDir(), "absent.csv"))
	assert.ErrorContains(t, err, "open")
}

func TestLoadFolds_PreservesOrder(t *testing.T) {
	a := writeFold(t, "a.csv", "label,score\n1,0.9\n0,0.1\n")
	b := writeFold(t, "b.csv", "label,score\n0,0.3\n1,0.7\n")

	folds, err := LoadFolds([]string{a, b})
	require.NoError(t, err)
	require.Len(t, folds, 2)
	assert.Equal(t, a, folds[0].Name)
	assert.Equal(t, b, folds[1].Name)
}

func TestLoadFolds_FailsOnAnyBadFold(t *testing.T) {
	good := writeFold(t, "good.csv", "label,score\n1,0.9\n0,0.1\n")
	bad := writeFold(t, "bad.csv", "label,score\n7,0.9\n")

	_, err := LoadFolds([]string{good, bad})
	assert.ErrorContains(t, err, "label must be 0 or 1")
}
