// Package dataset loads cross-validation prediction dumps from CSV files.
// Each fold file has a header row naming a "label" and a "score" column,
// followed by one prediction per row.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// Fold holds one fold's ground-truth labels and raw prediction scores.
type Fold struct {
	Name   string
	Labels []float64
	Scores []float64
}

// LoadFold reads a single fold file. Labels must be 0 or 1; scores are any
// finite floats.
func LoadFold(path string) (Fold, error) {
	f, err := os.Open(path)
	if err != nil {
		return Fold{}, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return Fold{}, fmt.Errorf("dataset: parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return Fold{}, fmt.Errorf("dataset: %s is empty (no header row)", path)
	}

	labelCol, scoreCol := -1, -1
	for i, h := range records[0] {
		switch h {
		case "label":
			labelCol = i
		case "score":
			scoreCol = i
		}
	}
	if labelCol < 0 || scoreCol < 0 {
		return Fold{}, fmt.Errorf("dataset: %s: header must name label and score columns, got %v", path, records[0])
	}

	fold := Fold{
		Name:   path,
		Labels: make([]float64, 0, len(records)-1),
		Scores: make([]float64, 0, len(records)-1),
	}
	for i, record := range records[1:] {
		label, err := strconv.ParseFloat(record[labelCol], 64)
		if err != nil {
			return Fold{}, fmt.Errorf("dataset: %s row %d: bad label %q: %w", path, i+2, record[labelCol], err)
		}
		if label != 0 && label != 1 {
			return Fold{}, fmt.Errorf("dataset: %s row %d: label must be 0 or 1, got %v", path, i+2, label)
		}
		score, err := strconv.ParseFloat(record[scoreCol], 64)
		if err != nil {
			return Fold{}, fmt.Errorf("dataset: %s row %d: bad score %q: %w", path, i+2, record[scoreCol], err)
		}
		fold.Labels = append(fold.Labels, label)
		fold.Scores = append(fold.Scores, score)
	}
	if len(fold.Labels) == 0 {
		return Fold{}, fmt.Errorf("dataset: %s has no prediction rows", path)
	}
	return fold, nil
}

// LoadFolds reads several fold files concurrently, preserving the input
// order. The first failure cancels the remaining loads.
func LoadFolds(paths []string) ([]Fold, error) {
	folds := make([]Fold, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		g.Go(func() error {
			fold, err := LoadFold(path)
			if err != nil {
				return err
			}
			folds[i] = fold
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return folds, nil
}
