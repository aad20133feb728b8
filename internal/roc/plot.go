package roc

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Plot renders the mean ROC curve with a shaded ±1 standard-deviation band
// and writes it to path. When includeFolds is set, each fold's raw curve is
// overlaid with its AUC in the legend. The output format follows the file
// extension; a path without one gets ".eps".
func (a *Aggregator) Plot(path string, includeFolds bool) error {
	meanTPR, meanAUC, err := a.Mean()
	if err != nil {
		return err
	}
	stdTPR, stdAUC, err := a.Std()
	if err != nil {
		return err
	}

	if filepath.Ext(path) == "" {
		path += ".eps"
	}

	p := plot.New()
	p.Title.Text = "Receiver operating characteristic"
	p.X.Label.Text = "False Positive Rate"
	p.Y.Label.Text = "True Positive Rate"
	p.X.Min, p.X.Max = -0.05, 1.05
	p.Y.Min, p.Y.Max = -0.05, 1.05
	p.Legend.Top = false
	p.Legend.Left = false

	band, err := plotter.NewPolygon(a.stdBand(meanTPR, stdTPR))
	if err != nil {
		return fmt.Errorf("roc: build std band: %w", err)
	}
	band.Color = color.NRGBA{R: 128, G: 128, B: 128, A: 51}
	band.LineStyle.Width = 0
	p.Add(band)
	p.Legend.Add("± 1 std. dev.", band)

	if includeFolds {
		for i, fold := range a.folds {
			line, err := plotter.NewLine(xyPoints(fold.FPR, fold.TPR))
			if err != nil {
				return fmt.Errorf("roc: build fold %d line: %w", i, err)
			}
			line.Width = vg.Points(1)
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(fmt.Sprintf("ROC fold %d (AUC = %0.2f)", i, fold.AUC), line)
		}
	}

	meanLine, err := plotter.NewLine(xyPoints(a.gridFPR, meanTPR))
	if err != nil {
		return fmt.Errorf("roc: build mean line: %w", err)
	}
	meanLine.Width = vg.Points(2)
	meanLine.Color = color.NRGBA{B: 255, A: 255}
	p.Add(meanLine)
	p.Legend.Add(fmt.Sprintf("Mean ROC (AUC = %0.2f ± %0.2f)", meanAUC, stdAUC), meanLine)

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("roc: save plot %s: %w", path, err)
	}
	return nil
}

// stdBand builds the polygon tracing mean+std left to right, then mean-std
// back, clipped to [0, 1].
func (a *Aggregator) stdBand(meanTPR, stdTPR []float64) plotter.XYs {
	band := make(plotter.XYs, 0, 2*GridSize)
	for i, x := range a.gridFPR {
		band = append(band, plotter.XY{X: x, Y: math.Min(meanTPR[i]+stdTPR[i], 1)})
	}
	for i := GridSize - 1; i >= 0; i-- {
		band = append(band, plotter.XY{X: a.gridFPR[i], Y: math.Max(meanTPR[i]-stdTPR[i], 0)})
	}
	return band
}

func xyPoints(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}
	return pts
}
