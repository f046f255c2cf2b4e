// Package visual renders analyzer output as plots and images.
package visual

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// LinePlot saves a line plot of ordered values (autocorrelogram lags,
// spectrum bins) to a file. The format follows the file extension
// (png, svg, pdf, ...).
func LinePlot(title, xlabel, ylabel string, ys []float64, path string) error {
	p, err := plot.New()
	if err != nil {
		return err
	}
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel

	pts := make(plotter.XYs, len(ys))
	for i, y := range ys {
		pts[i].X = float64(i)
		pts[i].Y = y
	}
	if err := plotutil.AddLinePoints(p, title, pts); err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}
