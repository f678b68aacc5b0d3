package main

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotSteps writes a plot of SCC energy against iteration to
// filename. The image format follows the file extension
func PlotSteps(steps []Step, filename string) error {
	if len(steps) == 0 {
		return fmt.Errorf("no iterations to plot")
	}
	pts := make(plotter.XYs, len(steps))
	for i, s := range steps {
		pts[i].X = float64(s.Iter)
		pts[i].Y = s.Energy
	}
	p := plot.New()
	p.Title.Text = "SCC convergence"
	p.X.Label.Text = "Iteration"
	p.Y.Label.Text = "Energy / Eh"
	p.Add(plotter.NewGrid())
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	p.Add(line, points)
	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}
