package diagram

import (
	"image/color"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	demandColor    = color.RGBA{R: 200, G: 30, B: 30, A: 255}
	providedColor  = color.RGBA{R: 0, G: 100, B: 0, A: 255}
	interfaceColor = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	boundaryColor  = color.Gray{Y: 160}
)

// ExportDemandDiagram plots the required and provided Av/s along the girder
// with the zone boundaries. The format follows the file extension (png, svg,
// pdf); any other extension gets ".png" appended. The written path is
// returned.
func ExportDemandDiagram(s DemandSeries, extents []ZoneExtent, title, filename string) (string, error) {
	if len(s.X) < 2 {
		return "", errors.New("diagram: demand series needs at least two stations")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Distance from girder start (mm)"
	p.Y.Label.Text = "Av/s (mm²/mm)"
	p.X.Min = s.X[0]
	p.X.Max = s.X[len(s.X)-1]
	p.Y.Min = 0
	p.Legend.Top = true

	demand, err := plotter.NewLine(xys(s.X, s.Vertical))
	if err != nil {
		return "", err
	}
	demand.LineStyle.Width = vg.Points(2)
	demand.LineStyle.Color = demandColor
	p.Add(demand)
	p.Legend.Add("required", demand)

	provided, err := plotter.NewLine(providedSteps(s, extents))
	if err != nil {
		return "", err
	}
	provided.LineStyle.Width = vg.Points(1.5)
	provided.LineStyle.Color = providedColor
	p.Add(provided)
	p.Legend.Add("provided", provided)

	if hasValues(s.Horizontal) {
		horiz, err := plotter.NewLine(xys(s.X, s.Horizontal))
		if err != nil {
			return "", err
		}
		horiz.LineStyle.Width = vg.Points(1)
		horiz.LineStyle.Color = interfaceColor
		horiz.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(horiz)
		p.Legend.Add("interface", horiz)
	}

	top := maxOf(s.Vertical, s.Provided, s.Horizontal) * 1.1
	for _, e := range extents[min(1, len(extents)):] {
		b, err := plotter.NewLine(plotter.XYs{{X: e.Start, Y: 0}, {X: e.Start, Y: top}})
		if err != nil {
			return "", err
		}
		b.LineStyle.Color = boundaryColor
		b.LineStyle.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
		p.Add(b)
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
	default:
		filename += ".png"
	}
	if dir := filepath.Dir(filename); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", errors.Wrap(err, "create diagram directory")
		}
	}
	if err := p.Save(10*vg.Inch, 5*vg.Inch, filename); err != nil {
		return "", errors.Wrapf(err, "save %s", filename)
	}
	return filename, nil
}

func xys(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i] = plotter.XY{X: x[i], Y: y[i]}
	}
	return pts
}

// providedSteps draws the provided Av/s as a step function over the zone
// extents, falling back to the sampled values when there are no zones
func providedSteps(s DemandSeries, extents []ZoneExtent) plotter.XYs {
	if len(extents) == 0 {
		return xys(s.X, s.Provided)
	}
	pts := make(plotter.XYs, 0, 2*len(extents))
	for _, e := range extents {
		pts = append(pts, plotter.XY{X: e.Start, Y: e.Avs}, plotter.XY{X: e.End, Y: e.Avs})
	}
	return pts
}

func maxOf(series ...[]float64) float64 {
	var m float64
	for _, s := range series {
		for _, y := range s {
			m = max(m, y)
		}
	}
	if m == 0 {
		return 1
	}
	return m
}
