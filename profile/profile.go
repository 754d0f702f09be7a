// Package profile samples grid-layer occupancy along a straight line across
// the floor surface and charts it.
//
// A profile is the one-dimensional view of what the compositor sees: for
// each point on the segment it records the minor, major and axis
// occupancy that floor.EvaluateLayers returns. Profiles make thickness and
// anti-aliasing changes visible without rendering a whole frame.
//
//	cfg := floor.DefaultConfig()
//	p := profile.Sample(cfg, floor.V2(0.49, 0.5), floor.V2(0.51, 0.5), floor.V2(1e-4, 1e-4), 512)
//	fmt.Println(p.Coverage())
//	_ = p.Plot("profile.png")
package profile

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/gogpu/floor"
)

// MinSamples is the smallest number of points a profile holds: both ends
// of the segment.
const MinSamples = 2

// Profile holds layer occupancy sampled at evenly spaced points of a
// segment. Position is the fraction of the way along the segment, in [0, 1].
type Profile struct {
	From, To floor.Vec2
	Deriv    floor.Vec2

	Position []float64
	Minor    []float64
	Major    []float64
	Axis     []float64
}

// Sample evaluates cfg at n points from from to to inclusive, using the
// same per-pixel derivative at every point. n below MinSamples is raised to
// MinSamples.
func Sample(cfg *floor.Config, from, to, deriv floor.Vec2, n int) *Profile {
	if n < MinSamples {
		n = MinSamples
	}
	p := &Profile{
		From:     from,
		To:       to,
		Deriv:    deriv.Abs(),
		Position: make([]float64, n),
		Minor:    make([]float64, n),
		Major:    make([]float64, n),
		Axis:     make([]float64, n),
	}
	span := to.Sub(from)
	for i := range n {
		t := float64(i) / float64(n-1)
		l := floor.EvaluateLayers(floor.NewSample(from.Add(span.Mul(t)), deriv), cfg)
		p.Position[i] = t
		p.Minor[i] = l.Minor
		p.Major[i] = l.Major
		p.Axis[i] = l.Axis
	}
	return p
}

// Len returns the number of sampled points.
func (p *Profile) Len() int {
	return len(p.Position)
}

// Coverage returns the mean occupancy of each layer along the segment.
func (p *Profile) Coverage() floor.Layers {
	n := float64(p.Len())
	if n == 0 {
		return floor.Layers{}
	}
	return floor.Layers{
		Minor: floats.Sum(p.Minor) / n,
		Major: floats.Sum(p.Major) / n,
		Axis:  floats.Sum(p.Axis) / n,
	}
}

// Peak returns the highest occupancy of each layer along the segment.
func (p *Profile) Peak() floor.Layers {
	if p.Len() == 0 {
		return floor.Layers{}
	}
	return floor.Layers{
		Minor: floats.Max(p.Minor),
		Major: floats.Max(p.Major),
		Axis:  floats.Max(p.Axis),
	}
}

// Layer colors of the chart.
var (
	minorLineColor = color.RGBA{R: 5, G: 189, B: 180, A: 255}
	majorLineColor = color.RGBA{R: 10, G: 100, B: 179, A: 255}
	axisLineColor  = color.RGBA{R: 200, G: 40, B: 40, A: 255}
)

// Chart builds a line chart with one series per layer.
func (p *Profile) Chart() (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("Floor profile (%.4g, %.4g) to (%.4g, %.4g)", p.From.X, p.From.Y, p.To.X, p.To.Y)
	pl.X.Label.Text = "Position along segment"
	pl.Y.Label.Text = "Occupancy"
	pl.Y.Min = 0
	pl.Y.Max = 1

	series := []struct {
		label  string
		values []float64
		color  color.Color
	}{
		{"minor", p.Minor, minorLineColor},
		{"major", p.Major, majorLineColor},
		{"axis", p.Axis, axisLineColor},
	}
	for _, s := range series {
		pts := make(plotter.XYs, p.Len())
		for i := range pts {
			pts[i].X = p.Position[i]
			pts[i].Y = s.values[i]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("profile: %s line: %w", s.label, err)
		}
		line.Color = s.color
		line.Width = vg.Points(1)
		pl.Add(line)
		pl.Legend.Add(s.label, line)
	}
	pl.Legend.Top = true
	pl.Legend.Left = false
	return pl, nil
}

// Plot writes the chart to path. The format follows the file extension
// (png, svg, pdf and the other formats gonum/plot supports).
func (p *Profile) Plot(path string) error {
	pl, err := p.Chart()
	if err != nil {
		return err
	}
	if err := pl.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("profile: save %s: %w", path, err)
	}
	floor.Logger().Debug("floor: profile chart written", "path", path, "samples", p.Len())
	return nil
}
