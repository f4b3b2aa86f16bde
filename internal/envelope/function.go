// Package envelope provides piecewise-linear demand functions along a girder.
package envelope

import (
	"errors"
	"math"
	"sort"
)

// ErrOutOfRange is returned when a function is evaluated outside its breakpoints
var ErrOutOfRange = errors.New("envelope: station out of range")

// ErrEmpty is returned when a function has no breakpoints
var ErrEmpty = errors.New("envelope: function has no points")

const xTol = 1.0e-6

// Point is one breakpoint of a piecewise-linear function
type Point struct {
	X float64
	Y float64
}

// Function is a piecewise-linear function defined by breakpoints sorted by X
type Function struct {
	pts []Point
}

// NewFunction builds a function from unordered points. Points sharing the
// same X keep the last value given.
func NewFunction(pts ...Point) *Function {
	f := &Function{}
	for _, p := range pts {
		f.AddPoint(p.X, p.Y)
	}
	return f
}

// AddPoint inserts a breakpoint, replacing any existing point at x
func (f *Function) AddPoint(x, y float64) {
	i := sort.Search(len(f.pts), func(i int) bool { return f.pts[i].X >= x-xTol })
	if i < len(f.pts) && math.Abs(f.pts[i].X-x) <= xTol {
		f.pts[i].Y = y
		return
	}
	f.pts = append(f.pts, Point{})
	copy(f.pts[i+1:], f.pts[i:])
	f.pts[i] = Point{X: x, Y: y}
}

// Points returns a copy of the breakpoints
func (f *Function) Points() []Point {
	return append([]Point(nil), f.pts...)
}

// Len returns the number of breakpoints
func (f *Function) Len() int { return len(f.pts) }

// Range returns the first and last breakpoint stations
func (f *Function) Range() (float64, float64, error) {
	if len(f.pts) == 0 {
		return 0, 0, ErrEmpty
	}
	return f.pts[0].X, f.pts[len(f.pts)-1].X, nil
}

// Evaluate returns the interpolated value at x
func (f *Function) Evaluate(x float64) (float64, error) {
	n := len(f.pts)
	if n == 0 {
		return 0, ErrEmpty
	}
	if x < f.pts[0].X-xTol || x > f.pts[n-1].X+xTol {
		return 0, ErrOutOfRange
	}
	return f.at(x), nil
}

// at interpolates with flat extension beyond the ends
func (f *Function) at(x float64) float64 {
	n := len(f.pts)
	if x <= f.pts[0].X {
		return f.pts[0].Y
	}
	if x >= f.pts[n-1].X {
		return f.pts[n-1].Y
	}
	i := sort.Search(n, func(i int) bool { return f.pts[i].X >= x })
	p0, p1 := f.pts[i-1], f.pts[i]
	if p1.X-p0.X <= xTol {
		return math.Max(p0.Y, p1.Y)
	}
	return p0.Y + (x-p0.X)*(p1.Y-p0.Y)/(p1.X-p0.X)
}

// MaxInRange returns the largest value of the function over [a, b].
// Bounds outside the function range are clamped.
func (f *Function) MaxInRange(a, b float64) float64 {
	if len(f.pts) == 0 {
		return 0
	}
	if a > b {
		a, b = b, a
	}
	m := math.Max(f.at(a), f.at(b))
	for _, p := range f.pts {
		if p.X > a && p.X < b {
			m = math.Max(m, p.Y)
		}
	}
	return m
}

// MirrorAboutY returns the function reflected about the vertical line x = xm
func (f *Function) MirrorAboutY(xm float64) *Function {
	out := &Function{pts: make([]Point, len(f.pts))}
	n := len(f.pts)
	for i, p := range f.pts {
		out.pts[n-1-i] = Point{X: 2*xm - p.X, Y: p.Y}
	}
	return out
}

// ResetOuterRange trims the function to [a, b], extending the end values
// flat when the current range is narrower.
func (f *Function) ResetOuterRange(a, b float64) {
	if len(f.pts) == 0 {
		return
	}
	ya, yb := f.at(a), f.at(b)
	kept := f.pts[:0]
	for _, p := range f.pts {
		if p.X > a+xTol && p.X < b-xTol {
			kept = append(kept, p)
		}
	}
	pts := make([]Point, 0, len(kept)+2)
	pts = append(pts, Point{X: a, Y: ya})
	pts = append(pts, kept...)
	pts = append(pts, Point{X: b, Y: yb})
	f.pts = pts
}

// Max returns the pointwise maximum of two functions over the union of their
// breakpoints, including the stations where they cross.
func Max(f, g *Function) *Function {
	if len(f.pts) == 0 {
		return NewFunction(g.pts...)
	}
	if len(g.pts) == 0 {
		return NewFunction(f.pts...)
	}

	xs := make([]float64, 0, len(f.pts)+len(g.pts))
	for _, p := range f.pts {
		xs = append(xs, p.X)
	}
	for _, p := range g.pts {
		xs = append(xs, p.X)
	}
	sort.Float64s(xs)

	out := &Function{}
	for i, x := range xs {
		if i > 0 {
			x0 := xs[i-1]
			if x-x0 > xTol {
				d0 := f.at(x0) - g.at(x0)
				d1 := f.at(x) - g.at(x)
				if d0*d1 < 0 {
					xc := x0 + (x-x0)*d0/(d0-d1)
					out.AddPoint(xc, f.at(xc))
				}
			}
		}
		out.AddPoint(x, math.Max(f.at(x), g.at(x)))
	}
	return out
}
