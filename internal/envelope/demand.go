package envelope

import (
	"math"
	"sort"
)

// MandatoryAvs is the nominal demand assigned to stations where transverse
// reinforcement is required regardless of the computed demand (mm²/mm).
const MandatoryAvs = 1.0e-4

// NoiseTol floors computed demand to zero
const NoiseTol = 1.0e-5

// DemandPoint is the required Av/s at one station
type DemandPoint struct {
	X         float64 // mm from girder start
	Avs       float64 // mm²/mm
	Mandatory bool
}

// CriticalSectionZone bounds the stations used for demand aggregation.
// Stations before Left or after Right lie between a support and its
// critical section and are controlled by the critical section demand.
type CriticalSectionZone struct {
	Left  float64
	Right float64
}

// Excludes reports whether x lies outside the critical sections
func (z CriticalSectionZone) Excludes(x float64) bool {
	return x < z.Left-xTol || x > z.Right+xTol
}

// Options controls envelope construction
type Options struct {
	GirderLength float64
	Critical     CriticalSectionZone
	// Mirror the demand about midspan and make it non-decreasing toward the
	// ends; used for symmetric layouts and from-scratch designs.
	Mirror bool
	// ConnectionLength is the distance from each girder end to its bearing.
	// Midspan lies halfway between the bearings.
	ConnectionLength [2]float64
}

// Midspan returns the station halfway between the bearings
func (o Options) Midspan() float64 {
	return (o.ConnectionLength[0] + o.GirderLength - o.ConnectionLength[1]) / 2
}

// Build processes raw demand into a design envelope: points outside the
// critical sections are dropped, noise is floored to zero and mandatory
// points receive a nominal demand. Stations repeated across limit states keep
// the largest value. When mirroring, the curve is enveloped with its mirror
// image and forced to be non-decreasing from midspan toward each end.
// The result is stretched flat to the girder ends.
func Build(points []DemandPoint, opt Options) *Function {
	L := opt.GirderLength

	f := &Function{}
	for _, p := range points {
		if opt.Critical.Excludes(p.X) {
			continue
		}
		y := p.Avs
		if y < NoiseTol {
			y = 0
		}
		if p.Mandatory && y < MandatoryAvs {
			y = MandatoryAvs
		}
		if f.has(p.X) {
			y = math.Max(y, f.at(p.X))
		}
		f.AddPoint(p.X, y)
	}

	if len(f.pts) == 0 {
		return NewFunction(Point{X: 0, Y: 0}, Point{X: L, Y: 0})
	}

	if opt.Mirror {
		mid := opt.Midspan()
		lo, hi, _ := f.Range()
		m := f.MirrorAboutY(mid)
		m.ResetOuterRange(lo, hi)
		f = Max(f, m)
		f.sweepFromMidspan(mid)
	}

	f.ResetOuterRange(0, L)
	return f
}

// has reports whether x is a breakpoint
func (f *Function) has(x float64) bool {
	i := sort.Search(len(f.pts), func(i int) bool { return f.pts[i].X >= x-xTol })
	return i < len(f.pts) && math.Abs(f.pts[i].X-x) <= xTol
}

// sweepFromMidspan makes values non-decreasing from midspan outward toward
// both ends. A breakpoint is placed at midspan so both halves pivot on it.
func (f *Function) sweepFromMidspan(mid float64) {
	lo, hi := f.pts[0].X, f.pts[len(f.pts)-1].X
	if mid > lo && mid < hi {
		f.AddPoint(mid, f.at(mid))
	}
	pts := f.pts
	n := len(pts)
	k := n - 1
	for i, p := range pts {
		if p.X >= mid-xTol {
			k = i
			break
		}
	}
	for i := k - 1; i >= 0; i-- {
		pts[i].Y = math.Max(pts[i].Y, pts[i+1].Y)
	}
	for i := k + 1; i < n; i++ {
		pts[i].Y = math.Max(pts[i].Y, pts[i-1].Y)
	}
}
