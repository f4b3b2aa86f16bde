package diagram

import (
	"github.com/WSDOT/PGSuper-sub013/internal/envelope"
	"github.com/WSDOT/PGSuper-sub013/internal/stirrup"
)

// DemandSeries is the stirrup demand and supply sampled along the girder
type DemandSeries struct {
	X          []float64 // mm from girder start
	Vertical   []float64 // required Av/s (mm²/mm)
	Horizontal []float64 // required interface Av/s (mm²/mm)
	Provided   []float64 // primary Av/s of the layout (mm²/mm)
}

// SampleDemand evaluates the demand envelopes and the layout at n+1 equally
// spaced stations. Either envelope may be nil.
func SampleDemand(vert, horiz *envelope.Function, l stirrup.Layout, girderLength float64, n int) DemandSeries {
	n = max(n, 1)
	s := DemandSeries{
		X:          make([]float64, n+1),
		Vertical:   make([]float64, n+1),
		Horizontal: make([]float64, n+1),
		Provided:   make([]float64, n+1),
	}
	for i := 0; i <= n; i++ {
		x := girderLength * float64(i) / float64(n)
		s.X[i] = x
		s.Vertical[i] = valueAt(vert, x)
		s.Horizontal[i] = valueAt(horiz, x)
		s.Provided[i] = l.AvsAt(x, girderLength)
	}
	return s
}

func valueAt(f *envelope.Function, x float64) float64 {
	if f == nil || f.Len() == 0 {
		return 0
	}
	return f.MaxInRange(x, x)
}
