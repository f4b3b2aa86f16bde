package shear

import (
	"math"
	"sort"

	"github.com/WSDOT/PGSuper-sub013/internal/artifact"
	"github.com/WSDOT/PGSuper-sub013/internal/lrfd"
)

// PointCheck is the stirrup check of one station for one limit state
type PointCheck struct {
	X                float64 // mm from girder start
	AvsReqd          float64 // vertical Av/s required (mm²/mm)
	Mandatory        bool    // minimum transverse reinforcement required
	StrutTieRequired bool    // shear stress exceeds the sectional model limit
	VuOverFc         float64 // shear stress ratio vu/f'c
	HorizAvsReqd     float64 // horizontal interface Av/s required (mm²/mm)
	SMax             float64 // maximum stirrup spacing (mm)
}

// LimitStateChecks holds the point checks of one limit state, ordered by station
type LimitStateChecks struct {
	LimitState lrfd.LimitState
	Points     []PointCheck
}

// SplittingCheck describes the splitting resistance requirement at both ends
type SplittingCheck struct {
	Applicable bool
	Force      [2]float64 // Pr at start and end (N)
	ZoneLength [2]float64 // h/4 at start and end (mm)
	Fs         float64    // stress in splitting reinforcement (MPa)
}

// AvsRequired returns the largest splitting Av/s demand of the two ends
func (s SplittingCheck) AvsRequired() float64 {
	var req float64
	for i := 0; i < 2; i++ {
		if s.ZoneLength[i] > 0 && s.Fs > 0 {
			req = math.Max(req, s.Force[i]/(s.Fs*s.ZoneLength[i]))
		}
	}
	return req
}

// ConfinementCheck describes the confinement requirement at both ends
type ConfinementCheck struct {
	Applicable bool
	MinBar     lrfd.BarSize
	MaxSpacing float64    // mm
	ZoneLength [2]float64 // required zone length at start and end (mm)
}

// CheckSet is everything the analysis reports for one stirrup design pass
type CheckSet struct {
	LimitStates         []LimitStateChecks
	Splitting           SplittingCheck
	Confinement         ConfinementCheck
	MaxConnectorSpacing float64 // smaller of the two girder ends (mm)
}

// LongReinfResult is the longitudinal reinforcement for shear check at a station
type LongReinfResult struct {
	Applicable bool // flexural tension is on the bottom of the girder
	Passed     bool
	Demand     float64 // required tension force (N)
	Capacity   float64 // provided tension force (N)
	Fps        float64 // strand stress at nominal resistance, zero when there are no strands (MPa)
	Fpx        float64 // strand stress available at the station after development (MPa)
}

// LongReinfShearChecker evaluates the longitudinal reinforcement for shear
// requirement for a trial configuration
type LongReinfShearChecker interface {
	CheckLongReinfShear(ls lrfd.LimitState, x float64, cfg artifact.Config) (LongReinfResult, error)
}

// StationInputs are the girder locations that must be design stations
type StationInputs struct {
	GirderLength     float64
	Height           float64
	FaceOfSupport    [2]float64 // stations of the support faces
	CriticalSections [2]float64
	ConnectionLength [2]float64 // girder end to bearing centerline
	ConfinementZone  [2]float64 // zone lengths from each end
	SplittingZone    [2]float64
}

// DesignStations merges the analysis stations with the locations where
// stirrup zones are likely to start or end, sorted and without duplicates.
func DesignStations(base []float64, in StationInputs) []float64 {
	L := in.GirderLength
	xs := append([]float64(nil), base...)
	xs = append(xs, 0, L/2, L)
	xs = append(xs, in.CriticalSections[0], in.CriticalSections[1])

	for _, k := range []float64{2, 3, 4} {
		xs = append(xs, in.FaceOfSupport[0]+k*in.Height, in.FaceOfSupport[1]-k*in.Height)
	}
	for i := 0; i < 2; i++ {
		if in.ConfinementZone[i] > 0 {
			xs = append(xs, endStation(i, in.ConfinementZone[i], L))
		}
		if in.SplittingZone[i] > 0 {
			xs = append(xs, endStation(i, in.SplittingZone[i], L))
		}
	}
	if in.ConnectionLength[0] > 0 || in.ConnectionLength[1] > 0 {
		xs = append(xs, in.FaceOfSupport[0], in.FaceOfSupport[1])
	}

	sort.Float64s(xs)
	out := xs[:0]
	for _, x := range xs {
		if x < -lrfd.SpacingTol || x > L+lrfd.SpacingTol {
			continue
		}
		if len(out) > 0 && math.Abs(out[len(out)-1]-x) < 1.0 {
			continue
		}
		out = append(out, x)
	}
	return out
}

// endStation converts a distance from girder end i into a station
func endStation(i int, d, L float64) float64 {
	if i == 0 {
		return d
	}
	return L - d
}
