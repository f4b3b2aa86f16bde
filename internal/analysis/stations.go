package analysis

import (
	"math"

	"github.com/WSDOT/PGSuper-sub013/internal/artifact"
	"github.com/WSDOT/PGSuper-sub013/internal/lrfd"
	"github.com/WSDOT/PGSuper-sub013/internal/shear"
)

// baseDivisions is the number of equal divisions of the girder used as
// analysis stations
const baseDivisions = 20

// CriticalSectionRule returns the distance from the face of support to the
// shear critical section
type CriticalSectionRule func(dv, cotTheta float64) float64

// Before 2004 the critical section is the larger of dv and 0.5 dv cot θ.
func criticalSection1998(dv, cotTheta float64) float64 {
	return math.Max(dv, 0.5*dv*cotTheta)
}

func criticalSection2004(dv, _ float64) float64 { return dv }

var criticalSectionRules = map[lrfd.Edition]CriticalSectionRule{
	lrfd.Edition1998: criticalSection1998,
}

// CriticalSectionRuleFor selects the critical section rule of an edition
func CriticalSectionRuleFor(e lrfd.Edition) CriticalSectionRule {
	if r, ok := criticalSectionRules[e]; ok {
		return r
	}
	return criticalSection2004
}

// CriticalSections returns the stations of the left and right shear
// critical sections for the trial configuration
func (m *Model) CriticalSections(cfg artifact.Config) [2]float64 {
	face := m.g.FaceOfSupport()
	d := m.rule(m.Section(cfg).Dv, cotTheta)
	mid := m.g.Length / 2
	return [2]float64{
		math.Min(face[0]+d, mid),
		math.Max(face[1]-d, mid),
	}
}

// BaseStations are the equal divisions of the girder plus the bearings
func (m *Model) BaseStations() []float64 {
	L := m.g.Length
	xs := make([]float64, 0, baseDivisions+3)
	for i := 0; i <= baseDivisions; i++ {
		xs = append(xs, L*float64(i)/baseDivisions)
	}
	b := m.g.Bearings()
	return append(xs, b[0], b[1])
}

// DesignStations returns the stations for a stirrup design pass
func (m *Model) DesignStations(css [2]float64) []float64 {
	g := m.g
	cz, sz := m.confinementZone(), m.splittingZone()
	return shear.DesignStations(m.BaseStations(), shear.StationInputs{
		GirderLength:     g.Length,
		Height:           m.props.Height,
		FaceOfSupport:    g.FaceOfSupport(),
		CriticalSections: css,
		ConnectionLength: [2]float64{g.Supports.Start.ConnectionLength, g.Supports.End.ConnectionLength},
		ConfinementZone:  [2]float64{cz, cz},
		SplittingZone:    [2]float64{sz, sz},
	})
}
