package analysis

import (
	"math"

	"github.com/WSDOT/PGSuper-sub013/internal/artifact"
	"github.com/WSDOT/PGSuper-sub013/internal/lrfd"
)

// rebarCover is the distance from the girder bottom to added longitudinal
// rebar (mm)
const rebarCover = 50.0

// Section holds the flexural and shear properties of the composite section
// at a trial configuration
type Section struct {
	Height    float64 // girder (mm)
	Composite float64 // girder plus deck (mm)
	Bv        float64 // shear width (mm)
	Dp        float64 // strand depth from the top of the composite section (mm)
	Ds        float64 // added rebar depth (mm)
	De        float64 // effective depth of the tension force (mm)
	Dv        float64 // effective shear depth (mm)

	Aps float64 // mm²
	As  float64 // mm²
	Fpe float64 // effective prestress after losses (MPa)

	// Nominal flexural resistance
	C   float64 // neutral axis depth (mm)
	A   float64 // stress block depth (mm)
	Fps float64 // MPa
	Mn  float64 // N·mm
}

// Section computes the section at a trial configuration
func (m *Model) Section(cfg artifact.Config) Section {
	g := m.g
	s := Section{
		Height:    m.props.Height,
		Composite: m.props.Height,
		Bv:        m.props.MinWebWidth,
		Aps:       float64(cfg.Strands) * g.Strands.Area,
		As:        cfg.LongRebarArea,
	}
	if g.Deck != nil {
		s.Composite += g.Deck.Thickness
	}
	s.Dp = s.Composite - g.Strands.Centroid
	s.Ds = s.Composite - rebarCover
	s.Fpe = m.effectivePrestress(cfg.Strands, cfg.Fci)

	m.nominalFlexure(&s, cfg.Fc)

	tp := s.Aps * s.Fps
	ts := s.As * g.Materials.RebarFy
	s.De = s.Dp
	if tp+ts > 0 {
		s.De = (tp*s.Dp + ts*s.Ds) / (tp + ts)
	}
	s.Dv = math.Max(s.De-s.A/2, math.Max(0.9*s.De, 0.72*s.Composite))
	return s
}

// nominalFlexure finds the neutral axis by force equilibrium and computes
// the nominal moment about the compression resultant
func (m *Model) nominalFlexure(s *Section, fc float64) {
	fy := m.g.Materials.RebarFy
	beta1 := lrfd.Beta1(fc)

	lo, hi := 0.0, s.Composite
	for iter := 0; iter < 60; iter++ {
		c := (lo + hi) / 2
		t := s.Aps*lrfd.StrandFps(c, s.Dp) + s.As*fy
		area, _ := m.compressionBlock(beta1 * c)
		if 0.85*fc*area < t {
			lo = c
		} else {
			hi = c
		}
		if hi-lo < 0.01 {
			break
		}
	}

	s.C = (lo + hi) / 2
	s.A = beta1 * s.C
	s.Fps = lrfd.StrandFps(s.C, s.Dp)
	_, yc := m.compressionBlock(s.A)
	s.Mn = s.Aps*s.Fps*(s.Dp-yc) + s.As*fy*(s.Ds-yc)
}

// compressionBlock integrates the composite section width from the top
// down to depth a and returns the area and the depth of its centroid
func (m *Model) compressionBlock(a float64) (area, centroid float64) {
	if a <= 0 {
		return 0, 0
	}
	const numSteps = 100
	dy := a / numSteps

	var moment float64
	for i := 0; i < numSteps; i++ {
		d1 := float64(i) * dy
		d2 := float64(i+1) * dy
		dA := (m.widthFromTop(d1) + m.widthFromTop(d2)) / 2 * dy
		area += dA
		moment += dA * (d1 + d2) / 2
	}
	if area > 0 {
		return area, moment / area
	}
	return 0, a / 2
}

// widthFromTop is the width of the composite section at a depth below the
// top of the deck
func (m *Model) widthFromTop(depth float64) float64 {
	if d := m.g.Deck; d != nil {
		if depth < d.Thickness {
			return d.Width
		}
		depth -= d.Thickness
	}
	if depth >= m.props.Height {
		return 0
	}
	return m.g.WidthAtDepth(depth)
}

// effectivePrestress is the strand stress after elastic shortening at
// release and the time-dependent loss fraction
func (m *Model) effectivePrestress(n int, fci float64) float64 {
	g := m.g
	fpj := lrfd.StrandJacking * lrfd.StrandFpu
	fpe := fpj * (1 - g.Strands.LossFraction)
	if n <= 0 || fci <= 0 {
		return fpe
	}

	p := m.props
	e := p.Yb - g.Strands.Centroid
	pi := float64(n) * g.Strands.Area * fpj
	ls := m.g.SpanLength()
	mg := m.w[dcGirder] * ls * ls / 8

	fcgp := pi/p.Area + pi*e*e/p.Ix - mg*e/p.Ix
	es := lrfd.Ep / lrfd.ConcreteModulus(fci) * math.Max(fcgp, 0)
	return math.Max(fpe-es, 0)
}
