// Package shear designs the transverse reinforcement of a precast girder:
// primary stirrup zones, horizontal interface shear bars, splitting and
// confinement reinforcement, and the longitudinal reinforcement for shear.
package shear

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/WSDOT/PGSuper-sub013/internal/artifact"
	"github.com/WSDOT/PGSuper-sub013/internal/envelope"
	"github.com/WSDOT/PGSuper-sub013/internal/lrfd"
	"github.com/WSDOT/PGSuper-sub013/internal/stirrup"
)

const tol = lrfd.SpacingTol

// Outcome is the result of one stirrup design pass
type Outcome int

const (
	Success Outcome = iota
	Fail
	RestartWithAdditionalLongRebar
	RestartWithAdditionalStrands
	FailedFromShearStress
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "Success"
	case Fail:
		return "Fail"
	case RestartWithAdditionalLongRebar:
		return "RestartWithAdditionalLongRebar"
	case RestartWithAdditionalStrands:
		return "RestartWithAdditionalStrands"
	case FailedFromShearStress:
		return "FailedFromShearStress"
	}
	return "Outcome(?)"
}

// LongReinfMethod selects the remedy for a longitudinal reinforcement for
// shear deficit
type LongReinfMethod int

const (
	AddRebar LongReinfMethod = iota
	AddStrands
)

func (m LongReinfMethod) String() string {
	if m == AddStrands {
		return "strands"
	}
	return "rebar"
}

// Params are the design criteria and girder data that stay fixed for a run
type Params struct {
	GirderLength     float64
	Height           float64
	FaceOfSupport    [2]float64 // stations of the support faces
	ConnectionLength [2]float64

	Catalog *stirrup.Catalog

	FromScratch             bool
	ExtendBarsIntoDeck      bool
	BarsActAsConfinement    bool
	PrimaryBarsForSplitting bool
	DesignSplitting         bool
	DesignConfinement       bool
	HasDeck                 bool
	Permit                  bool

	LongReinfMethod      LongReinfMethod
	IncludeRebarForShear bool
	Edition              lrfd.Edition
	RebarFy              float64 // MPa
}

// Designer runs the stirrup design for one trial configuration at a time
type Designer struct {
	params  Params
	checker LongReinfShearChecker
	log     zerolog.Logger

	cfg      artifact.Config
	checks   CheckSet
	stations []float64
	critical envelope.CriticalSectionZone

	demand *envelope.Function
	horiz  *envelope.Function
	layout stirrup.Layout

	reason      artifact.Outcome
	longReinfAs float64
	requiredFc  float64
}

// NewDesigner returns a designer for the given criteria
func NewDesigner(p Params, checker LongReinfShearChecker, log zerolog.Logger) *Designer {
	return &Designer{params: p, checker: checker, log: log}
}

// Reset loads a trial configuration and its checks
func (d *Designer) Reset(cfg artifact.Config, checks CheckSet) {
	d.cfg = cfg
	d.checks = checks
	d.critical = envelope.CriticalSectionZone{Left: 0, Right: d.params.GirderLength}
	d.layout = cfg.Layout.Clone()
	d.reason = artifact.NotDesigned
	d.longReinfAs = 0
	d.requiredFc = 0
	d.demand, d.horiz = nil, nil

	seen := map[float64]bool{}
	d.stations = d.stations[:0]
	for _, ls := range checks.LimitStates {
		for _, p := range ls.Points {
			if !seen[p.X] {
				seen[p.X] = true
				d.stations = append(d.stations, p.X)
			}
		}
	}
	sort.Float64s(d.stations)
}

// Layout returns a copy of the current layout
func (d *Designer) Layout() stirrup.Layout { return d.layout.Clone() }

// FailureReason is the artifact outcome of the last failed pass
func (d *Designer) FailureReason() artifact.Outcome { return d.reason }

// RequiredLongReinfArea is the area requested by the last restart outcome
// (mm² of rebar or strand)
func (d *Designer) RequiredLongReinfArea() float64 { return d.longReinfAs }

// RequiredFcForShearStress is the concrete strength needed to keep the
// shear stress within the sectional model (MPa), zero when not controlling
func (d *Designer) RequiredFcForShearStress() float64 { return d.requiredFc }

// DemandEnvelopes returns the vertical and horizontal demand envelopes of
// the last pass
func (d *Designer) DemandEnvelopes() (*envelope.Function, *envelope.Function) {
	return d.demand, d.horiz
}

// DesignStirrups runs one pass of the stirrup design. Demand between each
// support and its critical section is taken from the critical section.
func (d *Designer) DesignStirrups(leftCSS, rightCSS float64) (Outcome, error) {
	if d.params.Catalog == nil {
		return Fail, errors.New("shear: no bar catalog")
	}
	if leftCSS > rightCSS {
		return Fail, errors.Errorf("shear: critical sections out of order (%.1f, %.1f)", leftCSS, rightCSS)
	}
	d.critical = envelope.CriticalSectionZone{Left: leftCSS, Right: rightCSS}
	if err := d.buildDemand(); err != nil {
		return Fail, err
	}
	d.checkShearStress()

	var ok bool
	if d.params.FromScratch {
		ok = d.LayoutPrimaryZones()
	} else {
		ok = d.ModifyExistingLayout()
	}
	if ok && !d.params.ExtendBarsIntoDeck {
		ok = d.DetailHorizontalInterfaceShear()
	}
	if ok {
		ok = d.DetailAdditionalSplitting()
	}
	if ok {
		ok = d.DetailAdditionalConfinement()
	}
	if !ok {
		d.log.Debug().Str("reason", d.reason.String()).Int("zones", len(d.layout.Zones)).Msg("stirrup design failed")
		return Fail, nil
	}

	out, err := d.DesignLongitudinalReinforcement()
	if err != nil {
		return Fail, err
	}
	if out != Success {
		return out, nil
	}
	if d.requiredFc > 0 {
		return FailedFromShearStress, nil
	}
	return Success, nil
}

// buildDemand builds the vertical and horizontal demand envelopes from all
// strength limit states
func (d *Designer) buildDemand() error {
	var vert, horiz []envelope.DemandPoint
	for _, ls := range d.checks.LimitStates {
		for _, p := range ls.Points {
			vert = append(vert, envelope.DemandPoint{X: p.X, Avs: p.AvsReqd, Mandatory: p.Mandatory})
			horiz = append(horiz, envelope.DemandPoint{X: p.X, Avs: p.HorizAvsReqd})
		}
	}
	if len(vert) == 0 {
		return errors.New("shear: no stirrup checks")
	}
	opt := envelope.Options{
		GirderLength:     d.params.GirderLength,
		Critical:         d.critical,
		Mirror:           d.params.FromScratch || d.layout.Symmetric,
		ConnectionLength: d.params.ConnectionLength,
	}
	d.demand = envelope.Build(vert, opt)

	// interface demand is not controlled by the critical section
	hopt := opt
	hopt.Critical = envelope.CriticalSectionZone{Left: 0, Right: d.params.GirderLength}
	d.horiz = envelope.Build(horiz, hopt)
	return nil
}

// checkShearStress records the concrete strength needed where the sectional
// model is not valid
func (d *Designer) checkShearStress() {
	var vfc float64
	for _, ls := range d.checks.LimitStates {
		for _, p := range ls.Points {
			if p.StrutTieRequired && !d.critical.Excludes(p.X) {
				vfc = math.Max(vfc, math.Abs(p.VuOverFc))
			}
		}
	}
	if vfc > 0 {
		d.requiredFc = vfc * d.cfg.Fc / lrfd.StrutTieStressLimit * lrfd.ShearStressFcFudge
	}
}

// maxSpacingAt is the controlling maximum stirrup spacing at station x
func (d *Designer) maxSpacingAt(x float64) float64 {
	s := math.MaxFloat64
	xc := math.Min(math.Max(x, d.critical.Left), d.critical.Right)
	for _, ls := range d.checks.LimitStates {
		if p, ok := nearestPoint(ls.Points, xc); ok && p.SMax > 0 {
			s = math.Min(s, p.SMax)
		}
	}
	if d.params.DesignConfinement && d.params.BarsActAsConfinement && d.inConfinementZone(x) {
		if cs := d.checks.Confinement.MaxSpacing; cs > 0 {
			s = math.Min(s, cs)
		}
	}
	if mm := d.params.Catalog.MaxMaxSpacing(); mm > 0 {
		s = math.Min(s, mm)
	}
	return s
}

func nearestPoint(pts []PointCheck, x float64) (PointCheck, bool) {
	best := -1
	for i, p := range pts {
		if best < 0 || math.Abs(p.X-x) < math.Abs(pts[best].X-x) {
			best = i
		}
	}
	if best < 0 {
		return PointCheck{}, false
	}
	return pts[best], true
}

func (d *Designer) inConfinementZone(x float64) bool {
	zl := d.checks.Confinement.ZoneLength
	return x < zl[0]+tol || d.params.GirderLength-x < zl[1]+tol
}

// vertical and horizontal demand

func (d *Designer) vertAt(x float64) float64 { return d.demand.MaxInRange(x, x) }

func (d *Designer) horizAt(x float64) float64 { return d.horiz.MaxInRange(x, x) }

func (d *Designer) vertMax(a, b float64) float64 { return maxInside(d.demand, a, b) }

func (d *Designer) horizMax(a, b float64) float64 { return maxInside(d.horiz, a, b) }

// maxInside ignores the demand exactly at the zone boundaries
func maxInside(f *envelope.Function, a, b float64) float64 {
	if b-a > 2*tol {
		return f.MaxInRange(a+tol, b-tol)
	}
	return f.MaxInRange(a, a)
}

// primaryDemandAt returns the Av/s the primary bars must provide at x and
// whether horizontal interface shear controls it
func (d *Designer) primaryDemandAt(x float64) (float64, bool) {
	v := d.vertAt(x)
	if d.params.ExtendBarsIntoDeck {
		if h := d.horizAt(x); h > v {
			return h, true
		}
	}
	return v, false
}

func (d *Designer) primaryDemandIn(a, b float64) float64 {
	v := d.vertMax(a, b)
	if d.params.ExtendBarsIntoDeck {
		v = math.Max(v, d.horizMax(a, b))
	}
	return v
}

func (d *Designer) failStirrups(horizontal bool) {
	if horizontal {
		d.reason = artifact.TooManyStirrupsReqdForHorizontalInterfaceShear
	} else {
		d.reason = artifact.TooManyStirrupsReqd
	}
}

// ceilOff rounds v up to a multiple of inc
func ceilOff(v, inc float64) float64 {
	if inc <= 0 {
		return v
	}
	n := v / inc
	if n-math.Floor(n) < tol {
		return math.Floor(n) * inc
	}
	return math.Ceil(n) * inc
}

// roundZoneLength rounds a zone length to the reported precision (0.1 mm)
func roundZoneLength(v float64) float64 {
	return decimal.NewFromFloat(v).Round(1).InexactFloat64()
}
